package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/pkg/logger"
)

// ErrUpstream wraps non-success answers from the remote catalog
var ErrUpstream = errors.New("catalog upstream error")

// RemoteConfig configures the HTTP catalog client
type RemoteConfig struct {
	BaseURL        string
	Timeout        time.Duration
	MaxFailures    int
	BreakerTimeout time.Duration
}

// RemoteSource reads the catalog from a fakestore-compatible HTTP API
type RemoteSource struct {
	baseURL *url.URL
	client  *http.Client
	breaker *CircuitBreaker
}

// NewRemoteSource creates a remote catalog client with tracing transport and a circuit breaker
func NewRemoteSource(cfg RemoteConfig) (*RemoteSource, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid catalog url %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid catalog url %q: scheme and host are required", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	maxFailures := cfg.MaxFailures
	if maxFailures <= 0 {
		maxFailures = 5
	}
	breakerTimeout := cfg.BreakerTimeout
	if breakerTimeout <= 0 {
		breakerTimeout = 30 * time.Second
	}

	logger.Logger.Info().
		Str("base_url", base.String()).
		Dur("timeout", timeout).
		Msg("Remote catalog source configured")

	return &RemoteSource{
		baseURL: base,
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		breaker: NewCircuitBreaker("catalog", maxFailures, breakerTimeout),
	}, nil
}

// Breaker exposes the circuit breaker for health reporting
func (s *RemoteSource) Breaker() *CircuitBreaker {
	return s.breaker
}

// FindAll fetches the full product list
func (s *RemoteSource) FindAll(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := s.get(ctx, "/products", "products", &products); err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

// FindByID fetches one product. The remote answers an empty body for unknown ids.
func (s *RemoteSource) FindByID(ctx context.Context, id domain.ProductID) (*domain.Product, error) {
	if id == "" {
		return nil, domain.ErrProductNotFound
	}

	var product *domain.Product
	err := s.get(ctx, "/products/"+url.PathEscape(id.String()), "product", &product)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to fetch product %s: %w", id, err)
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

// Categories fetches the category names in listing order
func (s *RemoteSource) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := s.get(ctx, "/products/categories", "categories", &categories); err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	if categories == nil {
		categories = []string{}
	}
	return categories, nil
}

func (s *RemoteSource) get(ctx context.Context, path, endpoint string, out interface{}) error {
	return s.breaker.Call(func() error {
		start := time.Now()
		status := "error"
		defer func() {
			upstreamDuration.WithLabelValues(endpoint, status).Observe(time.Since(start).Seconds())
		}()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL.String()+path, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := s.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		status = strconv.Itoa(resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return domain.ErrProductNotFound
		case resp.StatusCode < 200 || resp.StatusCode > 299:
			logger.Warn(ctx).
				Str("endpoint", endpoint).
				Int("status", resp.StatusCode).
				Msg("Remote catalog returned an error status")
			return fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
		}

		body = bytes.TrimSpace(body)
		if len(body) == 0 {
			return nil
		}
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("%w: invalid payload: %v", ErrUpstream, err)
		}
		return nil
	})
}

// isCallerError reports errors that say nothing about the health of the upstream
func isCallerError(err error) bool {
	return errors.Is(err, domain.ErrProductNotFound) || errors.Is(err, context.Canceled)
}
