package grpc

import (
	"context"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/tair/storefront/internal/catalog/repository"
	"github.com/tair/storefront/pkg/logger"
)

// CatalogService is the health service name that follows the catalog circuit
const CatalogService = "storefront.catalog"

// BreakerState reports the state of the catalog circuit
type BreakerState interface {
	State() repository.CircuitState
}

// HealthServer publishes storefront health over the standard gRPC health protocol
type HealthServer struct {
	*health.Server

	breaker BreakerState

	mu   sync.Mutex
	last healthpb.HealthCheckResponse_ServingStatus
}

// NewHealthServer creates a health server. breaker may be nil when the
// catalog is not guarded by a circuit.
func NewHealthServer(breaker BreakerState) *HealthServer {
	s := &HealthServer{
		Server:  health.NewServer(),
		breaker: breaker,
	}
	s.Sync(context.Background())
	return s
}

// Register attaches the health service to srv
func (s *HealthServer) Register(srv *grpc.Server) {
	healthpb.RegisterHealthServer(srv, s.Server)
}

// Sync sets the catalog status from the breaker. An open circuit is
// NOT_SERVING; closed and half-open are SERVING.
func (s *HealthServer) Sync(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	next := healthpb.HealthCheckResponse_SERVING
	if s.breaker != nil && s.breaker.State() == repository.StateOpen {
		next = healthpb.HealthCheckResponse_NOT_SERVING
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	s.SetServingStatus(CatalogService, next)

	if s.last != next && s.last != healthpb.HealthCheckResponse_UNKNOWN {
		logger.Warn(ctx).
			Str("service", CatalogService).
			Str("status", next.String()).
			Msg("Catalog health changed")
	}
	s.last = next
	return next
}

// Watch syncs every interval until ctx is cancelled, then marks every service NOT_SERVING
func (s *HealthServer) Watch(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.Shutdown()
			return
		case <-ticker.C:
			s.Sync(ctx)
		}
	}
}
