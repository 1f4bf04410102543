// Package session keeps per-visitor browsing state in memory: the filter
// criteria with their canonical location and the shopping cart.
package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	cartstore "github.com/tair/storefront/internal/cart/store"
	"github.com/tair/storefront/internal/catalog/filter"
	"github.com/tair/storefront/pkg/logger"
)

// ErrSessionNotFound is returned for unknown or expired session ids
var ErrSessionNotFound = errors.New("session not found")

var activeSessions = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Name: "storefront_active_sessions",
		Help: "Number of live browsing sessions",
	},
)

func init() {
	prometheus.MustRegister(activeSessions)
}

// Config tunes session behavior
type Config struct {
	FilterPath   string        // page the filter location is built for
	DebounceWait time.Duration // quiescence window for as-you-type input
	IdleTTL      time.Duration // sessions idle longer than this are swept
}

// DefaultConfig returns the defaults used by the service
func DefaultConfig() Config {
	return Config{
		FilterPath:   "/products",
		DebounceWait: filter.DefaultDebounceWait,
		IdleTTL:      30 * time.Minute,
	}
}

// Session is one visitor's state
type Session struct {
	ID        string
	CreatedAt time.Time
	Filters   *filter.Store
	Input     *filter.DebouncedUpdater
	Cart      *cartstore.Store

	lastSeen atomic.Int64
}

// LastSeen is the time of the last lookup
func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

func (s *Session) touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

// Manager creates, finds and expires sessions
type Manager struct {
	cfg Config
	now func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates an empty session manager
func NewManager(cfg Config) *Manager {
	def := DefaultConfig()
	if cfg.FilterPath == "" {
		cfg.FilterPath = def.FilterPath
	}
	if cfg.DebounceWait <= 0 {
		cfg.DebounceWait = def.DebounceWait
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = def.IdleTTL
	}

	return &Manager{
		cfg:      cfg,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Create starts a session whose filters are seeded from rawQuery
func (m *Manager) Create(ctx context.Context, rawQuery string) *Session {
	id := uuid.NewString()
	now := m.now()

	navigator := filter.NavigatorFunc(func(location string) {
		logger.Debug(logger.WithSessionID(context.Background(), id)).
			Str("location", location).
			Msg("Filter location published")
	})

	filters := filter.NewStoreFromQuery(m.cfg.FilterPath, rawQuery, navigator)
	s := &Session{
		ID:        id,
		CreatedAt: now,
		Filters:   filters,
		Input:     filter.NewDebouncedUpdater(filters, m.cfg.DebounceWait),
		Cart:      cartstore.New(),
	}
	s.touch(now)

	m.mu.Lock()
	m.sessions[id] = s
	n := len(m.sessions)
	m.mu.Unlock()

	activeSessions.Set(float64(n))
	logger.Info(logger.WithSessionID(ctx, id)).
		Str("location", filters.Location()).
		Msg("Session created")

	return s
}

// Get returns a live session and refreshes its idle timer
func (m *Manager) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	s.touch(m.now())
	return s, nil
}

// GetOrCreate returns the session for id, creating a new one when id is
// empty or unknown. created reports which happened.
func (m *Manager) GetOrCreate(ctx context.Context, id, rawQuery string) (s *Session, created bool) {
	if id != "" {
		if s, err := m.Get(ctx, id); err == nil {
			return s, false
		}
	}
	return m.Create(ctx, rawQuery), true
}

// Cart returns the cart of a session
func (m *Manager) Cart(ctx context.Context, sessionID string) (*cartstore.Store, error) {
	s, err := m.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.Cart, nil
}

// Delete ends a session and drops any pending input
func (m *Manager) Delete(ctx context.Context, id string) bool {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	n := len(m.sessions)
	m.mu.Unlock()

	if !ok {
		return false
	}
	s.Input.Stop()
	activeSessions.Set(float64(n))
	logger.Info(logger.WithSessionID(ctx, id)).Msg("Session deleted")
	return true
}

// Len is the number of live sessions
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep removes sessions idle for longer than the configured TTL
func (m *Manager) Sweep(ctx context.Context) int {
	cutoff := m.now().Add(-m.cfg.IdleTTL)

	var expired []*Session
	m.mu.Lock()
	for id, s := range m.sessions {
		if s.LastSeen().Before(cutoff) {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	n := len(m.sessions)
	m.mu.Unlock()

	for _, s := range expired {
		s.Input.Stop()
	}
	activeSessions.Set(float64(n))

	if len(expired) > 0 {
		logger.Info(ctx).
			Int("expired", len(expired)).
			Int("active", n).
			Msg("Idle sessions swept")
	}
	return len(expired)
}

// Run sweeps every interval until ctx is cancelled
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Logger.Info().Msg("Session sweeper stopped")
			return
		case <-ticker.C:
			m.Sweep(ctx)
		}
	}
}
