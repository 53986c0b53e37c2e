package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/manosay/manosay/backend/go-services/pkg/logger"
	"github.com/manosay/manosay/backend/go-services/pkg/metrics"
)

const healthCheckTimeout = 2 * time.Second

// Options configures a Store.
type Options struct {
	URI      string
	Database string
	// Timeout bounds each dial + ping attempt.
	Timeout time.Duration
	Policy  RetryPolicy
	// Dialer and Sleep are replaced in tests.
	Dialer Dialer
	Sleep  func(ctx context.Context, d time.Duration) error
}

// Store owns the single document store handle of the process.
type Store struct {
	opts Options

	// connMu serializes Connect and Disconnect.
	connMu sync.Mutex

	mu     sync.RWMutex
	handle Handle
}

// New returns a Store that is not yet connected.
func New(opts Options) *Store {
	if opts.Dialer == nil {
		opts.Dialer = DialMongo
	}
	if opts.Sleep == nil {
		opts.Sleep = sleepContext
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.Policy.MaxRetries < 1 {
		opts.Policy = DefaultRetryPolicy
	}
	return &Store{opts: opts}
}

// Connect establishes the handle, retrying per the store's RetryPolicy.
// It is a no-op when already connected. Concurrent callers wait for the
// in-flight attempt and share its handle.
func (s *Store) Connect(ctx context.Context) error {
	s.connMu.Lock()
	defer s.connMu.Unlock()

	if s.current() != nil {
		return nil
	}

	redacted := RedactURI(s.opts.URI)
	for attempt := 1; ; attempt++ {
		h, err := s.attempt(ctx)
		step := s.opts.Policy.Next(attempt, err)
		switch step.Kind {
		case Connected:
			metrics.StoreConnectAttempts.WithLabelValues("success").Inc()
			s.mu.Lock()
			s.handle = h
			s.mu.Unlock()
			logger.Infof("connected to document store %s (db=%s, attempt %d)", redacted, s.opts.Database, attempt)
			return nil
		case RetryAfter:
			metrics.StoreConnectAttempts.WithLabelValues("failure").Inc()
			logger.Warnf("attempt %d/%d: failed to connect to document store %s: %v; retrying in %s",
				attempt, s.opts.Policy.MaxRetries, redacted, err, step.Delay)
			if serr := s.opts.Sleep(ctx, step.Delay); serr != nil {
				return &ConnectionError{Attempts: attempt, Cause: serr}
			}
		default:
			metrics.StoreConnectAttempts.WithLabelValues("failure").Inc()
			logger.Errorf("could not connect to document store %s after %d attempts: %v", redacted, attempt, step.Cause)
			return &ConnectionError{Attempts: attempt, Cause: step.Cause}
		}
	}
}

// attempt dials and pings once. A handle that fails the ping is disconnected
// before returning.
func (s *Store) attempt(ctx context.Context) (Handle, error) {
	actx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	h, err := s.opts.Dialer(actx, s.opts.URI, s.opts.Timeout)
	if err != nil {
		return nil, err
	}
	if err := h.Ping(actx, readpref.Primary()); err != nil {
		dctx, dcancel := context.WithTimeout(context.Background(), s.opts.Timeout)
		_ = h.Disconnect(dctx)
		dcancel()
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return h, nil
}

// Disconnect releases the handle. Safe to call when never connected.
func (s *Store) Disconnect(ctx context.Context) error {
	s.connMu.Lock()
	defer s.connMu.Unlock()

	s.mu.Lock()
	h := s.handle
	s.handle = nil
	s.mu.Unlock()

	if h == nil {
		return nil
	}
	if err := h.Disconnect(ctx); err != nil {
		return fmt.Errorf("mongo disconnect: %w", err)
	}
	logger.Infof("disconnected from document store")
	return nil
}

// HealthCheck pings the current handle. Any failure, including not being
// connected, yields false.
func (s *Store) HealthCheck(ctx context.Context) bool {
	h := s.current()
	if h == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()
	if err := h.Ping(ctx, readpref.Primary()); err != nil {
		logger.Debugf("document store health check failed: %v", err)
		return false
	}
	return true
}

// Connected reports whether a handle is held.
func (s *Store) Connected() bool {
	return s.current() != nil
}

// Database returns the configured database.
func (s *Store) Database() (*mongo.Database, error) {
	h := s.current()
	if h == nil {
		return nil, ErrNotInitialized
	}
	return h.Database(s.opts.Database), nil
}

// Collection returns a named collection of the configured database.
func (s *Store) Collection(name string) (*mongo.Collection, error) {
	db, err := s.Database()
	if err != nil {
		return nil, err
	}
	return db.Collection(name), nil
}

func (s *Store) current() Handle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.handle
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
