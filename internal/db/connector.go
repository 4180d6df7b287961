package db

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/yigit/coursenotes/internal/pkg/apperrors"
)

// ProbeFunc checks that the store is usable and prepares it (ping, migrate, seed).
type ProbeFunc func(ctx context.Context) error

// ConnectorOptions configures a Connector
type ConnectorOptions struct {
	// Timeout bounds a single probe attempt
	Timeout time.Duration
	// FailFast makes Start return an error instead of reconnecting in the background
	FailFast bool
}

// Connector tracks whether the record store is reachable. When the first attempt
// fails it keeps retrying with exponential backoff until it succeeds or is stopped.
type Connector struct {
	name       string
	probe      ProbeFunc
	opts       ConnectorOptions
	logger     zerolog.Logger
	ready      atomic.Bool
	newBackOff func() backoff.BackOff

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewConnector creates a connector. A nil probe means the store is always ready.
func NewConnector(name string, probe ProbeFunc, opts ConnectorOptions, lgr zerolog.Logger) *Connector {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	return &Connector{
		name:   name,
		probe:  probe,
		opts:   opts,
		logger: lgr.With().Str("store", name).Logger(),
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = time.Second
			b.MaxInterval = 30 * time.Second
			b.MaxElapsedTime = 0
			return b
		},
	}
}

// Name returns the store name
func (c *Connector) Name() string {
	return c.name
}

// Ready reports whether the store has been reached
func (c *Connector) Ready() bool {
	return c.ready.Load()
}

// Start makes the first connection attempt. On failure it logs and starts the
// background reconnect loop, unless FailFast is set.
func (c *Connector) Start(ctx context.Context) error {
	if c.probe == nil {
		c.ready.Store(true)
		return nil
	}

	err := c.attempt(ctx)
	if err == nil {
		c.ready.Store(true)
		c.logger.Info().Msg("Store connection established")
		return nil
	}

	if c.opts.FailFast {
		c.logger.Error().Err(err).Msg("Store connection failed")
		return fmt.Errorf("%w: %v", apperrors.ErrConnectionFailure, err)
	}
	c.logger.Error().Err(err).Msg("Store connection failed, serving in degraded mode")

	c.mu.Lock()
	defer c.mu.Unlock()
	loopCtx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.done = make(chan struct{})
	go c.reconnect(loopCtx, c.done)
	return nil
}

func (c *Connector) attempt(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()
	return c.probe(ctx)
}

func (c *Connector) reconnect(ctx context.Context, done chan struct{}) {
	defer close(done)

	operation := func() error {
		return c.attempt(ctx)
	}
	notify := func(err error, next time.Duration) {
		c.logger.Warn().Err(err).Dur("retryIn", next).Msg("Store still unreachable")
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(c.newBackOff(), ctx), notify); err != nil {
		c.logger.Info().Err(err).Msg("Store reconnect loop stopped")
		return
	}
	c.ready.Store(true)
	c.logger.Info().Msg("Store connection established, leaving degraded mode")
}

// Stop cancels the reconnect loop, if any, and waits for it to exit
func (c *Connector) Stop() {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel, c.done = nil, nil
	c.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
