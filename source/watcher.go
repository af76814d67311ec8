package source

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// Locator produces one position reading. Implementations may return a cached
// fix; the Watcher checks its age.
type Locator interface {
	Locate(ctx context.Context, highAccuracy bool) (Fix, error)
}

type LocatorFunc func(ctx context.Context, highAccuracy bool) (Fix, error)

func (f LocatorFunc) Locate(ctx context.Context, highAccuracy bool) (Fix, error) {
	return f(ctx, highAccuracy)
}

type WatchOptions struct {
	HighAccuracy bool
	MaxAge       time.Duration // older fixes are discarded, 0 accepts any age
	Timeout      time.Duration // per-fix deadline
	PollInterval time.Duration // pause between fixes and between stale retries
	RetryInitial time.Duration // first backoff after a failure
}

func DefaultWatchOptions() WatchOptions {
	return WatchOptions{
		HighAccuracy: true,
		MaxAge:       5 * time.Second,
		Timeout:      10 * time.Second,
		PollInterval: time.Second,
		RetryInitial: 500 * time.Millisecond,
	}
}

// Watcher turns a Locator into a continuous Source[Fix]. Failures go to the
// error handler and the watcher keeps trying, backing off between attempts,
// until Unsubscribe.
type Watcher struct {
	locator Locator
	opts    WatchOptions
	log     *zap.Logger
	now     func() time.Time
}

func NewWatcher(l Locator, opts WatchOptions, log *zap.Logger) *Watcher {
	if log == nil {
		log = zap.NewNop()
	}
	d := DefaultWatchOptions()
	if opts.Timeout <= 0 {
		opts.Timeout = d.Timeout
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = d.PollInterval
	}
	if opts.RetryInitial <= 0 {
		opts.RetryInitial = d.RetryInitial
	}
	return &Watcher{locator: l, opts: opts, log: log, now: time.Now}
}

type watchSubscription struct {
	cancel context.CancelFunc
	once   sync.Once
}

func (s *watchSubscription) Unsubscribe() {
	s.once.Do(s.cancel)
}

func (w *Watcher) Subscribe(onSample func(Fix), onError func(error)) (Subscription, error) {
	if w.locator == nil {
		return nil, ErrUnavailable
	}
	ctx, cancel := context.WithCancel(context.Background())
	go w.run(ctx, onSample, onError)
	return &watchSubscription{cancel: cancel}, nil
}

func (w *Watcher) run(ctx context.Context, onSample func(Fix), onError func(error)) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = w.opts.RetryInitial
	b.MaxInterval = w.opts.Timeout
	b.MaxElapsedTime = 0
	b.Reset()

	for {
		fix, err := w.next(ctx)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			if onError != nil {
				onError(err)
			}
			if !sleep(ctx, b.NextBackOff()) {
				return
			}
			continue
		}
		b.Reset()
		if onSample != nil {
			onSample(fix)
		}
		if !sleep(ctx, w.opts.PollInterval) {
			return
		}
	}
}

// next waits for a fix no older than MaxAge, up to Timeout.
func (w *Watcher) next(ctx context.Context) (Fix, error) {
	tctx, cancel := context.WithTimeout(ctx, w.opts.Timeout)
	defer cancel()

	for {
		fix, err := w.locator.Locate(tctx, w.opts.HighAccuracy)
		if err != nil {
			if tctx.Err() != nil && ctx.Err() == nil {
				return Fix{}, fmt.Errorf("no fix within %s: %w", w.opts.Timeout, ErrTimeout)
			}
			return Fix{}, fmt.Errorf("locate: %w", err)
		}
		now := w.now()
		if fix.Timestamp.IsZero() {
			fix.Timestamp = now
		}
		age := now.Sub(fix.Timestamp)
		if w.opts.MaxAge <= 0 || age <= w.opts.MaxAge {
			return fix, nil
		}
		w.log.Debug("discarding stale fix", zap.Duration("age", age), zap.Duration("max_age", w.opts.MaxAge))
		if !sleep(tctx, w.opts.PollInterval) {
			if ctx.Err() == nil {
				return Fix{}, fmt.Errorf("no fresh fix within %s: %w", w.opts.Timeout, ErrTimeout)
			}
			return Fix{}, ctx.Err()
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// IsTransient reports whether err is a per-occurrence failure after which the
// stream goes on.
func IsTransient(err error) bool {
	return err != nil && !errors.Is(err, ErrUnavailable) && !errors.Is(err, ErrPermissionDenied)
}
