// Package tagreader wraps a platform contactless-read primitive with the
// retry, timeout and cancellation policy a tap needs: bounded attempts,
// a fixed per-attempt deadline, and a guaranteed release of the technology
// handle whether the attempt succeeds or not.
package tagreader

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ironiq/gymtap/internal/models"
	"github.com/ironiq/gymtap/internal/ndef"
)

// Policy bounds a single ReadTag call.
type Policy struct {
	Attempts       int
	AttemptTimeout time.Duration
	RetryDelay     time.Duration
}

// DefaultPolicy is the production read policy: 3 attempts, 10s per attempt,
// 500ms between attempts.
func DefaultPolicy() Policy {
	return Policy{
		Attempts:       3,
		AttemptTimeout: 10 * time.Second,
		RetryDelay:     500 * time.Millisecond,
	}
}

// Reader turns one tap into one decoded CompactPayload or a classified
// failure. A Reader serializes reads: a second ReadTag while one is
// outstanding fails fast with ErrBusy instead of interleaving two
// technology acquisitions.
type Reader struct {
	tech   Technology
	policy Policy
	logf   func(format string, args ...any)

	mu     sync.Mutex
	cancel context.CancelFunc // non-nil while a read is outstanding
}

// New builds a Reader over tech. A zero-valued policy gets DefaultPolicy.
func New(tech Technology, policy Policy) *Reader {
	if policy.Attempts <= 0 {
		policy = DefaultPolicy()
	}
	return &Reader{
		tech:   tech,
		policy: policy,
		logf:   func(string, ...any) {},
	}
}

// SetLogf routes the reader's diagnostic output (attempt failures, cleanup
// errors). Silent by default.
func (r *Reader) SetLogf(logf func(format string, args ...any)) {
	if logf != nil {
		r.logf = logf
	}
}

// ReadTag performs one tap: acquire the tag, read its record, decode it.
// Attempts are strictly sequential; a failed attempt releases the
// technology handle and, unless the failure rules out a retry, waits
// Policy.RetryDelay before the next one. On exhaustion the last attempt's
// failure is returned unchanged.
//
// ErrUnavailable, ErrDisabled and ErrCancelled are never retried.
func (r *Reader) ReadTag(ctx context.Context) (*models.CompactPayload, error) {
	r.mu.Lock()
	if r.cancel != nil {
		r.mu.Unlock()
		return nil, ErrBusy
	}
	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.mu.Unlock()

	defer func() {
		cancel()
		r.mu.Lock()
		r.cancel = nil
		r.mu.Unlock()
	}()

	var lastErr error
	for attempt := 1; attempt <= r.policy.Attempts; attempt++ {
		payload, err := r.attempt(ctx)
		if err == nil {
			return payload, nil
		}
		if !retryable(err) {
			return nil, err
		}

		r.logf("tag read attempt %d/%d failed: %v", attempt, r.policy.Attempts, err)
		lastErr = err
		if attempt == r.policy.Attempts {
			break
		}

		select {
		case <-time.After(r.policy.RetryDelay):
		case <-ctx.Done():
			return nil, fmt.Errorf("read aborted between attempts: %w", ErrCancelled)
		}
	}
	return nil, lastErr
}

// StopReading cancels any outstanding read. Safe to call at any time; a
// no-op when no read is in flight. The technology handle of the aborted
// attempt is still released by the attempt's own cleanup.
func (r *Reader) StopReading() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
	}
}

// attempt races one acquire+read+decode against the attempt timeout.
func (r *Reader) attempt(parent context.Context) (*models.CompactPayload, error) {
	ctx, cancel := context.WithTimeout(parent, r.policy.AttemptTimeout)
	defer cancel()

	if err := r.tech.Connect(ctx); err != nil {
		return nil, r.classify(err)
	}
	defer r.release()

	recordType, recordPayload, err := r.tech.ReadRecord(ctx)
	if err != nil {
		return nil, r.classify(err)
	}

	return ndef.Decode(recordType, recordPayload)
}

// release closes the technology handle. Failures here are logged, never
// propagated: the read outcome was already decided.
func (r *Reader) release() {
	if err := r.tech.Close(); err != nil {
		r.logf("tag technology release failed: %v", err)
	}
}

// classify maps raw technology/context errors onto the reader's taxonomy.
// Already-classified errors pass through untouched.
func (r *Reader) classify(err error) error {
	switch {
	case errors.Is(err, ErrUnavailable),
		errors.Is(err, ErrDisabled),
		errors.Is(err, ErrCancelled),
		errors.Is(err, ErrTimeout):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("attempt exceeded %s: %w", r.policy.AttemptTimeout, ErrTimeout)
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("%v: %w", err, ErrCancelled)
	default:
		return err
	}
}

// retryable reports whether a failed attempt may be followed by another.
func retryable(err error) bool {
	return !errors.Is(err, ErrUnavailable) &&
		!errors.Is(err, ErrDisabled) &&
		!errors.Is(err, ErrCancelled)
}
