package app

import (
	"fmt"
	"time"

	"ckad-trainer/internal/domain"
)

// Timer tracks elapsed time against a per-question limit.
// Expiry is computed on read, so queries are idempotent and never push events.
type Timer struct {
	now       func() time.Time
	startedAt time.Time
	limit     time.Duration
}

// NewTimer starts a timer with the wall clock. time.Now carries a monotonic
// reading, so elapsed time is immune to clock adjustments.
func NewTimer(limit time.Duration) (*Timer, error) {
	return NewTimerWithClock(limit, time.Now)
}

// NewTimerWithClock allows deterministic timing in tests.
func NewTimerWithClock(limit time.Duration, now func() time.Time) (*Timer, error) {
	if err := validateLimit(limit); err != nil {
		return nil, err
	}
	return &Timer{now: now, startedAt: now(), limit: limit}, nil
}

// Limit returns the duration the timer counts against.
func (t *Timer) Limit() time.Duration {
	return t.limit
}

// Elapsed returns the time since the timer started; never negative.
func (t *Timer) Elapsed() time.Duration {
	elapsed := t.now().Sub(t.startedAt)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// Remaining returns the time left, clamped to zero.
func (t *Timer) Remaining() time.Duration {
	remaining := t.limit - t.Elapsed()
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Expired reports whether the limit has been reached.
func (t *Timer) Expired() bool {
	return t.Elapsed() >= t.limit
}

// Reset restarts the timer with a new limit, discarding prior state.
// An invalid limit leaves the timer untouched.
func (t *Timer) Reset(limit time.Duration) error {
	if err := validateLimit(limit); err != nil {
		return err
	}
	t.startedAt = t.now()
	t.limit = limit
	return nil
}

func validateLimit(limit time.Duration) error {
	if limit <= 0 {
		return fmt.Errorf("%w: got %s", domain.ErrInvalidDuration, limit)
	}
	return nil
}
