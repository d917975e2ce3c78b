package app_test

import (
	"errors"
	"testing"
	"time"

	"ckad-trainer/internal/app"
	"ckad-trainer/internal/domain"
)

func TestTimerFreshIsNotExpired(t *testing.T) {
	for _, limit := range []time.Duration{time.Nanosecond, time.Second, 90 * time.Second} {
		clock := newFakeClock()
		timer, err := app.NewTimerWithClock(limit, clock.Now)
		if err != nil {
			t.Fatalf("new timer %s: %v", limit, err)
		}
		if timer.Expired() {
			t.Fatalf("expected fresh %s timer not expired", limit)
		}
		if timer.Remaining() > limit {
			t.Fatalf("remaining %s exceeds limit %s", timer.Remaining(), limit)
		}
	}
}

func TestTimerExpiresAtLimit(t *testing.T) {
	clock := newFakeClock()
	timer, err := app.NewTimerWithClock(60*time.Second, clock.Now)
	if err != nil {
		t.Fatalf("new timer: %v", err)
	}

	clock.Advance(59 * time.Second)
	if timer.Expired() {
		t.Fatalf("expected timer running at 59s")
	}
	if got := timer.Remaining(); got != time.Second {
		t.Fatalf("expected 1s remaining, got %s", got)
	}

	clock.Advance(time.Second)
	if !timer.Expired() {
		t.Fatalf("expected timer expired at exactly the limit")
	}
	if got := timer.Remaining(); got != 0 {
		t.Fatalf("expected zero remaining, got %s", got)
	}

	clock.Advance(time.Hour)
	if !timer.Expired() || timer.Remaining() != 0 {
		t.Fatalf("expected expiry to stick with zero remaining, got remaining=%s", timer.Remaining())
	}
}

func TestTimerElapsedNeverNegative(t *testing.T) {
	clock := newFakeClock()
	timer, _ := app.NewTimerWithClock(time.Minute, clock.Now)

	clock.Advance(-10 * time.Second)
	if got := timer.Elapsed(); got != 0 {
		t.Fatalf("expected zero elapsed after clock moved back, got %s", got)
	}
	if got := timer.Remaining(); got != time.Minute {
		t.Fatalf("expected full limit remaining, got %s", got)
	}
}

func TestTimerRejectsNonPositiveLimit(t *testing.T) {
	for _, limit := range []time.Duration{0, -time.Second} {
		if _, err := app.NewTimer(limit); !errors.Is(err, domain.ErrInvalidDuration) {
			t.Fatalf("expected ErrInvalidDuration for %s, got %v", limit, err)
		}
	}
}

func TestTimerReset(t *testing.T) {
	clock := newFakeClock()
	timer, _ := app.NewTimerWithClock(10*time.Second, clock.Now)
	clock.Advance(15 * time.Second)
	if !timer.Expired() {
		t.Fatalf("expected expired before reset")
	}

	if err := timer.Reset(30 * time.Second); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if err := timer.Reset(30 * time.Second); err != nil {
		t.Fatalf("second reset: %v", err)
	}
	if timer.Expired() || timer.Elapsed() != 0 || timer.Limit() != 30*time.Second {
		t.Fatalf("expected fresh 30s timer, got elapsed=%s limit=%s", timer.Elapsed(), timer.Limit())
	}

	clock.Advance(5 * time.Second)
	if err := timer.Reset(0); !errors.Is(err, domain.ErrInvalidDuration) {
		t.Fatalf("expected ErrInvalidDuration, got %v", err)
	}
	if timer.Elapsed() != 5*time.Second || timer.Limit() != 30*time.Second {
		t.Fatalf("expected rejected reset to leave timer untouched")
	}
}
