package app_test

import (
	"testing"

	"ckad-trainer/internal/app"
)

func TestHintTrackerStartsHidden(t *testing.T) {
	h := app.NewHintTracker()
	if h.Visible() || h.Index() != 0 {
		t.Fatalf("expected hidden at 0, got visible=%v index=%d", h.Visible(), h.Index())
	}
}

func TestHintTrackerEnableIsIdempotent(t *testing.T) {
	h := app.NewHintTracker()
	h.Advance(3)
	h.Enable()
	h.Enable()
	if !h.Visible() || h.Index() != 1 {
		t.Fatalf("expected visible at 1, got visible=%v index=%d", h.Visible(), h.Index())
	}
}

func TestHintTrackerAdvanceSaturates(t *testing.T) {
	for maxHints := 0; maxHints <= 5; maxHints++ {
		h := app.NewHintTracker()
		for k := 0; k < maxHints+3; k++ {
			h.Advance(maxHints)
			if maxHints > 0 && h.Index() >= maxHints {
				t.Fatalf("max=%d: index %d out of range", maxHints, h.Index())
			}
		}
		want := maxHints - 1
		if maxHints == 0 {
			want = 0
		}
		if h.Index() != want {
			t.Fatalf("max=%d: expected index %d, got %d", maxHints, want, h.Index())
		}
	}
}

func TestHintTrackerRequestShowsFirstHintThenAdvances(t *testing.T) {
	h := app.NewHintTracker()
	var got []int
	for i := 0; i < 5; i++ {
		h.Request(3)
		if !h.Visible() {
			t.Fatalf("expected hints visible after request %d", i+1)
		}
		got = append(got, h.Index())
	}
	want := []int{0, 1, 2, 2, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected index sequence %v, got %v", want, got)
		}
	}
}

func TestHintTrackerRequestWithoutHints(t *testing.T) {
	h := app.NewHintTracker()
	h.Request(0)
	h.Request(0)
	if !h.Visible() || h.Index() != 0 {
		t.Fatalf("expected visible at 0, got visible=%v index=%d", h.Visible(), h.Index())
	}
}

func TestHintTrackerReset(t *testing.T) {
	h := app.NewHintTracker()
	h.Request(4)
	h.Request(4)
	h.Request(4)
	h.Reset()
	if h.Visible() || h.Index() != 0 {
		t.Fatalf("expected reset to hidden at 0, got visible=%v index=%d", h.Visible(), h.Index())
	}
}
