package app

// HintTracker tracks hint visibility and progression for the current question.
// It knows nothing about timing; the coordinator gates requests on expiry.
type HintTracker struct {
	visible bool
	index   int
}

func NewHintTracker() *HintTracker {
	return &HintTracker{}
}

func (h *HintTracker) Visible() bool {
	return h.visible
}

// Index points into the current question's hints; meaningful only when visible.
func (h *HintTracker) Index() int {
	return h.index
}

// Enable shows hints without moving the index.
func (h *HintTracker) Enable() {
	h.visible = true
}

// Advance moves to the next hint, saturating at the last one.
func (h *HintTracker) Advance(maxHints int) {
	if maxHints <= 0 {
		return
	}
	if h.index < maxHints-1 {
		h.index++
	}
}

// Request is the single "hint" gesture: the first request reveals hint one,
// each later request reveals the next, capped at the last hint. Unlike
// Enable followed by Advance, the first request does not move the index.
func (h *HintTracker) Request(maxHints int) {
	if !h.visible {
		h.Enable()
		return
	}
	h.Advance(maxHints)
}

func (h *HintTracker) Reset() {
	h.visible = false
	h.index = 0
}
