package domain

import (
	"encoding/json"
	"time"
)

// Question is a single quiz item with graduated hints and a canonical answer.
type Question struct {
	ID        int
	Prompt    string
	Hints     []string
	Answer    string // may span multiple lines
	TimeLimit time.Duration
}

// questionJSON is the stored form; limits are whole seconds so banks stay hand editable.
type questionJSON struct {
	ID               int      `json:"id"`
	Prompt           string   `json:"prompt"`
	Hints            []string `json:"hints"`
	Answer           string   `json:"answer"`
	TimeLimitSeconds int64    `json:"timeLimitSeconds"`
}

func (q Question) MarshalJSON() ([]byte, error) {
	hints := q.Hints
	if hints == nil {
		hints = []string{}
	}
	return json.Marshal(questionJSON{
		ID:               q.ID,
		Prompt:           q.Prompt,
		Hints:            hints,
		Answer:           q.Answer,
		TimeLimitSeconds: int64(q.TimeLimit / time.Second),
	})
}

func (q *Question) UnmarshalJSON(data []byte) error {
	var raw questionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*q = Question{
		ID:        raw.ID,
		Prompt:    raw.Prompt,
		Hints:     raw.Hints,
		Answer:    raw.Answer,
		TimeLimit: time.Duration(raw.TimeLimitSeconds) * time.Second,
	}
	return nil
}

// Snapshot is the read-only view of a trainer handed to presentation layers.
type Snapshot struct {
	TrainerID    string        `json:"trainerId"`
	Question     Question      `json:"question"`
	Index        int           `json:"index"`
	Total        int           `json:"total"`
	Remaining    time.Duration `json:"-"`
	Expired      bool          `json:"expired"`
	LastQuestion bool          `json:"lastQuestion"`
	Finished     bool          `json:"finished"`
	HintsVisible bool          `json:"hintsVisible"`
	HintIndex    int           `json:"hintIndex"`
}

// RemainingSeconds rounds the remaining time down to whole seconds.
func (s Snapshot) RemainingSeconds() int {
	return int(s.Remaining / time.Second)
}

// Hint returns the visible hint text, or "" when hints are hidden or absent.
func (s Snapshot) Hint() string {
	if !s.HintsVisible || s.HintIndex < 0 || s.HintIndex >= len(s.Question.Hints) {
		return ""
	}
	return s.Question.Hints[s.HintIndex]
}

// MarshalJSON withholds the answer until expiry and hints the learner has not requested yet.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	type plain Snapshot
	p := plain(s)
	p.Question.Hints = s.revealedHints()
	if !s.Expired {
		p.Question.Answer = ""
	}
	return json.Marshal(struct {
		plain
		RemainingSeconds int    `json:"remainingSeconds"`
		HintCount        int    `json:"hintCount"`
		Hint             string `json:"hint,omitempty"`
	}{
		plain:            p,
		RemainingSeconds: s.RemainingSeconds(),
		HintCount:        len(s.Question.Hints),
		Hint:             s.Hint(),
	})
}

func (s Snapshot) revealedHints() []string {
	if !s.HintsVisible || len(s.Question.Hints) == 0 {
		return nil
	}
	end := s.HintIndex + 1
	if end > len(s.Question.Hints) {
		end = len(s.Question.Hints)
	}
	return append([]string(nil), s.Question.Hints[:end]...)
}
