package app

import (
	"fmt"
	"time"

	"ckad-trainer/internal/domain"
)

// Session owns the question order, the current position and the timer bound
// to the current question. It is not safe for concurrent use; one coordinator
// owns it at a time.
type Session struct {
	questions []domain.Question
	current   int
	timer     *Timer
	now       func() time.Time
}

// NewSession starts a session on the first question using the wall clock.
func NewSession(questions []domain.Question) (*Session, error) {
	return NewSessionWithClock(questions, time.Now)
}

// NewSessionWithClock is used by tests for deterministic timing.
func NewSessionWithClock(questions []domain.Question, now func() time.Time) (*Session, error) {
	if len(questions) == 0 {
		return nil, domain.ErrEmptyQuestionBank
	}
	for _, q := range questions {
		if err := validateLimit(q.TimeLimit); err != nil {
			return nil, fmt.Errorf("question %d: %w", q.ID, err)
		}
	}

	owned := make([]domain.Question, len(questions))
	copy(owned, questions)

	timer, err := NewTimerWithClock(owned[0].TimeLimit, now)
	if err != nil {
		return nil, err
	}
	return &Session{questions: owned, timer: timer, now: now}, nil
}

// CurrentQuestion returns the question at the current position.
func (s *Session) CurrentQuestion() domain.Question {
	return s.questions[s.current]
}

// CurrentIndex is zero-based.
func (s *Session) CurrentIndex() int {
	return s.current
}

func (s *Session) TotalQuestions() int {
	return len(s.questions)
}

func (s *Session) IsLastQuestion() bool {
	return s.current == len(s.questions)-1
}

// Timer exposes the timer of the current question. Callers must not reset it.
func (s *Session) Timer() *Timer {
	return s.timer
}

// Finished reports the terminal condition: last question with time expired.
func (s *Session) Finished() bool {
	return s.IsLastQuestion() && s.timer.Expired()
}

// Advance moves to the next question once the current timer has expired.
// While time remains, and on the last question, it is a no-op. It reports
// whether the position changed; callers reset hint state when it did.
func (s *Session) Advance() bool {
	if !s.timer.Expired() || s.IsLastQuestion() {
		return false
	}
	next := s.current + 1
	timer, err := NewTimerWithClock(s.questions[next].TimeLimit, s.now)
	if err != nil {
		return false
	}
	s.current = next
	s.timer = timer
	return true
}
