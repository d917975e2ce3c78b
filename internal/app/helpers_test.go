package app_test

import (
	"fmt"
	"time"

	"ckad-trainer/internal/domain"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1_700_000_000, 0)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// sampleQuestions builds n questions; question 0 has 3 hints and a 60s limit,
// the rest get 30s + 10s*i and two hints.
func sampleQuestions(n int) []domain.Question {
	questions := make([]domain.Question, 0, n)
	for i := 0; i < n; i++ {
		q := domain.Question{
			ID:        i + 1,
			Prompt:    fmt.Sprintf("Question %d", i+1),
			Hints:     []string{"first", "second"},
			Answer:    fmt.Sprintf("answer %d", i+1),
			TimeLimit: 30*time.Second + time.Duration(i)*10*time.Second,
		}
		if i == 0 {
			q.Hints = []string{"first", "second", "third"}
			q.TimeLimit = 60 * time.Second
		}
		questions = append(questions, q)
	}
	return questions
}
