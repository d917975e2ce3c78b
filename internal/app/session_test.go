package app_test

import (
	"errors"
	"testing"
	"time"

	"ckad-trainer/internal/app"
	"ckad-trainer/internal/domain"
)

func TestNewSessionRequiresQuestions(t *testing.T) {
	if _, err := app.NewSession(nil); !errors.Is(err, domain.ErrEmptyQuestionBank) {
		t.Fatalf("expected ErrEmptyQuestionBank, got %v", err)
	}
}

func TestNewSessionRejectsInvalidLimit(t *testing.T) {
	questions := sampleQuestions(3)
	questions[2].TimeLimit = 0
	if _, err := app.NewSession(questions); !errors.Is(err, domain.ErrInvalidDuration) {
		t.Fatalf("expected ErrInvalidDuration, got %v", err)
	}
}

func TestNewSessionStartsOnFirstQuestion(t *testing.T) {
	clock := newFakeClock()
	questions := sampleQuestions(5)
	session, err := app.NewSessionWithClock(questions, clock.Now)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if session.CurrentIndex() != 0 || session.TotalQuestions() != 5 {
		t.Fatalf("expected 0 of 5, got %d of %d", session.CurrentIndex(), session.TotalQuestions())
	}
	if session.CurrentQuestion().ID != 1 {
		t.Fatalf("expected question 1, got %d", session.CurrentQuestion().ID)
	}
	if session.Timer().Limit() != 60*time.Second {
		t.Fatalf("expected timer bound to 60s, got %s", session.Timer().Limit())
	}

	// Mutating the caller's slice must not reach the session.
	questions[0].Prompt = "changed"
	if session.CurrentQuestion().Prompt == "changed" {
		t.Fatalf("expected session to own a copy of the questions")
	}
}

func TestAdvanceIsNoOpWhileTimeRemains(t *testing.T) {
	clock := newFakeClock()
	session, _ := app.NewSessionWithClock(sampleQuestions(4), clock.Now)

	for i := 0; i < session.TotalQuestions(); i++ {
		clock.Advance(session.Timer().Limit() - time.Second)
		if session.Advance() {
			t.Fatalf("index %d: advanced before expiry", i)
		}
		if session.CurrentIndex() != i {
			t.Fatalf("expected to stay on %d, got %d", i, session.CurrentIndex())
		}
		clock.Advance(time.Second)
		session.Advance()
	}
}

func TestAdvanceVisitsEveryQuestionInOrder(t *testing.T) {
	clock := newFakeClock()
	questions := sampleQuestions(5)
	session, _ := app.NewSessionWithClock(questions, clock.Now)

	visited := []int{session.CurrentIndex()}
	for i := 0; i < len(questions)-1; i++ {
		clock.Advance(session.Timer().Limit())
		if !session.Advance() {
			t.Fatalf("expected advance from %d", session.CurrentIndex())
		}
		visited = append(visited, session.CurrentIndex())
		if got, want := session.Timer().Limit(), questions[session.CurrentIndex()].TimeLimit; got != want {
			t.Fatalf("expected timer limit %s, got %s", want, got)
		}
		if session.Timer().Expired() {
			t.Fatalf("expected fresh timer on question %d", session.CurrentIndex())
		}
	}
	for i, idx := range visited {
		if idx != i {
			t.Fatalf("expected visit order 0..4, got %v", visited)
		}
	}
	if !session.IsLastQuestion() {
		t.Fatalf("expected to end on last question")
	}
}

func TestAdvanceOnLastQuestionIsPermanentNoOp(t *testing.T) {
	clock := newFakeClock()
	session, _ := app.NewSessionWithClock(sampleQuestions(1), clock.Now)
	if !session.IsLastQuestion() {
		t.Fatalf("expected single question to be the last")
	}

	clock.Advance(time.Minute)
	for i := 0; i < 3; i++ {
		if session.Advance() {
			t.Fatalf("expected no advance past last question")
		}
		clock.Advance(time.Hour)
	}
	if session.CurrentIndex() != 0 || !session.Finished() {
		t.Fatalf("expected finished on index 0, got index=%d finished=%v", session.CurrentIndex(), session.Finished())
	}
}

func TestFinishedRequiresExpiry(t *testing.T) {
	clock := newFakeClock()
	session, _ := app.NewSessionWithClock(sampleQuestions(2), clock.Now)
	clock.Advance(time.Minute)
	session.Advance()
	if session.Finished() {
		t.Fatalf("expected last question not finished while time remains")
	}
	clock.Advance(session.Timer().Limit())
	if !session.Finished() {
		t.Fatalf("expected finished after expiry on last question")
	}
}
