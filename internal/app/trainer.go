package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"ckad-trainer/internal/domain"
	"github.com/google/uuid"
)

// Trainer coordinates a Session and a HintTracker. It is the only place that
// gates hints on remaining time and resets hints when the session advances.
// Like its parts, it is owned by one loop and does no locking.
type Trainer struct {
	id      string
	session *Session
	hints   *HintTracker
	logger  *slog.Logger
}

// TrainerOption customizes a Trainer.
type TrainerOption func(*trainerOptions)

type trainerOptions struct {
	now    func() time.Time
	logger *slog.Logger
	id     string
}

// WithClock replaces the wall clock, mainly for tests.
func WithClock(now func() time.Time) TrainerOption {
	return func(o *trainerOptions) { o.now = now }
}

func WithLogger(logger *slog.Logger) TrainerOption {
	return func(o *trainerOptions) { o.logger = logger }
}

// WithID overrides the generated trainer ID.
func WithID(id string) TrainerOption {
	return func(o *trainerOptions) { o.id = id }
}

// NewTrainer takes a one-time snapshot of the bank and starts on its first question.
func NewTrainer(ctx context.Context, bank QuestionBank, opts ...TrainerOption) (*Trainer, error) {
	o := trainerOptions{
		now:    time.Now,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.id == "" {
		o.id = uuid.NewString()
	}

	questions, err := bank.GetQuestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	session, err := NewSessionWithClock(questions, o.now)
	if err != nil {
		return nil, err
	}

	logger := o.logger.With("trainer", o.id)
	logger.Info("session started", "questions", session.TotalQuestions())
	return &Trainer{
		id:      o.id,
		session: session,
		hints:   NewHintTracker(),
		logger:  logger,
	}, nil
}

func (t *Trainer) ID() string {
	return t.id
}

// Session gives read access to the underlying session.
func (t *Trainer) Session() *Session {
	return t.session
}

// Hints gives read access to the hint tracker.
func (t *Trainer) Hints() *HintTracker {
	return t.hints
}

// RequestHint reveals the next hint while time remains. It reports whether
// the request was accepted.
func (t *Trainer) RequestHint() bool {
	if t.session.Timer().Expired() {
		return false
	}
	question := t.session.CurrentQuestion()
	t.hints.Request(len(question.Hints))
	t.logger.Debug("hint requested", "question", question.ID, "hint", t.hints.Index())
	return true
}

// Next advances to the next question once time has expired, resetting hints
// in the same step. It reports whether the position changed.
func (t *Trainer) Next() bool {
	if !t.session.Timer().Expired() {
		return false
	}
	if !t.session.Advance() {
		return false
	}
	t.hints.Reset()
	t.logger.Info("question advanced",
		"index", t.session.CurrentIndex(),
		"question", t.session.CurrentQuestion().ID,
	)
	return true
}

// Snapshot captures everything a presentation layer needs to draw a frame.
func (t *Trainer) Snapshot() domain.Snapshot {
	// One clock read keeps Remaining and Expired consistent within a frame.
	timer := t.session.Timer()
	elapsed := timer.Elapsed()
	remaining := timer.Limit() - elapsed
	if remaining < 0 {
		remaining = 0
	}
	expired := elapsed >= timer.Limit()
	last := t.session.IsLastQuestion()
	return domain.Snapshot{
		TrainerID:    t.id,
		Question:     t.session.CurrentQuestion(),
		Index:        t.session.CurrentIndex(),
		Total:        t.session.TotalQuestions(),
		Remaining:    remaining,
		Expired:      expired,
		LastQuestion: last,
		Finished:     last && expired,
		HintsVisible: t.hints.Visible(),
		HintIndex:    t.hints.Index(),
	}
}
