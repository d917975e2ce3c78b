package app

import (
	"context"

	"ckad-trainer/internal/domain"
)

// QuestionBank supplies the ordered question sequence for one session.
type QuestionBank interface {
	GetQuestions(ctx context.Context) ([]domain.Question, error)
}

// QuestionBankFunc adapts a plain function to QuestionBank.
type QuestionBankFunc func(ctx context.Context) ([]domain.Question, error)

func (f QuestionBankFunc) GetQuestions(ctx context.Context) ([]domain.Question, error) {
	return f(ctx)
}

// BankRepository loads named question banks (from cache/backing store).
type BankRepository interface {
	GetQuestions(ctx context.Context, bankID string) ([]domain.Question, error)
}

// Bank binds a repository to a single bank ID.
func Bank(repo BankRepository, bankID string) QuestionBank {
	return QuestionBankFunc(func(ctx context.Context) ([]domain.Question, error) {
		return repo.GetQuestions(ctx, bankID)
	})
}
