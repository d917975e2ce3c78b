package domain

import "errors"

var (
	// ErrEmptyQuestionBank is returned when a question bank yields no questions.
	ErrEmptyQuestionBank = errors.New("question bank is empty")
	// ErrInvalidDuration indicates a non-positive time limit.
	ErrInvalidDuration = errors.New("time limit must be positive")
	// ErrBankNotFound indicates the question bank could not be loaded.
	ErrBankNotFound = errors.New("question bank not found")
)
