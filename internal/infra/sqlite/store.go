package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"ckad-trainer/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS questions (
    bank_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    question_id INTEGER NOT NULL,
    prompt TEXT NOT NULL,
    hints TEXT NOT NULL,
    answer TEXT NOT NULL,
    time_limit_secs INTEGER NOT NULL,
    PRIMARY KEY (bank_id, position)
);
`

// Store keeps question banks in a local SQLite file.
type Store struct {
	db *sql.DB
}

func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// LoadQuestions returns the bank in stored order.
func (s *Store) LoadQuestions(ctx context.Context, bankID string) ([]domain.Question, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT question_id, prompt, hints, answer, time_limit_secs
		FROM questions WHERE bank_id = ? ORDER BY position`, bankID)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var (
			q        domain.Question
			hintsRaw string
			secs     int64
		)
		if err := rows.Scan(&q.ID, &q.Prompt, &hintsRaw, &q.Answer, &secs); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		if err := json.Unmarshal([]byte(hintsRaw), &q.Hints); err != nil {
			return nil, fmt.Errorf("decode hints for question %d: %w", q.ID, err)
		}
		q.TimeLimit = time.Duration(secs) * time.Second
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrBankNotFound, bankID)
	}
	return questions, nil
}

// SaveQuestions replaces the bank atomically.
func (s *Store) SaveQuestions(ctx context.Context, bankID string, questions []domain.Question) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM questions WHERE bank_id = ?`, bankID); err != nil {
		return fmt.Errorf("clear bank: %w", err)
	}
	for i, q := range questions {
		hints := q.Hints
		if hints == nil {
			hints = []string{}
		}
		hintsRaw, err := json.Marshal(hints)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO questions (bank_id, position, question_id, prompt, hints, answer, time_limit_secs)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			bankID, i, q.ID, q.Prompt, string(hintsRaw), q.Answer, int64(q.TimeLimit/time.Second))
		if err != nil {
			return fmt.Errorf("insert question %d: %w", q.ID, err)
		}
	}
	return tx.Commit()
}
