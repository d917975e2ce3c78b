package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"ckad-trainer/internal/domain"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// QuestionBankRow maps the question_banks table.
type QuestionBankRow struct {
	bun.BaseModel `bun:"table:question_banks"`

	ID        string          `bun:"id,pk"`
	Data      json.RawMessage `bun:"data,type:jsonb"`
	UpdatedAt time.Time       `bun:"updated_at"`
}

// OpenDB opens a bun handle over pgdriver, shared by migrations and imports.
func OpenDB(dsn string) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(sqldb, pgdialect.New())
}

// QuestionStore writes banks to Postgres.
type QuestionStore struct {
	db  *bun.DB
	now func() time.Time
}

func NewQuestionStore(db *bun.DB) *QuestionStore {
	return &QuestionStore{db: db, now: time.Now}
}

// SaveQuestions upserts the whole bank as a single JSONB document.
func (s *QuestionStore) SaveQuestions(ctx context.Context, bankID string, questions []domain.Question) error {
	data, err := json.Marshal(questions)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}
	row := &QuestionBankRow{ID: bankID, Data: data, UpdatedAt: s.now()}
	_, err = s.db.NewInsert().
		Model(row).
		On("CONFLICT (id) DO UPDATE").
		Set("data = EXCLUDED.data").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("save questions: %w", err)
	}
	return nil
}
