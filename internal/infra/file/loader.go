package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"ckad-trainer/internal/domain"
	"gopkg.in/yaml.v3"
)

// Bank is the YAML document describing one question bank.
type Bank struct {
	ID        string         `yaml:"id"`
	Questions []questionYAML `yaml:"questions"`
}

type questionYAML struct {
	ID        int      `yaml:"id"`
	Prompt    string   `yaml:"prompt"`
	Hints     []string `yaml:"hints"`
	Answer    string   `yaml:"answer"`
	TimeLimit string   `yaml:"time_limit"`
}

// Loader reads banks from <dir>/<bankID>.yaml (or .yml).
type Loader struct {
	dir string
}

func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

func (l *Loader) LoadQuestions(_ context.Context, bankID string) ([]domain.Question, error) {
	for _, ext := range []string{".yaml", ".yml"} {
		path := filepath.Join(l.dir, bankID+ext)
		id, questions, err := ReadBank(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if id != "" && id != bankID {
			return nil, fmt.Errorf("bank file %s declares id %q, want %q", path, id, bankID)
		}
		return questions, nil
	}
	return nil, fmt.Errorf("%w: %s in %s", domain.ErrBankNotFound, bankID, l.dir)
}

// ReadBank parses a single bank file and returns its declared ID and questions.
func ReadBank(path string) (string, []domain.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("read bank: %w", err)
	}
	return ParseBank(data)
}

// ParseBank decodes a YAML bank. Unknown fields and multiple documents are rejected.
func ParseBank(data []byte) (string, []domain.Question, error) {
	var bank Bank
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&bank); err != nil {
		return "", nil, fmt.Errorf("parse bank: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return "", nil, fmt.Errorf("parse bank: multiple YAML documents are not supported")
		}
		return "", nil, fmt.Errorf("parse bank: %w", err)
	}
	if len(bank.Questions) == 0 {
		return "", nil, domain.ErrEmptyQuestionBank
	}

	questions := make([]domain.Question, 0, len(bank.Questions))
	for i, raw := range bank.Questions {
		limit, err := time.ParseDuration(raw.TimeLimit)
		if err != nil {
			return "", nil, fmt.Errorf("question %d: time_limit %q: %w", i+1, raw.TimeLimit, err)
		}
		if limit <= 0 {
			return "", nil, fmt.Errorf("question %d: %w", i+1, domain.ErrInvalidDuration)
		}
		// Stored banks keep whole seconds.
		if limit%time.Second != 0 {
			return "", nil, fmt.Errorf("question %d: %w: time_limit %q is not a whole number of seconds", i+1, domain.ErrInvalidDuration, raw.TimeLimit)
		}
		id := raw.ID
		if id == 0 {
			id = i + 1
		}
		questions = append(questions, domain.Question{
			ID:        id,
			Prompt:    raw.Prompt,
			Hints:     raw.Hints,
			Answer:    raw.Answer,
			TimeLimit: limit,
		})
	}
	return bank.ID, questions, nil
}
