package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"ckad-trainer/internal/domain"
	"golang.org/x/sync/singleflight"
)

// QuestionLoader fetches a question bank from a backing store (file, sqlite, postgres).
type QuestionLoader interface {
	LoadQuestions(ctx context.Context, bankID string) ([]domain.Question, error)
}

// QuestionRepository caches question banks with TTL to avoid repeated loads.
type QuestionRepository struct {
	loader QuestionLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	rndMu sync.Mutex
	cache map[string]cachedBank
}

type cachedBank struct {
	questions []domain.Question
	expiresAt time.Time
}

func NewQuestionRepository(loader QuestionLoader, ttl time.Duration) *QuestionRepository {
	return &QuestionRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedBank),
	}
}

// GetQuestions returns a copy of the bank so callers cannot mutate the cache.
func (r *QuestionRepository) GetQuestions(ctx context.Context, bankID string) ([]domain.Question, error) {
	if questions, ok := r.lookup(bankID); ok {
		return questions, nil
	}

	result, err, _ := r.sf.Do(bankID, func() (interface{}, error) {
		if questions, ok := r.lookup(bankID); ok {
			return questions, nil
		}

		questions, err := r.loader.LoadQuestions(ctx, bankID)
		if err != nil {
			return nil, err
		}
		if len(questions) == 0 {
			return nil, domain.ErrEmptyQuestionBank
		}

		r.mu.Lock()
		r.cache[bankID] = cachedBank{
			questions: cloneQuestions(questions),
			expiresAt: r.clock().Add(r.ttlWithJitter()),
		}
		r.mu.Unlock()
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return cloneQuestions(result.([]domain.Question)), nil
}

func (r *QuestionRepository) lookup(bankID string) ([]domain.Question, bool) {
	now := r.clock()
	r.mu.RLock()
	defer r.mu.RUnlock()
	if entry, ok := r.cache[bankID]; ok && entry.expiresAt.After(now) {
		return cloneQuestions(entry.questions), true
	}
	return nil, false
}

func (r *QuestionRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	r.rndMu.Lock()
	defer r.rndMu.Unlock()
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

func cloneQuestions(questions []domain.Question) []domain.Question {
	out := make([]domain.Question, len(questions))
	for i, q := range questions {
		q.Hints = append([]string(nil), q.Hints...)
		out[i] = q
	}
	return out
}
