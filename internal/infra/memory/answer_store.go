package memory

import (
	"context"
	"sync"

	"classquiz-service/internal/domain"
)

// AnswerStore is an in-memory implementation of app.AnswerStore.
// Append-only, like the answers table: resubmissions add rows.
type AnswerStore struct {
	mu      sync.RWMutex
	answers []domain.Answer
}

func NewAnswerStore() *AnswerStore {
	return &AnswerStore{}
}

func (s *AnswerStore) CreateAnswer(_ context.Context, answer domain.Answer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers = append(s.answers, answer)
	return nil
}

func (s *AnswerStore) ListAnswersByStudent(_ context.Context, studentID string) ([]domain.Answer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	answers := make([]domain.Answer, 0)
	for _, answer := range s.answers {
		if answer.StudentID == studentID {
			answers = append(answers, answer)
		}
	}
	return answers, nil
}

func (s *AnswerStore) ListAnswers(_ context.Context) ([]domain.Answer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	answers := make([]domain.Answer, len(s.answers))
	copy(answers, s.answers)
	return answers, nil
}
