package memory

import (
	"context"
	"sync"

	"classquiz-service/internal/domain"
)

// QuestionStore is an in-memory implementation of app.QuestionStore.
// Listings come back in insertion order.
type QuestionStore struct {
	mu    sync.RWMutex
	byID  map[string]domain.Question
	order []string
}

func NewQuestionStore() *QuestionStore {
	return &QuestionStore{byID: make(map[string]domain.Question)}
}

func (s *QuestionStore) CreateQuestion(_ context.Context, question domain.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[question.ID] = question
	s.order = append(s.order, question.ID)
	return nil
}

func (s *QuestionStore) QuestionByID(_ context.Context, id string) (domain.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	question, ok := s.byID[id]
	if !ok {
		return domain.Question{}, domain.ErrQuestionNotFound
	}
	return question, nil
}

func (s *QuestionStore) ListQuestions(_ context.Context) ([]domain.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	questions := make([]domain.Question, 0, len(s.order))
	for _, id := range s.order {
		questions = append(questions, s.byID[id])
	}
	return questions, nil
}

func (s *QuestionStore) ListQuestionsByQuiz(_ context.Context, quizID string) ([]domain.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	questions := make([]domain.Question, 0)
	for _, id := range s.order {
		if question := s.byID[id]; question.QuizID == quizID {
			questions = append(questions, question)
		}
	}
	return questions, nil
}
