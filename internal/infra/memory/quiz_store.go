package memory

import (
	"context"
	"sync"

	"classquiz-service/internal/domain"

	"github.com/google/uuid"
)

// QuizStore is an in-memory implementation of app.QuizStore. Find-or-create
// runs under one lock, mirroring the ON CONFLICT upsert of the Postgres
// store.
type QuizStore struct {
	mu      sync.RWMutex
	byID    map[string]domain.Quiz
	byTitle map[string]string
	order   []string
}

func NewQuizStore() *QuizStore {
	return &QuizStore{
		byID:    make(map[string]domain.Quiz),
		byTitle: make(map[string]string),
	}
}

func (s *QuizStore) UpsertQuizByTitle(_ context.Context, title, createdBy string) (domain.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.byTitle[title]; ok {
		return s.byID[id], nil
	}
	quiz := domain.Quiz{ID: uuid.NewString(), Title: title, CreatedBy: createdBy}
	s.byID[quiz.ID] = quiz
	s.byTitle[title] = quiz.ID
	s.order = append(s.order, quiz.ID)
	return quiz, nil
}

func (s *QuizStore) QuizByID(_ context.Context, id string) (domain.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	quiz, ok := s.byID[id]
	if !ok {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	return quiz, nil
}

func (s *QuizStore) ListQuizzes(_ context.Context) ([]domain.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	quizzes := make([]domain.Quiz, 0, len(s.order))
	for _, id := range s.order {
		quizzes = append(quizzes, s.byID[id])
	}
	return quizzes, nil
}

func (s *QuizStore) RenameQuiz(_ context.Context, id, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	quiz, ok := s.byID[id]
	if !ok {
		return domain.ErrQuizNotFound
	}
	if other, taken := s.byTitle[title]; taken && other != id {
		return domain.Validation("A quiz with this title already exists")
	}
	delete(s.byTitle, quiz.Title)
	quiz.Title = title
	s.byID[id] = quiz
	s.byTitle[title] = id
	return nil
}

func (s *QuizStore) DeleteQuiz(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	quiz, ok := s.byID[id]
	if !ok {
		return domain.ErrQuizNotFound
	}
	delete(s.byID, id)
	delete(s.byTitle, quiz.Title)
	for i, other := range s.order {
		if other == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
