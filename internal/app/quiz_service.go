package app

import (
	"context"
	"time"

	"classquiz-service/internal/domain"

	"github.com/google/uuid"
)

// QuizService covers quiz and question authoring and listing.
type QuizService struct {
	quizzes   QuizStore
	questions QuestionStore
	now       func() time.Time
}

func NewQuizService(quizzes QuizStore, questions QuestionStore) *QuizService {
	return &QuizService{quizzes: quizzes, questions: questions, now: time.Now}
}

// CreateQuestionInput is the question payload after transport-level decoding.
type CreateQuestionInput struct {
	QuizTitle     string
	Text          string
	Options       []string
	CorrectOption int
	ExamDuration  int
	CreatedBy     string
}

// CreateQuestion stores a question under the named quiz. If no quiz with
// that title exists one is created owned by the acting teacher; otherwise
// the question attaches to the existing quiz regardless of who owns it.
func (s *QuizService) CreateQuestion(ctx context.Context, in CreateQuestionInput) (domain.Question, error) {
	if in.QuizTitle == "" || in.Text == "" {
		return domain.Question{}, domain.Validation("Quiz title and question are required")
	}
	if len(in.Options) != domain.OptionCount {
		return domain.Question{}, domain.Validation("Options array must have exactly 4 items")
	}
	if in.CorrectOption < 0 || in.CorrectOption >= domain.OptionCount {
		return domain.Question{}, domain.Validation("correctOption must be between 0 and 3")
	}
	if in.ExamDuration <= 0 {
		return domain.Question{}, domain.Validation("examDuration must be a positive number of minutes")
	}

	quiz, err := s.quizzes.UpsertQuizByTitle(ctx, in.QuizTitle, in.CreatedBy)
	if err != nil {
		return domain.Question{}, err
	}

	question := domain.Question{
		ID:            uuid.NewString(),
		QuizID:        quiz.ID,
		QuizTitle:     quiz.Title,
		Text:          in.Text,
		Options:       in.Options,
		CorrectOption: in.CorrectOption,
		ExamDuration:  in.ExamDuration,
		CreatedBy:     in.CreatedBy,
		CreatedAt:     s.now(),
	}
	if err := s.questions.CreateQuestion(ctx, question); err != nil {
		return domain.Question{}, err
	}
	return question, nil
}

// ListQuestions returns every stored question.
func (s *QuizService) ListQuestions(ctx context.Context) ([]domain.Question, error) {
	return s.questions.ListQuestions(ctx)
}

// ListQuizzes returns every stored quiz.
func (s *QuizService) ListQuizzes(ctx context.Context) ([]domain.Quiz, error) {
	return s.quizzes.ListQuizzes(ctx)
}

// QuizQuestions returns the questions belonging to one quiz.
func (s *QuizService) QuizQuestions(ctx context.Context, quizID string) ([]domain.Question, error) {
	if _, err := s.quizzes.QuizByID(ctx, quizID); err != nil {
		return nil, err
	}
	return s.questions.ListQuestionsByQuiz(ctx, quizID)
}

// RenameQuiz updates a quiz title. Any teacher may rename any quiz; only
// existence is checked. Questions keep their recorded title copy, so a
// rename does not rewrite past listings.
func (s *QuizService) RenameQuiz(ctx context.Context, id, title string) error {
	if title == "" {
		return domain.Validation("Title is required")
	}
	return s.quizzes.RenameQuiz(ctx, id, title)
}

// DeleteQuiz removes a quiz. Any teacher may delete any quiz.
func (s *QuizService) DeleteQuiz(ctx context.Context, id string) error {
	return s.quizzes.DeleteQuiz(ctx, id)
}
