package app

import (
	"context"

	"classquiz-service/internal/domain"
)

// UserStore persists accounts. CreateUser returns domain.ErrEmailTaken when
// the email is already registered (enforced atomically by the store, not by
// a separate existence check).
type UserStore interface {
	CreateUser(ctx context.Context, user domain.User) error
	UserByEmail(ctx context.Context, email string) (domain.User, error)
	UserByID(ctx context.Context, id string) (domain.User, error)
}

// QuizStore persists quizzes. UpsertQuizByTitle atomically finds or creates
// the quiz with the given title; on the find path the stored owner wins.
type QuizStore interface {
	UpsertQuizByTitle(ctx context.Context, title, createdBy string) (domain.Quiz, error)
	QuizByID(ctx context.Context, id string) (domain.Quiz, error)
	ListQuizzes(ctx context.Context) ([]domain.Quiz, error)
	RenameQuiz(ctx context.Context, id, title string) error
	DeleteQuiz(ctx context.Context, id string) error
}

// QuestionStore persists questions.
type QuestionStore interface {
	CreateQuestion(ctx context.Context, question domain.Question) error
	QuestionByID(ctx context.Context, id string) (domain.Question, error)
	ListQuestions(ctx context.Context) ([]domain.Question, error)
	ListQuestionsByQuiz(ctx context.Context, quizID string) ([]domain.Question, error)
}

// AnswerStore persists answers. Append-only: resubmissions add rows.
type AnswerStore interface {
	CreateAnswer(ctx context.Context, answer domain.Answer) error
	ListAnswersByStudent(ctx context.Context, studentID string) ([]domain.Answer, error)
	ListAnswers(ctx context.Context) ([]domain.Answer, error)
}

// AnswerKeyCache resolves the correct option index for a question, caching
// lookups in front of the question store. Implementations return
// domain.ErrQuestionNotFound for unknown ids.
type AnswerKeyCache interface {
	CorrectOption(ctx context.Context, questionID string) (int, error)
}
