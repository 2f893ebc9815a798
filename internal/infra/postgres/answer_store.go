package postgres

import (
	"context"
	"fmt"

	"classquiz-service/internal/domain"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// AnswerStore persists answers in Postgres. Append-only: one row per
// submitted pair, resubmissions included.
type AnswerStore struct {
	pool *pgxpool.Pool
}

func NewAnswerStore(pool *pgxpool.Pool) *AnswerStore {
	return &AnswerStore{pool: pool}
}

func (s *AnswerStore) CreateAnswer(ctx context.Context, answer domain.Answer) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO answers (id, student_id, question_id, selected_option, is_correct, quiz_title, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		answer.ID, answer.StudentID, answer.QuestionID, answer.SelectedOption,
		answer.IsCorrect, answer.QuizTitle, answer.CreatedAt)
	if err != nil {
		return fmt.Errorf("create answer: %w", err)
	}
	return nil
}

func (s *AnswerStore) ListAnswersByStudent(ctx context.Context, studentID string) ([]domain.Answer, error) {
	rows, err := s.pool.Query(ctx, selectAnswer+` WHERE student_id=$1 ORDER BY created_at`, studentID)
	if err != nil {
		return nil, fmt.Errorf("list student answers: %w", err)
	}
	return collectAnswers(rows)
}

func (s *AnswerStore) ListAnswers(ctx context.Context) ([]domain.Answer, error) {
	rows, err := s.pool.Query(ctx, selectAnswer+` ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	return collectAnswers(rows)
}

const selectAnswer = `SELECT id, student_id, question_id, selected_option, is_correct, quiz_title, created_at FROM answers`

func collectAnswers(rows pgx.Rows) ([]domain.Answer, error) {
	defer rows.Close()
	answers := make([]domain.Answer, 0)
	for rows.Next() {
		var answer domain.Answer
		if err := rows.Scan(&answer.ID, &answer.StudentID, &answer.QuestionID, &answer.SelectedOption,
			&answer.IsCorrect, &answer.QuizTitle, &answer.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		answers = append(answers, answer)
	}
	return answers, rows.Err()
}
