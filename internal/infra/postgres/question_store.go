package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"classquiz-service/internal/domain"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// QuestionStore persists questions in Postgres. Options live in a JSONB
// column since their shape is fixed at exactly four strings.
type QuestionStore struct {
	pool *pgxpool.Pool
}

func NewQuestionStore(pool *pgxpool.Pool) *QuestionStore {
	return &QuestionStore{pool: pool}
}

func (s *QuestionStore) CreateQuestion(ctx context.Context, question domain.Question) error {
	options, err := json.Marshal(question.Options)
	if err != nil {
		return fmt.Errorf("marshal options: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO questions (id, quiz_id, quiz_title, text, options, correct_option, exam_duration, created_by, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		question.ID, question.QuizID, question.QuizTitle, question.Text, options,
		question.CorrectOption, question.ExamDuration, question.CreatedBy, question.CreatedAt)
	if err != nil {
		return fmt.Errorf("create question: %w", err)
	}
	return nil
}

func (s *QuestionStore) QuestionByID(ctx context.Context, id string) (domain.Question, error) {
	row := s.pool.QueryRow(ctx, selectQuestion+` WHERE id=$1`, id)
	question, err := scanQuestion(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Question{}, domain.ErrQuestionNotFound
	}
	return question, err
}

func (s *QuestionStore) ListQuestions(ctx context.Context) ([]domain.Question, error) {
	rows, err := s.pool.Query(ctx, selectQuestion+` ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return collectQuestions(rows)
}

func (s *QuestionStore) ListQuestionsByQuiz(ctx context.Context, quizID string) ([]domain.Question, error) {
	rows, err := s.pool.Query(ctx, selectQuestion+` WHERE quiz_id=$1 ORDER BY created_at`, quizID)
	if err != nil {
		return nil, fmt.Errorf("list quiz questions: %w", err)
	}
	return collectQuestions(rows)
}

const selectQuestion = `SELECT id, quiz_id, quiz_title, text, options, correct_option, exam_duration, created_by, created_at FROM questions`

func scanQuestion(row pgx.Row) (domain.Question, error) {
	var question domain.Question
	var options []byte
	err := row.Scan(&question.ID, &question.QuizID, &question.QuizTitle, &question.Text,
		&options, &question.CorrectOption, &question.ExamDuration, &question.CreatedBy, &question.CreatedAt)
	if err != nil {
		return domain.Question{}, err
	}
	if err := json.Unmarshal(options, &question.Options); err != nil {
		return domain.Question{}, fmt.Errorf("unmarshal options: %w", err)
	}
	return question, nil
}

func collectQuestions(rows pgx.Rows) ([]domain.Question, error) {
	defer rows.Close()
	questions := make([]domain.Question, 0)
	for rows.Next() {
		question, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, question)
	}
	return questions, rows.Err()
}
