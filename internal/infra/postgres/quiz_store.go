package postgres

import (
	"context"
	"errors"
	"fmt"

	"classquiz-service/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// QuizStore persists quizzes in Postgres. The title carries a unique index;
// find-or-create is a single upsert so two concurrent creations under a new
// title cannot both insert.
type QuizStore struct {
	pool *pgxpool.Pool
}

func NewQuizStore(pool *pgxpool.Pool) *QuizStore {
	return &QuizStore{pool: pool}
}

func (s *QuizStore) UpsertQuizByTitle(ctx context.Context, title, createdBy string) (domain.Quiz, error) {
	var quiz domain.Quiz
	// DO UPDATE is a no-op rewrite of the title; it makes the conflicting
	// row visible to RETURNING so the stored owner wins on the find path.
	err := s.pool.QueryRow(ctx,
		`INSERT INTO quizzes (id, title, created_by) VALUES ($1, $2, $3)
		 ON CONFLICT (title) DO UPDATE SET title = EXCLUDED.title
		 RETURNING id, title, created_by`,
		uuid.NewString(), title, createdBy).Scan(&quiz.ID, &quiz.Title, &quiz.CreatedBy)
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("upsert quiz: %w", err)
	}
	return quiz, nil
}

func (s *QuizStore) QuizByID(ctx context.Context, id string) (domain.Quiz, error) {
	var quiz domain.Quiz
	err := s.pool.QueryRow(ctx,
		`SELECT id, title, created_by FROM quizzes WHERE id=$1`, id).
		Scan(&quiz.ID, &quiz.Title, &quiz.CreatedBy)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("load quiz: %w", err)
	}
	return quiz, nil
}

func (s *QuizStore) ListQuizzes(ctx context.Context) ([]domain.Quiz, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, title, created_by FROM quizzes ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	defer rows.Close()

	quizzes := make([]domain.Quiz, 0)
	for rows.Next() {
		var quiz domain.Quiz
		if err := rows.Scan(&quiz.ID, &quiz.Title, &quiz.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan quiz: %w", err)
		}
		quizzes = append(quizzes, quiz)
	}
	return quizzes, rows.Err()
}

func (s *QuizStore) RenameQuiz(ctx context.Context, id, title string) error {
	tag, err := s.pool.Exec(ctx, `UPDATE quizzes SET title=$2 WHERE id=$1`, id, title)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.Validation("A quiz with this title already exists")
		}
		return fmt.Errorf("rename quiz: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrQuizNotFound
	}
	return nil
}

func (s *QuizStore) DeleteQuiz(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM quizzes WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete quiz: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrQuizNotFound
	}
	return nil
}
