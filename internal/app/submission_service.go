package app

import (
	"context"
	"time"

	"classquiz-service/internal/domain"

	"github.com/google/uuid"
)

// SubmissionService scores and records batches of student answers.
type SubmissionService struct {
	answers AnswerStore
	keys    AnswerKeyCache
	now     func() time.Time
}

func NewSubmissionService(answers AnswerStore, keys AnswerKeyCache) *SubmissionService {
	return &SubmissionService{answers: answers, keys: keys, now: time.Now}
}

// SubmitAnswers scores each (questionID, selectedOption) pair against the
// stored answer key and writes one Answer row per pair.
//
// The recorded quiz title comes from the request payload, not from the
// question, so a lying client can record a mismatched title. A missing
// question id aborts the batch; rows already written for earlier pairs stay
// written (no transaction, no rollback).
func (s *SubmissionService) SubmitAnswers(ctx context.Context, studentID, quizTitle string, selections map[string]int) error {
	if quizTitle == "" {
		return domain.Validation("Quiz title is required")
	}
	if len(selections) == 0 {
		return domain.Validation("No answers submitted")
	}

	for questionID, selected := range selections {
		if selected < 0 || selected >= domain.OptionCount {
			return domain.Validation("answer must be a valid option index (0-3)")
		}
		correct, err := s.keys.CorrectOption(ctx, questionID)
		if err != nil {
			return err
		}
		answer := domain.Answer{
			ID:             uuid.NewString(),
			StudentID:      studentID,
			QuestionID:     questionID,
			SelectedOption: selected,
			IsCorrect:      selected == correct,
			QuizTitle:      quizTitle,
			CreatedAt:      s.now(),
		}
		if err := s.answers.CreateAnswer(ctx, answer); err != nil {
			return err
		}
	}
	return nil
}

// StudentAnswers lists a student's recorded answers, oldest first.
// An empty history is reported as domain.ErrNoAnswers.
func (s *SubmissionService) StudentAnswers(ctx context.Context, studentID string) ([]domain.Answer, error) {
	answers, err := s.answers.ListAnswersByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if len(answers) == 0 {
		return nil, domain.ErrNoAnswers
	}
	return answers, nil
}
