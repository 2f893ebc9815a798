package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"classquiz-service/internal/domain"
	"classquiz-service/internal/infra/memory"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type countingSource struct {
	QuestionSource
	calls int
}

func (s *countingSource) QuestionByID(ctx context.Context, id string) (domain.Question, error) {
	s.calls++
	return s.QuestionSource.QuestionByID(ctx, id)
}

func TestAnswerKeyCacheCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	ctx := context.Background()
	store := memory.NewQuestionStore()
	_ = store.CreateQuestion(ctx, domain.Question{ID: "q1", CorrectOption: 1, Options: []string{"3", "4", "5", "6"}})

	source := &countingSource{QuestionSource: store}
	cache := NewAnswerKeyCache(client, source, time.Minute)

	correct, err := cache.CorrectOption(ctx, "q1")
	if err != nil {
		t.Fatalf("correct option: %v", err)
	}
	if correct != 1 {
		t.Fatalf("expected index 1, got %d", correct)
	}
	if source.calls != 1 {
		t.Fatalf("expected source hit once, got %d", source.calls)
	}
	if !mr.Exists("question:q1:answer") {
		t.Fatalf("expected redis key to be set")
	}

	// Second call hits Redis, not the source.
	if _, err := cache.CorrectOption(ctx, "q1"); err != nil {
		t.Fatalf("second lookup: %v", err)
	}
	if source.calls != 1 {
		t.Fatalf("expected cache hit, source calls %d", source.calls)
	}
}

func TestAnswerKeyCacheMissingQuestion(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewAnswerKeyCache(client, memory.NewQuestionStore(), time.Minute)

	if _, err := cache.CorrectOption(context.Background(), "missing"); !errors.Is(err, domain.ErrQuestionNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
