package redis

import (
	"context"
	"math/rand"
	"strconv"
	"time"

	"classquiz-service/internal/domain"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// QuestionSource resolves questions from the backing store on cache miss.
type QuestionSource interface {
	QuestionByID(ctx context.Context, id string) (domain.Question, error)
}

// AnswerKeyCache caches correct-option indices in Redis and falls back to
// the question store on miss. Keys are stored as:
// SET question:{questionID}:answer {correctOption}
type AnswerKeyCache struct {
	client *redis.Client
	source QuestionSource
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewAnswerKeyCache(client *redis.Client, source QuestionSource, ttl time.Duration) *AnswerKeyCache {
	return &AnswerKeyCache{
		client: client,
		source: source,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *AnswerKeyCache) CorrectOption(ctx context.Context, questionID string) (int, error) {
	key := c.key(questionID)

	if raw, err := c.client.Get(ctx, key).Result(); err == nil {
		if correct, convErr := strconv.Atoi(raw); convErr == nil {
			return correct, nil
		}
	}

	result, err, _ := c.sf.Do(questionID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if raw, err := c.client.Get(ctx, key).Result(); err == nil {
			if correct, convErr := strconv.Atoi(raw); convErr == nil {
				return correct, nil
			}
		}

		question, err := c.source.QuestionByID(ctx, questionID)
		if err != nil {
			return 0, err
		}

		_ = c.client.Set(ctx, key, strconv.Itoa(question.CorrectOption), c.ttlWithJitter()).Err()
		return question.CorrectOption, nil
	})
	if err != nil {
		return 0, err
	}
	return result.(int), nil
}

func (c *AnswerKeyCache) key(questionID string) string {
	return "question:" + questionID + ":answer"
}

func (c *AnswerKeyCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
