package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"classquiz-service/internal/domain"

	"golang.org/x/sync/singleflight"
)

// QuestionSource resolves questions from the backing store on cache miss.
type QuestionSource interface {
	QuestionByID(ctx context.Context, id string) (domain.Question, error)
}

// AnswerKeyCache caches correct-option indices with TTL to keep the
// submission path off the question store.
type AnswerKeyCache struct {
	source QuestionSource
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedKey
}

type cachedKey struct {
	correct   int
	expiresAt time.Time
}

func NewAnswerKeyCache(source QuestionSource, ttl time.Duration) *AnswerKeyCache {
	return &AnswerKeyCache{
		source: source,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedKey),
	}
}

func (c *AnswerKeyCache) CorrectOption(ctx context.Context, questionID string) (int, error) {
	now := c.clock()

	c.mu.RLock()
	if entry, ok := c.cache[questionID]; ok && entry.expiresAt.After(now) {
		c.mu.RUnlock()
		return entry.correct, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do(questionID, func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if entry, ok := c.cache[questionID]; ok && entry.expiresAt.After(now) {
			c.mu.RUnlock()
			return entry.correct, nil
		}
		c.mu.RUnlock()

		question, err := c.source.QuestionByID(ctx, questionID)
		if err != nil {
			return 0, err
		}

		c.mu.Lock()
		c.cache[questionID] = cachedKey{
			correct:   question.CorrectOption,
			expiresAt: now.Add(c.ttlWithJitter()),
		}
		c.mu.Unlock()
		return question.CorrectOption, nil
	})
	if err != nil {
		return 0, err
	}
	return result.(int), nil
}

func (c *AnswerKeyCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
