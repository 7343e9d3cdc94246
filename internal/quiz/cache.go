package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const defaultCacheTTL = 5 * time.Minute

// Cache is a read-through Redis cache in front of a quiz Store. Sessions fetch
// a quiz exactly once at creation, so the cache mostly absorbs repeated session
// creations against the same quiz. Misses for the same quiz are coalesced.
type Cache struct {
	client *redis.Client
	store  Store
	ttl    time.Duration
	sf     singleflight.Group
}

var _ Store = (*Cache)(nil)

// NewCache wraps store with a Redis cache using the given TTL.
func NewCache(client *redis.Client, store Store, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Cache{
		client: client,
		store:  store,
		ttl:    ttl,
	}
}

func (c *Cache) key(quizID string) string {
	return "quiz:def:" + quizID
}

// GetQuizByID returns the cached definition or loads it from the backing store.
func (c *Cache) GetQuizByID(ctx context.Context, quizID string) (Definition, error) {
	data, err := c.client.Get(ctx, c.key(quizID)).Bytes()
	if err == nil {
		var def Definition
		if err := json.Unmarshal(data, &def); err == nil {
			return def, nil
		}
		// Corrupted entry: fall through and reload.
	} else if err != redis.Nil {
		return Definition{}, fmt.Errorf("quiz cache get: %w", err)
	}

	result, err, _ := c.sf.Do(quizID, func() (interface{}, error) {
		def, err := c.store.GetQuizByID(ctx, quizID)
		if err != nil {
			return Definition{}, err
		}
		if data, err := json.Marshal(def); err == nil {
			c.client.Set(ctx, c.key(quizID), data, c.ttlWithJitter())
		}
		return def, nil
	})
	if err != nil {
		return Definition{}, err
	}
	return result.(Definition), nil
}

// ttlWithJitter spreads expirations so hot quizzes do not reload in lockstep.
func (c *Cache) ttlWithJitter() time.Duration {
	jitterMax := int64(c.ttl) / 10
	if jitterMax <= 0 {
		return c.ttl
	}
	return c.ttl + time.Duration(rand.Int63n(jitterMax+1))
}
