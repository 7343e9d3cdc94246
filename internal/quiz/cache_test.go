package quiz

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStore wraps a MemoryStore and counts backing loads.
type countingStore struct {
	inner *MemoryStore
	calls atomic.Int64
}

func (s *countingStore) GetQuizByID(ctx context.Context, quizID string) (Definition, error) {
	s.calls.Add(1)
	return s.inner.GetQuizByID(ctx, quizID)
}

func testDefinition() Definition {
	return Definition{
		ID:      "quiz-1",
		OwnerID: "operator-1",
		Title:   "Capitals",
		Questions: []Question{
			{
				ID:              "q1",
				Text:            "Capital of France?",
				Type:            TypeSingleChoice,
				DurationSeconds: 30,
				BasePoints:      10,
				Answers: []Answer{
					{ID: "a1", Text: "Paris", Correct: true},
					{ID: "a2", Text: "Lyon"},
				},
			},
		},
	}
}

func newTestCache(t *testing.T, ttl time.Duration) (*Cache, *countingStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := &countingStore{inner: NewMemoryStore()}
	store.inner.Put(testDefinition())
	return NewCache(client, store, ttl), store, mr
}

func TestCacheMissThenHit(t *testing.T) {
	cache, store, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	first, err := cache.GetQuizByID(ctx, "quiz-1")
	require.NoError(t, err)
	assert.Equal(t, testDefinition(), first)
	assert.EqualValues(t, 1, store.calls.Load())

	second, err := cache.GetQuizByID(ctx, "quiz-1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, store.calls.Load(), "second read must come from cache")
}

func TestCacheReloadsAfterExpiry(t *testing.T) {
	cache, store, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	_, err := cache.GetQuizByID(ctx, "quiz-1")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = cache.GetQuizByID(ctx, "quiz-1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, store.calls.Load())
}

func TestCacheNotFoundPropagates(t *testing.T) {
	cache, store, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	_, err := cache.GetQuizByID(ctx, "no-such-quiz")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualValues(t, 1, store.calls.Load())

	// Misses are not cached; the store is consulted again.
	_, err = cache.GetQuizByID(ctx, "no-such-quiz")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualValues(t, 2, store.calls.Load())
}

func TestCacheCorruptedEntryReloads(t *testing.T) {
	cache, store, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, mr.Set("quiz:def:quiz-1", "{not json"))

	def, err := cache.GetQuizByID(ctx, "quiz-1")
	require.NoError(t, err)
	assert.Equal(t, testDefinition(), def)
	assert.EqualValues(t, 1, store.calls.Load())

	// The reload rewrote the entry with valid JSON.
	raw, err := mr.Get("quiz:def:quiz-1")
	require.NoError(t, err)
	var stored Definition
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	assert.Equal(t, testDefinition(), stored)
}
