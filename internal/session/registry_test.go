package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openquiz/livequiz/internal/quiz"
)

// failingQuizStore always errors, exercising the no-partial-create path.
type failingQuizStore struct {
	err error
}

func (s failingQuizStore) GetQuizByID(ctx context.Context, quizID string) (quiz.Definition, error) {
	return quiz.Definition{}, s.err
}

func newTestRegistry(t *testing.T, defs ...quiz.Definition) (*Registry, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	store := quiz.NewMemoryStore()
	for _, def := range defs {
		store.Put(def)
	}
	return NewRegistry(store, RegistryOptions{Clock: clock.Now}, zerolog.Nop()), clock
}

func TestCreateSessionSnapshotsQuiz(t *testing.T) {
	registry, _ := newTestRegistry(t, singleQuestionQuiz())

	session, err := registry.CreateSession(context.Background(), "quiz-1", ownerID)
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID())
	assert.Equal(t, StatusLobby, session.Status())
	assert.Equal(t, 1, registry.Len())

	found, err := registry.Get(session.ID())
	require.NoError(t, err)
	assert.Same(t, session, found)
}

func TestCreateSessionUnknownQuiz(t *testing.T) {
	registry, _ := newTestRegistry(t)

	_, err := registry.CreateSession(context.Background(), "no-such-quiz", ownerID)
	assert.ErrorIs(t, err, quiz.ErrNotFound)
	assert.Equal(t, 0, registry.Len())
}

func TestCreateSessionStoreFailureLeavesNothingBehind(t *testing.T) {
	clock := newFakeClock()
	storeErr := errors.New("connection refused")
	registry := NewRegistry(failingQuizStore{err: storeErr}, RegistryOptions{Clock: clock.Now}, zerolog.Nop())

	_, err := registry.CreateSession(context.Background(), "quiz-1", ownerID)
	assert.ErrorIs(t, err, storeErr)
	assert.Equal(t, 0, registry.Len())
}

func TestCreateSessionsAreIndependent(t *testing.T) {
	registry, _ := newTestRegistry(t, singleQuestionQuiz())

	first, err := registry.CreateSession(context.Background(), "quiz-1", ownerID)
	require.NoError(t, err)
	second, err := registry.CreateSession(context.Background(), "quiz-1", ownerID)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID(), second.ID())

	_, err = first.Start(ownerID)
	require.NoError(t, err)
	assert.Equal(t, StatusQuestionActive, first.Status())
	assert.Equal(t, StatusLobby, second.Status())
}

func TestGetUnknownSession(t *testing.T) {
	registry, _ := newTestRegistry(t)

	_, err := registry.Get("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestEvictRequiresOwner(t *testing.T) {
	registry, _ := newTestRegistry(t, singleQuestionQuiz())
	session, err := registry.CreateSession(context.Background(), "quiz-1", ownerID)
	require.NoError(t, err)

	err = registry.Evict(session.ID(), "somebody-else")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, 1, registry.Len())

	err = registry.Evict(session.ID(), ownerID)
	require.NoError(t, err)
	assert.Equal(t, 0, registry.Len())

	_, err = registry.Get(session.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestEvictUnknownSession(t *testing.T) {
	registry, _ := newTestRegistry(t)

	err := registry.Evict("missing", ownerID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSweepIdleEvictsStaleSessions(t *testing.T) {
	registry, clock := newTestRegistry(t, singleQuestionQuiz())

	stale, err := registry.CreateSession(context.Background(), "quiz-1", ownerID)
	require.NoError(t, err)

	clock.Advance(3 * time.Hour)

	fresh, err := registry.CreateSession(context.Background(), "quiz-1", ownerID)
	require.NoError(t, err)

	evicted := registry.SweepIdle(2 * time.Hour)
	assert.Equal(t, 1, evicted)
	assert.Equal(t, 1, registry.Len())

	_, err = registry.Get(stale.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = registry.Get(fresh.ID())
	require.NoError(t, err)
}

func TestSweepIdleCountsActivityAsTouch(t *testing.T) {
	registry, clock := newTestRegistry(t, singleQuestionQuiz())

	session, err := registry.CreateSession(context.Background(), "quiz-1", ownerID)
	require.NoError(t, err)

	clock.Advance(90 * time.Minute)
	_, err = session.Start(ownerID)
	require.NoError(t, err)

	clock.Advance(90 * time.Minute)

	// Last activity was 90 minutes ago, inside the 2 hour window.
	assert.Equal(t, 0, registry.SweepIdle(2*time.Hour))
	assert.Equal(t, 1, registry.Len())
}

func TestSweepIdleDisabled(t *testing.T) {
	registry, clock := newTestRegistry(t, singleQuestionQuiz())

	_, err := registry.CreateSession(context.Background(), "quiz-1", ownerID)
	require.NoError(t, err)

	clock.Advance(100 * time.Hour)

	assert.Equal(t, 0, registry.SweepIdle(0))
	assert.Equal(t, 1, registry.Len())
}
