package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/openquiz/livequiz/internal/quiz"
	"github.com/openquiz/livequiz/internal/session/scoring"
)

// RegistryOptions configures session defaults.
type RegistryOptions struct {
	Clock                  Clock
	Scoring                scoring.Config
	DefaultQuestionSeconds int
}

// Registry is the concurrency-safe store of live sessions. It owns their
// lifecycle: it is the only component that creates or destroys a session.
// Its map lock is independent of any single session's lock, so creating or
// evicting one session never blocks operations against another.
type Registry struct {
	quizzes quiz.Store
	clock   Clock
	engine  *scoring.Engine
	logger  zerolog.Logger

	defaultQuestionSeconds int

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry creates a registry backed by the given quiz store.
func NewRegistry(quizzes quiz.Store, opts RegistryOptions, logger zerolog.Logger) *Registry {
	clock := opts.Clock
	if clock == nil {
		clock = SystemClock
	}
	seconds := opts.DefaultQuestionSeconds
	if seconds <= 0 {
		seconds = 30
	}
	return &Registry{
		quizzes:                quizzes,
		clock:                  clock,
		engine:                 scoring.NewEngine(opts.Scoring),
		logger:                 logger.With().Str("component", "session_registry").Logger(),
		defaultQuestionSeconds: seconds,
		sessions:               make(map[string]*Session),
	}
}

// CreateSession snapshots the quiz and registers a new lobby session.
// The quiz store is consulted exactly once, before anything is registered:
// if the fetch fails, no half-created session is left behind.
func (r *Registry) CreateSession(ctx context.Context, quizID, ownerID string) (*Session, error) {
	def, err := r.quizzes.GetQuizByID(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("fetch quiz: %w", err)
	}

	snapshot := NewSnapshot(def, r.defaultQuestionSeconds)
	session := newSession(uuid.NewString(), ownerID, snapshot, r.clock, r.engine)

	r.mu.Lock()
	r.sessions[session.ID()] = session
	r.mu.Unlock()

	sessionsCreated.Inc()
	activeSessions.Inc()

	r.logger.Info().
		Str("session_id", session.ID()).
		Str("quiz_id", quizID).
		Str("owner_id", ownerID).
		Int("question_count", snapshot.Len()).
		Msg("session created")

	return session, nil
}

// Get returns the live session with the given id.
func (r *Registry) Get(sessionID string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrSessionNotFound)
	}
	return session, nil
}

// Evict removes a session from the registry. Owner only: eviction destroys
// the scoreboard, so it stays an explicit operator action.
func (r *Registry) Evict(sessionID, callerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[sessionID]
	if !ok {
		return fmt.Errorf("session %s: %w", sessionID, ErrSessionNotFound)
	}
	if session.OwnerID() != callerID {
		return fmt.Errorf("evict session %s: %w", sessionID, ErrUnauthorized)
	}
	delete(r.sessions, sessionID)
	sessionsEvicted.Inc()
	activeSessions.Dec()
	r.logger.Info().Str("session_id", sessionID).Msg("session evicted")
	return nil
}

// SweepIdle evicts sessions untouched for longer than maxIdle and returns
// how many were removed. Zero or negative maxIdle disables sweeping.
func (r *Registry) SweepIdle(maxIdle time.Duration) int {
	if maxIdle <= 0 {
		return 0
	}
	cutoff := r.clock().Add(-maxIdle)

	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for id, session := range r.sessions {
		if session.LastTouched().Before(cutoff) {
			delete(r.sessions, id)
			evicted++
		}
	}
	if evicted > 0 {
		sessionsEvicted.Add(float64(evicted))
		activeSessions.Sub(float64(evicted))
		r.logger.Info().Int("count", evicted).Dur("max_idle", maxIdle).Msg("idle sessions swept")
	}
	return evicted
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
