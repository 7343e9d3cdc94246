package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/openquiz/livequiz/internal/session/scoring"
)

// Session lifecycle states.
const (
	StatusLobby          = "lobby"
	StatusQuestionActive = "question_active"
	StatusQuestionLocked = "question_locked"
	StatusEnded          = "ended"
)

// Session is one run of a quiz from lobby to ended. A single mutex guards all
// state-mutating operations so transitions never interleave partially; status
// reads take the lock in read mode and copy what they return.
type Session struct {
	id      string
	ownerID string

	snapshot Snapshot
	clock    Clock
	engine   *scoring.Engine

	mu                sync.RWMutex
	status            string
	currentIndex      int
	questionStartedAt time.Time
	roster            *Roster
	answers           *Collector

	createdAt   time.Time
	lastTouched time.Time
}

func newSession(id, ownerID string, snapshot Snapshot, clock Clock, engine *scoring.Engine) *Session {
	now := clock()
	return &Session{
		id:           id,
		ownerID:      ownerID,
		snapshot:     snapshot,
		clock:        clock,
		engine:       engine,
		status:       StatusLobby,
		currentIndex: -1,
		roster:       newRoster(),
		answers:      newCollector(),
		createdAt:    now,
		lastTouched:  now,
	}
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// OwnerID returns the operator who created the session.
func (s *Session) OwnerID() string {
	return s.ownerID
}

// StateView is the minimal lifecycle readout returned by transitions.
type StateView struct {
	Status       string `json:"status"`
	CurrentIndex int    `json:"current_index"`
}

// Start moves the session from lobby to the first question. A snapshot with
// zero questions ends immediately, with no active question.
func (s *Session) Start(callerID string) (StateView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireOwnerLocked(callerID); err != nil {
		return StateView{}, err
	}
	if s.status != StatusLobby {
		return StateView{}, fmt.Errorf("start from %s: %w", s.status, ErrInvalidState)
	}
	s.beginRunLocked()
	return s.stateViewLocked(), nil
}

// StartOrRestart starts a lobby session, or atomically rewinds a running or
// ended session to the first question with all answer records cleared. The
// roster is kept. This replaces client-driven end-then-start sequences, which
// raced against concurrent submissions.
func (s *Session) StartOrRestart(callerID string) (StateView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireOwnerLocked(callerID); err != nil {
		return StateView{}, err
	}
	s.answers = newCollector()
	s.beginRunLocked()
	return s.stateViewLocked(), nil
}

// beginRunLocked resets the lifecycle to the first question.
func (s *Session) beginRunLocked() {
	s.touchLocked()
	if s.snapshot.Len() == 0 {
		s.status = StatusEnded
		s.currentIndex = 0
		s.questionStartedAt = time.Time{}
		return
	}
	s.status = StatusQuestionActive
	s.currentIndex = 0
	s.questionStartedAt = s.clock()
}

// Lock stops the current question from accepting answers without advancing.
func (s *Session) Lock(callerID string) (StateView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireOwnerLocked(callerID); err != nil {
		return StateView{}, err
	}
	if s.status != StatusQuestionActive {
		return StateView{}, fmt.Errorf("lock from %s: %w", s.status, ErrInvalidState)
	}
	s.touchLocked()
	s.status = StatusQuestionLocked
	return s.stateViewLocked(), nil
}

// Advance moves to the next question, or ends the session after the last one.
func (s *Session) Advance(callerID string) (StateView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireOwnerLocked(callerID); err != nil {
		return StateView{}, err
	}
	if s.status != StatusQuestionActive && s.status != StatusQuestionLocked {
		return StateView{}, fmt.Errorf("advance from %s: %w", s.status, ErrInvalidState)
	}
	s.advanceLocked()
	return s.stateViewLocked(), nil
}

func (s *Session) advanceLocked() {
	s.touchLocked()
	if s.currentIndex+1 < s.snapshot.Len() {
		s.currentIndex++
		s.status = StatusQuestionActive
		s.questionStartedAt = s.clock()
	} else {
		s.currentIndex = s.snapshot.Len()
		s.status = StatusEnded
		s.questionStartedAt = time.Time{}
	}
}

// StartOrAdvance starts a lobby session and advances a running one in a
// single atomic step, so the operator drives the whole lifecycle with one
// action.
func (s *Session) StartOrAdvance(callerID string) (StateView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireOwnerLocked(callerID); err != nil {
		return StateView{}, err
	}
	switch s.status {
	case StatusLobby:
		s.beginRunLocked()
	case StatusQuestionActive, StatusQuestionLocked:
		s.advanceLocked()
	default:
		return StateView{}, fmt.Errorf("start or advance from %s: %w", s.status, ErrInvalidState)
	}
	return s.stateViewLocked(), nil
}

// End terminates the session from any non-ended state. Concurrent
// submissions either complete before the transition or fail afterwards;
// they are never partially applied.
func (s *Session) End(callerID string) (StateView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireOwnerLocked(callerID); err != nil {
		return StateView{}, err
	}
	if s.status == StatusEnded {
		return StateView{}, fmt.Errorf("end from %s: %w", s.status, ErrInvalidState)
	}
	s.touchLocked()
	s.status = StatusEnded
	s.currentIndex = s.snapshot.Len()
	s.questionStartedAt = time.Time{}
	return s.stateViewLocked(), nil
}

// Join adds a participant. Valid only while the session is in the lobby.
func (s *Session) Join(displayName string) (Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusLobby {
		return Player{}, fmt.Errorf("join after start: %w", ErrInvalidState)
	}
	player, err := s.roster.Join(displayName, s.clock())
	if err != nil {
		return Player{}, err
	}
	s.touchLocked()
	playersJoined.Inc()
	return *player, nil
}

// SubmitResult is the outcome of one answer submission.
type SubmitResult struct {
	Correct       bool `json:"correct"`
	PointsAwarded int  `json:"points_awarded"`
	TotalScore    int  `json:"total_score"`
}

// Submit records one answer for the current question. Exactly one submission
// per (question, player) is accepted; late, duplicate, or out-of-phase
// submissions return explicit errors rather than being silently dropped.
func (s *Session) Submit(playerID string, questionIndex int, answerIDs []string) (SubmitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.roster.Get(playerID); err != nil {
		return SubmitResult{}, err
	}
	if s.status != StatusQuestionActive {
		return SubmitResult{}, fmt.Errorf("submit while %s: %w", s.status, ErrInvalidState)
	}
	if questionIndex != s.currentIndex {
		return SubmitResult{}, fmt.Errorf("submit for question %d while %d is active: %w", questionIndex, s.currentIndex, ErrInvalidState)
	}

	question := s.snapshot.Questions[s.currentIndex]
	now := s.clock()
	deadline := s.questionStartedAt.Add(question.Duration)
	if !now.Before(deadline) {
		return SubmitResult{}, fmt.Errorf("deadline passed: %w", ErrInvalidState)
	}

	selected := make(map[string]struct{}, len(answerIDs))
	for _, id := range answerIDs {
		if !question.HasAnswer(id) {
			return SubmitResult{}, fmt.Errorf("answer id %q does not belong to question: %w", id, ErrValidation)
		}
		selected[id] = struct{}{}
	}
	if len(selected) == 0 {
		return SubmitResult{}, fmt.Errorf("empty answer selection: %w", ErrValidation)
	}

	if s.answers.Has(questionIndex, playerID) {
		return SubmitResult{}, fmt.Errorf("question %d: %w", questionIndex, ErrAlreadyAnswered)
	}

	correct := question.IsCorrectSelection(selected)
	elapsed := now.Sub(s.questionStartedAt)
	points := s.engine.Points(correct, elapsed, question.Duration, question.BasePoints)

	ids := make([]string, 0, len(selected))
	for id := range selected {
		ids = append(ids, id)
	}
	s.answers.Put(AnswerRecord{
		PlayerID:          playerID,
		QuestionIndex:     questionIndex,
		SelectedAnswerIDs: ids,
		SubmittedAt:       now,
		Correct:           correct,
		PointsAwarded:     points,
	})
	s.touchLocked()
	answersSubmitted.Inc()

	return SubmitResult{
		Correct:       correct,
		PointsAwarded: points,
		TotalScore:    s.answers.PlayerScore(playerID),
	}, nil
}

// AdminStatus builds the operator projection. Owner only.
func (s *Session) AdminStatus(callerID string) (AdminStatusView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if callerID != s.ownerID {
		return AdminStatusView{}, fmt.Errorf("admin status: %w", ErrUnauthorized)
	}
	return buildAdminView(s, s.clock()), nil
}

// PlayerStatus builds the participant projection for the given player.
func (s *Session) PlayerStatus(playerID string) (PlayerStatusView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, err := s.roster.Get(playerID); err != nil {
		return PlayerStatusView{}, err
	}
	return buildPlayerView(s, playerID, s.clock()), nil
}

// Status returns the current lifecycle state.
func (s *Session) Status() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// LastTouched reports when the session last saw a mutating operation.
// The registry sweeper uses it for idle eviction.
func (s *Session) LastTouched() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastTouched
}

// acceptingAnswersLocked reports whether the current question still accepts
// answers at the given instant. Deadline expiry never transitions state by
// itself; it only stops submissions.
func (s *Session) acceptingAnswersLocked(now time.Time) bool {
	if s.status != StatusQuestionActive {
		return false
	}
	question := s.snapshot.Questions[s.currentIndex]
	return now.Before(s.questionStartedAt.Add(question.Duration))
}

func (s *Session) deadlineLocked() (time.Time, bool) {
	if s.status != StatusQuestionActive && s.status != StatusQuestionLocked {
		return time.Time{}, false
	}
	if s.questionStartedAt.IsZero() {
		return time.Time{}, false
	}
	question := s.snapshot.Questions[s.currentIndex]
	return s.questionStartedAt.Add(question.Duration), true
}

func (s *Session) requireOwnerLocked(callerID string) error {
	if callerID != s.ownerID {
		return fmt.Errorf("caller %s: %w", callerID, ErrUnauthorized)
	}
	return nil
}

func (s *Session) stateViewLocked() StateView {
	return StateView{Status: s.status, CurrentIndex: s.currentIndex}
}

func (s *Session) touchLocked() {
	s.lastTouched = s.clock()
}
