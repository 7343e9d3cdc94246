package session

import (
	"time"

	"github.com/openquiz/livequiz/internal/quiz"
)

// Snapshot is an immutable copy of a quiz definition taken at session start.
// Later edits to the source quiz never reach a running session.
type Snapshot struct {
	QuizID    string
	Title     string
	Questions []SnapshotQuestion
}

// SnapshotQuestion is one question frozen into a snapshot, with its correct
// answer id set precomputed for submission checks.
type SnapshotQuestion struct {
	ID         string
	Text       string
	Type       string
	Duration   time.Duration
	BasePoints int
	Answers    []quiz.Answer

	correctIDs map[string]struct{}
	answerIDs  map[string]struct{}
}

// NewSnapshot deep-copies a quiz definition. Questions with a non-positive
// duration fall back to defaultSeconds.
func NewSnapshot(def quiz.Definition, defaultSeconds int) Snapshot {
	snap := Snapshot{
		QuizID:    def.ID,
		Title:     def.Title,
		Questions: make([]SnapshotQuestion, len(def.Questions)),
	}
	for i, q := range def.Questions {
		seconds := q.DurationSeconds
		if seconds <= 0 {
			seconds = defaultSeconds
		}
		sq := SnapshotQuestion{
			ID:         q.ID,
			Text:       q.Text,
			Type:       q.Type,
			Duration:   time.Duration(seconds) * time.Second,
			BasePoints: q.BasePoints,
			Answers:    make([]quiz.Answer, len(q.Answers)),
			correctIDs: make(map[string]struct{}),
			answerIDs:  make(map[string]struct{}, len(q.Answers)),
		}
		copy(sq.Answers, q.Answers)
		for _, a := range q.Answers {
			sq.answerIDs[a.ID] = struct{}{}
			if a.Correct {
				sq.correctIDs[a.ID] = struct{}{}
			}
		}
		snap.Questions[i] = sq
	}
	return snap
}

// Len returns the number of questions in the snapshot.
func (s Snapshot) Len() int {
	return len(s.Questions)
}

// HasAnswer reports whether id is one of the question's answer ids.
func (q SnapshotQuestion) HasAnswer(id string) bool {
	_, ok := q.answerIDs[id]
	return ok
}

// IsCorrectSelection reports whether the selected id set exactly equals the
// question's correct id set. Exact set equality covers single- and
// multi-select questions uniformly.
func (q SnapshotQuestion) IsCorrectSelection(selected map[string]struct{}) bool {
	if len(selected) != len(q.correctIDs) {
		return false
	}
	for id := range selected {
		if _, ok := q.correctIDs[id]; !ok {
			return false
		}
	}
	return true
}

// CorrectAnswerIDs returns the correct answer ids in option order.
func (q SnapshotQuestion) CorrectAnswerIDs() []string {
	ids := make([]string, 0, len(q.correctIDs))
	for _, a := range q.Answers {
		if _, ok := q.correctIDs[a.ID]; ok {
			ids = append(ids, a.ID)
		}
	}
	return ids
}
