package session

import (
	"fmt"
	"time"
)

// AnswerRecord is the immutable result of one submission. At most one record
// ever exists per (question, player) pair within a session.
type AnswerRecord struct {
	PlayerID          string
	QuestionIndex     int
	SelectedAnswerIDs []string
	SubmittedAt       time.Time
	Correct           bool
	PointsAwarded     int
}

type answerKey struct {
	questionIndex int
	playerID      string
}

// Collector stores answer records and enforces the at-most-one-per-pair
// invariant. Like Roster, it relies on the owning Session's lock.
type Collector struct {
	records map[answerKey]AnswerRecord
}

func newCollector() *Collector {
	return &Collector{records: make(map[answerKey]AnswerRecord)}
}

// Has reports whether the player already answered the question.
func (c *Collector) Has(questionIndex int, playerID string) bool {
	_, ok := c.records[answerKey{questionIndex, playerID}]
	return ok
}

// Put stores a record. A duplicate (question, player) pair is a core bug,
// not a user error: callers must check Has first, so this fails loudly.
func (c *Collector) Put(rec AnswerRecord) {
	key := answerKey{rec.QuestionIndex, rec.PlayerID}
	if _, exists := c.records[key]; exists {
		panic(fmt.Sprintf("duplicate answer record for question %d player %s", rec.QuestionIndex, rec.PlayerID))
	}
	c.records[key] = rec
}

// Get returns the record for the pair, if any.
func (c *Collector) Get(questionIndex int, playerID string) (AnswerRecord, bool) {
	rec, ok := c.records[answerKey{questionIndex, playerID}]
	return rec, ok
}

// CountForQuestion returns how many players have answered the question.
func (c *Collector) CountForQuestion(questionIndex int) int {
	count := 0
	for key := range c.records {
		if key.questionIndex == questionIndex {
			count++
		}
	}
	return count
}

// PlayerScore sums the points awarded to a player across all questions.
func (c *Collector) PlayerScore(playerID string) int {
	total := 0
	for key, rec := range c.records {
		if key.playerID == playerID {
			total += rec.PointsAwarded
		}
	}
	return total
}

// Len returns the total number of records.
func (c *Collector) Len() int {
	return len(c.records)
}
