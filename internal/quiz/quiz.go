package quiz

import (
	"context"
	"errors"
)

// ErrNotFound indicates the quiz definition does not exist in the backing store.
var ErrNotFound = errors.New("quiz not found")

// Question types.
const (
	TypeSingleChoice = "single_choice"
	TypeMultiChoice  = "multi_choice"
)

// Answer is one selectable option of a question.
type Answer struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

// Question models a timed question with one or more correct answers.
type Question struct {
	ID              string   `json:"id"`
	Text            string   `json:"text"`
	Type            string   `json:"type"`
	DurationSeconds int      `json:"duration_seconds"`
	BasePoints      int      `json:"base_points"`
	Answers         []Answer `json:"answers"`
}

// Definition is an authored quiz as stored by the authoring service.
type Definition struct {
	ID        string     `json:"id"`
	OwnerID   string     `json:"owner_id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// Store loads quiz definitions. Implementations must return ErrNotFound
// (possibly wrapped) when the quiz does not exist.
type Store interface {
	GetQuizByID(ctx context.Context, quizID string) (Definition, error)
}
