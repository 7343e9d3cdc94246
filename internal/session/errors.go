package session

import "errors"

var (
	// ErrSessionNotFound is returned when no live session exists for the id.
	ErrSessionNotFound = errors.New("session not found")
	// ErrPlayerNotFound is returned when a player id is unknown to the session.
	ErrPlayerNotFound = errors.New("player not found")
	// ErrUnauthorized is returned when a caller performs an operator-only
	// action without being the session owner.
	ErrUnauthorized = errors.New("caller is not the session owner")
	// ErrInvalidState is returned when an operation is not valid in the
	// current lifecycle state, including expired deadlines and post-lobby joins.
	ErrInvalidState = errors.New("operation not valid in current session state")
	// ErrNameTaken is returned when a display name is already used in the session.
	ErrNameTaken = errors.New("display name already taken")
	// ErrAlreadyAnswered is returned on a second submission for the same question.
	ErrAlreadyAnswered = errors.New("question already answered")
	// ErrValidation is returned when submitted answer ids do not belong to the question.
	ErrValidation = errors.New("invalid answer selection")
)
