package session

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/openquiz/livequiz/internal/auth"
	"github.com/openquiz/livequiz/internal/quiz"
	httperrors "github.com/openquiz/livequiz/pkg/http/errors"
)

// Mutation types accepted by the operator mutate endpoint.
const (
	MutationStart          = "start"
	MutationAdvance        = "advance"
	MutationStartOrAdvance = "start_or_advance"
	MutationLock           = "lock"
	MutationEnd            = "end"
	MutationRestart        = "restart"
)

// HTTPHandlers provides REST endpoints for session operations. Clients poll
// the status endpoints; every read is safe to repeat and returns a consistent
// snapshot of session state.
type HTTPHandlers struct {
	registry *Registry
	tokens   *auth.Manager
	logger   zerolog.Logger
}

// NewHTTPHandlers creates HTTP handlers for session endpoints.
func NewHTTPHandlers(registry *Registry, tokens *auth.Manager, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		registry: registry,
		tokens:   tokens,
		logger:   logger.With().Str("component", "session_http").Logger(),
	}
}

// CreateSessionRequest is the payload for POST /v1/sessions.
type CreateSessionRequest struct {
	QuizID string `json:"quiz_id"`
}

// CreateSession handles POST /v1/sessions.
func (h *HTTPHandlers) CreateSession(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeAuthenticationRequired, "Authentication required")
		return
	}

	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	if req.QuizID == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "quiz_id is required", "quiz_id")
		return
	}

	session, err := h.registry.CreateSession(r.Context(), req.QuizID, claims.Subject)
	if err != nil {
		if errors.Is(err, quiz.ErrNotFound) {
			httperrors.RespondNotFound(w, httperrors.ErrCodeQuizNotFound, "quiz not found")
			return
		}
		h.logger.Error().Err(err).Str("quiz_id", req.QuizID).Msg("failed to create session")
		httperrors.RespondError(w, http.StatusBadGateway, httperrors.ErrCodeSessionCreateFail, "could not load quiz")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"session_id": session.ID(),
		"quiz_id":    req.QuizID,
		"status":     session.Status(),
	})
}

// MutateRequest is the payload for POST /v1/sessions/{id}/mutate.
type MutateRequest struct {
	MutationType string `json:"mutation_type"`
}

// Mutate handles POST /v1/sessions/{id}/mutate: all operator lifecycle
// transitions go through this one endpoint.
func (h *HTTPHandlers) Mutate(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeAuthenticationRequired, "Authentication required")
		return
	}

	session, err := h.registry.Get(r.PathValue("id"))
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	var req MutateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	var state StateView
	switch req.MutationType {
	case MutationStart:
		state, err = session.Start(claims.Subject)
	case MutationAdvance:
		state, err = session.Advance(claims.Subject)
	case MutationStartOrAdvance:
		state, err = session.StartOrAdvance(claims.Subject)
	case MutationLock:
		state, err = session.Lock(claims.Subject)
	case MutationEnd:
		state, err = session.End(claims.Subject)
	case MutationRestart:
		state, err = session.StartOrRestart(claims.Subject)
	default:
		httperrors.RespondBadRequest(w, httperrors.ErrCodeUnknownMutation, "unknown mutation_type")
		return
	}
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	h.logger.Info().
		Str("session_id", session.ID()).
		Str("mutation", req.MutationType).
		Str("status", state.Status).
		Int("current_index", state.CurrentIndex).
		Msg("session mutated")

	h.respondJSON(w, http.StatusOK, state)
}

// Evict handles DELETE /v1/sessions/{id}.
func (h *HTTPHandlers) Evict(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeAuthenticationRequired, "Authentication required")
		return
	}

	if err := h.registry.Evict(r.PathValue("id"), claims.Subject); err != nil {
		h.respondDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AdminStatus handles GET /v1/sessions/{id}/admin.
func (h *HTTPHandlers) AdminStatus(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeAuthenticationRequired, "Authentication required")
		return
	}

	session, err := h.registry.Get(r.PathValue("id"))
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	view, err := session.AdminStatus(claims.Subject)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, view)
}

// JoinRequest is the payload for POST /v1/sessions/{id}/join.
type JoinRequest struct {
	DisplayName string `json:"display_name"`
}

// Join handles POST /v1/sessions/{id}/join. The issued token authenticates
// the player's later submit and status calls for this session only.
func (h *HTTPHandlers) Join(w http.ResponseWriter, r *http.Request) {
	session, err := h.registry.Get(r.PathValue("id"))
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	var req JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	player, err := session.Join(req.DisplayName)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	token, err := h.tokens.IssuePlayerToken(session.ID(), player.ID)
	if err != nil {
		h.logger.Error().Err(err).Str("session_id", session.ID()).Msg("failed to issue player token")
		httperrors.RespondInternalError(w, "could not issue player token")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"player_id":    player.ID,
		"display_name": player.DisplayName,
		"token":        token,
	})
}

// SubmitAnswerRequest is the payload for POST /v1/sessions/{id}/answers.
type SubmitAnswerRequest struct {
	QuestionIndex int      `json:"question_index"`
	AnswerIDs     []string `json:"answer_ids"`
}

// SubmitAnswer handles POST /v1/sessions/{id}/answers.
func (h *HTTPHandlers) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	claims, session, ok := h.playerSession(w, r)
	if !ok {
		return
	}

	var req SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	result, err := session.Submit(claims.Subject, req.QuestionIndex, req.AnswerIDs)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, result)
}

// PlayerStatus handles GET /v1/sessions/{id}/status.
func (h *HTTPHandlers) PlayerStatus(w http.ResponseWriter, r *http.Request) {
	claims, session, ok := h.playerSession(w, r)
	if !ok {
		return
	}

	view, err := session.PlayerStatus(claims.Subject)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, view)
}

// playerSession resolves the session and checks the player token is scoped
// to it.
func (h *HTTPHandlers) playerSession(w http.ResponseWriter, r *http.Request) (*auth.Claims, *Session, bool) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeAuthenticationRequired, "Authentication required")
		return nil, nil, false
	}

	sessionID := r.PathValue("id")
	if claims.SessionID != sessionID {
		httperrors.RespondForbidden(w, httperrors.ErrCodeForbidden, "token is for a different session")
		return nil, nil, false
	}

	session, err := h.registry.Get(sessionID)
	if err != nil {
		h.respondDomainError(w, err)
		return nil, nil, false
	}
	return claims, session, true
}

// respondDomainError maps core sentinel errors onto HTTP responses.
func (h *HTTPHandlers) respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		httperrors.RespondNotFound(w, httperrors.ErrCodeSessionNotFound, err.Error())
	case errors.Is(err, ErrPlayerNotFound):
		httperrors.RespondNotFound(w, httperrors.ErrCodePlayerNotFound, err.Error())
	case errors.Is(err, ErrUnauthorized):
		httperrors.RespondForbidden(w, httperrors.ErrCodeUnauthorized, err.Error())
	case errors.Is(err, ErrInvalidState):
		httperrors.RespondConflict(w, httperrors.ErrCodeInvalidState, err.Error())
	case errors.Is(err, ErrNameTaken):
		httperrors.RespondConflict(w, httperrors.ErrCodeNameTaken, err.Error())
	case errors.Is(err, ErrAlreadyAnswered):
		httperrors.RespondConflict(w, httperrors.ErrCodeAlreadyAnswered, err.Error())
	case errors.Is(err, ErrValidation):
		httperrors.RespondBadRequest(w, httperrors.ErrCodeValidationFailed, err.Error())
	default:
		h.logger.Error().Err(err).Msg("unexpected error")
		httperrors.RespondInternalError(w, "internal error")
	}
}

func (h *HTTPHandlers) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
