package chat

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/manasmitra/backend/internal/middleware"
	"github.com/manasmitra/backend/internal/service/ai"
	chatservice "github.com/manasmitra/backend/internal/service/chat"
	"github.com/manasmitra/backend/internal/service/speech"
	"github.com/manasmitra/backend/pkg/utils"
)

// audioFormat is the MIME subtype for the synthesized mp3 payload.
const audioFormat = "mpeg"

// TurnService runs one conversation turn, abstracted for testing.
type TurnService interface {
	Respond(ctx context.Context, req chatservice.TurnRequest) (*chatservice.TurnResult, error)
	AudioEnabled() bool
}

// Handler exposes the conversation turn pipeline over HTTP.
type Handler struct {
	turns TurnService
}

// New creates the chat handler.
func New(turns TurnService) *Handler {
	return &Handler{turns: turns}
}

// RegisterRoutes registers the chat endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleTurn)
}

func (h *Handler) handleTurn(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	if userID == "" {
		utils.RespondError(w, http.StatusUnauthorized, "missing token")
		return
	}

	var payload struct {
		Message  string `json:"message"`
		ThreadID string `json:"thread_id"`
		Audio    bool   `json:"audio"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(payload.Message) == "" {
		utils.RespondError(w, http.StatusBadRequest, "message is required")
		return
	}
	if strings.TrimSpace(payload.ThreadID) == "" {
		utils.RespondError(w, http.StatusBadRequest, "thread_id is required")
		return
	}

	if payload.Audio && !h.turns.AudioEnabled() {
		utils.RespondError(w, http.StatusServiceUnavailable, "speech service unavailable")
		return
	}

	result, err := h.turns.Respond(r.Context(), chatservice.TurnRequest{
		UserID:   userID,
		ThreadID: payload.ThreadID,
		Message:  payload.Message,
		Audio:    payload.Audio,
	})
	if err != nil {
		h.respondTurnError(w, err)
		return
	}

	if payload.Audio {
		utils.RespondAudio(w, result.Audio, audioFormat)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"response": result.Reply.Message})
}

func (h *Handler) respondTurnError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, chatservice.ErrUserNotFound):
		utils.RespondError(w, http.StatusNotFound, "user not found")
	case errors.Is(err, chatservice.ErrThreadNotFound):
		utils.RespondError(w, http.StatusNotFound, "thread not found")
	case errors.Is(err, speech.ErrSynthesis):
		log.Printf("[chat] audio generation failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "error generating audio")
	case errors.Is(err, ai.ErrMalformedReply):
		log.Printf("[chat] malformed model reply: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "internal server error")
	case errors.Is(err, chatservice.ErrUpstreamModel):
		log.Printf("[chat] completion failure: %v", err)
		utils.RespondError(w, http.StatusBadGateway, "completion engine unavailable")
	case errors.Is(err, chatservice.ErrPersistence):
		log.Printf("[chat] persistence failure: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to save conversation turn")
	default:
		log.Printf("[chat] pipeline failure: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
