package thread

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/manasmitra/backend/internal/middleware"
	chatmodel "github.com/manasmitra/backend/internal/model/chat"
	"github.com/manasmitra/backend/internal/store"
	"github.com/manasmitra/backend/pkg/utils"
)

// ThreadStore persists conversation threads, always scoped to one user.
type ThreadStore interface {
	Create(ctx context.Context, userID, title string) (chatmodel.Thread, error)
	ListByUser(ctx context.Context, userID string) ([]chatmodel.Thread, error)
	Rename(ctx context.Context, threadID, userID, title string) (chatmodel.Thread, error)
	Delete(ctx context.Context, threadID, userID string) error
}

// TurnStore reads a thread's turns.
type TurnStore interface {
	ListByThread(ctx context.Context, threadID, userID string) ([]chatmodel.Turn, error)
}

// Handler exposes thread management. Every operation uses the
// authenticated identity; threads are never visible across users.
type Handler struct {
	threads ThreadStore
	turns   TurnStore
}

// New creates the thread handler.
func New(threads ThreadStore, turns TurnStore) *Handler {
	return &Handler{threads: threads, turns: turns}
}

// RegisterRoutes registers the thread endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/threads", h.handleCreate)
	r.Get("/threads", h.handleList)
	r.Put("/threads", h.handleRename)
	r.Delete("/threads", h.handleDelete)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	var payload struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(payload.Title) == "" {
		utils.RespondError(w, http.StatusBadRequest, "title is required")
		return
	}

	thread, err := h.threads.Create(r.Context(), userID, payload.Title)
	if err != nil {
		log.Printf("[thread] create failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "error creating thread")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"id":    thread.ID,
		"title": thread.Title,
	})
}

// handleList returns the caller's threads, or — when thread_id is given —
// the turns of that thread.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	if threadID := r.URL.Query().Get("thread_id"); threadID != "" {
		turns, err := h.turns.ListByThread(r.Context(), threadID, userID)
		if err != nil {
			log.Printf("[thread] list turns failed: %v", err)
			utils.RespondError(w, http.StatusNotFound, "thread not found or no messages")
			return
		}
		utils.RespondJSON(w, http.StatusOK, turns)
		return
	}

	threads, err := h.threads.ListByUser(r.Context(), userID)
	if err != nil {
		log.Printf("[thread] list failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "error listing threads")
		return
	}
	utils.RespondJSON(w, http.StatusOK, threads)
}

func (h *Handler) handleRename(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	var payload struct {
		ThreadID string `json:"threadId"`
		NewTitle string `json:"newTitle"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.ThreadID == "" || strings.TrimSpace(payload.NewTitle) == "" {
		utils.RespondError(w, http.StatusBadRequest, "threadId and newTitle are required")
		return
	}

	thread, err := h.threads.Rename(r.Context(), payload.ThreadID, userID, payload.NewTitle)
	if errors.Is(err, store.ErrNotFound) {
		utils.RespondError(w, http.StatusNotFound, "thread not found")
		return
	}
	if err != nil {
		log.Printf("[thread] rename failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "error updating thread")
		return
	}

	utils.RespondJSON(w, http.StatusOK, thread)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	threadID := r.URL.Query().Get("thread_id")
	if threadID == "" {
		utils.RespondError(w, http.StatusBadRequest, "thread_id is required")
		return
	}

	err := h.threads.Delete(r.Context(), threadID, userID)
	if errors.Is(err, store.ErrNotFound) {
		utils.RespondError(w, http.StatusNotFound, "thread not found")
		return
	}
	if err != nil {
		log.Printf("[thread] delete failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "error deleting thread")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"message": "thread and related messages deleted successfully",
	})
}
