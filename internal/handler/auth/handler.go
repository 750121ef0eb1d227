package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/manasmitra/backend/internal/config"
	"github.com/manasmitra/backend/internal/middleware"
	usermodel "github.com/manasmitra/backend/internal/model/user"
	"github.com/manasmitra/backend/internal/store"
	"github.com/manasmitra/backend/pkg/utils"
)

// UserStore is the account persistence consumed by signup and signin.
type UserStore interface {
	Create(ctx context.Context, u *usermodel.User) error
	FindByEmail(ctx context.Context, email string) (usermodel.User, error)
}

// Handler exposes account creation and credential exchange.
type Handler struct {
	users UserStore
	cfg   config.AuthConfig
}

// New creates the auth handler.
func New(users UserStore, cfg config.AuthConfig) *Handler {
	return &Handler{users: users, cfg: cfg}
}

// RegisterRoutes registers the auth endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/signup", h.handleSignup)
	r.Post("/signin", h.handleSignin)
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name              string   `json:"name"`
		Email             string   `json:"email"`
		Password          string   `json:"password"`
		DOB               string   `json:"dob"`
		Gender            string   `json:"gender"`
		PreferredLanguage string   `json:"preferredLanguage"`
		MentalHealthGoals []string `json:"mentalHealthGoals"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if payload.Name == "" || payload.Email == "" || payload.Password == "" ||
		payload.DOB == "" || payload.Gender == "" {
		utils.RespondError(w, http.StatusBadRequest, "missing required fields")
		return
	}

	dob, err := time.Parse("2006-01-02", payload.DOB)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid dob, expected YYYY-MM-DD")
		return
	}

	language := strings.TrimSpace(payload.PreferredLanguage)
	if language == "" {
		language = usermodel.DefaultLanguage
	} else if !usermodel.IsSupportedLanguage(language) {
		utils.RespondError(w, http.StatusBadRequest, "unsupported preferred language")
		return
	}

	if _, err := h.users.FindByEmail(r.Context(), payload.Email); err == nil {
		utils.RespondError(w, http.StatusBadRequest, "email already exists")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Printf("[auth] signup lookup failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[auth] password hash failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	goals := payload.MentalHealthGoals
	if goals == nil {
		goals = []string{}
	}

	u := usermodel.User{
		Name:              payload.Name,
		Email:             payload.Email,
		Password:          string(hash),
		DOB:               dob,
		Gender:            payload.Gender,
		PreferredLanguage: language,
		MentalHealthGoals: goals,
	}
	if err := h.users.Create(r.Context(), &u); err != nil {
		log.Printf("[auth] signup failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, map[string]string{"message": "user created successfully"})
}

func (h *Handler) handleSignin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if payload.Email == "" || payload.Password == "" {
		utils.RespondError(w, http.StatusBadRequest, "missing email or password")
		return
	}

	u, err := h.users.FindByEmail(r.Context(), payload.Email)
	if errors.Is(err, store.ErrNotFound) {
		utils.RespondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		log.Printf("[auth] signin lookup failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(payload.Password)); err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	now := time.Now()
	claims := middleware.AuthClaims{
		UserID: u.ID,
		Email:  u.Email,
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(h.cfg.TokenExpiry) * time.Minute)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenStr, err := token.SignedString([]byte(h.cfg.JWTSecret))
	if err != nil {
		log.Printf("[auth] token signing failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"message": "login successful",
		"user": map[string]any{
			"id":    u.ID,
			"name":  u.Name,
			"email": u.Email,
			"role":  u.Role,
		},
		"token": tokenStr,
	})
}
