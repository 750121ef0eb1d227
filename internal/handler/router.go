package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/manasmitra/backend/internal/config"
	authhandler "github.com/manasmitra/backend/internal/handler/auth"
	chathandler "github.com/manasmitra/backend/internal/handler/chat"
	threadhandler "github.com/manasmitra/backend/internal/handler/thread"
	"github.com/manasmitra/backend/internal/middleware"
)

// Deps collects the services and stores the router exposes.
type Deps struct {
	AuthCfg config.AuthConfig
	Users   authhandler.UserStore
	Threads threadhandler.ThreadStore
	Turns   threadhandler.TurnStore
	Chat    chathandler.TurnService
}

// NewRouter wires HTTP routes to core services.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS)

	authHandler := authhandler.New(deps.Users, deps.AuthCfg)
	threadHandler := threadhandler.New(deps.Threads, deps.Turns)
	chatHandler := chathandler.New(deps.Chat)

	r.Route("/api", func(api chi.Router) {
		authHandler.RegisterRoutes(api)

		api.Group(func(protected chi.Router) {
			protected.Use(middleware.Auth(deps.AuthCfg.JWTSecret))
			threadHandler.RegisterRoutes(protected)
			chatHandler.RegisterRoutes(protected)
		})
	})

	return r
}
