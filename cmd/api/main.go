package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/manasmitra/backend/internal/config"
	"github.com/manasmitra/backend/internal/handler"
	"github.com/manasmitra/backend/internal/service/ai"
	chatservice "github.com/manasmitra/backend/internal/service/chat"
	"github.com/manasmitra/backend/internal/service/speech"
	"github.com/manasmitra/backend/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := store.Open(cfg.Database.DSN)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := store.Migrate(db); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}

	users := store.NewUsers(db)
	threads := store.NewThreads(db)
	turns := store.NewTurns(db)

	aiService, err := ai.NewService(cfg.AI)
	if err != nil {
		log.Fatalf("failed to initialize completion service: %v", err)
	}

	var synthesizer chatservice.Synthesizer
	if cfg.Speech.Enabled {
		synthesizer = speech.NewService(cfg.Speech)
		log.Println("speech service initialized successfully")
	} else {
		log.Println("speech credentials not configured, audio responses disabled")
	}

	chatService := chatservice.NewService(users, threads, turns, aiService, synthesizer)

	router := handler.NewRouter(handler.Deps{
		AuthCfg: cfg.Auth,
		Users:   users,
		Threads: threads,
		Turns:   turns,
		Chat:    chatService,
	})

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("manasmitra backend listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
