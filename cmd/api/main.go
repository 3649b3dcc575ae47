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
	"github.com/robfig/cron/v3"

	"github.com/safarly/backend/internal/config"
	"github.com/safarly/backend/internal/handler"
	"github.com/safarly/backend/internal/model/persona"
	"github.com/safarly/backend/internal/service/ai"
	"github.com/safarly/backend/internal/service/auth"
	"github.com/safarly/backend/internal/service/catalog"
	"github.com/safarly/backend/internal/service/chat"
	"github.com/safarly/backend/internal/service/settings"
)

// staleSessionAge is how long an untouched chat session survives before the
// sweeper evicts it. Active sessions idle-timeout long before this.
const staleSessionAge = time.Hour

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	personaStore := persona.NewMemoryStore(persona.Seed())
	catalogService := catalog.NewService()
	authService := auth.NewService(cfg.Admin)

	settingsStore := settings.NewStore(cfg.Agent, cfg.AI.APIKey)
	if !cfg.AI.Enabled() {
		log.Println("no upstream model credential configured; chat agent starts offline until one is stored")
	}

	gateway := ai.NewClient(cfg.AI, cfg.Agent.Timing.HistoryWindow)
	manager := chat.NewManager(personaStore, gateway, settingsStore)
	defer manager.Stop()

	sweeper := cron.New()
	if _, err := sweeper.AddFunc("@every 10m", func() {
		manager.Sweep(staleSessionAge)
	}); err != nil {
		log.Fatalf("failed to register session sweeper: %v", err)
	}
	sweeper.Start()
	defer sweeper.Stop()

	router := handler.NewRouter(personaStore, manager, gateway, catalogService, authService, settingsStore)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Safarly backend listening on %s", addr)
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
