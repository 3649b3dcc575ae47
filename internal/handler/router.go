package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	adminHandler "github.com/safarly/backend/internal/handler/admin"
	agentHandler "github.com/safarly/backend/internal/handler/agent"
	catalogHandler "github.com/safarly/backend/internal/handler/catalog"
	chatHandler "github.com/safarly/backend/internal/handler/chat"
	personaHandler "github.com/safarly/backend/internal/handler/persona"
	middlewarePkg "github.com/safarly/backend/internal/middleware"
	personaModel "github.com/safarly/backend/internal/model/persona"
	"github.com/safarly/backend/internal/service/ai"
	authService "github.com/safarly/backend/internal/service/auth"
	catalogService "github.com/safarly/backend/internal/service/catalog"
	chatService "github.com/safarly/backend/internal/service/chat"
	"github.com/safarly/backend/internal/service/settings"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(
	personas personaModel.Store,
	manager *chatService.Manager,
	gateway *ai.Client,
	catalog *catalogService.Service,
	authSvc *authService.Service,
	store *settings.Store,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	chatH := chatHandler.New(manager)
	wsH := chatHandler.NewWebSocketHandler(manager)

	r.Route("/api", func(api chi.Router) {
		personaHandler.New(personas).RegisterRoutes(api)
		chatH.RegisterRoutes(api)
		wsH.RegisterWebSocketRoutes(api)
		agentHandler.New(gateway).RegisterRoutes(api)
		catalogHandler.New(catalog).RegisterRoutes(api)
		adminHandler.New(authSvc, store).RegisterRoutes(api)
	})

	return r
}
