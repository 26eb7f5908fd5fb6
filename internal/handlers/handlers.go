package handlers

import (
	"github.com/datadues/campaign-api/internal/enrollment"
	"github.com/datadues/campaign-api/internal/logger"
	"github.com/datadues/campaign-api/internal/services"
	"github.com/datadues/campaign-api/internal/store"
	"github.com/datadues/campaign-api/internal/traversal"
)

// Handler carries the request-scoped surface's collaborators. Everything is
// injected at construction; no package-global store handle.
type Handler struct {
	store          *store.Store
	engine         *traversal.Engine
	coordinator    *enrollment.Coordinator
	tracker        *enrollment.Tracker
	notifier       *services.WebhookNotifier
	allowedOrigins []string
	log            *logger.Logger
}

func New(
	entityStore *store.Store,
	engine *traversal.Engine,
	coordinator *enrollment.Coordinator,
	tracker *enrollment.Tracker,
	notifier *services.WebhookNotifier,
	allowedOrigins []string,
	baseLog *logger.Logger,
) *Handler {
	return &Handler{
		store:          entityStore,
		engine:         engine,
		coordinator:    coordinator,
		tracker:        tracker,
		notifier:       notifier,
		allowedOrigins: allowedOrigins,
		log:            baseLog.With("component", "handlers"),
	}
}
