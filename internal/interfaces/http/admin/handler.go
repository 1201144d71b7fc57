package admin

import (
	"github.com/go-chi/chi/v5"
	"github.com/parchados/parchados-services/api/internal/places/application"
	"go.uber.org/zap"
)

// Config wires the moderation handler's collaborators.
type Config struct {
	Logger    *zap.Logger
	Store     *application.PlaceStore
	Moderator *application.Moderator
}

// Handler serves the moderator surface: review queues and status
// transitions.
type Handler struct {
	logger    *zap.Logger
	store     *application.PlaceStore
	moderator *application.Moderator
}

// NewHandler builds the moderation handler.
func NewHandler(cfg Config) *Handler {
	return &Handler{logger: cfg.Logger, store: cfg.Store, moderator: cfg.Moderator}
}

// Register mounts the moderation routes. The caller wraps them with auth and
// role middleware.
func (h *Handler) Register(router chi.Router) {
	router.Get("/places", h.placesListHandler())
	router.Get("/places/pending", h.pendingListHandler())
	router.Get("/places/approved", h.approvedListHandler())
	router.Post("/places/{id}/approve", h.approveHandler())
	router.Post("/places/{id}/reject", h.rejectHandler())
	router.Delete("/places/{id}", h.deleteHandler())
}
