package public

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/parchados/parchados-services/api/internal/auth"
	"github.com/parchados/parchados-services/api/internal/places/application"
	"go.uber.org/zap"
)

// Config wires the public handler's collaborators.
type Config struct {
	Logger   *zap.Logger
	Store    *application.PlaceStore
	Drafts   *application.DraftSessions
	Composer *application.ReviewComposer
	Auth     *auth.Service
}

// Handler serves the end-user surface: the approved directory, account
// endpoints, the creation wizard sessions and review submission.
type Handler struct {
	logger   *zap.Logger
	store    *application.PlaceStore
	drafts   *application.DraftSessions
	composer *application.ReviewComposer
	auth     *auth.Service
}

// NewHandler builds the public handler.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:   cfg.Logger,
		store:    cfg.Store,
		drafts:   cfg.Drafts,
		composer: cfg.Composer,
		auth:     cfg.Auth,
	}
}

// Register mounts the public routes; authMiddleware guards the routes that
// need a logged-in account.
func (h *Handler) Register(router chi.Router, authMiddleware func(http.Handler) http.Handler) {
	router.Get("/places", h.placesListHandler())
	router.Get("/places/{id}", h.placeDetailHandler())

	router.Post("/auth/login", h.loginHandler())
	router.Post("/auth/register", h.registerHandler())
	router.Post("/auth/password-reset", h.passwordResetHandler())

	router.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/auth/logout", h.logoutHandler())
		r.Post("/places/{id}/reviews", h.reviewSubmitHandler())

		r.Route("/drafts", func(r chi.Router) {
			r.Post("/", h.draftOpenHandler())
			r.Get("/{draftID}", h.draftStateHandler())
			r.Patch("/{draftID}", h.draftUpdateHandler())
			r.Delete("/{draftID}", h.draftDeleteHandler())
			r.Post("/{draftID}/photos", h.draftAddPhotoHandler())
			r.Delete("/{draftID}/photos", h.draftRemovePhotoHandler())
			r.Post("/{draftID}/next", h.draftNextHandler())
			r.Post("/{draftID}/previous", h.draftPreviousHandler())
			r.Post("/{draftID}/save", h.draftSaveHandler())
		})
	})
}
