package admin

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/parchados/parchados-services/api/internal/interfaces/http/common"
	"github.com/parchados/parchados-services/api/internal/places/application"
	"github.com/parchados/parchados-services/api/internal/places/domain"
	"go.uber.org/zap"
)

type moderationPlaceResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	City            string    `json:"city"`
	Type            string    `json:"type"`
	CoverImage      string    `json:"coverImage,omitempty"`
	CreatedByUserID string    `json:"createdByUserId,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	Status          string    `json:"status"`
	StatusLabel     string    `json:"statusLabel"`
}

func toModerationResponse(place domain.Place) moderationPlaceResponse {
	return moderationPlaceResponse{
		ID:              place.ID,
		Title:           place.Title,
		City:            string(place.City),
		Type:            string(place.Category),
		CoverImage:      place.FirstImage(),
		CreatedByUserID: place.CreatedByUserID,
		CreatedAt:       place.CreatedAt,
		Status:          string(place.Status),
		StatusLabel:     place.Status.Label(),
	}
}

// placesListHandler returns every place, narrowed by an optional status and
// a case-insensitive title query.
func (h *Handler) placesListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))
		statusParam := strings.TrimSpace(r.URL.Query().Get("status"))

		var status *domain.Status
		if statusParam != "" {
			parsed := domain.StatusFromString(statusParam)
			status = &parsed
		}

		items := make([]moderationPlaceResponse, 0)
		for _, place := range h.store.All() {
			if query != "" && !strings.Contains(strings.ToLower(place.Title), query) {
				continue
			}
			if status != nil && place.Status != *status {
				continue
			}
			items = append(items, toModerationResponse(place))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{"items": items})
	}
}

func (h *Handler) pendingListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		h.writeList(w, h.store.Pending())
	}
}

func (h *Handler) approvedListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		h.writeList(w, h.store.Approved())
	}
}

func (h *Handler) writeList(w http.ResponseWriter, places []domain.Place) {
	items := make([]moderationPlaceResponse, 0, len(places))
	for _, place := range places {
		items = append(items, toModerationResponse(place))
	}
	common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{"items": items})
}

func (h *Handler) approveHandler() http.HandlerFunc {
	return h.transitionHandler(h.moderator.Approve)
}

func (h *Handler) rejectHandler() http.HandlerFunc {
	return h.transitionHandler(h.moderator.Reject)
}

func (h *Handler) transitionHandler(transition func(ctx context.Context, id string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))
		if err := transition(r.Context(), id); err != nil {
			if errors.Is(err, application.ErrNotPending) {
				common.WriteError(h.logger, w, http.StatusConflict, h.moderator.LastMessage())
				return
			}
			h.logger.Error("fallo la transición de moderación", zap.String("placeId", id), zap.Error(err))
			common.WriteError(h.logger, w, http.StatusBadGateway, h.moderator.LastMessage())
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// deleteHandler removes a place through the two-phase affordance: the
// request is recorded, then confirmed in one round trip.
func (h *Handler) deleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))
		h.store.RequestDelete(id)
		if err := h.store.ConfirmDelete(r.Context()); err != nil {
			h.logger.Error("fallo la eliminación del lugar", zap.String("placeId", id), zap.Error(err))
			common.WriteError(h.logger, w, http.StatusBadGateway, h.store.LastError())
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}
