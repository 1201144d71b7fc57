package public

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/parchados/parchados-services/api/internal/interfaces/http/common"
	"github.com/parchados/parchados-services/api/internal/places/domain"
)

// placesListHandler returns the approved directory, optionally narrowed by a
// case-insensitive title query and city/category filters.
func (h *Handler) placesListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))
		city := strings.TrimSpace(r.URL.Query().Get("city"))
		category := strings.TrimSpace(r.URL.Query().Get("type"))

		items := make([]placeResponse, 0)
		for _, place := range h.store.Approved() {
			if query != "" && !strings.Contains(strings.ToLower(place.Title), query) {
				continue
			}
			if city != "" && place.City != domain.CityFromString(city) {
				continue
			}
			if category != "" && place.Category != domain.CategoryFromString(category) {
				continue
			}
			items = append(items, placeToResponse(place))
		}

		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{"items": items})
	}
}

// placeDetailHandler returns one place from the current snapshot.
func (h *Handler) placeDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))
		place := h.store.FindByID(id)
		if place == nil {
			common.WriteError(h.logger, w, http.StatusNotFound, "No encontramos el lugar")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, placeToResponse(*place))
	}
}
