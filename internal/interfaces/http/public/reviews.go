package public

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/parchados/parchados-services/api/internal/interfaces/http/common"
)

type reviewSubmitRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// reviewSubmitHandler attaches a rating + comment to a place. The composer
// applies its own guards and clears its state on completion either way, so
// the response only acknowledges the attempt.
func (h *Handler) reviewSubmitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))
		if h.store.FindByID(id) == nil {
			common.WriteError(h.logger, w, http.StatusNotFound, "No encontramos el lugar")
			return
		}

		var req reviewSubmitRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, common.MaxRequestBody)).Decode(&req); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "La solicitud tiene un formato inválido")
			return
		}
		if req.Rating < 1 || req.Rating > 5 {
			common.WriteError(h.logger, w, http.StatusBadRequest, "La calificación debe estar entre 1 y 5")
			return
		}
		if strings.TrimSpace(req.Comment) == "" {
			common.WriteError(h.logger, w, http.StatusBadRequest, "El comentario no puede estar vacío")
			return
		}

		h.store.SelectPlace(id)
		h.composer.SetRating(req.Rating)
		h.composer.SetComment(req.Comment)
		h.composer.Publish(r.Context())

		common.WriteJSON(h.logger, w, http.StatusAccepted, map[string]string{"status": "submitted"})
	}
}
