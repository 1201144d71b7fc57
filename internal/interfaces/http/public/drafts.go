package public

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/parchados/parchados-services/api/internal/interfaces/http/common"
	"github.com/parchados/parchados-services/api/internal/places/application"
	"go.uber.org/zap"
)

func (h *Handler) draftOpenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		id, wizard := h.drafts.Open()
		common.WriteJSON(h.logger, w, http.StatusCreated, draftToResponse(id, wizard.State()))
	}
}

// withDraft resolves the session wizard or writes a 404.
func (h *Handler) withDraft(w http.ResponseWriter, r *http.Request) (string, *application.Wizard, bool) {
	id := strings.TrimSpace(chi.URLParam(r, "draftID"))
	wizard := h.drafts.Get(id)
	if wizard == nil {
		common.WriteError(h.logger, w, http.StatusNotFound, "No encontramos el borrador")
		return "", nil, false
	}
	return id, wizard, true
}

func (h *Handler) draftStateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, wizard, ok := h.withDraft(w, r)
		if !ok {
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, draftToResponse(id, wizard.State()))
	}
}

type draftUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Phones      *string `json:"phones"`
}

func (h *Handler) draftUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, wizard, ok := h.withDraft(w, r)
		if !ok {
			return
		}

		var req draftUpdateRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, common.MaxRequestBody)).Decode(&req); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "La solicitud tiene un formato inválido")
			return
		}

		if req.Name != nil {
			wizard.SetName(*req.Name)
		}
		if req.Description != nil {
			wizard.SetDescription(*req.Description)
		}
		if req.Category != nil {
			wizard.SetCategory(*req.Category)
		}
		if req.Phones != nil {
			wizard.SetPhones(*req.Phones)
		}

		common.WriteJSON(h.logger, w, http.StatusOK, draftToResponse(id, wizard.State()))
	}
}

func (h *Handler) draftDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, wizard, ok := h.withDraft(w, r)
		if !ok {
			return
		}
		wizard.DeleteDraft()
		h.drafts.Discard(id)
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]string{"status": "discarded"})
	}
}

type draftPhotoRequest struct {
	Ref string `json:"ref"`
}

func (h *Handler) draftAddPhotoHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, wizard, ok := h.withDraft(w, r)
		if !ok {
			return
		}

		var req draftPhotoRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, common.MaxRequestBody)).Decode(&req); err != nil || strings.TrimSpace(req.Ref) == "" {
			common.WriteError(h.logger, w, http.StatusBadRequest, "Indica la referencia de la foto")
			return
		}

		if err := wizard.AddPhoto(r.Context(), req.Ref); err != nil {
			h.logger.Warn("fallo la subida de la foto del borrador", zap.String("draftId", id), zap.Error(err))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, draftToResponse(id, wizard.State()))
	}
}

func (h *Handler) draftRemovePhotoHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, wizard, ok := h.withDraft(w, r)
		if !ok {
			return
		}

		ref := strings.TrimSpace(r.URL.Query().Get("ref"))
		if ref == "" {
			common.WriteError(h.logger, w, http.StatusBadRequest, "Indica la referencia de la foto")
			return
		}
		wizard.RemovePhoto(ref)
		common.WriteJSON(h.logger, w, http.StatusOK, draftToResponse(id, wizard.State()))
	}
}

// draftNextHandler advances the wizard; on the last step this attempts the
// publish and, when it succeeds, the session is discarded.
func (h *Handler) draftNextHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, wizard, ok := h.withDraft(w, r)
		if !ok {
			return
		}

		if err := wizard.Next(r.Context()); err != nil {
			h.logger.Warn("fallo la publicación del borrador", zap.String("draftId", id), zap.Error(err))
		}

		state := wizard.State()
		if state.CreatedPlaceID != "" {
			h.drafts.Discard(id)
		}
		common.WriteJSON(h.logger, w, http.StatusOK, draftToResponse(id, state))
	}
}

func (h *Handler) draftPreviousHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, wizard, ok := h.withDraft(w, r)
		if !ok {
			return
		}
		wizard.Previous()
		common.WriteJSON(h.logger, w, http.StatusOK, draftToResponse(id, wizard.State()))
	}
}

func (h *Handler) draftSaveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, wizard, ok := h.withDraft(w, r)
		if !ok {
			return
		}
		wizard.SaveDraft(r.Context())
		common.WriteJSON(h.logger, w, http.StatusOK, draftToResponse(id, wizard.State()))
	}
}
