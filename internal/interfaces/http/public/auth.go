package public

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/parchados/parchados-services/api/internal/auth"
	"github.com/parchados/parchados-services/api/internal/interfaces/http/common"
	"github.com/parchados/parchados-services/api/internal/places/domain"
	"go.uber.org/zap"
)

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

func (h *Handler) loginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, common.MaxRequestBody)).Decode(&req); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "La solicitud tiene un formato inválido")
			return
		}

		user, token, err := h.auth.Login(r.Context(), req.Identifier, req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				common.WriteError(h.logger, w, http.StatusUnauthorized, err.Error())
				return
			}
			h.logger.Error("fallo el inicio de sesión", zap.Error(err))
			common.WriteError(h.logger, w, http.StatusInternalServerError, "No pudimos iniciar sesión")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{
			"token": token,
			"user":  userToResponse(*user),
		})
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	City     string `json:"city"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) registerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, common.MaxRequestBody)).Decode(&req); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "La solicitud tiene un formato inválido")
			return
		}

		user := domain.User{
			Name:     req.Name,
			Username: req.Username,
			City:     domain.CityFromString(req.City),
			Email:    req.Email,
			Role:     domain.RoleUser,
		}
		created, err := h.auth.Register(r.Context(), user, req.Password)
		if err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, err.Error())
			return
		}

		common.WriteJSON(h.logger, w, http.StatusCreated, userToResponse(*created))
	}
}

type passwordResetRequest struct {
	Identifier string `json:"identifier"`
}

func (h *Handler) passwordResetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req passwordResetRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, common.MaxRequestBody)).Decode(&req); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "La solicitud tiene un formato inválido")
			return
		}

		email, code, err := h.auth.RequestPasswordReset(r.Context(), req.Identifier)
		if err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, err.Error())
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, map[string]string{
			"email": email,
			"code":  code,
		})
	}
}

func (h *Handler) logoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		h.auth.Logout()
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
