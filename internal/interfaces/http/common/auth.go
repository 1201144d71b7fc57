package common

import (
	"context"
	"net/http"
	"strings"

	"github.com/parchados/parchados-services/api/internal/places/domain"
	"go.uber.org/zap"
)

type contextKey string

const authUserContextKey contextKey = "authUser"

// TokenVerifier resolves a bearer token into the account it names.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, tokenString string) (*domain.User, error)
}

// ContextWithUser stores the authenticated user into context.
func ContextWithUser(ctx context.Context, user domain.User) context.Context {
	return context.WithValue(ctx, authUserContextKey, user)
}

// UserFromContext extracts the authenticated user from context.
func UserFromContext(ctx context.Context) (domain.User, bool) {
	user, ok := ctx.Value(authUserContextKey).(domain.User)
	return user, ok
}

// BearerAuth verifies the Authorization header and stores the resolved user
// into the request context.
func BearerAuth(verifier TokenVerifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := strings.TrimSpace(r.Header.Get("Authorization"))
			if header == "" {
				WriteError(logger, w, http.StatusUnauthorized, "Falta el encabezado Authorization")
				return
			}

			const bearerPrefix = "Bearer "
			if !strings.HasPrefix(header, bearerPrefix) {
				WriteError(logger, w, http.StatusUnauthorized, "Indica un token Bearer")
				return
			}
			tokenString := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
			if tokenString == "" {
				WriteError(logger, w, http.StatusUnauthorized, "El token de acceso está vacío")
				return
			}

			user, err := verifier.VerifyToken(r.Context(), tokenString)
			if err != nil {
				WriteError(logger, w, http.StatusUnauthorized, err.Error())
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), *user)))
		})
	}
}

// RequireAdmin rejects requests whose context user is not a moderator. It
// must run after BearerAuth.
func RequireAdmin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || !user.IsAdmin() {
				WriteError(logger, w, http.StatusForbidden, "Se requiere un rol de moderador")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
