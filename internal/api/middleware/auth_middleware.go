package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/savedate/save-date/internal/errors"
	"github.com/savedate/save-date/internal/models"
	"github.com/savedate/save-date/internal/utils/response"
)

type contextKey uuid.UUID

var UserContextKey = contextKey(uuid.New())

type AuthMiddleware struct {
	jwtKey []byte
}

func NewAuthMiddleware(jwtKey []byte) *AuthMiddleware {

	return &AuthMiddleware{jwtKey: jwtKey}

}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		authHeader := r.Header.Get("Authorization")

		if authHeader == "" {
			logger.Warn("Missing authorization header")
			response.Error(w, errors.UnauthorizedError("Authorization header is required"))
			return
		}

		// Token is of format : "Bearer <token>"
		tokenParts := strings.Split(authHeader, " ")

		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			logger.Warn("Invalid authorization header format")
			response.Error(w, errors.UnauthorizedError("Invalid authorization format"))
			return
		}

		claims := &models.Claims{}

		token, err := jwt.ParseWithClaims(tokenParts[1], claims, func(t *jwt.Token) (any, error) {
			return m.jwtKey, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())

		if err != nil || !token.Valid {
			logger.Warn("JWT validation failed", slog.Any("error", err))
			response.Error(w, errors.UnauthorizedError("Invalid or expired token"))
			return
		}

		// every data access is tenant scoped, a session without a tenant is useless
		if claims.TenantID == uuid.Nil || claims.UserID == uuid.Nil {
			logger.Warn("Token without tenant or user", slog.String("userId", claims.UserID.String()))
			response.Error(w, errors.UnauthorizedError("Invalid or expired token"))
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, claims)

		requestScopedLogger := logger.With(
			slog.String("userId", claims.UserID.String()),
			slog.String("tenantId", claims.TenantID.String()),
		)
		ctx = context.WithValue(ctx, LoggerKey, requestScopedLogger)

		requestScopedLogger.Debug("User authenticated")

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// RequireRole must run after Authenticate.
func RequireRole(role models.Role, next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		if claims.Role != role {
			LoggerFromContext(r.Context()).Warn("Role check failed", slog.String("required", string(role)), slog.String("actual", string(claims.Role)))
			response.Error(w, errors.ForbiddenError("Insufficient permissions"))
			return
		}

		next.ServeHTTP(w, r)
	}
}

func ClaimsFromContext(ctx context.Context) (*models.Claims, bool) {
	claims, ok := ctx.Value(UserContextKey).(*models.Claims)

	return claims, ok && claims != nil
}
