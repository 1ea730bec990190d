package middleware

import (
	"context"
	"net/http"
	"strings"

	"institute-admin-console/internal/domain/entity"
	"institute-admin-console/internal/domain/repository"
	"institute-admin-console/pkg/jwt"
	"institute-admin-console/pkg/response"
)

type contextKey string

const (
	SessionKey   contextKey = "session"
	AdminIDKey   contextKey = "admin_id"
	AdminRoleKey contextKey = "admin_role"
)

type AuthMiddleware struct {
	jwtService  *jwt.JWTService
	sessionRepo repository.SessionRepository
}

func NewAuthMiddleware(jwtService *jwt.JWTService, sessionRepo repository.SessionRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:  jwtService,
		sessionRepo: sessionRepo,
	}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		// The session must still exist in Redis (not logged out, not expired)
		session, err := m.sessionRepo.FindByID(r.Context(), claims.SessionID)
		if err != nil {
			response.InternalServerError(w, "Failed to validate session")
			return
		}
		if session == nil {
			response.Unauthorized(w, "Session has ended, please log in again")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
	})
}

// GetSessionFromContext extracts the console session from context
func GetSessionFromContext(ctx context.Context) (*entity.AdminSession, bool) {
	session, ok := ctx.Value(SessionKey).(*entity.AdminSession)
	return session, ok && session != nil
}

// GetSessionIDFromContext extracts the console session id from context
func GetSessionIDFromContext(ctx context.Context) (string, bool) {
	session, ok := GetSessionFromContext(ctx)
	if !ok {
		return "", false
	}
	return session.ID, true
}

// GetBackendTokenFromContext returns the institute backend bearer token of the session
func GetBackendTokenFromContext(ctx context.Context) (string, bool) {
	session, ok := GetSessionFromContext(ctx)
	if !ok || session.Token == "" {
		return "", false
	}
	return session.Token, true
}

// GetAdminRoleFromContext extracts the admin role from context
func GetAdminRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(AdminRoleKey).(string)
	return role, ok
}

// WithSession stores a session the way Authenticate does
func WithSession(ctx context.Context, session *entity.AdminSession) context.Context {
	ctx = context.WithValue(ctx, SessionKey, session)
	ctx = context.WithValue(ctx, AdminIDKey, session.Profile.ID)
	return context.WithValue(ctx, AdminRoleKey, session.Profile.Role)
}
