package middleware

import (
	"context"
	"desafiabrasil/internal/model"
	"desafiabrasil/internal/service"
	"errors"
	"log"
	"net/http"
	"strings"
)

type contextKey string

const (
	UserIDKey contextKey = "userId"
	RoleKey   contextKey = "role"
)

// AuthMiddleware provides JWT authentication middleware
type AuthMiddleware struct {
	authSvc *service.AuthService
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authSvc *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc}
}

// RequireUser validates the bearer JWT from the Authorization header
func (m *AuthMiddleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := m.authenticate(w, r, false)
		if !ok {
			return
		}
		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

// RequireAdmin is RequireUser restricted to the admin role
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := m.authenticate(w, r, true)
		if !ok {
			return
		}
		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

// authenticate checks the token, then the stored user behind it; the role in
// the token is not trusted
func (m *AuthMiddleware) authenticate(w http.ResponseWriter, r *http.Request, admin bool) (*model.UserClaims, bool) {
	token := extractBearerToken(r)
	if token == "" {
		writeJSONError(w, http.StatusUnauthorized, "missing authorization header")
		return nil, false
	}

	claims, err := m.authSvc.ValidateToken(token)
	if err != nil {
		writeJSONError(w, http.StatusUnauthorized, "invalid or expired token")
		return nil, false
	}

	switch err := m.authSvc.Authorize(r.Context(), claims, admin); {
	case err == nil:
		return claims, true
	case errors.Is(err, service.ErrForbidden):
		writeJSONError(w, http.StatusForbidden, "admin access required")
	case errors.Is(err, service.ErrUserNotFound):
		writeJSONError(w, http.StatusUnauthorized, "unknown user")
	default:
		log.Printf("Authorization lookup for %s failed: %v", claims.UserID, err)
		writeJSONError(w, http.StatusServiceUnavailable, "service temporarily unavailable")
	}
	return nil, false
}

func withClaims(ctx context.Context, claims *model.UserClaims) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, claims.UserID)
	return context.WithValue(ctx, RoleKey, claims.Role)
}

// GetUserID extracts user ID from context
func GetUserID(ctx context.Context) string {
	if v, ok := ctx.Value(UserIDKey).(string); ok {
		return v
	}
	return ""
}

// IsAdmin reports whether the authenticated user has the admin role
func IsAdmin(ctx context.Context) bool {
	v, _ := ctx.Value(RoleKey).(string)
	return v == model.RoleAdmin
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
