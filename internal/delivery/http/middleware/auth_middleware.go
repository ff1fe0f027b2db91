package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Moraarn/sistercheck/internal/domain/entity"
	"github.com/Moraarn/sistercheck/internal/infrastructure/cache"
	"github.com/Moraarn/sistercheck/pkg/jwt"
	"github.com/Moraarn/sistercheck/pkg/response"

	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	userContextKey    contextKey = "auth.user"
	patientContextKey contextKey = "auth.patient"
	adminContextKey   contextKey = "auth.admin"
	claimsContextKey  contextKey = "auth.claims"
)

// Loader resolves the account behind a token subject. A (nil, nil)
// return means the account no longer exists.
type Loader[T any] func(ctx context.Context, id string) (*T, error)

// AuthMiddleware verifies bearer tokens and loads the matching account
// into the request context. One instance serves users, patients and
// admins; each guard differs only in its loader and context key.
type AuthMiddleware struct {
	log        *logrus.Logger
	jwtService *jwt.JWTService
	tokens     cache.TokenStore
}

func NewAuthMiddleware(log *logrus.Logger, jwtService *jwt.JWTService, tokens cache.TokenStore) *AuthMiddleware {
	return &AuthMiddleware{
		log:        log,
		jwtService: jwtService,
		tokens:     tokens,
	}
}

// extractToken prefers the "token" cookie over the Authorization header
// so browser sessions win when both are present.
func extractToken(r *http.Request) string {
	if c, err := r.Cookie("token"); err == nil && c.Value != "" {
		return c.Value
	}
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// verify runs the shared token checks and hands the loaded account to
// attach. All failure modes map to 401 so probing the guard does not
// reveal whether a token was malformed, revoked or orphaned.
func verify[T any](m *AuthMiddleware, load Loader[T], attach func(context.Context, *T) context.Context) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				response.Unauthorized(w, "You are not logged in! Please log in to get access.")
				return
			}

			claims, err := m.jwtService.ValidateToken(token)
			if err != nil {
				m.log.Warnf("Token validation failed: %+v", err)
				response.Unauthorized(w, "Invalid or expired token")
				return
			}

			if m.tokens != nil {
				ok, err := m.tokens.Exists(r.Context(), claims.ID, claims.TokenID)
				if err != nil {
					m.log.Warnf("Token store lookup failed: %+v", err)
					response.Unauthorized(w, "Invalid or expired token")
					return
				}
				if !ok {
					response.Unauthorized(w, "Invalid or expired token")
					return
				}
			}

			account, err := load(r.Context(), claims.ID)
			if err != nil {
				m.log.Warnf("Failed to load account %s: %+v", claims.ID, err)
				response.InternalServerError(w, "Something went wrong")
				return
			}
			if account == nil {
				response.Unauthorized(w, "The user belonging to this token no longer exists.")
				return
			}

			ctx := WithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(attach(ctx, account)))
		})
	}
}

func (m *AuthMiddleware) RequireUser(load Loader[entity.User]) func(http.Handler) http.Handler {
	return verify(m, load, WithUser)
}

func (m *AuthMiddleware) RequirePatient(load Loader[entity.Patient]) func(http.Handler) http.Handler {
	return verify(m, load, WithPatient)
}

func (m *AuthMiddleware) RequireAdmin(load Loader[entity.Admin]) func(http.Handler) http.Handler {
	return verify(m, load, WithAdmin)
}

// RequireRole wraps a user-guarded route and rejects accounts outside
// the allowed roles with 403.
func (m *AuthMiddleware) RequireRole(roles ...entity.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetUserFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "You are not logged in! Please log in to get access.")
				return
			}
			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			response.Forbidden(w, "You do not have permission to perform this action")
		})
	}
}

func WithClaims(ctx context.Context, claims *jwt.Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

func GetClaimsFromContext(ctx context.Context) (*jwt.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*jwt.Claims)
	return claims, ok
}

func WithUser(ctx context.Context, user *entity.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

func GetUserFromContext(ctx context.Context) (*entity.User, bool) {
	user, ok := ctx.Value(userContextKey).(*entity.User)
	return user, ok
}

func WithPatient(ctx context.Context, patient *entity.Patient) context.Context {
	return context.WithValue(ctx, patientContextKey, patient)
}

func GetPatientFromContext(ctx context.Context) (*entity.Patient, bool) {
	patient, ok := ctx.Value(patientContextKey).(*entity.Patient)
	return patient, ok
}

func WithAdmin(ctx context.Context, admin *entity.Admin) context.Context {
	return context.WithValue(ctx, adminContextKey, admin)
}

func GetAdminFromContext(ctx context.Context) (*entity.Admin, bool) {
	admin, ok := ctx.Value(adminContextKey).(*entity.Admin)
	return admin, ok
}
