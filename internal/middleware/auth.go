package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	apperrors "github.com/sigma-matching/api-server-go/internal/errors"
	"github.com/sigma-matching/api-server-go/internal/model"
	"github.com/sigma-matching/api-server-go/internal/repository"
	"github.com/sigma-matching/api-server-go/internal/token"
)

type contextKey string

const UserContextKey contextKey = "user"

// GetUser returns the authenticated user stored by the auth middleware, or
// nil on an unauthenticated request.
func GetUser(ctx context.Context) *model.User {
	if user, ok := ctx.Value(UserContextKey).(*model.User); ok {
		return user
	}
	return nil
}

type AuthMiddleware struct {
	tokens   *token.Manager
	userRepo repository.UserRepository
}

func NewAuthMiddleware(tokens *token.Manager, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, userRepo: userRepo}
}

// Handler authenticates the bearer token and loads the account fresh on
// every request, so a deactivation takes effect immediately even for tokens
// that have not expired yet.
//
// A missing token is 401; a token that fails verification is 403; a token
// whose account is gone or deactivated is 401 again.
func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		bearer := extractBearer(r)
		if bearer == "" {
			writeError(w, apperrors.Unauthorized("Missing authentication token"))
			return
		}

		userID, err := m.tokens.Verify(bearer)
		if err != nil {
			log.Warn().Msg("auth middleware: invalid token attempt")
			writeError(w, apperrors.InvalidToken("Invalid or expired token"))
			return
		}

		user, err := m.userRepo.FindActiveByID(r.Context(), userID)
		if err != nil {
			log.Error().Err(err).Msg("auth middleware: database error")
			writeError(w, apperrors.Internal("Authentication failed"))
			return
		}
		if user == nil {
			writeError(w, apperrors.Unauthorized("Account not found or disabled"))
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin must run after Handler.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetUser(r.Context())
		if user == nil {
			writeError(w, apperrors.Unauthorized("Missing authentication token"))
			return
		}
		if !user.IsAdmin() {
			writeError(w, apperrors.Forbidden("Admin access required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func extractBearer(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}
