package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sigma-matching/api-server-go/internal/middleware"
	"github.com/sigma-matching/api-server-go/internal/model"
	"github.com/sigma-matching/api-server-go/internal/service"
)

func newAuthHandler(userRepo *mockUserRepo) *AuthHandler {
	svc := service.NewAuthService(userRepo, testTokens(), testRecorder(), bcrypt.MinCost, "")
	authMW := middleware.NewAuthMiddleware(testTokens(), userRepo)
	return NewAuthHandler(svc, authMW.Handler)
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("creates account and returns token without password hash", func(t *testing.T) {
		userRepo := &mockUserRepo{
			findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
				return nil, nil
			},
			createFunc: func(ctx context.Context, params model.CreateUserParams) (*model.User, error) {
				return &model.User{
					ID:           1,
					Email:        params.Email,
					PasswordHash: params.PasswordHash,
					FirstName:    params.FirstName,
					LastName:     params.LastName,
					Role:         params.Role,
					IsActive:     true,
				}, nil
			},
		}
		h := newAuthHandler(userRepo)

		body := `{"email":"agent@example.com","password":"secret-pass","first_name":"Jean","last_name":"Dupont"}`
		req := httptest.NewRequest("POST", "/register", strings.NewReader(body))
		rec := httptest.NewRecorder()

		h.Routes().ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)

		var resp struct {
			Token string     `json:"token"`
			User  model.User `json:"user"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "agent@example.com", resp.User.Email)
		assert.Equal(t, model.RoleAgent, resp.User.Role)

		// the hash must never leave the server
		assert.NotContains(t, rec.Body.String(), "password")
		assert.NotContains(t, rec.Body.String(), "$2a$")
	})

	t.Run("missing fields produce a field-level validation error", func(t *testing.T) {
		h := newAuthHandler(&mockUserRepo{})

		req := httptest.NewRequest("POST", "/register", strings.NewReader(`{"email":"not-an-email"}`))
		rec := httptest.NewRecorder()

		h.Routes().ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "VALIDATION_ERROR", resp.Code)
		assert.Contains(t, resp.Details, "email")
		assert.Contains(t, resp.Details, "password")
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		userRepo := &mockUserRepo{
			findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
				return &model.User{ID: 2, Email: email}, nil
			},
		}
		h := newAuthHandler(userRepo)

		body := `{"email":"taken@example.com","password":"secret-pass","first_name":"A","last_name":"B"}`
		req := httptest.NewRequest("POST", "/register", strings.NewReader(body))
		rec := httptest.NewRecorder()

		h.Routes().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "ALREADY_EXISTS")
	})
}

func TestAuthHandler_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	hashStr := string(hash)

	activeUser := &model.User{ID: 3, Email: "agent@example.com", PasswordHash: &hashStr, IsActive: true, Role: model.RoleAgent}

	t.Run("round trip: login token works on /me", func(t *testing.T) {
		userRepo := &mockUserRepo{
			findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
				return activeUser, nil
			},
			findActiveByIDFunc: func(ctx context.Context, id int64) (*model.User, error) {
				if id == activeUser.ID {
					return activeUser, nil
				}
				return nil, nil
			},
		}
		h := newAuthHandler(userRepo)
		router := h.Routes()

		body := `{"email":"agent@example.com","password":"secret-pass"}`
		req := httptest.NewRequest("POST", "/login", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.Token)

		meReq := httptest.NewRequest("GET", "/me", nil)
		meReq.Header.Set("Authorization", "Bearer "+resp.Token)
		meRec := httptest.NewRecorder()
		router.ServeHTTP(meRec, meReq)

		require.Equal(t, http.StatusOK, meRec.Code)
		assert.Contains(t, meRec.Body.String(), `"agent@example.com"`)
	})

	t.Run("bad password is a plain 401", func(t *testing.T) {
		userRepo := &mockUserRepo{
			findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
				return activeUser, nil
			},
		}
		h := newAuthHandler(userRepo)

		body := `{"email":"agent@example.com","password":"wrong"}`
		req := httptest.NewRequest("POST", "/login", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.Routes().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid credentials")
	})

	t.Run("/me without token is 401", func(t *testing.T) {
		h := newAuthHandler(&mockUserRepo{})

		req := httptest.NewRequest("GET", "/me", nil)
		rec := httptest.NewRecorder()
		h.Routes().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAuthHandler_UpdateProfile(t *testing.T) {
	activeUser := &model.User{ID: 5, Email: "me@example.com", IsActive: true, Role: model.RoleAgent}

	t.Run("applies patch for the bearer", func(t *testing.T) {
		userRepo := &mockUserRepo{
			findActiveByIDFunc: func(ctx context.Context, id int64) (*model.User, error) {
				return activeUser, nil
			},
			updateProfileFunc: func(ctx context.Context, id int64, patch model.UserProfilePatch) (*model.User, error) {
				updated := *activeUser
				updated.FirstName = *patch.FirstName
				return &updated, nil
			},
		}
		h := newAuthHandler(userRepo)

		tok, err := testTokens().Issue(activeUser.ID)
		require.NoError(t, err)

		req := httptest.NewRequest("PUT", "/profile", strings.NewReader(`{"first_name":"New"}`))
		req.Header.Set("Authorization", "Bearer "+tok)
		rec := httptest.NewRecorder()
		h.Routes().ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"New"`)
	})

	t.Run("invalid replacement email is rejected", func(t *testing.T) {
		userRepo := &mockUserRepo{
			findActiveByIDFunc: func(ctx context.Context, id int64) (*model.User, error) {
				return activeUser, nil
			},
		}
		h := newAuthHandler(userRepo)

		tok, err := testTokens().Issue(activeUser.ID)
		require.NoError(t, err)

		req := httptest.NewRequest("PUT", "/profile", strings.NewReader(`{"email":"nope"}`))
		req.Header.Set("Authorization", "Bearer "+tok)
		rec := httptest.NewRecorder()
		h.Routes().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
