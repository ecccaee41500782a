package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/sigma-matching/api-server-go/internal/audit"
	"github.com/sigma-matching/api-server-go/internal/config"
	apperrors "github.com/sigma-matching/api-server-go/internal/errors"
	"github.com/sigma-matching/api-server-go/internal/model"
	"github.com/sigma-matching/api-server-go/internal/repository"
	"github.com/sigma-matching/api-server-go/internal/token"
)

// errInvalidCredentials is deliberately identical for an unknown email and a
// wrong password, so login responses carry no user-existence oracle.
func errInvalidCredentials() error {
	return apperrors.Unauthorized("Invalid credentials")
}

type AuthService struct {
	userRepo   repository.UserRepository
	tokens     *token.Manager
	recorder   *audit.Recorder
	bcryptCost int

	googleUserinfoURL string
	httpClient        *http.Client
}

func NewAuthService(
	userRepo repository.UserRepository,
	tokens *token.Manager,
	recorder *audit.Recorder,
	bcryptCost int,
	googleUserinfoURL string,
) *AuthService {
	if bcryptCost <= 0 {
		bcryptCost = 12
	}
	return &AuthService{
		userRepo:          userRepo,
		tokens:            tokens,
		recorder:          recorder,
		bcryptCost:        bcryptCost,
		googleUserinfoURL: googleUserinfoURL,
		httpClient:        &http.Client{Timeout: config.GoogleVerifyTimeout},
	}
}

type RegisterParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

func (s *AuthService) Register(ctx context.Context, params RegisterParams, meta audit.RequestMeta) (string, *model.User, error) {
	if len(params.Password) < 6 {
		return "", nil, apperrors.InvalidInput("password", "must be at least 6 characters")
	}

	existing, err := s.userRepo.FindByEmail(ctx, params.Email)
	if err != nil {
		return "", nil, fmt.Errorf("find user by email: %w", err)
	}
	if existing != nil {
		return "", nil, apperrors.AlreadyExists("Email")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), s.bcryptCost)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}
	hashStr := string(hash)

	user, err := s.userRepo.Create(ctx, model.CreateUserParams{
		Email:        params.Email,
		PasswordHash: &hashStr,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Role:         model.RoleAgent,
	})
	if err != nil {
		return "", nil, fmt.Errorf("create user: %w", err)
	}

	tok, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	s.recorder.Record(user.ID, model.ActionUserRegister, map[string]any{"email": user.Email}, meta)
	log.Info().Int64("userId", user.ID).Msg("user registered")

	return tok, user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string, meta audit.RequestMeta) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("find user by email: %w", err)
	}
	if user == nil || user.PasswordHash == nil {
		return "", nil, errInvalidCredentials()
	}

	if bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)) != nil {
		return "", nil, errInvalidCredentials()
	}

	if !user.IsActive {
		return "", nil, apperrors.Unauthorized("Account disabled")
	}

	tok, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	s.recorder.Record(user.ID, model.ActionUserLogin, map[string]any{"email": user.Email}, meta)

	return tok, user, nil
}

type googleUserinfo struct {
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
}

// GoogleLogin exchanges a Google access token for a local session, creating
// the user on first sighting of that federated email.
func (s *AuthService) GoogleLogin(ctx context.Context, accessToken string, meta audit.RequestMeta) (string, *model.User, error) {
	info, err := s.fetchGoogleUserinfo(ctx, accessToken)
	if err != nil {
		return "", nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, info.Email)
	if err != nil {
		return "", nil, fmt.Errorf("find user by email: %w", err)
	}

	if user == nil {
		user, err = s.userRepo.Create(ctx, model.CreateUserParams{
			Email:     info.Email,
			FirstName: info.GivenName,
			LastName:  info.FamilyName,
			Role:      model.RoleAgent,
		})
		if err != nil {
			return "", nil, fmt.Errorf("create federated user: %w", err)
		}
		log.Info().Int64("userId", user.ID).Msg("federated user provisioned")
	}

	if !user.IsActive {
		return "", nil, apperrors.Unauthorized("Account disabled")
	}

	tok, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	s.recorder.Record(user.ID, model.ActionGoogleLogin, map[string]any{"email": user.Email}, meta)

	return tok, user, nil
}

func (s *AuthService) fetchGoogleUserinfo(ctx context.Context, accessToken string) (*googleUserinfo, error) {
	reqURL := fmt.Sprintf("%s?access_token=%s", s.googleUserinfoURL, url.QueryEscape(accessToken))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, apperrors.External("google", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.External("google", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.Unauthorized("Invalid Google token")
	}

	var info googleUserinfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, apperrors.External("google", err)
	}
	if info.Email == "" {
		return nil, apperrors.Unauthorized("Invalid Google token")
	}

	return &info, nil
}

// UpdateProfile applies the caller's own profile patch.
func (s *AuthService) UpdateProfile(ctx context.Context, caller *model.User, patch model.UserProfilePatch, meta audit.RequestMeta) (*model.User, error) {
	if patch.IsEmpty() {
		return nil, apperrors.ValidationError("No valid fields to update")
	}

	if patch.Email != nil && *patch.Email != caller.Email {
		existing, err := s.userRepo.FindByEmail(ctx, *patch.Email)
		if err != nil {
			return nil, fmt.Errorf("find user by email: %w", err)
		}
		if existing != nil {
			return nil, apperrors.AlreadyExists("Email")
		}
	}

	user, err := s.userRepo.UpdateProfile(ctx, caller.ID, patch)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if user == nil {
		return nil, apperrors.NotFound("User")
	}

	s.recorder.Record(caller.ID, model.ActionProfileUpdate, nil, meta)

	return user, nil
}
