package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/sigma-matching/api-server-go/internal/audit"
	apperrors "github.com/sigma-matching/api-server-go/internal/errors"
	"github.com/sigma-matching/api-server-go/internal/model"
	"github.com/sigma-matching/api-server-go/internal/repository"
)

type AdminService struct {
	userRepo      repository.UserRepository
	statsRepo     repository.StatsRepository
	actionLogRepo repository.ActionLogRepository
	recorder      *audit.Recorder
}

func NewAdminService(
	userRepo repository.UserRepository,
	statsRepo repository.StatsRepository,
	actionLogRepo repository.ActionLogRepository,
	recorder *audit.Recorder,
) *AdminService {
	return &AdminService{
		userRepo:      userRepo,
		statsRepo:     statsRepo,
		actionLogRepo: actionLogRepo,
		recorder:      recorder,
	}
}

func (s *AdminService) Stats(ctx context.Context) (*model.AdminStats, error) {
	stats, err := s.statsRepo.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect stats: %w", err)
	}
	return stats, nil
}

// ListUsers returns one page plus the total account count, so clients can
// page past the first page.
func (s *AdminService) ListUsers(ctx context.Context, limit, offset int) ([]model.User, int, error) {
	users, err := s.userRepo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	total, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	return users, total, nil
}

// UserActivity returns an account's most recent audit trail entries.
func (s *AdminService) UserActivity(ctx context.Context, id int64, limit int) ([]model.ActionLog, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, apperrors.NotFound("User")
	}

	entries, err := s.actionLogRepo.FindRecentByUser(ctx, user.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("list user activity: %w", err)
	}
	return entries, nil
}

// UpdateUser lets an admin change another account's role or active flag.
// Self-demotion and self-deactivation are rejected so the last admin cannot
// lock the instance.
func (s *AdminService) UpdateUser(ctx context.Context, caller *model.User, id int64, patch model.AdminUserPatch, meta audit.RequestMeta) (*model.User, error) {
	if patch.IsEmpty() {
		return nil, apperrors.ValidationError("No valid fields to update")
	}
	if patch.Role != nil && *patch.Role != model.RoleAgent && *patch.Role != model.RoleAdmin {
		return nil, apperrors.InvalidInput("role", "must be agent or admin")
	}
	if id == caller.ID {
		if patch.IsActive != nil && !*patch.IsActive {
			return nil, apperrors.InvalidInput("is_active", "cannot deactivate your own account")
		}
		if patch.Role != nil && *patch.Role != model.RoleAdmin {
			return nil, apperrors.InvalidInput("role", "cannot demote your own account")
		}
	}

	user, err := s.userRepo.AdminUpdate(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("admin update user: %w", err)
	}
	if user == nil {
		return nil, apperrors.NotFound("User")
	}

	s.recorder.Record(caller.ID, model.ActionAdminUserUpdate, map[string]any{
		"target_user_id": user.ID,
	}, meta)

	log.Info().Int64("adminId", caller.ID).Int64("targetId", user.ID).Msg("user updated by admin")

	return user, nil
}
