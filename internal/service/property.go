package service

import (
	"context"
	"fmt"

	"github.com/sigma-matching/api-server-go/internal/audit"
	apperrors "github.com/sigma-matching/api-server-go/internal/errors"
	"github.com/sigma-matching/api-server-go/internal/model"
	"github.com/sigma-matching/api-server-go/internal/repository"
)

type PropertyService struct {
	propertyRepo repository.PropertyRepository
	recorder     *audit.Recorder
}

func NewPropertyService(propertyRepo repository.PropertyRepository, recorder *audit.Recorder) *PropertyService {
	return &PropertyService{propertyRepo: propertyRepo, recorder: recorder}
}

// UpdateStatus moves a matched property through its review pipeline. The
// property is visible only through the caller's leads.
func (s *PropertyService) UpdateStatus(ctx context.Context, caller *model.User, id int64, status model.PropertyStatus, meta audit.RequestMeta) (*model.Property, error) {
	if status == "" {
		return nil, apperrors.MissingRequired("status")
	}
	if !status.Valid() {
		return nil, apperrors.InvalidInput("status", fmt.Sprintf("must be one of %v", model.ValidPropertyStatuses))
	}

	property, err := s.propertyRepo.FindByID(ctx, id, repository.ScopeFor(caller))
	if err != nil {
		return nil, fmt.Errorf("find property: %w", err)
	}
	if property == nil {
		return nil, apperrors.NotFound("Property")
	}

	property, err = s.propertyRepo.UpdateStatus(ctx, property.ID, status)
	if err != nil {
		return nil, fmt.Errorf("update property status: %w", err)
	}
	if property == nil {
		return nil, apperrors.NotFound("Property")
	}

	s.recorder.Record(caller.ID, model.ActionPropertyUpdateStatus, map[string]any{
		"property_id": property.ID,
		"status":      status,
	}, meta)

	return property, nil
}
