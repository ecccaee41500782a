package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/sigma-matching/api-server-go/internal/audit"
	apperrors "github.com/sigma-matching/api-server-go/internal/errors"
	"github.com/sigma-matching/api-server-go/internal/model"
	"github.com/sigma-matching/api-server-go/internal/repository"
	"github.com/sigma-matching/api-server-go/internal/workflow"
)

type LeadService struct {
	leadRepo     repository.LeadRepository
	propertyRepo repository.PropertyRepository
	recorder     *audit.Recorder
	notifier     *workflow.Notifier
}

func NewLeadService(
	leadRepo repository.LeadRepository,
	propertyRepo repository.PropertyRepository,
	recorder *audit.Recorder,
	notifier *workflow.Notifier,
) *LeadService {
	return &LeadService{
		leadRepo:     leadRepo,
		propertyRepo: propertyRepo,
		recorder:     recorder,
		notifier:     notifier,
	}
}

func (s *LeadService) List(ctx context.Context, caller *model.User) ([]model.Lead, error) {
	leads, err := s.leadRepo.FindAll(ctx, repository.ScopeFor(caller))
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	return leads, nil
}

func (s *LeadService) Get(ctx context.Context, caller *model.User, id int64) (*model.Lead, error) {
	lead, err := s.leadRepo.FindByID(ctx, id, repository.ScopeFor(caller))
	if err != nil {
		return nil, fmt.Errorf("find lead: %w", err)
	}
	if lead == nil {
		return nil, apperrors.NotFound("Lead")
	}
	return lead, nil
}

// Create stamps the caller as owner, records the audit entry and kicks off
// the matching workflow for the new lead.
func (s *LeadService) Create(ctx context.Context, caller *model.User, params model.CreateLeadParams, meta audit.RequestMeta) (*model.Lead, error) {
	if params.BudgetMax <= 0 {
		return nil, apperrors.InvalidInput("budget_max", "must be a positive amount")
	}
	if len(params.Cities) == 0 {
		return nil, apperrors.MissingRequired("cities")
	}
	if params.Urgency == "" {
		params.Urgency = model.UrgencyMedium
	}
	if !params.Urgency.Valid() {
		return nil, apperrors.InvalidInput("urgency", "must be one of LOW, MEDIUM, HIGH")
	}

	lead, err := s.leadRepo.Create(ctx, caller.ID, params)
	if err != nil {
		return nil, fmt.Errorf("create lead: %w", err)
	}

	s.recorder.Record(caller.ID, model.ActionLeadCreate, map[string]any{
		"lead_id":    lead.ID,
		"last_name":  lead.LastName,
		"first_name": lead.FirstName,
	}, meta)

	s.notifier.Trigger(workflow.WorkflowLeadCreated, lead)

	log.Info().Int64("leadId", lead.ID).Int64("agentId", caller.ID).Msg("lead created")

	return lead, nil
}

func (s *LeadService) Update(ctx context.Context, caller *model.User, id int64, patch model.LeadPatch, meta audit.RequestMeta) (*model.Lead, error) {
	if patch.IsEmpty() {
		return nil, apperrors.ValidationError("No valid fields to update")
	}
	if patch.BudgetMax != nil && *patch.BudgetMax <= 0 {
		return nil, apperrors.InvalidInput("budget_max", "must be a positive amount")
	}
	// a present-but-empty array would erase the last remaining city
	if patch.Cities != nil && len(patch.Cities) == 0 {
		return nil, apperrors.MissingRequired("cities")
	}
	if patch.Urgency != nil && !patch.Urgency.Valid() {
		return nil, apperrors.InvalidInput("urgency", "must be one of LOW, MEDIUM, HIGH")
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, apperrors.InvalidInput("status", "must be one of IN_PROGRESS, DONE, SUSPENDED")
	}

	lead, err := s.leadRepo.Update(ctx, id, repository.ScopeFor(caller), patch)
	if err != nil {
		return nil, fmt.Errorf("update lead: %w", err)
	}
	if lead == nil {
		return nil, apperrors.NotFound("Lead")
	}

	s.recorder.Record(caller.ID, model.ActionLeadUpdate, map[string]any{"lead_id": lead.ID}, meta)

	return lead, nil
}

// ListProperties resolves the parent lead under the caller's scope first, so
// properties of another agent's lead are indistinguishable from a missing
// lead.
func (s *LeadService) ListProperties(ctx context.Context, caller *model.User, leadID int64) ([]model.Property, error) {
	lead, err := s.leadRepo.FindByID(ctx, leadID, repository.ScopeFor(caller))
	if err != nil {
		return nil, fmt.Errorf("find lead: %w", err)
	}
	if lead == nil {
		return nil, apperrors.NotFound("Lead")
	}

	properties, err := s.propertyRepo.FindByLeadID(ctx, lead.ID)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	return properties, nil
}
