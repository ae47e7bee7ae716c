// Package service manages workflow and document type reference data.
// Reads are open to everyone; additions are Admin-only and audited.
package service

import (
	"context"
	"errors"
	"log/slog"

	"veridoc/internal/audit"
	docmodels "veridoc/internal/document/models"
	"veridoc/internal/workflow/models"
	"veridoc/pkg/domain"
	dErrors "veridoc/pkg/domain-errors"
	"veridoc/pkg/platform/sentinel"
	"veridoc/pkg/requestcontext"
)

// WorkflowStore persists workflow reference data.
type WorkflowStore interface {
	Create(ctx context.Context, wf *models.Workflow) error
	List(ctx context.Context) ([]*models.Workflow, error)
}

// TypeStore persists document type reference data.
type TypeStore interface {
	Create(ctx context.Context, dt *docmodels.DocumentType) error
	List(ctx context.Context) ([]*docmodels.DocumentType, error)
}

// Service exposes the reference-data operations.
type Service struct {
	workflows WorkflowStore
	types     TypeStore
	recorder  *audit.Recorder
	logger    *slog.Logger
}

// Option configures the Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// New constructs a Service.
func New(workflows WorkflowStore, types TypeStore, recorder *audit.Recorder, opts ...Option) *Service {
	s := &Service{workflows: workflows, types: types, recorder: recorder}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddWorkflow registers a new, empty workflow. Admin only.
func (s *Service) AddWorkflow(ctx context.Context, name, category string) (*models.Workflow, error) {
	actor, err := s.requireAdmin(ctx)
	if err != nil {
		return nil, err
	}

	wf, err := models.NewWorkflow(domain.NewWorkflowID(), name, category, nil)
	if err != nil {
		return nil, err
	}
	if err := s.workflows.Create(ctx, wf); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeValidation, "workflow name already in use")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeStoreFailure, "failed to store workflow")
	}

	if _, err := s.recorder.Record(ctx, audit.Entry{
		ActorID:   actor.ID,
		ActorName: actor.Name,
		ActorRole: actor.Role,
		Action:    audit.ActionCreate,
		Entity:    audit.EntityWorkflow,
		EntityID:  wf.ID.String(),
		Details:   map[string]any{"name": wf.Name, "category": wf.Category},
	}); err != nil {
		return nil, err
	}

	s.log(ctx, "workflow added", "workflow_id", wf.ID, "name", wf.Name)
	return wf, nil
}

// ListWorkflows returns all workflows.
func (s *Service) ListWorkflows(ctx context.Context) ([]*models.Workflow, error) {
	workflows, err := s.workflows.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStoreFailure, "failed to list workflows")
	}
	return workflows, nil
}

// AddType registers a new document type. Admin only.
func (s *Service) AddType(ctx context.Context, label, description string) (*docmodels.DocumentType, error) {
	actor, err := s.requireAdmin(ctx)
	if err != nil {
		return nil, err
	}

	dt, err := docmodels.NewDocumentType(domain.NewDocumentTypeID(), label, description)
	if err != nil {
		return nil, err
	}
	if err := s.types.Create(ctx, dt); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeValidation, "document type already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeStoreFailure, "failed to store document type")
	}

	if _, err := s.recorder.Record(ctx, audit.Entry{
		ActorID:   actor.ID,
		ActorName: actor.Name,
		ActorRole: actor.Role,
		Action:    audit.ActionCreate,
		Entity:    audit.EntityDocumentType,
		EntityID:  dt.ID.String(),
		Details:   map[string]any{"type": dt.Type},
	}); err != nil {
		return nil, err
	}

	s.log(ctx, "document type added", "type_id", dt.ID, "type", dt.Type)
	return dt, nil
}

// ListTypes returns all document types.
func (s *Service) ListTypes(ctx context.Context) ([]*docmodels.DocumentType, error) {
	types, err := s.types.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStoreFailure, "failed to list document types")
	}
	return types, nil
}

func (s *Service) requireAdmin(ctx context.Context) (*domain.Principal, error) {
	actor := requestcontext.Principal(ctx)
	if actor == nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	if !actor.IsAdmin() {
		return nil, dErrors.New(dErrors.CodeForbidden, "admin role required")
	}
	return actor, nil
}

func (s *Service) log(ctx context.Context, msg string, args ...any) {
	if s.logger == nil {
		return
	}
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		args = append(args, "request_id", requestID)
	}
	s.logger.InfoContext(ctx, msg, args...)
}
