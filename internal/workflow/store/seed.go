package store

import (
	"context"

	"veridoc/internal/workflow/models"
	"veridoc/pkg/domain"
)

// SeedDefaultWorkflow registers the standard pharma review chain if it is
// not already present. Safe to call on every startup.
func SeedDefaultWorkflow(ctx context.Context, s Store) error {
	const name = "Default Pharma Workflow"

	exists, err := s.ExistsByName(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	wf, err := models.NewWorkflow(domain.NewWorkflowID(), name, "default", []models.Step{
		{Name: "Peer Review", Role: domain.RoleReviewer, Meaning: domain.MeaningReview},
		{Name: "Quality Approval", Role: domain.RoleQA, Meaning: domain.MeaningApproval},
		{Name: "Formal Approval", Role: domain.RoleApprover, Meaning: domain.MeaningApproval},
		{Name: "Issuance", Role: domain.RoleIssuer, Meaning: domain.MeaningIssuance},
	})
	if err != nil {
		return err
	}
	return s.Create(ctx, wf)
}
