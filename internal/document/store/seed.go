package store

import (
	"context"

	"veridoc/internal/document/models"
	"veridoc/pkg/domain"
)

// TypeStore is the reference-data store for document types.
type TypeStore interface {
	Create(ctx context.Context, dt *models.DocumentType) error
	List(ctx context.Context) ([]*models.DocumentType, error)
	ExistsByLabel(ctx context.Context, label string) (bool, error)
}

var defaultTypes = []struct {
	label       string
	description string
}{
	{"Manual", "Quality Manual"},
	{"procedure", "Standard Operating Procedure"},
	{"process", "Process Description"},
	{"work instruction", "Work Instruction"},
	{"policy", "Policy Document"},
	{"checklist", "Checklist"},
	{"format", "Format"},
	{"template", "Template"},
	{"masters", "Master Records"},
}

// SeedDocumentTypes registers the standard pharma document types. Already
// registered labels are left untouched, so repeated startups are safe.
func SeedDocumentTypes(ctx context.Context, ts TypeStore) error {
	for _, dt := range defaultTypes {
		exists, err := ts.ExistsByLabel(ctx, dt.label)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if err := ts.Create(ctx, &models.DocumentType{
			ID:          domain.NewDocumentTypeID(),
			Type:        dt.label,
			Description: dt.description,
		}); err != nil {
			return err
		}
	}
	return nil
}
