package models

import (
	"veridoc/pkg/domain"
	dErrors "veridoc/pkg/domain-errors"
)

// DocumentType is reference data consulted at document creation. Read-only
// to the lifecycle logic; Admins may add new types.
type DocumentType struct {
	ID          domain.DocumentTypeID `json:"id"`
	Type        string                `json:"type"`
	Description string                `json:"description"`
}

// NewDocumentType validates and constructs a document type.
func NewDocumentType(id domain.DocumentTypeID, typeLabel, description string) (*DocumentType, error) {
	if len(typeLabel) < 2 {
		return nil, dErrors.New(dErrors.CodeValidation, "type must be at least 2 characters")
	}
	if len(description) < 2 {
		return nil, dErrors.New(dErrors.CodeValidation, "description must be at least 2 characters")
	}
	return &DocumentType{ID: id, Type: typeLabel, Description: description}, nil
}
