package handler

import (
	"strings"

	"veridoc/pkg/domain"
	dErrors "veridoc/pkg/domain-errors"
)

// CreateDocumentRequest is the HTTP request body for POST /documents.
type CreateDocumentRequest struct {
	Title    string `json:"title"`
	Number   string `json:"number"`
	Type     string `json:"type"`
	Category string `json:"category"`
	Security string `json:"security"`

	parsedSecurity domain.SecurityClass
}

// Validate normalizes and parses the request.
func (r *CreateDocumentRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	r.Title = strings.TrimSpace(r.Title)
	r.Number = strings.TrimSpace(r.Number)
	r.Type = strings.TrimSpace(r.Type)
	r.Category = strings.TrimSpace(r.Category)
	r.Security = strings.TrimSpace(r.Security)

	if r.Type == "" {
		return dErrors.New(dErrors.CodeValidation, "type is required")
	}
	if r.Security == "" {
		return dErrors.New(dErrors.CodeValidation, "security is required")
	}
	security, err := domain.ParseSecurityClass(r.Security)
	if err != nil {
		return err
	}
	r.parsedSecurity = security
	return nil
}

// ParsedSecurity returns the security class parsed during Validate.
func (r *CreateDocumentRequest) ParsedSecurity() domain.SecurityClass {
	return r.parsedSecurity
}

// SignDocumentRequest is the HTTP request body for
// POST /documents/{id}/signatures.
type SignDocumentRequest struct {
	Meaning string `json:"meaning"`
	Reason  string `json:"reason"`

	parsedMeaning domain.Meaning
}

// Validate normalizes and parses the request.
func (r *SignDocumentRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	r.Meaning = strings.TrimSpace(r.Meaning)
	r.Reason = strings.TrimSpace(r.Reason)
	if r.Meaning == "" {
		return dErrors.New(dErrors.CodeValidation, "meaning is required")
	}
	meaning, err := domain.ParseMeaning(r.Meaning)
	if err != nil {
		return err
	}
	r.parsedMeaning = meaning
	return nil
}

// ParsedMeaning returns the meaning parsed during Validate.
func (r *SignDocumentRequest) ParsedMeaning() domain.Meaning {
	return r.parsedMeaning
}
