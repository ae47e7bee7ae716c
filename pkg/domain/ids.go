// Package domain holds the typed identifiers and value objects of the
// document control system. Construct values via the Parse functions at trust
// boundaries; direct casting bypasses validation.
package domain

import (
	"github.com/google/uuid"

	dErrors "veridoc/pkg/domain-errors"
)

// DocumentID identifies a controlled document.
type DocumentID uuid.UUID

// SignatureID identifies an electronic signature record.
type SignatureID uuid.UUID

// AuditEventID identifies an audit trail entry.
type AuditEventID uuid.UUID

// PrincipalID identifies an authenticated principal.
type PrincipalID uuid.UUID

// DocumentTypeID identifies a document type reference record.
type DocumentTypeID uuid.UUID

// WorkflowID identifies a workflow configuration.
type WorkflowID uuid.UUID

func NewDocumentID() DocumentID         { return DocumentID(uuid.New()) }
func NewSignatureID() SignatureID       { return SignatureID(uuid.New()) }
func NewAuditEventID() AuditEventID     { return AuditEventID(uuid.New()) }
func NewPrincipalID() PrincipalID       { return PrincipalID(uuid.New()) }
func NewDocumentTypeID() DocumentTypeID { return DocumentTypeID(uuid.New()) }
func NewWorkflowID() WorkflowID         { return WorkflowID(uuid.New()) }

func (id DocumentID) String() string     { return uuid.UUID(id).String() }
func (id SignatureID) String() string    { return uuid.UUID(id).String() }
func (id AuditEventID) String() string   { return uuid.UUID(id).String() }
func (id PrincipalID) String() string    { return uuid.UUID(id).String() }
func (id DocumentTypeID) String() string { return uuid.UUID(id).String() }
func (id WorkflowID) String() string     { return uuid.UUID(id).String() }

// The ID types marshal as canonical UUID strings so they can live inside
// JSON documents (cache entries, JSONB columns) without custom mapping.

func (id DocumentID) MarshalText() ([]byte, error)     { return []byte(id.String()), nil }
func (id SignatureID) MarshalText() ([]byte, error)    { return []byte(id.String()), nil }
func (id AuditEventID) MarshalText() ([]byte, error)   { return []byte(id.String()), nil }
func (id PrincipalID) MarshalText() ([]byte, error)    { return []byte(id.String()), nil }
func (id DocumentTypeID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id WorkflowID) MarshalText() ([]byte, error)     { return []byte(id.String()), nil }

func (id *DocumentID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	if err != nil {
		return err
	}
	*id = DocumentID(u)
	return nil
}

func (id *SignatureID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	if err != nil {
		return err
	}
	*id = SignatureID(u)
	return nil
}

func (id *AuditEventID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	if err != nil {
		return err
	}
	*id = AuditEventID(u)
	return nil
}

func (id *PrincipalID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	if err != nil {
		return err
	}
	*id = PrincipalID(u)
	return nil
}

func (id *DocumentTypeID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	if err != nil {
		return err
	}
	*id = DocumentTypeID(u)
	return nil
}

func (id *WorkflowID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	if err != nil {
		return err
	}
	*id = WorkflowID(u)
	return nil
}

func (id DocumentID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id PrincipalID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id SignatureID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id AuditEventID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// ParseDocumentID validates and returns a DocumentID from external input.
func ParseDocumentID(s string) (DocumentID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return DocumentID{}, dErrors.New(dErrors.CodeInvalidInput, "invalid document id")
	}
	return DocumentID(u), nil
}

// ParsePrincipalID validates and returns a PrincipalID from external input.
func ParsePrincipalID(s string) (PrincipalID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return PrincipalID{}, dErrors.New(dErrors.CodeInvalidInput, "invalid principal id")
	}
	return PrincipalID(u), nil
}

// ParseDocumentTypeID validates and returns a DocumentTypeID, typically when
// rehydrating reference records from storage.
func ParseDocumentTypeID(s string) (DocumentTypeID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return DocumentTypeID{}, dErrors.New(dErrors.CodeMalformed, "invalid document type id")
	}
	return DocumentTypeID(u), nil
}

// ParseWorkflowID validates and returns a WorkflowID.
func ParseWorkflowID(s string) (WorkflowID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return WorkflowID{}, dErrors.New(dErrors.CodeMalformed, "invalid workflow id")
	}
	return WorkflowID(u), nil
}
