// Package audit is the append-only trail of every mutating action in the
// system. Entries are immutable once recorded and listed newest-first.
// Audit completeness is a correctness requirement, not best-effort logging:
// a failed audit write fails the operation that caused it.
package audit

import (
	"time"

	"veridoc/pkg/domain"
)

// EntityKind classifies what an audit entry is about.
type EntityKind string

const (
	EntityDocument     EntityKind = "document"
	EntityDocumentType EntityKind = "documentType"
	EntityWorkflow     EntityKind = "workflow"
	EntityAuth         EntityKind = "auth"
	EntitySignature    EntityKind = "signature"
)

// Action names recorded by the core. Signature actions are derived with
// SignatureAction rather than enumerated per meaning.
const (
	ActionCreate          = "create"
	ActionSubmitForReview = "submit_for_review"
	ActionNewVersion      = "new_version"
	ActionLogin           = "login"
)

// SignatureAction returns the audit action name for a signature meaning,
// e.g. e_signature_approval.
func SignatureAction(meaning domain.Meaning) string {
	return "e_signature_" + meaning.String()
}

// Entry is one immutable audit record. Actor fields are optional because
// some recorded events (none today, but the model allows it) can be
// system-initiated.
type Entry struct {
	ID        domain.AuditEventID
	Timestamp time.Time
	ActorID   domain.PrincipalID
	ActorName string
	ActorRole domain.Role
	Action    string
	Entity    EntityKind
	EntityID  string
	Details   map[string]any
	RequestID string
}
