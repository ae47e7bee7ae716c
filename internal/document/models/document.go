package models

import (
	"time"

	"veridoc/pkg/domain"
	dErrors "veridoc/pkg/domain-errors"
)

// VersionEntry is one snapshot in a document's version history.
type VersionEntry struct {
	Version   string    `json:"version"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `json:"created_by"`
}

// Document is the aggregate root for a controlled document.
//
// Invariants:
//   - Versions is non-empty for any persisted document
//   - Version always equals the label of the last Versions entry
//   - Status is one of the lifecycle statuses; a new document starts in Draft
//   - Issuance fields (IssuedAt, IssuedBy, IssuerRole) are populated only
//     once an issuance signature has been applied
//
// Versions is append-only. Lifecycle transitions are applied through the
// Apply* methods inside a store Execute callback so validation and mutation
// happen under the same lock.
type Document struct {
	ID       domain.DocumentID    `json:"id"`
	Title    string               `json:"title"`
	Number   string               `json:"number"`
	Version  string               `json:"version"`
	Type     string               `json:"type"`
	Category string               `json:"category"`
	Security domain.SecurityClass `json:"security"`
	Status   domain.Status        `json:"status"`

	CreatedAt  time.Time   `json:"created_at"`
	CreatedBy  string      `json:"created_by"`
	IssuedAt   *time.Time  `json:"issued_at,omitempty"`
	IssuedBy   string      `json:"issued_by,omitempty"`
	IssuerRole domain.Role `json:"issuer_role,omitempty"`

	Versions []VersionEntry `json:"versions"`
}

// NewDocument validates the inputs and returns a Draft document at the
// initial version with a single history entry.
func NewDocument(id domain.DocumentID, title, number, docType, category string, security domain.SecurityClass, createdBy string, now time.Time) (*Document, error) {
	if len(title) < 3 {
		return nil, dErrors.New(dErrors.CodeValidation, "title must be at least 3 characters")
	}
	if len(number) < 2 {
		return nil, dErrors.New(dErrors.CodeValidation, "document number must be at least 2 characters")
	}
	if len(category) < 2 {
		return nil, dErrors.New(dErrors.CodeValidation, "category must be at least 2 characters")
	}
	if !security.IsValid() {
		return nil, dErrors.New(dErrors.CodeValidation, "invalid security class: "+security.String())
	}
	return &Document{
		ID:        id,
		Title:     title,
		Number:    number,
		Version:   domain.InitialVersion,
		Type:      docType,
		Category:  category,
		Security:  security,
		Status:    domain.StatusDraft,
		CreatedAt: now,
		CreatedBy: createdBy,
		Versions: []VersionEntry{{
			Version:   domain.InitialVersion,
			Title:     title,
			CreatedAt: now,
			CreatedBy: createdBy,
		}},
	}, nil
}

// ApplySubmitForReview moves the document into review. There is no
// current-state precondition: any status may be resubmitted.
func (d *Document) ApplySubmitForReview() {
	d.Status = domain.StatusInReview
}

// NextVersion returns the label a minor bump would produce without mutating
// the document. Use with ApplyVersionBump in Execute callbacks.
func (d *Document) NextVersion() (string, error) {
	return domain.NextMinorVersion(d.Version)
}

// ApplyVersionBump appends a history entry for the new label, carries the
// current title into the snapshot, and resets status to Draft.
func (d *Document) ApplyVersionBump(version, actorName string, now time.Time) {
	d.Version = version
	d.Versions = append(d.Versions, VersionEntry{
		Version:   version,
		Title:     d.Title,
		CreatedAt: now,
		CreatedBy: actorName,
	})
	d.Status = domain.StatusDraft
}

// ApplyMeaning applies the lifecycle side effect of a signature meaning.
// The mapping is deliberately narrow: review and change attestations are
// recorded but leave lifecycle untouched. No precondition on the current
// status is checked; any meaning may be applied from any state.
func (d *Document) ApplyMeaning(meaning domain.Meaning, actor domain.Principal, now time.Time) {
	switch meaning {
	case domain.MeaningApproval:
		d.Status = domain.StatusApproved
	case domain.MeaningIssuance:
		d.Status = domain.StatusEffective
		issuedAt := now
		d.IssuedAt = &issuedAt
		d.IssuedBy = actor.Name
		d.IssuerRole = actor.Role
	case domain.MeaningRetire:
		d.Status = domain.StatusObsolete
	case domain.MeaningReview, domain.MeaningChange:
		// attestation only
	}
}

// Clone returns a deep copy so in-memory stores never hand out aliased
// history slices.
func (d *Document) Clone() *Document {
	cp := *d
	cp.Versions = append([]VersionEntry{}, d.Versions...)
	if d.IssuedAt != nil {
		issuedAt := *d.IssuedAt
		cp.IssuedAt = &issuedAt
	}
	return &cp
}
