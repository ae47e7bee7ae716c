package domain

import dErrors "veridoc/pkg/domain-errors"

// Status is a document's position in the controlled lifecycle.
//
// A newly created document starts in Draft. Obsolete is reachable from any
// state via a retire signature and has no outgoing transitions.
type Status string

const (
	StatusDraft     Status = "Draft"
	StatusInReview  Status = "In Review"
	StatusApproved  Status = "Approved"
	StatusEffective Status = "Effective"
	StatusObsolete  Status = "Obsolete"
)

var validStatuses = map[Status]bool{
	StatusDraft:     true,
	StatusInReview:  true,
	StatusApproved:  true,
	StatusEffective: true,
	StatusObsolete:  true,
}

// ParseStatus constructs a Status from stored data.
//
// Errors: returns CodeMalformed because an unknown status can only come from
// a corrupted store record, never from caller input.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !validStatuses[st] {
		return "", dErrors.New(dErrors.CodeMalformed, "unknown lifecycle status: "+s)
	}
	return st, nil
}

func (s Status) IsValid() bool { return validStatuses[s] }

func (s Status) String() string { return string(s) }
