package domain

import dErrors "veridoc/pkg/domain-errors"

// SecurityClass is a document's confidentiality tier. It gates read
// visibility by principal role (see internal/policy).
type SecurityClass string

const (
	SecurityConfidential SecurityClass = "confidential"
	SecurityInternal     SecurityClass = "internal"
	SecurityRestricted   SecurityClass = "restricted"
	SecurityPublic       SecurityClass = "public"
)

var validSecurityClasses = map[SecurityClass]bool{
	SecurityConfidential: true,
	SecurityInternal:     true,
	SecurityRestricted:   true,
	SecurityPublic:       true,
}

// ParseSecurityClass constructs a SecurityClass from external input.
func ParseSecurityClass(s string) (SecurityClass, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "security class cannot be empty")
	}
	c := SecurityClass(s)
	if !c.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid security class: "+s)
	}
	return c, nil
}

func (c SecurityClass) IsValid() bool { return validSecurityClasses[c] }

func (c SecurityClass) String() string { return string(c) }
