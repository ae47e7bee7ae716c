package domain

import dErrors "veridoc/pkg/domain-errors"

// Role is the fixed set of principal roles recognized by the system.
type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleAuthor   Role = "Author"
	RoleReviewer Role = "Reviewer"
	RoleApprover Role = "Approver"
	RoleIssuer   Role = "Issuer"
	RoleQA       Role = "QA"
	RoleViewer   Role = "Viewer"
)

// validRoles is the single source of truth for role membership.
var validRoles = map[Role]bool{
	RoleAdmin:    true,
	RoleAuthor:   true,
	RoleReviewer: true,
	RoleApprover: true,
	RoleIssuer:   true,
	RoleQA:       true,
	RoleViewer:   true,
}

// ParseRole constructs a Role from external input.
//
// Errors: returns CodeInvalidInput when the value is empty or unsupported.
func ParseRole(s string) (Role, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "role cannot be empty")
	}
	r := Role(s)
	if !r.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid role: "+s)
	}
	return r, nil
}

// IsValid checks if the role is one of the supported enum values.
func (r Role) IsValid() bool { return validRoles[r] }

func (r Role) String() string { return string(r) }

// Roles returns all supported roles in display order.
func Roles() []Role {
	return []Role{RoleAdmin, RoleAuthor, RoleReviewer, RoleApprover, RoleIssuer, RoleQA, RoleViewer}
}
