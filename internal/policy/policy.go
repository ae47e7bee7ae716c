// Package policy maps (security classification, principal role) to read
// visibility. It is a pure function with no side effects, consulted by the
// listing and detail read paths before a document reaches the caller.
package policy

import "veridoc/pkg/domain"

var confidentialRoles = map[domain.Role]bool{
	domain.RoleAdmin: true,
	domain.RoleQA:    true,
}

var restrictedRoles = map[domain.Role]bool{
	domain.RoleAdmin:    true,
	domain.RoleQA:       true,
	domain.RoleReviewer: true,
	domain.RoleApprover: true,
	domain.RoleIssuer:   true,
}

// Visible reports whether a principal may read a document with the given
// security classification. A nil principal is an anonymous caller, who only
// ever sees public documents. Any classification outside the known tiers
// behaves like internal: visible to any authenticated principal.
func Visible(security domain.SecurityClass, principal *domain.Principal) bool {
	if security == domain.SecurityPublic {
		return true
	}
	if principal == nil {
		return false
	}
	switch security {
	case domain.SecurityConfidential:
		return confidentialRoles[principal.Role]
	case domain.SecurityRestricted:
		return restrictedRoles[principal.Role]
	default:
		return true
	}
}
