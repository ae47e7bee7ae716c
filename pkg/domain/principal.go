package domain

// Principal is an authenticated caller: identity, display name, and role.
// The core does not own principals; the identity collaborator supplies one
// per call. A nil Principal means an anonymous caller.
type Principal struct {
	ID   PrincipalID
	Name string
	Role Role
}

// IsAdmin reports whether the principal holds the Admin role.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}
