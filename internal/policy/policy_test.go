package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"veridoc/pkg/domain"
)

func principal(role domain.Role) *domain.Principal {
	return &domain.Principal{ID: domain.NewPrincipalID(), Name: "tester", Role: role}
}

func TestVisible(t *testing.T) {
	allRoles := domain.Roles()

	t.Run("public documents are visible to everyone", func(t *testing.T) {
		assert.True(t, Visible(domain.SecurityPublic, nil))
		for _, role := range allRoles {
			assert.True(t, Visible(domain.SecurityPublic, principal(role)), "role %s", role)
		}
	})

	t.Run("anonymous callers see only public documents", func(t *testing.T) {
		for _, security := range []domain.SecurityClass{
			domain.SecurityInternal,
			domain.SecurityRestricted,
			domain.SecurityConfidential,
		} {
			assert.False(t, Visible(security, nil), "security %s", security)
		}
	})

	t.Run("internal documents are visible to any authenticated role", func(t *testing.T) {
		for _, role := range allRoles {
			assert.True(t, Visible(domain.SecurityInternal, principal(role)), "role %s", role)
		}
	})

	t.Run("confidential documents are limited to Admin and QA", func(t *testing.T) {
		allowed := map[domain.Role]bool{domain.RoleAdmin: true, domain.RoleQA: true}
		for _, role := range allRoles {
			assert.Equal(t, allowed[role], Visible(domain.SecurityConfidential, principal(role)), "role %s", role)
		}
	})

	t.Run("restricted documents exclude Author and Viewer", func(t *testing.T) {
		denied := map[domain.Role]bool{domain.RoleAuthor: true, domain.RoleViewer: true}
		for _, role := range allRoles {
			assert.Equal(t, !denied[role], Visible(domain.SecurityRestricted, principal(role)), "role %s", role)
		}
	})
}
