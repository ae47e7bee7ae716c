package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veridoc/pkg/domain"
	dErrors "veridoc/pkg/domain-errors"
)

func testPrincipal() domain.Principal {
	return domain.Principal{
		ID:   domain.NewPrincipalID(),
		Name: "Avery QA",
		Role: domain.RoleQA,
	}
}

func TestIssueAndVerify(t *testing.T) {
	issuer := NewIssuer("test-signing-key")

	t.Run("round-trips the principal", func(t *testing.T) {
		p := testPrincipal()
		token, err := issuer.Issue(p)
		require.NoError(t, err)

		got, err := issuer.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, p.ID, got.ID)
		assert.Equal(t, p.Name, got.Name)
		assert.Equal(t, p.Role, got.Role)
	})

	t.Run("rejects a token signed with another key", func(t *testing.T) {
		other := NewIssuer("different-key")
		token, err := other.Issue(testPrincipal())
		require.NoError(t, err)

		_, err = issuer.Verify(token)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("rejects garbage tokens", func(t *testing.T) {
		_, err := issuer.Verify("not.a.jwt")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}

func TestTokenExpiry(t *testing.T) {
	issuedAt := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)

	clock := issuedAt
	issuer := NewIssuer("test-signing-key",
		WithTTL(12*time.Hour),
		WithClock(func() time.Time { return clock }),
	)

	token, err := issuer.Issue(testPrincipal())
	require.NoError(t, err)

	clock = issuedAt.Add(11 * time.Hour)
	_, err = issuer.Verify(token)
	require.NoError(t, err, "token must be valid within its TTL")

	clock = issuedAt.Add(13 * time.Hour)
	_, err = issuer.Verify(token)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	assert.Contains(t, err.Error(), "expired")
}
