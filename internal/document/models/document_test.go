package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veridoc/pkg/domain"
	dErrors "veridoc/pkg/domain-errors"
)

var testTime = time.Date(2026, 1, 20, 8, 30, 0, 0, time.UTC)

func newTestDocument(t *testing.T) *Document {
	t.Helper()
	doc, err := NewDocument(domain.NewDocumentID(), "Cleaning Validation SOP", "SOP-017",
		"procedure", "validation", domain.SecurityInternal, "Sam Author", testTime)
	require.NoError(t, err)
	return doc
}

func TestNewDocument(t *testing.T) {
	t.Run("starts in Draft at the initial version", func(t *testing.T) {
		doc := newTestDocument(t)

		assert.Equal(t, domain.StatusDraft, doc.Status)
		assert.Equal(t, domain.InitialVersion, doc.Version)
		require.Len(t, doc.Versions, 1)
		assert.Equal(t, domain.InitialVersion, doc.Versions[0].Version)
		assert.Equal(t, doc.Title, doc.Versions[0].Title)
		assert.Equal(t, "Sam Author", doc.Versions[0].CreatedBy)
		assert.Nil(t, doc.IssuedAt)
	})

	t.Run("enforces field constraints", func(t *testing.T) {
		cases := []struct {
			name                    string
			title, number, category string
			security                domain.SecurityClass
		}{
			{"short title", "ab", "SOP-1", "ops", domain.SecurityPublic},
			{"short number", "Valid Title", "x", "ops", domain.SecurityPublic},
			{"short category", "Valid Title", "SOP-1", "o", domain.SecurityPublic},
			{"bad security", "Valid Title", "SOP-1", "ops", domain.SecurityClass("secret")},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := NewDocument(domain.NewDocumentID(), tc.title, tc.number,
					"procedure", tc.category, tc.security, "Sam Author", testTime)
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
			})
		}
	})
}

func TestApplyVersionBump(t *testing.T) {
	doc := newTestDocument(t)
	doc.Status = domain.StatusEffective

	next, err := doc.NextVersion()
	require.NoError(t, err)
	assert.Equal(t, "1.1", next)

	bumpTime := testTime.Add(time.Hour)
	doc.ApplyVersionBump(next, "Sam Author", bumpTime)

	assert.Equal(t, "1.1", doc.Version)
	assert.Equal(t, domain.StatusDraft, doc.Status, "a bump resets the lifecycle")
	require.Len(t, doc.Versions, 2)
	assert.Equal(t, "1.1", doc.Versions[len(doc.Versions)-1].Version)
	assert.Equal(t, bumpTime, doc.Versions[len(doc.Versions)-1].CreatedAt)

	// History is append-only: the original entry is untouched.
	assert.Equal(t, domain.InitialVersion, doc.Versions[0].Version)
}

func TestApplyMeaning(t *testing.T) {
	signer := domain.Principal{ID: domain.NewPrincipalID(), Name: "Iris Issuer", Role: domain.RoleIssuer}
	signedAt := testTime.Add(2 * time.Hour)

	t.Run("approval moves to Approved", func(t *testing.T) {
		doc := newTestDocument(t)
		doc.ApplyMeaning(domain.MeaningApproval, signer, signedAt)
		assert.Equal(t, domain.StatusApproved, doc.Status)
		assert.Nil(t, doc.IssuedAt)
	})

	t.Run("issuance moves to Effective and records the issuer", func(t *testing.T) {
		doc := newTestDocument(t)
		doc.ApplyMeaning(domain.MeaningIssuance, signer, signedAt)
		assert.Equal(t, domain.StatusEffective, doc.Status)
		require.NotNil(t, doc.IssuedAt)
		assert.Equal(t, signedAt, *doc.IssuedAt)
		assert.Equal(t, "Iris Issuer", doc.IssuedBy)
		assert.Equal(t, domain.RoleIssuer, doc.IssuerRole)
	})

	t.Run("retire moves to Obsolete from any state", func(t *testing.T) {
		doc := newTestDocument(t)
		doc.ApplyMeaning(domain.MeaningRetire, signer, signedAt)
		assert.Equal(t, domain.StatusObsolete, doc.Status)
	})

	t.Run("review and change leave the lifecycle untouched", func(t *testing.T) {
		for _, meaning := range []domain.Meaning{domain.MeaningReview, domain.MeaningChange} {
			doc := newTestDocument(t)
			doc.ApplySubmitForReview()
			doc.ApplyMeaning(meaning, signer, signedAt)
			assert.Equal(t, domain.StatusInReview, doc.Status, "meaning %s", meaning)
		}
	})
}

func TestClone(t *testing.T) {
	doc := newTestDocument(t)
	doc.ApplyMeaning(domain.MeaningIssuance, domain.Principal{Name: "Iris Issuer", Role: domain.RoleIssuer}, testTime)

	cp := doc.Clone()
	cp.Versions[0].Title = "mutated"
	*cp.IssuedAt = cp.IssuedAt.Add(time.Hour)

	assert.NotEqual(t, doc.Versions[0].Title, cp.Versions[0].Title)
	assert.NotEqual(t, *doc.IssuedAt, *cp.IssuedAt)
}
