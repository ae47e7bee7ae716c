//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"veridoc/internal/document/models"
	documentstore "veridoc/internal/document/store/document"
	"veridoc/internal/signature"
	"veridoc/internal/signature/store/postgres"
	"veridoc/pkg/domain"
	"veridoc/pkg/testutil/containers"
)

type SignatureStoreSuite struct {
	suite.Suite
	postgres  *containers.PostgresContainer
	store     *postgres.Store
	documents *documentstore.PostgresStore
}

func TestSignatureStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(SignatureStoreSuite))
}

func (s *SignatureStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = postgres.New(s.postgres.DB)
	s.documents = documentstore.NewPostgres(s.postgres.DB)
}

func (s *SignatureStoreSuite) SetupTest() {
	err := s.postgres.TruncateTables(context.Background(), "signatures", "documents")
	s.Require().NoError(err)
}

func (s *SignatureStoreSuite) createDocument() *models.Document {
	doc, err := models.NewDocument(
		domain.NewDocumentID(),
		"Batch Record Review",
		"SOP-"+uuid.NewString(),
		"procedure",
		"quality",
		domain.SecurityInternal,
		"Ada Lovelace",
		time.Now().UTC().Truncate(time.Microsecond),
	)
	s.Require().NoError(err)
	s.Require().NoError(s.documents.CreateIfNumberAvailable(context.Background(), doc))
	return doc
}

func newSignature(docID domain.DocumentID, meaning domain.Meaning, signedAt time.Time) signature.ElectronicSignature {
	return signature.ElectronicSignature{
		ID:         domain.NewSignatureID(),
		DocumentID: docID,
		SignerID:   domain.NewPrincipalID(),
		SignerName: "Grace Hopper",
		SignerRole: domain.RoleQA,
		Meaning:    meaning,
		Reason:     "routine review",
		SignedAt:   signedAt,
		Hash:       "$2a$08$" + uuid.NewString(),
	}
}

func (s *SignatureStoreSuite) TestAppendAndListRoundTrip() {
	ctx := context.Background()
	doc := s.createDocument()
	signedAt := time.Now().UTC().Truncate(time.Microsecond)

	sig := newSignature(doc.ID, domain.MeaningApproval, signedAt)
	s.Require().NoError(s.store.Append(ctx, sig))

	sigs, err := s.store.ListByDocument(ctx, doc.ID)
	s.Require().NoError(err)
	s.Require().Len(sigs, 1)

	got := sigs[0]
	s.Equal(sig.ID, got.ID)
	s.Equal(doc.ID, got.DocumentID)
	s.Equal(sig.SignerID, got.SignerID)
	s.Equal("Grace Hopper", got.SignerName)
	s.Equal(domain.RoleQA, got.SignerRole)
	s.Equal(domain.MeaningApproval, got.Meaning)
	s.Equal("routine review", got.Reason)
	s.Equal(sig.Hash, got.Hash)
	s.True(got.SignedAt.Equal(signedAt))
}

func (s *SignatureStoreSuite) TestListNewestFirstPerDocument() {
	ctx := context.Background()
	doc := s.createDocument()
	other := s.createDocument()
	base := time.Now().UTC().Truncate(time.Microsecond)

	s.Require().NoError(s.store.Append(ctx, newSignature(doc.ID, domain.MeaningReview, base)))
	s.Require().NoError(s.store.Append(ctx, newSignature(doc.ID, domain.MeaningApproval, base.Add(time.Second))))
	s.Require().NoError(s.store.Append(ctx, newSignature(other.ID, domain.MeaningReview, base.Add(2*time.Second))))

	sigs, err := s.store.ListByDocument(ctx, doc.ID)
	s.Require().NoError(err)
	s.Require().Len(sigs, 2)
	s.Equal(domain.MeaningApproval, sigs[0].Meaning)
	s.Equal(domain.MeaningReview, sigs[1].Meaning)
}

func (s *SignatureStoreSuite) TestAppendRequiresDocument() {
	ctx := context.Background()

	err := s.store.Append(ctx, newSignature(domain.NewDocumentID(), domain.MeaningReview, time.Now().UTC()))
	s.Error(err, "signature without a document row must be rejected")
}
