//go:build integration

package document_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"veridoc/internal/document/models"
	"veridoc/internal/document/store/document"
	"veridoc/pkg/domain"
	"veridoc/pkg/platform/sentinel"
	"veridoc/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *document.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = document.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()
	// Truncate in dependency order
	err := s.postgres.TruncateTables(ctx, "signatures", "audit_events", "documents")
	s.Require().NoError(err)
}

func newTestDocument(t *testing.T, number string) *models.Document {
	t.Helper()
	doc, err := models.NewDocument(
		domain.NewDocumentID(),
		"Cleaning Validation Procedure",
		number,
		"procedure",
		"validation",
		domain.SecurityInternal,
		"Ada Lovelace",
		time.Now().UTC().Truncate(time.Microsecond),
	)
	if err != nil {
		t.Fatalf("failed to build test document: %v", err)
	}
	return doc
}

func (s *PostgresStoreSuite) TestCreateAndFindRoundTrip() {
	ctx := context.Background()

	doc := newTestDocument(s.T(), "SOP-"+uuid.NewString())
	s.Require().NoError(s.store.CreateIfNumberAvailable(ctx, doc))

	found, err := s.store.FindByID(ctx, doc.ID)
	s.Require().NoError(err)
	s.Equal(doc.ID, found.ID)
	s.Equal(doc.Number, found.Number)
	s.Equal(domain.StatusDraft, found.Status)
	s.Equal(domain.InitialVersion, found.Version)
	s.Require().Len(found.Versions, 1)
	s.Equal(doc.Versions[0].CreatedBy, found.Versions[0].CreatedBy)
	s.Nil(found.IssuedAt)
}

func (s *PostgresStoreSuite) TestFindByIDNotFound() {
	ctx := context.Background()

	_, err := s.store.FindByID(ctx, domain.NewDocumentID())
	s.ErrorIs(err, sentinel.ErrNotFound)

	_, err = s.store.Execute(ctx, domain.NewDocumentID(), nil, func(*models.Document) {})
	s.ErrorIs(err, sentinel.ErrNotFound)
}

// TestConcurrentNumberConflict verifies that concurrent creation attempts
// with the same document number result in exactly one success.
func (s *PostgresStoreSuite) TestConcurrentNumberConflict() {
	ctx := context.Background()
	number := "SOP-" + uuid.NewString()
	const goroutines = 50

	var wg sync.WaitGroup
	var successCount atomic.Int32
	var conflictCount atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			doc := newTestDocument(s.T(), number)
			err := s.store.CreateIfNumberAvailable(ctx, doc)
			if err == nil {
				successCount.Add(1)
			} else if errors.Is(err, sentinel.ErrConflict) {
				conflictCount.Add(1)
			}
		}()
	}

	wg.Wait()

	s.Equal(int32(1), successCount.Load(), "exactly one create should succeed")
	s.Equal(int32(goroutines-1), conflictCount.Load(), "all others should get conflict error")

	docs, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Len(docs, 1)
}

// TestCaseInsensitiveNumberUniqueness verifies document numbers are unique
// regardless of case.
func (s *PostgresStoreSuite) TestCaseInsensitiveNumberUniqueness() {
	ctx := context.Background()
	number := "Sop-CaseTest-" + uuid.NewString()

	s.Require().NoError(s.store.CreateIfNumberAvailable(ctx, newTestDocument(s.T(), number)))

	for _, variant := range []string{strings.ToUpper(number), strings.ToLower(number)} {
		err := s.store.CreateIfNumberAvailable(ctx, newTestDocument(s.T(), variant))
		s.ErrorIs(err, sentinel.ErrConflict, "number %q should conflict with %q", variant, number)
	}
}

// TestConcurrentVersionBumps verifies that Execute's row lock serializes
// writers: every bump lands on the history produced by the previous one.
func (s *PostgresStoreSuite) TestConcurrentVersionBumps() {
	ctx := context.Background()

	doc := newTestDocument(s.T(), "SOP-"+uuid.NewString())
	s.Require().NoError(s.store.CreateIfNumberAvailable(ctx, doc))

	const goroutines = 20
	var wg sync.WaitGroup
	var bumpErrors atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := s.store.Execute(ctx, doc.ID,
				nil,
				func(d *models.Document) {
					next, err := d.NextVersion()
					if err != nil {
						bumpErrors.Add(1)
						return
					}
					d.ApplyVersionBump(next, "Ada Lovelace", time.Now().UTC())
				},
			)
			if err != nil {
				bumpErrors.Add(1)
			}
		}()
	}

	wg.Wait()

	s.Equal(int32(0), bumpErrors.Load(), "no bump should fail")

	found, err := s.store.FindByID(ctx, doc.ID)
	s.Require().NoError(err)
	s.Equal("1.20", found.Version, "all bumps must be observed")
	s.Len(found.Versions, goroutines+1)
}

// TestExecuteValidationRejection verifies a validate error rolls back the
// transaction and leaves the row untouched.
func (s *PostgresStoreSuite) TestExecuteValidationRejection() {
	ctx := context.Background()

	doc := newTestDocument(s.T(), "SOP-"+uuid.NewString())
	s.Require().NoError(s.store.CreateIfNumberAvailable(ctx, doc))

	rejected := errors.New("not in a signable state")
	_, err := s.store.Execute(ctx, doc.ID,
		func(*models.Document) error { return rejected },
		func(d *models.Document) { d.Status = domain.StatusObsolete },
	)
	s.ErrorIs(err, rejected)

	found, err := s.store.FindByID(ctx, doc.ID)
	s.Require().NoError(err)
	s.Equal(domain.StatusDraft, found.Status)
}

func (s *PostgresStoreSuite) TestListNewestFirst() {
	ctx := context.Background()

	first := newTestDocument(s.T(), "SOP-"+uuid.NewString())
	first.CreatedAt = time.Now().UTC().Add(-time.Hour)
	s.Require().NoError(s.store.CreateIfNumberAvailable(ctx, first))

	second := newTestDocument(s.T(), "SOP-"+uuid.NewString())
	s.Require().NoError(s.store.CreateIfNumberAvailable(ctx, second))

	docs, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(docs, 2)
	s.Equal(second.ID, docs[0].ID)
	s.Equal(first.ID, docs[1].ID)
}
