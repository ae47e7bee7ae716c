//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"veridoc/internal/audit"
	"veridoc/internal/audit/store/postgres"
	"veridoc/pkg/domain"
	txcontext "veridoc/pkg/platform/tx"
	"veridoc/pkg/testutil/containers"
)

type AuditStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *postgres.Store
}

func TestAuditStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(AuditStoreSuite))
}

func (s *AuditStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = postgres.New(s.postgres.DB)
}

func (s *AuditStoreSuite) SetupTest() {
	err := s.postgres.TruncateTables(context.Background(), "audit_events")
	s.Require().NoError(err)
}

func newTestEntry(action string, ts time.Time) audit.Entry {
	return audit.Entry{
		ID:        domain.NewAuditEventID(),
		Timestamp: ts,
		ActorID:   domain.NewPrincipalID(),
		ActorName: "Grace Hopper",
		ActorRole: domain.RoleQA,
		Action:    action,
		Entity:    audit.EntityDocument,
		EntityID:  "SOP-001",
		Details:   map[string]any{"version": "1.1"},
		RequestID: "req-123",
	}
}

func (s *AuditStoreSuite) TestAppendAndListRoundTrip() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	entry := newTestEntry("e_signature_approval", now)
	s.Require().NoError(s.store.Append(ctx, entry))

	entries, err := s.store.ListRecent(ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)

	got := entries[0]
	s.Equal(entry.ID, got.ID)
	s.Equal(entry.ActorID, got.ActorID)
	s.Equal(entry.ActorName, got.ActorName)
	s.Equal(domain.RoleQA, got.ActorRole)
	s.Equal("e_signature_approval", got.Action)
	s.Equal(audit.EntityDocument, got.Entity)
	s.Equal("SOP-001", got.EntityID)
	s.Equal("1.1", got.Details["version"])
	s.Equal("req-123", got.RequestID)
	s.True(got.Timestamp.Equal(now))
}

func (s *AuditStoreSuite) TestAnonymousActorRoundTrip() {
	ctx := context.Background()

	entry := newTestEntry("login", time.Now().UTC())
	entry.ActorID = domain.PrincipalID{}
	entry.Details = nil
	s.Require().NoError(s.store.Append(ctx, entry))

	entries, err := s.store.ListRecent(ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.True(entries[0].ActorID.IsNil())
	s.Nil(entries[0].Details)
}

func (s *AuditStoreSuite) TestListNewestFirstWithLimit() {
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Microsecond)

	for i := 0; i < 5; i++ {
		entry := newTestEntry("create", base.Add(time.Duration(i)*time.Second))
		s.Require().NoError(s.store.Append(ctx, entry))
	}

	entries, err := s.store.ListRecent(ctx, 3)
	s.Require().NoError(err)
	s.Require().Len(entries, 3)
	for i := 1; i < len(entries); i++ {
		s.False(entries[i].Timestamp.After(entries[i-1].Timestamp), "entries must be newest first")
	}
	s.True(entries[0].Timestamp.Equal(base.Add(4 * time.Second)))
}

// TestRollbackDiscardsEntry verifies an Append inside a failed transaction
// leaves no trace in the trail.
func (s *AuditStoreSuite) TestRollbackDiscardsEntry() {
	ctx := context.Background()
	boom := errors.New("downstream write failed")

	err := txcontext.Run(ctx, s.postgres.DB, func(txCtx context.Context) error {
		if err := s.store.Append(txCtx, newTestEntry("create", time.Now().UTC())); err != nil {
			return err
		}
		return boom
	})
	s.ErrorIs(err, boom)

	entries, err := s.store.ListRecent(ctx, 10)
	s.Require().NoError(err)
	s.Empty(entries)
}
