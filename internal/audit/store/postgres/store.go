package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"veridoc/internal/audit"
	"veridoc/pkg/domain"
	txcontext "veridoc/pkg/platform/tx"
)

// Store persists the audit trail in PostgreSQL. The audit_events table is
// append-only: no UPDATE or DELETE is ever issued against it.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *Store) Append(ctx context.Context, entry audit.Entry) error {
	var details []byte
	if entry.Details != nil {
		var err error
		details, err = json.Marshal(entry.Details)
		if err != nil {
			return fmt.Errorf("marshal audit details: %w", err)
		}
	}

	var actorID *uuid.UUID
	if !entry.ActorID.IsNil() {
		id := uuid.UUID(entry.ActorID)
		actorID = &id
	}

	query := `
		INSERT INTO audit_events (
			id, timestamp, actor_id, actor_name, actor_role,
			action, entity, entity_id, details, request_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(entry.ID),
		entry.Timestamp,
		actorID,
		entry.ActorName,
		string(entry.ActorRole),
		entry.Action,
		string(entry.Entity),
		entry.EntityID,
		details,
		entry.RequestID,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

func (s *Store) ListRecent(ctx context.Context, limit int) ([]audit.Entry, error) {
	query := `
		SELECT id, timestamp, actor_id, actor_name, actor_role,
		       action, entity, entity_id, details, request_id
		FROM audit_events
		ORDER BY timestamp DESC, id DESC
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var (
			entry     audit.Entry
			id        uuid.UUID
			actorID   *uuid.UUID
			actorRole string
			entity    string
			details   []byte
		)
		if err := rows.Scan(
			&id,
			&entry.Timestamp,
			&actorID,
			&entry.ActorName,
			&actorRole,
			&entry.Action,
			&entity,
			&entry.EntityID,
			&details,
			&entry.RequestID,
		); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}

		entry.ID = domain.AuditEventID(id)
		if actorID != nil {
			entry.ActorID = domain.PrincipalID(*actorID)
		}
		entry.ActorRole = domain.Role(actorRole)
		entry.Entity = audit.EntityKind(entity)
		if len(details) > 0 {
			if err := json.Unmarshal(details, &entry.Details); err != nil {
				return nil, fmt.Errorf("unmarshal audit details: %w", err)
			}
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return entries, nil
}
