// Package postgres owns the relational schema. The schema is applied with
// CREATE TABLE IF NOT EXISTS at startup; there is no migration history to
// manage because every statement is idempotent.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

var statements = []string{
	`CREATE TABLE IF NOT EXISTS documents (
		id          UUID PRIMARY KEY,
		title       TEXT NOT NULL,
		number      TEXT NOT NULL,
		version     TEXT NOT NULL,
		doc_type    TEXT NOT NULL,
		category    TEXT NOT NULL,
		security    TEXT NOT NULL,
		status      TEXT NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL,
		created_by  TEXT NOT NULL,
		issued_at   TIMESTAMPTZ,
		issued_by   TEXT NOT NULL DEFAULT '',
		issuer_role TEXT NOT NULL DEFAULT '',
		versions    JSONB NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS documents_number_key
		ON documents (lower(number))`,
	`CREATE TABLE IF NOT EXISTS signatures (
		id          UUID PRIMARY KEY,
		document_id UUID NOT NULL REFERENCES documents (id),
		signer_id   UUID NOT NULL,
		signer_name TEXT NOT NULL,
		signer_role TEXT NOT NULL,
		meaning     TEXT NOT NULL,
		reason      TEXT NOT NULL DEFAULT '',
		signed_at   TIMESTAMPTZ NOT NULL,
		hash        TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS signatures_document_idx
		ON signatures (document_id, signed_at DESC)`,
	`CREATE TABLE IF NOT EXISTS audit_events (
		id         UUID PRIMARY KEY,
		timestamp  TIMESTAMPTZ NOT NULL,
		actor_id   UUID,
		actor_name TEXT NOT NULL DEFAULT '',
		actor_role TEXT NOT NULL DEFAULT '',
		action     TEXT NOT NULL,
		entity     TEXT NOT NULL,
		entity_id  TEXT NOT NULL DEFAULT '',
		details    JSONB,
		request_id TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS audit_events_timestamp_idx
		ON audit_events (timestamp DESC)`,
	`CREATE TABLE IF NOT EXISTS document_types (
		id          UUID PRIMARY KEY,
		type        TEXT NOT NULL,
		description TEXT NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS document_types_type_key
		ON document_types (lower(type))`,
	`CREATE TABLE IF NOT EXISTS workflows (
		id       UUID PRIMARY KEY,
		name     TEXT NOT NULL,
		category TEXT NOT NULL,
		steps    JSONB NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS workflows_name_key
		ON workflows (lower(name))`,
}

// EnsureSchema creates any missing tables and indexes.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
