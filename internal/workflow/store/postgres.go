package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"veridoc/internal/workflow/models"
	"veridoc/pkg/domain"
	"veridoc/pkg/platform/sentinel"
	txcontext "veridoc/pkg/platform/tx"
)

const uniqueViolation = "23505"

// PostgresStore persists workflows with steps as a JSONB column. Steps are
// read whole with the workflow, never queried individually.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) execer(ctx context.Context) interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
} {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *PostgresStore) Create(ctx context.Context, wf *models.Workflow) error {
	steps, err := json.Marshal(wf.Steps)
	if err != nil {
		return fmt.Errorf("marshal workflow steps: %w", err)
	}

	const query = `
		INSERT INTO workflows (id, name, category, steps)
		VALUES ($1, $2, $3, $4)`

	if _, err := s.execer(ctx).ExecContext(ctx, query, wf.ID.String(), wf.Name, wf.Category, steps); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert workflow: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.Workflow, error) {
	const query = `
		SELECT id, name, category, steps
		FROM workflows
		ORDER BY name ASC`

	rows, err := s.execer(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list workflows: %w", err)
	}
	defer rows.Close()

	var out []*models.Workflow
	for rows.Next() {
		var (
			rawID string
			steps []byte
			wf    models.Workflow
		)
		if err := rows.Scan(&rawID, &wf.Name, &wf.Category, &steps); err != nil {
			return nil, fmt.Errorf("scan workflow: %w", err)
		}
		id, err := domain.ParseWorkflowID(rawID)
		if err != nil {
			return nil, err
		}
		wf.ID = id
		if err := json.Unmarshal(steps, &wf.Steps); err != nil {
			return nil, fmt.Errorf("unmarshal workflow steps: %w", err)
		}
		out = append(out, &wf)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate workflows: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) ExistsByName(ctx context.Context, name string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM workflows WHERE lower(name) = lower($1))`

	var exists bool
	if err := s.execer(ctx).QueryRowContext(ctx, query, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("check workflow: %w", err)
	}
	return exists, nil
}
