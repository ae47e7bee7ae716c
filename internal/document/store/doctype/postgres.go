package doctype

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"veridoc/internal/document/models"
	"veridoc/pkg/domain"
	"veridoc/pkg/platform/sentinel"
	txcontext "veridoc/pkg/platform/tx"
)

const uniqueViolation = "23505"

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

func (s *PostgresStore) Create(ctx context.Context, dt *models.DocumentType) error {
	const query = `
		INSERT INTO document_types (id, type, description)
		VALUES ($1, $2, $3)`

	_, err := s.execer(ctx).ExecContext(ctx, query, dt.ID.String(), dt.Type, dt.Description)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert document type: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.DocumentType, error) {
	const query = `
		SELECT id, type, description
		FROM document_types
		ORDER BY type ASC`

	rows, err := s.execer(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list document types: %w", err)
	}
	defer rows.Close()

	var out []*models.DocumentType
	for rows.Next() {
		var (
			rawID string
			dt    models.DocumentType
		)
		if err := rows.Scan(&rawID, &dt.Type, &dt.Description); err != nil {
			return nil, fmt.Errorf("scan document type: %w", err)
		}
		id, err := domain.ParseDocumentTypeID(rawID)
		if err != nil {
			return nil, err
		}
		dt.ID = id
		out = append(out, &dt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate document types: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) ExistsByLabel(ctx context.Context, label string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM document_types WHERE type = $1)`

	var exists bool
	if err := s.execer(ctx).QueryRowContext(ctx, query, label).Scan(&exists); err != nil {
		return false, fmt.Errorf("check document type: %w", err)
	}
	return exists, nil
}
