package document

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"veridoc/internal/document/models"
	"veridoc/pkg/domain"
	"veridoc/pkg/platform/sentinel"
	txcontext "veridoc/pkg/platform/tx"
)

// uniqueViolation is the Postgres error code raised by the documents_number
// unique index.
const uniqueViolation = "23505"

// PostgresStore persists documents in PostgreSQL. Version history is stored
// as a JSONB column; the history is small (one entry per minor bump) and
// always read and written with its document.
//
// Execute runs SELECT ... FOR UPDATE inside a transaction so validate and
// mutate observe and write a row no concurrent writer can touch.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbRunner interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) runner(ctx context.Context) dbRunner {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *PostgresStore) CreateIfNumberAvailable(ctx context.Context, doc *models.Document) error {
	versions, err := json.Marshal(doc.Versions)
	if err != nil {
		return fmt.Errorf("marshal version history: %w", err)
	}

	query := `
		INSERT INTO documents (
			id, title, number, version, doc_type, category, security,
			status, created_at, created_by, issued_at, issued_by, issuer_role,
			versions
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err = s.runner(ctx).ExecContext(ctx, query,
		uuid.UUID(doc.ID),
		doc.Title,
		doc.Number,
		doc.Version,
		doc.Type,
		doc.Category,
		string(doc.Security),
		string(doc.Status),
		doc.CreatedAt,
		doc.CreatedBy,
		doc.IssuedAt,
		doc.IssuedBy,
		string(doc.IssuerRole),
		versions,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

const documentColumns = `
	id, title, number, version, doc_type, category, security,
	status, created_at, created_by, issued_at, issued_by, issuer_role,
	versions
`

func (s *PostgresStore) FindByID(ctx context.Context, id domain.DocumentID) (*models.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	return s.scanDocument(s.runner(ctx).QueryRowContext(ctx, query, uuid.UUID(id)))
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents ORDER BY created_at DESC, id DESC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	var docs []*models.Document
	for rows.Next() {
		doc, err := s.scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return docs, nil
}

// Execute locks the row, runs validate then mutate, and writes the result
// back. When the context already carries a transaction the row lock joins
// it; otherwise Execute opens its own transaction.
func (s *PostgresStore) Execute(ctx context.Context, id domain.DocumentID, validate func(*models.Document) error, mutate func(*models.Document)) (*models.Document, error) {
	if _, ok := txcontext.From(ctx); ok {
		return s.executeLocked(ctx, id, validate, mutate)
	}

	var doc *models.Document
	err := txcontext.Run(ctx, s.db, func(txCtx context.Context) error {
		var innerErr error
		doc, innerErr = s.executeLocked(txCtx, id, validate, mutate)
		return innerErr
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *PostgresStore) executeLocked(ctx context.Context, id domain.DocumentID, validate func(*models.Document) error, mutate func(*models.Document)) (*models.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1 FOR UPDATE`
	doc, err := s.scanDocument(s.runner(ctx).QueryRowContext(ctx, query, uuid.UUID(id)))
	if err != nil {
		return nil, err
	}
	if validate != nil {
		if err := validate(doc); err != nil {
			return nil, err
		}
	}
	mutate(doc)

	versions, err := json.Marshal(doc.Versions)
	if err != nil {
		return nil, fmt.Errorf("marshal version history: %w", err)
	}
	update := `
		UPDATE documents
		SET title = $2, version = $3, status = $4,
		    issued_at = $5, issued_by = $6, issuer_role = $7, versions = $8
		WHERE id = $1
	`
	if _, err := s.runner(ctx).ExecContext(ctx, update,
		uuid.UUID(doc.ID),
		doc.Title,
		doc.Version,
		string(doc.Status),
		doc.IssuedAt,
		doc.IssuedBy,
		string(doc.IssuerRole),
		versions,
	); err != nil {
		return nil, fmt.Errorf("update document: %w", err)
	}
	return doc, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *PostgresStore) scanDocument(row rowScanner) (*models.Document, error) {
	var (
		doc        models.Document
		id         uuid.UUID
		security   string
		status     string
		issuedAt   sql.NullTime
		issuerRole string
		versions   []byte
	)
	err := row.Scan(
		&id,
		&doc.Title,
		&doc.Number,
		&doc.Version,
		&doc.Type,
		&doc.Category,
		&security,
		&status,
		&doc.CreatedAt,
		&doc.CreatedBy,
		&issuedAt,
		&doc.IssuedBy,
		&issuerRole,
		&versions,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan document: %w", err)
	}

	doc.ID = domain.DocumentID(id)
	doc.Security = domain.SecurityClass(security)
	doc.Status = domain.Status(status)
	doc.IssuerRole = domain.Role(issuerRole)
	if issuedAt.Valid {
		t := issuedAt.Time.UTC()
		doc.IssuedAt = &t
	}
	if err := json.Unmarshal(versions, &doc.Versions); err != nil {
		return nil, fmt.Errorf("unmarshal version history: %w", err)
	}
	return &doc, nil
}
