package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"veridoc/internal/signature"
	"veridoc/pkg/domain"
	txcontext "veridoc/pkg/platform/tx"
)

// Store persists signatures in PostgreSQL. The signatures table is
// append-only.
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

func (s *Store) Append(ctx context.Context, sig signature.ElectronicSignature) error {
	query := `
		INSERT INTO signatures (
			id, document_id, signer_id, signer_name, signer_role,
			meaning, reason, signed_at, hash
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(sig.ID),
		uuid.UUID(sig.DocumentID),
		uuid.UUID(sig.SignerID),
		sig.SignerName,
		string(sig.SignerRole),
		string(sig.Meaning),
		sig.Reason,
		sig.SignedAt,
		sig.Hash,
	)
	if err != nil {
		return fmt.Errorf("insert signature: %w", err)
	}
	return nil
}

func (s *Store) ListByDocument(ctx context.Context, docID domain.DocumentID) ([]signature.ElectronicSignature, error) {
	query := `
		SELECT id, document_id, signer_id, signer_name, signer_role,
		       meaning, reason, signed_at, hash
		FROM signatures
		WHERE document_id = $1
		ORDER BY signed_at DESC, id DESC
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(docID))
	if err != nil {
		return nil, fmt.Errorf("query signatures: %w", err)
	}
	defer rows.Close()

	var sigs []signature.ElectronicSignature
	for rows.Next() {
		var (
			sig                 signature.ElectronicSignature
			id, documentID      uuid.UUID
			signerID            uuid.UUID
			signerRole, meaning string
		)
		if err := rows.Scan(
			&id,
			&documentID,
			&signerID,
			&sig.SignerName,
			&signerRole,
			&meaning,
			&sig.Reason,
			&sig.SignedAt,
			&sig.Hash,
		); err != nil {
			return nil, fmt.Errorf("scan signature: %w", err)
		}
		sig.ID = domain.SignatureID(id)
		sig.DocumentID = domain.DocumentID(documentID)
		sig.SignerID = domain.PrincipalID(signerID)
		sig.SignerRole = domain.Role(signerRole)
		sig.Meaning = domain.Meaning(meaning)
		sigs = append(sigs, sig)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate signatures: %w", err)
	}
	return sigs, nil
}
