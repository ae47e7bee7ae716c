package signature

import (
	"context"

	"veridoc/pkg/domain"
)

// Store persists signatures. Append-only: no update or delete is ever
// issued against an existing record.
type Store interface {
	Append(ctx context.Context, sig ElectronicSignature) error
	// ListByDocument returns a document's signatures, newest first.
	ListByDocument(ctx context.Context, docID domain.DocumentID) ([]ElectronicSignature, error)
}
