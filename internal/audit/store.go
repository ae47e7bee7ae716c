package audit

import "context"

// Store persists audit entries. Implementations never update or delete
// existing entries; Append is the only write.
type Store interface {
	Append(ctx context.Context, entry Entry) error
	// ListRecent returns up to limit entries, newest first.
	ListRecent(ctx context.Context, limit int) ([]Entry, error)
}
