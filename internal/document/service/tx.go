package service

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"veridoc/pkg/domain"
	dErrors "veridoc/pkg/domain-errors"
	txcontext "veridoc/pkg/platform/tx"
)

// StoreTx is the transactional boundary for document mutations. The document
// write, the signature record, and the audit entry for one operation run
// inside a single RunInTx call. Implementations may wrap a database
// transaction or, in-memory, a per-document lock.
type StoreTx interface {
	RunInTx(ctx context.Context, id domain.DocumentID, fn func(ctx context.Context) error) error
}

// numTxShards spreads per-document locks across shards so unrelated
// documents do not contend on one mutex.
const numTxShards = 128

// defaultTxTimeout bounds how long a mutation may hold its shard.
const defaultTxTimeout = 5 * time.Second

// ShardedTx serializes mutations per document using sharded mutexes. It is
// the StoreTx used with the in-memory stores, where there is no database
// transaction to lean on.
type ShardedTx struct {
	shards  [numTxShards]sync.Mutex
	timeout time.Duration
}

func NewShardedTx() *ShardedTx {
	return &ShardedTx{timeout: defaultTxTimeout}
}

func (t *ShardedTx) RunInTx(ctx context.Context, id domain.DocumentID, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	shard := hashDocumentID(id) % numTxShards
	t.shards[shard].Lock()
	defer t.shards[shard].Unlock()

	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	return fn(ctx)
}

// hashDocumentID uses FNV-1a over the id's string form.
func hashDocumentID(id domain.DocumentID) uint32 {
	const (
		fnvOffset = 2166136261
		fnvPrime  = 16777619
	)
	s := id.String()
	h := uint32(fnvOffset)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= fnvPrime
	}
	return h
}

// SQLTx runs the callback inside a database transaction carried through
// context, so every store touched by the callback joins the same unit of
// work. Row-level serialization comes from SELECT ... FOR UPDATE in the
// document store, not from the shard locks the in-memory StoreTx uses.
type SQLTx struct {
	db *sql.DB
}

func NewSQLTx(db *sql.DB) *SQLTx {
	return &SQLTx{db: db}
}

func (t *SQLTx) RunInTx(ctx context.Context, _ domain.DocumentID, fn func(ctx context.Context) error) error {
	return txcontext.Run(ctx, t.db, fn)
}
