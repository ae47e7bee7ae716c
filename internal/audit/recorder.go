package audit

import (
	"context"
	"log/slog"

	"veridoc/pkg/domain"
	dErrors "veridoc/pkg/domain-errors"
	"veridoc/pkg/requestcontext"
)

// Mirror receives completed entries after they are durably stored. Mirror
// delivery is best-effort; the store write is the source of truth.
type Mirror interface {
	Publish(ctx context.Context, entry Entry)
}

// Recorder assigns identity and time to audit entries and persists them with
// fail-closed semantics: if the store write fails, the caller's operation
// must fail, because reporting success without an audit record would violate
// the compliance contract.
type Recorder struct {
	store   Store
	logger  *slog.Logger
	metrics *Metrics
	mirror  Mirror
}

// Option configures the Recorder.
type Option func(*Recorder)

// WithLogger sets a logger for failure reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recorder) { r.logger = logger }
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *Metrics) Option {
	return func(r *Recorder) { r.metrics = m }
}

// WithMirror adds a best-effort downstream sink for recorded entries.
func WithMirror(m Mirror) Option {
	return func(r *Recorder) { r.mirror = m }
}

// NewRecorder creates an audit recorder backed by store.
func NewRecorder(store Store, opts ...Option) *Recorder {
	r := &Recorder{store: store}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record completes the entry with a fresh ID and the request-scoped
// timestamp, persists it, and returns it. The ID, Timestamp, and RequestID
// fields of the input are ignored.
func (r *Recorder) Record(ctx context.Context, entry Entry) (Entry, error) {
	entry.ID = domain.NewAuditEventID()
	entry.Timestamp = requestcontext.Now(ctx)
	entry.RequestID = requestcontext.RequestID(ctx)

	if err := r.store.Append(ctx, entry); err != nil {
		if r.metrics != nil {
			r.metrics.IncRecordFailures()
		}
		if r.logger != nil {
			r.logger.ErrorContext(ctx, "CRITICAL: audit record failed",
				"action", entry.Action,
				"entity", entry.Entity,
				"entity_id", entry.EntityID,
				"error", err,
			)
		}
		return Entry{}, dErrors.Wrap(err, dErrors.CodeStoreFailure, "audit record did not persist")
	}

	if r.metrics != nil {
		r.metrics.IncRecorded(string(entry.Entity))
	}
	if r.mirror != nil {
		r.mirror.Publish(ctx, entry)
	}
	return entry, nil
}

// List returns up to limit entries, newest first. It is a read-only
// projection; callers may filter the result further.
func (r *Recorder) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 200
	}
	entries, err := r.store.ListRecent(ctx, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStoreFailure, "failed to list audit trail")
	}
	return entries, nil
}
