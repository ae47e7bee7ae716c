// Package service orchestrates the document lifecycle: creation, review
// submission, version bumps, and signature application. All mutations run
// inside a store transaction so the document row, the signature record, and
// the audit entry commit or fail together.
package service

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"veridoc/internal/audit"
	"veridoc/internal/document/models"
	"veridoc/internal/policy"
	"veridoc/internal/signature"
	"veridoc/pkg/domain"
	dErrors "veridoc/pkg/domain-errors"
	"veridoc/pkg/platform/sentinel"
	"veridoc/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks DocumentStore,TypeStore

// DocumentStore persists documents. Execute must hold a lock (or a row lock)
// across both callbacks so that validate and mutate see the same state.
type DocumentStore interface {
	CreateIfNumberAvailable(ctx context.Context, doc *models.Document) error
	FindByID(ctx context.Context, id domain.DocumentID) (*models.Document, error)
	List(ctx context.Context) ([]*models.Document, error)
	Execute(ctx context.Context, id domain.DocumentID, validate func(*models.Document) error, mutate func(*models.Document)) (*models.Document, error)
}

// TypeStore resolves document type labels against the reference data.
type TypeStore interface {
	ExistsByLabel(ctx context.Context, label string) (bool, error)
}

// Service is the document lifecycle orchestrator.
type Service struct {
	docs     DocumentStore
	types    TypeStore
	sigs     signature.Store
	signer   *signature.Signer
	recorder *audit.Recorder
	storeTx  StoreTx
	logger   *slog.Logger
	metrics  *Metrics
	tracer   trace.Tracer
}

// Option configures the Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) { s.tracer = t }
}

// New constructs a Service.
func New(docs DocumentStore, types TypeStore, sigs signature.Store, signer *signature.Signer, recorder *audit.Recorder, storeTx StoreTx, opts ...Option) *Service {
	s := &Service{
		docs:     docs,
		types:    types,
		sigs:     sigs,
		signer:   signer,
		recorder: recorder,
		storeTx:  storeTx,
		tracer:   otel.Tracer("veridoc/document"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateRequest carries the fields of a new document.
type CreateRequest struct {
	Title    string
	Number   string
	Type     string
	Category string
	Security domain.SecurityClass
}

// Create registers a new Draft document at the initial version. The document
// number must be unique across all documents; the type must be registered.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*models.Document, error) {
	ctx, span := s.tracer.Start(ctx, "document.Create")
	defer span.End()

	actor := requestcontext.Principal(ctx)
	if actor == nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}

	known, err := s.types.ExistsByLabel(ctx, req.Type)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStoreFailure, "failed to check document type")
	}
	if !known {
		return nil, dErrors.New(dErrors.CodeValidation, "unknown document type: "+req.Type)
	}

	doc, err := models.NewDocument(domain.NewDocumentID(), req.Title, req.Number, req.Type, req.Category, req.Security, actor.Name, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}

	err = s.storeTx.RunInTx(ctx, doc.ID, func(ctx context.Context) error {
		if err := s.docs.CreateIfNumberAvailable(ctx, doc); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return dErrors.New(dErrors.CodeValidation, "document number already in use")
			}
			return dErrors.Wrap(err, dErrors.CodeStoreFailure, "failed to store document")
		}
		_, err := s.recorder.Record(ctx, audit.Entry{
			ActorID:   actor.ID,
			ActorName: actor.Name,
			ActorRole: actor.Role,
			Action:    audit.ActionCreate,
			Entity:    audit.EntityDocument,
			EntityID:  doc.ID.String(),
			Details:   map[string]any{"number": doc.Number, "title": doc.Title},
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log(ctx, "document created", "document_id", doc.ID, "number", doc.Number)
	if s.metrics != nil {
		s.metrics.DocumentsCreated.Inc()
	}
	return doc, nil
}

// SubmitForReview moves the document into review from any state.
func (s *Service) SubmitForReview(ctx context.Context, id domain.DocumentID) (*models.Document, error) {
	ctx, span := s.tracer.Start(ctx, "document.SubmitForReview")
	defer span.End()

	actor := requestcontext.Principal(ctx)
	if actor == nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}

	var updated *models.Document
	err := s.storeTx.RunInTx(ctx, id, func(ctx context.Context) error {
		doc, err := s.docs.Execute(ctx, id, nil, func(d *models.Document) {
			d.ApplySubmitForReview()
		})
		if err != nil {
			return translateStoreErr(err)
		}
		updated = doc
		_, err = s.recorder.Record(ctx, audit.Entry{
			ActorID:   actor.ID,
			ActorName: actor.Name,
			ActorRole: actor.Role,
			Action:    audit.ActionSubmitForReview,
			Entity:    audit.EntityDocument,
			EntityID:  id.String(),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log(ctx, "document submitted for review", "document_id", id)
	return updated, nil
}

// BumpVersion appends a minor version to the document's history and resets
// its status to Draft. The new label is derived from the current one under
// the store lock, so concurrent bumps cannot produce duplicate labels.
func (s *Service) BumpVersion(ctx context.Context, id domain.DocumentID) (*models.Document, error) {
	ctx, span := s.tracer.Start(ctx, "document.BumpVersion")
	defer span.End()

	actor := requestcontext.Principal(ctx)
	if actor == nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}

	var (
		updated  *models.Document
		newLabel string
	)
	err := s.storeTx.RunInTx(ctx, id, func(ctx context.Context) error {
		doc, err := s.docs.Execute(ctx, id,
			func(d *models.Document) error {
				label, err := d.NextVersion()
				if err != nil {
					return err
				}
				newLabel = label
				return nil
			},
			func(d *models.Document) {
				d.ApplyVersionBump(newLabel, actor.Name, requestcontext.Now(ctx))
			},
		)
		if err != nil {
			return translateStoreErr(err)
		}
		updated = doc
		_, err = s.recorder.Record(ctx, audit.Entry{
			ActorID:   actor.ID,
			ActorName: actor.Name,
			ActorRole: actor.Role,
			Action:    audit.ActionNewVersion,
			Entity:    audit.EntityDocument,
			EntityID:  id.String(),
			Details:   map[string]any{"version": newLabel},
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log(ctx, "document version bumped", "document_id", id, "version", newLabel)
	if s.metrics != nil {
		s.metrics.VersionsBumped.Inc()
	}
	return updated, nil
}

// SignRequest carries the caller-supplied fields of a signature.
type SignRequest struct {
	Meaning domain.Meaning
	Reason  string
}

// ApplySignature attests the document with the caller's identity and applies
// the meaning's lifecycle effect. The document mutation, the signature
// record, and the audit entry commit atomically.
func (s *Service) ApplySignature(ctx context.Context, id domain.DocumentID, req SignRequest) (*models.Document, *signature.ElectronicSignature, error) {
	ctx, span := s.tracer.Start(ctx, "document.ApplySignature")
	defer span.End()

	actor := requestcontext.Principal(ctx)
	if actor == nil {
		return nil, nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	if !req.Meaning.IsValid() {
		return nil, nil, dErrors.New(dErrors.CodeValidation, "invalid signature meaning: "+req.Meaning.String())
	}

	var (
		updated *models.Document
		sig     signature.ElectronicSignature
	)
	err := s.storeTx.RunInTx(ctx, id, func(ctx context.Context) error {
		// Snapshot the coordinates the attestation pins before the meaning
		// mutates lifecycle state.
		var number, version string
		doc, err := s.docs.Execute(ctx, id,
			func(d *models.Document) error {
				number, version = d.Number, d.Version
				return nil
			},
			func(d *models.Document) {
				d.ApplyMeaning(req.Meaning, *actor, requestcontext.Now(ctx))
			},
		)
		if err != nil {
			return translateStoreErr(err)
		}
		updated = doc

		sig, err = s.signer.Sign(ctx, signature.Request{
			DocumentID:      id,
			DocumentNumber:  number,
			DocumentVersion: version,
			Signer:          *actor,
			Meaning:         req.Meaning,
			Reason:          req.Reason,
		})
		if err != nil {
			return err
		}
		if err := s.sigs.Append(ctx, sig); err != nil {
			return dErrors.Wrap(err, dErrors.CodeStoreFailure, "failed to store signature")
		}

		_, err = s.recorder.Record(ctx, audit.Entry{
			ActorID:   actor.ID,
			ActorName: actor.Name,
			ActorRole: actor.Role,
			Action:    audit.SignatureAction(req.Meaning),
			Entity:    audit.EntityDocument,
			EntityID:  id.String(),
			Details:   map[string]any{"meaning": req.Meaning.String(), "version": version},
		})
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	s.log(ctx, "signature applied", "document_id", id, "meaning", req.Meaning, "status", updated.Status)
	if s.metrics != nil {
		s.metrics.SignaturesApplied.WithLabelValues(req.Meaning.String()).Inc()
	}
	return updated, &sig, nil
}

// Get returns a document the caller is allowed to see. Documents hidden by
// security class are reported as not found rather than forbidden, so their
// existence does not leak.
func (s *Service) Get(ctx context.Context, id domain.DocumentID) (*models.Document, error) {
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		return nil, translateStoreErr(err)
	}
	if !policy.Visible(doc.Security, requestcontext.Principal(ctx)) {
		return nil, dErrors.New(dErrors.CodeNotFound, "document not found")
	}
	return doc, nil
}

// List returns the documents visible to the caller, newest first.
func (s *Service) List(ctx context.Context) ([]*models.Document, error) {
	docs, err := s.docs.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStoreFailure, "failed to list documents")
	}
	actor := requestcontext.Principal(ctx)
	visible := make([]*models.Document, 0, len(docs))
	for _, doc := range docs {
		if policy.Visible(doc.Security, actor) {
			visible = append(visible, doc)
		}
	}
	return visible, nil
}

// ListSignatures returns a visible document's signatures, newest first.
func (s *Service) ListSignatures(ctx context.Context, id domain.DocumentID) ([]signature.ElectronicSignature, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	sigs, err := s.sigs.ListByDocument(ctx, id)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStoreFailure, "failed to list signatures")
	}
	return sigs, nil
}

func (s *Service) log(ctx context.Context, msg string, args ...any) {
	if s.logger == nil {
		return
	}
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		args = append(args, "request_id", requestID)
	}
	s.logger.InfoContext(ctx, msg, args...)
}

func translateStoreErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "document not found")
	}
	// Validate callbacks surface coded domain errors; pass those through.
	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeStoreFailure, "document store failure")
}
