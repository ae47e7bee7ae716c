package signature

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"veridoc/pkg/domain"
	dErrors "veridoc/pkg/domain-errors"
	"veridoc/pkg/requestcontext"
)

// DefaultCost is the bcrypt work factor for signature stamps. Deliberately
// expensive so forging a matching stamp by brute force is impractical.
const DefaultCost = 8

// Signer constructs attestation records. The integrity stamp is a salted
// bcrypt hash over (signer id, signer role, meaning, document number,
// document version, timestamp). It is verifiable only by recomputation with
// the same inputs and salt; true non-repudiation against a signer-held key
// is an explicit non-goal of this design.
type Signer struct {
	cost int
}

// SignerOption configures a Signer.
type SignerOption func(*Signer)

// WithCost overrides the bcrypt work factor.
func WithCost(cost int) SignerOption {
	return func(s *Signer) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.cost = cost
		}
	}
}

func NewSigner(opts ...SignerOption) *Signer {
	s := &Signer{cost: DefaultCost}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Request carries everything a signature attests to. DocumentNumber and
// DocumentVersion are snapshotted into the stamp so the attestation pins the
// document coordinates at signing time.
type Request struct {
	DocumentID      domain.DocumentID
	DocumentNumber  string
	DocumentVersion string
	Signer          domain.Principal
	Meaning         domain.Meaning
	Reason          string
}

// Sign builds an immutable attestation with a fresh ID, the request-scoped
// timestamp, and the integrity stamp. The caller persists the record and
// records the corresponding audit event.
func (s *Signer) Sign(ctx context.Context, req Request) (ElectronicSignature, error) {
	if !req.Meaning.IsValid() {
		return ElectronicSignature{}, dErrors.New(dErrors.CodeValidation, "invalid signature meaning: "+req.Meaning.String())
	}

	signedAt := requestcontext.Now(ctx)
	stamp, err := s.stamp(req, signedAt)
	if err != nil {
		return ElectronicSignature{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to compute signature stamp")
	}

	return ElectronicSignature{
		ID:         domain.NewSignatureID(),
		DocumentID: req.DocumentID,
		SignerID:   req.Signer.ID,
		SignerName: req.Signer.Name,
		SignerRole: req.Signer.Role,
		Meaning:    req.Meaning,
		Reason:     req.Reason,
		SignedAt:   signedAt,
		Hash:       stamp,
	}, nil
}

func (s *Signer) stamp(req Request, signedAt time.Time) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(StampMaterial(req, signedAt), s.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// StampMaterial derives the bytes the integrity stamp is computed over. The
// attestation fields are digested first because bcrypt only accepts inputs
// up to 72 bytes; verifiers recompute the digest and compare it against the
// stored stamp with bcrypt.CompareHashAndPassword.
func StampMaterial(req Request, signedAt time.Time) []byte {
	material := fmt.Sprintf("%s|%s|%s|%s|%s|%s",
		req.Signer.ID,
		req.Signer.Role,
		req.Meaning,
		req.DocumentNumber,
		req.DocumentVersion,
		signedAt.Format(time.RFC3339Nano),
	)
	sum := sha256.Sum256([]byte(material))
	return []byte(hex.EncodeToString(sum[:]))
}
