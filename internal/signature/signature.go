// Package signature creates electronic-signature attestations: durable,
// role-attributed, hash-stamped claims by a principal about a document at a
// point in time. Signatures are immutable once created and are never scoped
// to a single version label, only to the document.
package signature

import (
	"time"

	"veridoc/pkg/domain"
)

// ElectronicSignature is one attestation record. The Hash field is a
// tamper-evidence stamp over the attestation's defining fields, not a
// public-key signature (see Signer).
type ElectronicSignature struct {
	ID         domain.SignatureID
	DocumentID domain.DocumentID
	SignerID   domain.PrincipalID
	SignerName string
	SignerRole domain.Role
	Meaning    domain.Meaning
	Reason     string
	SignedAt   time.Time
	Hash       string
}
