package handler

import (
	"time"

	"veridoc/internal/document/models"
	"veridoc/internal/signature"
)

type versionResponse struct {
	Version   string    `json:"version"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `json:"created_by"`
}

type documentResponse struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	Number     string            `json:"number"`
	Version    string            `json:"version"`
	Type       string            `json:"type"`
	Category   string            `json:"category"`
	Security   string            `json:"security"`
	Status     string            `json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
	CreatedBy  string            `json:"created_by"`
	IssuedAt   *time.Time        `json:"issued_at,omitempty"`
	IssuedBy   string            `json:"issued_by,omitempty"`
	IssuerRole string            `json:"issuer_role,omitempty"`
	Versions   []versionResponse `json:"versions"`
}

func fromDocument(d *models.Document) documentResponse {
	versions := make([]versionResponse, 0, len(d.Versions))
	for _, v := range d.Versions {
		versions = append(versions, versionResponse(v))
	}
	return documentResponse{
		ID:         d.ID.String(),
		Title:      d.Title,
		Number:     d.Number,
		Version:    d.Version,
		Type:       d.Type,
		Category:   d.Category,
		Security:   d.Security.String(),
		Status:     d.Status.String(),
		CreatedAt:  d.CreatedAt,
		CreatedBy:  d.CreatedBy,
		IssuedAt:   d.IssuedAt,
		IssuedBy:   d.IssuedBy,
		IssuerRole: d.IssuerRole.String(),
		Versions:   versions,
	}
}

type signatureResponse struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	SignerID   string    `json:"signer_id"`
	SignerName string    `json:"signer_name"`
	SignerRole string    `json:"signer_role"`
	Meaning    string    `json:"meaning"`
	Reason     string    `json:"reason,omitempty"`
	SignedAt   time.Time `json:"signed_at"`
	Hash       string    `json:"hash"`
}

func fromSignature(s signature.ElectronicSignature) signatureResponse {
	return signatureResponse{
		ID:         s.ID.String(),
		DocumentID: s.DocumentID.String(),
		SignerID:   s.SignerID.String(),
		SignerName: s.SignerName,
		SignerRole: s.SignerRole.String(),
		Meaning:    s.Meaning.String(),
		Reason:     s.Reason,
		SignedAt:   s.SignedAt,
		Hash:       s.Hash,
	}
}

type signResponse struct {
	Document  documentResponse  `json:"document"`
	Signature signatureResponse `json:"signature"`
}
