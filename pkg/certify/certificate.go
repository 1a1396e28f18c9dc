package certify

import (
	"fmt"
	"time"

	"veridoc/internal/domain"
	"veridoc/internal/infra/canonical"
)

const (
	CertificateType = "government_document_verification"

	// CertificateFormatVersion tracks the certificate envelope, not the
	// proof record; the two version independently.
	CertificateFormatVersion = "1.0"
)

// Certificate is the machine-verifiable JSON envelope around a proof.
// Anyone holding it can recompute the hash from proof_object and compare
// it to proof_hash without contacting the issuing system.
type Certificate struct {
	CertificateType string             `json:"certificate_type"`
	ProofHash       string             `json:"proof_hash"`
	ProofObject     domain.ProofRecord `json:"proof_object"`
	VerificationURL string             `json:"verification_url"`
	GeneratedAt     string             `json:"generated_at"`
	FormatVersion   string             `json:"format_version"`
}

// NewCertificate verifies the pair before wrapping it; a tampered record
// must never be re-published inside a certificate.
func NewCertificate(record Record, proofHash string, baseURL string, now time.Time) (Certificate, error) {
	if err := Verify(record, proofHash); err != nil {
		return Certificate{}, err
	}
	return Certificate{
		CertificateType: CertificateType,
		ProofHash:       proofHash,
		ProofObject:     record,
		VerificationURL: fmt.Sprintf("%s/verify-proof/%s", baseURL, proofHash),
		GeneratedAt:     canonical.ISOTimestamp(now),
		FormatVersion:   CertificateFormatVersion,
	}, nil
}
