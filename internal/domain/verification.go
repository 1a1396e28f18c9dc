package domain

import (
	"context"
	"time"
)

const (
	VerificationValid   = "valid"
	VerificationInvalid = "invalid"
)

// Verification is one verification attempt, valid or not. Every attempt is
// logged; only valid ones go on to produce a proof.
type Verification struct {
	ID           string
	DocumentID   string
	UploadedHash string
	Result       string
	VerifierType string
	CreatedAt    time.Time
}

type VerificationRepository interface {
	Append(ctx context.Context, v Verification) (string, error)
}

// ProofRepository is the append-only store for (record, hash) pairs.
// Proofs are never mutated or deleted by normal operation.
type ProofRepository interface {
	Append(ctx context.Context, proof StoredProof) error
	GetByHash(ctx context.Context, proofHash string) (*StoredProof, error)
}
