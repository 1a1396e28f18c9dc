package usecase

import (
	"context"
	"time"

	"veridoc/internal/domain"
)

type Clock func() time.Time

// CryptoService is the pure proof engine: build, hash, integrity-check.
type CryptoService interface {
	BuildRecord(facts domain.VerificationFacts) (domain.ProofRecord, error)
	ComputeHash(record domain.ProofRecord) (string, error)
	VerifyIntegrity(record domain.ProofRecord, claimedHash string) error
}

// VerdictEngine decides whether a verification event qualifies for a
// certificate. Implementations must be deterministic over their input.
type VerdictEngine interface {
	Evaluate(ctx context.Context, input domain.VerdictInput) (domain.VerdictEvaluation, error)
}

// ProofCache holds integrity-checked proofs keyed by proof hash. Proofs
// are immutable once persisted, so entries never need invalidation beyond
// their TTL.
type ProofCache interface {
	Get(ctx context.Context, key string) (*domain.StoredProof, bool, error)
	Put(ctx context.Context, key string, value domain.StoredProof, ttl time.Duration) error
}
