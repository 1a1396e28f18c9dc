package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"veridoc/internal/domain"
)

var proofHashPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

type CheckProofReceipt struct {
	ProofHash string
	Status    string
	Record    domain.ProofRecord
	CheckedAt time.Time
}

// CheckProof is the integrity check: load a stored proof by hash, recompute
// the hash from the stored record and compare. A missing proof and a
// tampered proof are distinct failures and are never conflated.
type CheckProof struct {
	Proofs   domain.ProofRepository
	Crypto   CryptoService
	Cache    ProofCache
	Audit    *AuditEmitter
	Clock    Clock
	CacheTTL time.Duration
}

func (uc *CheckProof) Execute(ctx context.Context, proofHash string) (*CheckProofReceipt, error) {
	if !proofHashPattern.MatchString(proofHash) {
		return nil, fmt.Errorf("%w: proof hash must be 64 lowercase hex chars", domain.ErrMalformedFacts)
	}
	now := uc.now()

	if proof, ok := uc.cacheGet(ctx, proofHash); ok {
		return &CheckProofReceipt{
			ProofHash: proofHash,
			Status:    domain.ProofStatusVerified,
			Record:    proof.Record,
			CheckedAt: now,
		}, nil
	}

	proof, err := uc.Proofs.GetByHash(ctx, proofHash)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.auditChecked(ctx, proofHash, domain.AuditResultFailure, "NOT_FOUND")
			return nil, fmt.Errorf("%w: proof %s", domain.ErrNotFound, proofHash)
		}
		return nil, err
	}

	if err := uc.Crypto.VerifyIntegrity(proof.Record, proofHash); err != nil {
		if errors.Is(err, domain.ErrIntegrityViolation) {
			uc.auditTampered(ctx, proofHash, err)
			return nil, err
		}
		return nil, err
	}

	uc.auditChecked(ctx, proofHash, domain.AuditResultSuccess, "")
	uc.cachePut(ctx, proofHash, *proof)

	return &CheckProofReceipt{
		ProofHash: proofHash,
		Status:    domain.ProofStatusVerified,
		Record:    proof.Record,
		CheckedAt: now,
	}, nil
}

// cacheGet only ever serves proofs that passed a prior integrity check, so
// a cache hit can skip the recompute.
func (uc *CheckProof) cacheGet(ctx context.Context, proofHash string) (*domain.StoredProof, bool) {
	if uc.Cache == nil {
		return nil, false
	}
	proof, ok, err := uc.Cache.Get(ctx, proofHash)
	if err != nil || !ok {
		return nil, false
	}
	return proof, true
}

func (uc *CheckProof) cachePut(ctx context.Context, proofHash string, proof domain.StoredProof) {
	if uc.Cache == nil {
		return
	}
	ttl := uc.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	_ = uc.Cache.Put(ctx, proofHash, proof, ttl)
}

func (uc *CheckProof) auditChecked(ctx context.Context, proofHash string, result domain.AuditResult, errorCode string) {
	if uc.Audit == nil {
		return
	}
	_ = uc.Audit.EmitProofChecked(ctx, domain.AuditActorVerifier, "", proofHash, result, errorCode)
}

func (uc *CheckProof) auditTampered(ctx context.Context, proofHash string, verifyErr error) {
	if uc.Audit == nil {
		return
	}
	_ = uc.Audit.EmitProofTampered(ctx, domain.AuditActorVerifier, "", proofHash, verifyErr.Error())
}

func (uc *CheckProof) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock().UTC()
	}
	return time.Now().UTC()
}
