package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"veridoc/internal/domain"
	"veridoc/internal/infra/crypto"
)

func storedProofFixture(t *testing.T) domain.StoredProof {
	t.Helper()
	record, err := crypto.BuildRecord(domain.VerificationFacts{
		DocumentHash:    "0xabc123",
		InstitutionName: "Test University",
		VerifiedAt:      fixedClock(),
		BlockchainTx:    "0xdeadbeef",
		BlockNumber:     12345,
		VerifierType:    domain.VerifierTypePublic,
	})
	if err != nil {
		t.Fatalf("build record: %v", err)
	}
	hash, err := crypto.ComputeHash(record)
	if err != nil {
		t.Fatalf("compute hash: %v", err)
	}
	return domain.StoredProof{ProofHash: hash, Record: record, CreatedAt: fixedClock()}
}

func newCheckUsecase(proofs *proofRepoStub, cache *cacheStub, audit *auditRepoStub) *CheckProof {
	uc := &CheckProof{
		Proofs: proofs,
		Crypto: crypto.NewService(),
		Audit:  NewAuditEmitter(audit, fixedClock),
		Clock:  fixedClock,
	}
	if cache != nil {
		uc.Cache = cache
	}
	return uc
}

func TestCheckProofOK(t *testing.T) {
	proofs := newProofRepoStub()
	stored := storedProofFixture(t)
	proofs.proofs[stored.ProofHash] = stored
	cache := newCacheStub()
	audit := &auditRepoStub{}
	uc := newCheckUsecase(proofs, cache, audit)

	receipt, err := uc.Execute(context.Background(), stored.ProofHash)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if receipt.Status != domain.ProofStatusVerified {
		t.Fatalf("status = %s", receipt.Status)
	}
	if receipt.Record != stored.Record {
		t.Fatal("record must round-trip unchanged")
	}
	if cache.puts != 1 {
		t.Fatalf("passing check must be cached, puts = %d", cache.puts)
	}
	types := audit.eventTypes()
	if len(types) != 1 || types[0] != domain.AuditEventProofChecked {
		t.Fatalf("expected proof_checked event, got %v", types)
	}
}

func TestCheckProofIdempotent(t *testing.T) {
	proofs := newProofRepoStub()
	stored := storedProofFixture(t)
	proofs.proofs[stored.ProofHash] = stored
	uc := newCheckUsecase(proofs, nil, &auditRepoStub{})

	for i := 0; i < 3; i++ {
		receipt, err := uc.Execute(context.Background(), stored.ProofHash)
		if err != nil {
			t.Fatalf("check %d: %v", i, err)
		}
		if receipt.Status != domain.ProofStatusVerified {
			t.Fatalf("check %d status = %s", i, receipt.Status)
		}
	}
	if got := proofs.proofs[stored.ProofHash].Record; got != stored.Record {
		t.Fatal("checking must not mutate the stored record")
	}
}

func TestCheckProofNotFound(t *testing.T) {
	uc := newCheckUsecase(newProofRepoStub(), nil, &auditRepoStub{})
	missing := strings.Repeat("a", 64)

	_, err := uc.Execute(context.Background(), missing)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if errors.Is(err, domain.ErrIntegrityViolation) {
		t.Fatal("a miss must never be an integrity violation")
	}
}

func TestCheckProofTampered(t *testing.T) {
	proofs := newProofRepoStub()
	stored := storedProofFixture(t)
	stored.Record.InstitutionName = "Someone Else"
	proofs.proofs[stored.ProofHash] = stored
	audit := &auditRepoStub{}
	cache := newCacheStub()
	uc := newCheckUsecase(proofs, cache, audit)

	_, err := uc.Execute(context.Background(), stored.ProofHash)
	if !errors.Is(err, domain.ErrIntegrityViolation) {
		t.Fatalf("expected ErrIntegrityViolation, got %v", err)
	}
	if cache.puts != 0 {
		t.Fatal("tampered proofs must never be cached")
	}
	types := audit.eventTypes()
	if len(types) != 1 || types[0] != domain.AuditEventProofTampered {
		t.Fatalf("expected proof_tampered event, got %v", types)
	}

	// Every repeated check of a tampered proof re-raises the event.
	_, _ = uc.Execute(context.Background(), stored.ProofHash)
	if got := len(audit.eventTypes()); got != 2 {
		t.Fatalf("expected a second proof_tampered event, got %d events", got)
	}
}

func TestCheckProofCacheHitSkipsStore(t *testing.T) {
	stored := storedProofFixture(t)
	cache := newCacheStub()
	cache.entries[stored.ProofHash] = stored
	proofs := newProofRepoStub()
	proofs.getErr = errors.New("store must not be touched")
	uc := newCheckUsecase(proofs, cache, &auditRepoStub{})

	receipt, err := uc.Execute(context.Background(), stored.ProofHash)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if receipt.Status != domain.ProofStatusVerified {
		t.Fatalf("status = %s", receipt.Status)
	}
	if cache.hits != 1 {
		t.Fatalf("cache hits = %d", cache.hits)
	}
}

func TestCheckProofRejectsMalformedHash(t *testing.T) {
	uc := newCheckUsecase(newProofRepoStub(), nil, &auditRepoStub{})

	bad := []string{
		"",
		"xyz",
		strings.Repeat("a", 63),
		strings.Repeat("a", 65),
		strings.ToUpper(strings.Repeat("a", 64)),
		strings.Repeat("g", 64),
	}
	for _, hash := range bad {
		if _, err := uc.Execute(context.Background(), hash); !errors.Is(err, domain.ErrMalformedFacts) {
			t.Fatalf("hash %q: expected ErrMalformedFacts, got %v", hash, err)
		}
	}
}
