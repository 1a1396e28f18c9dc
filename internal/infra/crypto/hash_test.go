package crypto

import (
	"errors"
	"strings"
	"testing"

	"veridoc/internal/domain"
)

const (
	goldenCanonical = `{"block_number":12345,"blockchain_tx":"0xdeadbeef","document_hash":"0xabc123","expiry_date":null,"institution_name":"Test University","system_version":"v1.0","verification_result":"VALID","verified_at":"2025-01-15T10:30:00.000Z","verifier_type":"public"}`
	goldenHash      = "e6c491db0c25d5903febcf34c744ec4e4d1cae6870bc5379b0667ba00d8c358a"
)

func TestCanonicalRecordGolden(t *testing.T) {
	record, err := BuildRecord(baseFacts())
	if err != nil {
		t.Fatalf("build record: %v", err)
	}
	canonical, err := CanonicalRecord(record)
	if err != nil {
		t.Fatalf("canonical record: %v", err)
	}
	if string(canonical) != goldenCanonical {
		t.Fatalf("canonical bytes drifted:\n got %s\nwant %s", canonical, goldenCanonical)
	}
}

func TestComputeHashGolden(t *testing.T) {
	record, err := BuildRecord(baseFacts())
	if err != nil {
		t.Fatalf("build record: %v", err)
	}
	hash, err := ComputeHash(record)
	if err != nil {
		t.Fatalf("compute hash: %v", err)
	}
	if hash != goldenHash {
		t.Fatalf("hash drifted: got %s, want %s", hash, goldenHash)
	}
	if hash != strings.ToLower(hash) {
		t.Fatal("hash must be lowercase hex")
	}
	if len(hash) != 64 {
		t.Fatalf("hash length %d", len(hash))
	}
}

func TestComputeHashStableAcrossRepeats(t *testing.T) {
	record, err := BuildRecord(baseFacts())
	if err != nil {
		t.Fatalf("build record: %v", err)
	}
	first, err := ComputeHash(record)
	if err != nil {
		t.Fatalf("compute hash: %v", err)
	}
	for i := 0; i < 20; i++ {
		next, err := ComputeHash(record)
		if err != nil {
			t.Fatalf("compute hash repeat: %v", err)
		}
		if next != first {
			t.Fatalf("hash changed on repeat %d", i)
		}
	}
}

func TestVerifyIntegrityDetectsAnyFieldChange(t *testing.T) {
	record, err := BuildRecord(baseFacts())
	if err != nil {
		t.Fatalf("build record: %v", err)
	}
	hash, err := ComputeHash(record)
	if err != nil {
		t.Fatalf("compute hash: %v", err)
	}
	if err := VerifyIntegrity(record, hash); err != nil {
		t.Fatalf("untampered record must verify: %v", err)
	}

	expiry := "2030-01-01"
	mutations := []struct {
		name   string
		mutate func(*domain.ProofRecord)
	}{
		{"document_hash", func(r *domain.ProofRecord) { r.DocumentHash = "0xabc124" }},
		{"institution_name", func(r *domain.ProofRecord) { r.InstitutionName = "Test Université" }},
		{"verification_result", func(r *domain.ProofRecord) { r.VerificationResult = "INVALID" }},
		{"verified_at", func(r *domain.ProofRecord) { r.VerifiedAt = "2025-01-15T10:30:00.001Z" }},
		{"blockchain_tx", func(r *domain.ProofRecord) { r.BlockchainTx = "0xdeadbee0" }},
		{"block_number", func(r *domain.ProofRecord) { r.BlockNumber = 12346 }},
		{"verifier_type", func(r *domain.ProofRecord) { r.VerifierType = domain.VerifierTypeAuthenticated }},
		{"expiry_date", func(r *domain.ProofRecord) { r.ExpiryDate = &expiry }},
		{"system_version", func(r *domain.ProofRecord) { r.SystemVersion = "v1.1" }},
	}
	for _, tt := range mutations {
		t.Run(tt.name, func(t *testing.T) {
			tampered := record
			tt.mutate(&tampered)
			err := VerifyIntegrity(tampered, hash)
			if !errors.Is(err, domain.ErrIntegrityViolation) {
				t.Fatalf("expected ErrIntegrityViolation, got %v", err)
			}
		})
	}
}

func TestVerifyIntegrityClaimedHashCaseSensitive(t *testing.T) {
	record, err := BuildRecord(baseFacts())
	if err != nil {
		t.Fatalf("build record: %v", err)
	}
	hash, err := ComputeHash(record)
	if err != nil {
		t.Fatalf("compute hash: %v", err)
	}
	if err := VerifyIntegrity(record, strings.ToUpper(hash)); !errors.Is(err, domain.ErrIntegrityViolation) {
		t.Fatalf("uppercase claimed hash must not match, got %v", err)
	}
}

func TestHashDocumentPrefixed(t *testing.T) {
	hash := HashDocument([]byte("hello"))
	if !strings.HasPrefix(hash, "0x") {
		t.Fatalf("document hash must be 0x-prefixed: %s", hash)
	}
	if len(hash) != 66 {
		t.Fatalf("document hash length %d", len(hash))
	}
	if hash != HashDocument([]byte("hello")) {
		t.Fatal("document hashing must be deterministic")
	}
}
