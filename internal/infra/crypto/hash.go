package crypto

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"veridoc/internal/domain"
	"veridoc/internal/infra/canonical"
)

// ComputeHash is the lowercase hex sha256 of the record's canonical
// encoding. The record is normalized through a JSON round-trip first, so
// the digest is identical whether the record was just built or reloaded
// from a store that re-serialized it.
func ComputeHash(record domain.ProofRecord) (string, error) {
	normalized, err := canonical.Normalize(record)
	if err != nil {
		return "", err
	}
	encoded, err := canonical.Encode(normalized)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(encoded)
	return hex.EncodeToString(sum[:]), nil
}

// CanonicalRecord returns the exact byte string that ComputeHash digests.
// Third parties can recompute the hash from it without this library.
func CanonicalRecord(record domain.ProofRecord) ([]byte, error) {
	normalized, err := canonical.Normalize(record)
	if err != nil {
		return nil, err
	}
	return canonical.Encode(normalized)
}

// VerifyIntegrity recomputes the record's hash and compares it to the
// claimed one. A mismatch is ErrIntegrityViolation: the stored record has
// been altered since issuance and must not be presented as valid.
func VerifyIntegrity(record domain.ProofRecord, claimedHash string) error {
	recomputed, err := ComputeHash(record)
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare([]byte(recomputed), []byte(claimedHash)) != 1 {
		return fmt.Errorf("%w: recomputed %s", domain.ErrIntegrityViolation, recomputed)
	}
	return nil
}

// HashDocument hashes raw document bytes into the 0x-prefixed hex form
// the ledger anchors.
func HashDocument(content []byte) string {
	sum := sha256.Sum256(content)
	return "0x" + hex.EncodeToString(sum[:])
}

// Service bundles the pure proof operations for injection into use cases.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

func (s *Service) BuildRecord(facts domain.VerificationFacts) (domain.ProofRecord, error) {
	return BuildRecord(facts)
}

func (s *Service) ComputeHash(record domain.ProofRecord) (string, error) {
	return ComputeHash(record)
}

func (s *Service) VerifyIntegrity(record domain.ProofRecord, claimedHash string) error {
	return VerifyIntegrity(record, claimedHash)
}
