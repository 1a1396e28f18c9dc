// Package certify is the embeddable proof toolkit: build a proof record
// from verification facts, hash it, check a stored record against its
// hash, and assemble the shareable certificate document. It has no
// storage or transport dependencies.
package certify

import (
	"veridoc/internal/domain"
	"veridoc/internal/infra/crypto"
)

type Record = domain.ProofRecord

type Facts = domain.VerificationFacts

// BuildRecord coerces loose facts into the fixed nine-field record.
func BuildRecord(facts Facts) (Record, error) {
	return crypto.BuildRecord(facts)
}

// ComputeHash returns the lowercase hex sha256 of the record's canonical
// encoding.
func ComputeHash(record Record) (string, error) {
	return crypto.ComputeHash(record)
}

// CanonicalRecord returns the exact bytes ComputeHash digests, for third
// parties recomputing hashes with their own tooling.
func CanonicalRecord(record Record) ([]byte, error) {
	return crypto.CanonicalRecord(record)
}

// Verify recomputes the record's hash and compares it against the claimed
// one; a mismatch is domain.ErrIntegrityViolation.
func Verify(record Record, claimedHash string) error {
	return crypto.VerifyIntegrity(record, claimedHash)
}

// HashDocument hashes raw document bytes into the 0x-prefixed form used
// for anchoring and lookup.
func HashDocument(content []byte) string {
	return crypto.HashDocument(content)
}
