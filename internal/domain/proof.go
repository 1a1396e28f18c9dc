package domain

import "time"

const (
	// VerificationResultValid is the only result a proof record is ever
	// built for. Failed verifications are logged but never produce a proof.
	VerificationResultValid = "VALID"

	// SystemVersion is baked into every record; bumping it changes every
	// hash, so it only moves together with the encoding rules.
	SystemVersion = "v1.0"
)

const (
	VerifierTypePublic        = "public"
	VerifierTypeAuthenticated = "authenticated"
)

// Proof lifecycle states. Checking is idempotent: a proof re-enters one of
// the two terminal check states on every integrity check.
const (
	ProofStatusCreated   = "created"
	ProofStatusPersisted = "persisted"
	ProofStatusVerified  = "verified_ok"
	ProofStatusTampered  = "verified_tampered"
)

// ProofRecord is the canonical fact-set for one successful verification
// event. All nine keys are always present; ExpiryDate is an explicit null
// when the document carries no expiry. Omitting a key and setting it null
// are different documents under canonical encoding.
type ProofRecord struct {
	DocumentHash       string  `json:"document_hash"`
	InstitutionName    string  `json:"institution_name"`
	VerificationResult string  `json:"verification_result"`
	VerifiedAt         string  `json:"verified_at"`
	BlockchainTx       string  `json:"blockchain_tx"`
	BlockNumber        int64   `json:"block_number"`
	VerifierType       string  `json:"verifier_type"`
	ExpiryDate         *string `json:"expiry_date"`
	SystemVersion      string  `json:"system_version"`
}

// VerificationFacts carries the raw inputs to record building. The web
// tier supplies them as loosely typed values (numeric institution ids,
// time.Time or ISO strings, numeric strings for block numbers); building
// coerces, it does not reject plausible shapes.
type VerificationFacts struct {
	DocumentHash    any
	InstitutionName any
	VerifiedAt      any
	BlockchainTx    any
	BlockNumber     any
	VerifierType    any
	ExpiryDate      any
}

// StoredProof is the opaque (record, hash) pair as persisted. The record
// is stored as a plain JSON object, never a pre-serialized string; only
// the canonical encoder orders keys at hash time.
type StoredProof struct {
	ProofHash      string
	Record         ProofRecord
	VerificationID string
	CreatedAt      time.Time
}
