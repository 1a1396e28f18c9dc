package domain

import "context"

// LedgerService is the external anchor registry. The core only consumes
// hash-existence and status facts; how the registry is implemented (chain,
// centralized log) is not its concern.
type LedgerService interface {
	// Anchor submits a document hash and returns the transaction it was
	// recorded under. An already-anchored hash fails with ErrAlreadyAnchored.
	Anchor(ctx context.Context, documentHash string) (AnchorResult, error)

	// Lookup reports whether a document hash is anchored and its status.
	// A missing hash is not an error; Exists is false.
	Lookup(ctx context.Context, documentHash string) (LookupResult, error)
}

type AnchorResult struct {
	TxHash      string
	BlockNumber int64
}

type LookupResult struct {
	Exists    bool
	Issuer    string
	Timestamp int64
	Status    string
	Reason    string
}

const (
	LedgerStatusActive  = "active"
	LedgerStatusRevoked = "revoked"
)

// TxRecovered marks a document whose anchor exists on the ledger but whose
// local row was lost (wiped store, persistent ledger). The wire value is
// kept for compatibility with previously issued records.
const TxRecovered = "RECOVERED_FROM_BLOCKCHAIN"

// Anchor outcomes. Recovery is a named state rather than a string tag so
// callers can tell a fresh anchor from a re-adopted one.
const (
	AnchorOutcomeAnchored  = "anchored"
	AnchorOutcomeRecovered = "recovered"
	AnchorOutcomeDuplicate = "duplicate"
)
