package memledger

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"veridoc/internal/domain"
)

type entry struct {
	issuer    string
	timestamp int64
	status    string
	reason    string
	block     int64
}

// Ledger is an in-memory registry for tests and the offline CLI mode. It
// honors the real registry's contract: anchoring a known hash fails with
// ErrAlreadyAnchored, lookups never fail on a miss.
type Ledger struct {
	mu        sync.Mutex
	entries   map[string]entry
	clock     func() time.Time
	nextBlock int64
	issuer    string
}

func New() *Ledger {
	return &Ledger{
		entries:   make(map[string]entry),
		clock:     time.Now,
		nextBlock: 1,
		issuer:    "memledger",
	}
}

func NewWithClock(clock func() time.Time) *Ledger {
	l := New()
	if clock != nil {
		l.clock = clock
	}
	return l
}

func (l *Ledger) Anchor(ctx context.Context, documentHash string) (domain.AnchorResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.AnchorResult{}, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.entries[documentHash]; ok {
		return domain.AnchorResult{}, fmt.Errorf("%w: %s", domain.ErrAlreadyAnchored, documentHash)
	}
	block := l.nextBlock
	l.nextBlock++
	l.entries[documentHash] = entry{
		issuer:    l.issuer,
		timestamp: l.clock().UTC().Unix(),
		status:    domain.LedgerStatusActive,
		block:     block,
	}
	return domain.AnchorResult{
		TxHash:      txHash(documentHash, block),
		BlockNumber: block,
	}, nil
}

func (l *Ledger) Lookup(ctx context.Context, documentHash string) (domain.LookupResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.LookupResult{}, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[documentHash]
	if !ok {
		return domain.LookupResult{}, nil
	}
	return domain.LookupResult{
		Exists:    true,
		Issuer:    e.issuer,
		Timestamp: e.timestamp,
		Status:    e.status,
		Reason:    e.reason,
	}, nil
}

// Revoke marks an anchored hash revoked. Test helper for revocation paths.
func (l *Ledger) Revoke(documentHash, reason string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[documentHash]
	if !ok {
		return false
	}
	e.status = domain.LedgerStatusRevoked
	e.reason = reason
	l.entries[documentHash] = e
	return true
}

func txHash(documentHash string, block int64) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s:%d", documentHash, block)))
	return "0x" + hex.EncodeToString(sum[:])
}

var _ domain.LedgerService = (*Ledger)(nil)
