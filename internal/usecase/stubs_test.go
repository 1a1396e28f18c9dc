package usecase

import (
	"context"
	"sync"
	"time"

	"veridoc/internal/domain"
)

func fixedClock() time.Time {
	return time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)
}

type ledgerStub struct {
	anchorResult domain.AnchorResult
	anchorErr    error
	lookupResult domain.LookupResult
	lookupErr    error
	anchorCalls  int
	lookupCalls  int
}

func (l *ledgerStub) Anchor(ctx context.Context, documentHash string) (domain.AnchorResult, error) {
	l.anchorCalls++
	return l.anchorResult, l.anchorErr
}

func (l *ledgerStub) Lookup(ctx context.Context, documentHash string) (domain.LookupResult, error) {
	l.lookupCalls++
	return l.lookupResult, l.lookupErr
}

type documentRepoStub struct {
	docs      map[string]*domain.Document
	created   []domain.Document
	createErr error
	revoked   []string
}

func newDocumentRepoStub() *documentRepoStub {
	return &documentRepoStub{docs: make(map[string]*domain.Document)}
}

func (r *documentRepoStub) Create(ctx context.Context, doc domain.Document) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, doc)
	copied := doc
	r.docs[doc.DocumentHash] = &copied
	return nil
}

func (r *documentRepoStub) GetByHash(ctx context.Context, documentHash string) (*domain.Document, error) {
	doc, ok := r.docs[documentHash]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *doc
	return &out, nil
}

func (r *documentRepoStub) Revoke(ctx context.Context, id string, reason string) error {
	r.revoked = append(r.revoked, id)
	for _, doc := range r.docs {
		if doc.ID == id {
			doc.Status = domain.DocumentStatusRevoked
			return nil
		}
	}
	return domain.ErrNotFound
}

type verificationRepoStub struct {
	rows      []domain.Verification
	appendErr error
}

func (r *verificationRepoStub) Append(ctx context.Context, v domain.Verification) (string, error) {
	if r.appendErr != nil {
		return "", r.appendErr
	}
	r.rows = append(r.rows, v)
	return "verification-1", nil
}

type proofRepoStub struct {
	proofs    map[string]domain.StoredProof
	appendErr error
	getErr    error
}

func newProofRepoStub() *proofRepoStub {
	return &proofRepoStub{proofs: make(map[string]domain.StoredProof)}
}

func (r *proofRepoStub) Append(ctx context.Context, proof domain.StoredProof) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	r.proofs[proof.ProofHash] = proof
	return nil
}

func (r *proofRepoStub) GetByHash(ctx context.Context, proofHash string) (*domain.StoredProof, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	proof, ok := r.proofs[proofHash]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := proof
	return &out, nil
}

type auditRepoStub struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (r *auditRepoStub) Append(ctx context.Context, event domain.AuditEvent) (domain.AuditEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	prevSeq := int64(0)
	prevHash := ""
	if n := len(r.events); n > 0 {
		prevSeq = r.events[n-1].Seq
		prevHash = r.events[n-1].EventHash
	}
	sealed, err := SealEvent(event, prevSeq, prevHash)
	if err != nil {
		return domain.AuditEvent{}, err
	}
	r.events = append(r.events, sealed)
	return sealed, nil
}

func (r *auditRepoStub) eventTypes() []domain.AuditEventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.AuditEventType, 0, len(r.events))
	for _, event := range r.events {
		out = append(out, event.EventType)
	}
	return out
}

type cacheStub struct {
	entries map[string]domain.StoredProof
	hits    int
	puts    int
}

func newCacheStub() *cacheStub {
	return &cacheStub{entries: make(map[string]domain.StoredProof)}
}

func (c *cacheStub) Get(ctx context.Context, key string) (*domain.StoredProof, bool, error) {
	proof, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	c.hits++
	out := proof
	return &out, true, nil
}

func (c *cacheStub) Put(ctx context.Context, key string, value domain.StoredProof, ttl time.Duration) error {
	c.puts++
	c.entries[key] = value
	return nil
}
