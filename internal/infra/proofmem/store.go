package proofmem

import (
	"context"
	"fmt"
	"sync"

	"veridoc/internal/domain"
)

// Store is an in-memory, append-only proof store keyed by proof hash. It
// backs tests and the offline CLI mode; persistence lives in infra/db.
type Store struct {
	mu     sync.RWMutex
	proofs map[string]domain.StoredProof
}

func New() *Store {
	return &Store{
		proofs: make(map[string]domain.StoredProof),
	}
}

func (s *Store) Append(ctx context.Context, proof domain.StoredProof) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if proof.ProofHash == "" {
		return fmt.Errorf("%w: proof hash", domain.ErrMalformedFacts)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	// Same hash means same canonical record; re-appending is a no-op.
	if _, ok := s.proofs[proof.ProofHash]; ok {
		return nil
	}
	s.proofs[proof.ProofHash] = proof
	return nil
}

func (s *Store) GetByHash(ctx context.Context, proofHash string) (*domain.StoredProof, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	proof, ok := s.proofs[proofHash]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := proof
	return &out, nil
}

// Tamper rewrites a stored record in place. Test helper: it simulates
// post-persistence corruption that integrity checks must catch.
func (s *Store) Tamper(proofHash string, mutate func(*domain.ProofRecord)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	proof, ok := s.proofs[proofHash]
	if !ok {
		return false
	}
	mutate(&proof.Record)
	s.proofs[proofHash] = proof
	return true
}

var _ domain.ProofRepository = (*Store)(nil)
