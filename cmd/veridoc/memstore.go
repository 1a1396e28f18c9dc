package main

import (
	"context"
	"fmt"
	"sync"

	"veridoc/internal/domain"
)

// memStore backs the offline mode: documents and verifications in one
// mutex-guarded map, matching the repository contracts.
type memStore struct {
	mu            sync.Mutex
	docsByHash    map[string]domain.Document
	verifications []domain.Verification
	nextID        int
}

func newMemStore() *memStore {
	return &memStore{
		docsByHash: make(map[string]domain.Document),
	}
}

func (s *memStore) Create(ctx context.Context, doc domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if doc.ID == "" {
		s.nextID++
		doc.ID = fmt.Sprintf("doc-%d", s.nextID)
	}
	if _, ok := s.docsByHash[doc.DocumentHash]; ok {
		return nil
	}
	s.docsByHash[doc.DocumentHash] = doc
	return nil
}

func (s *memStore) GetByHash(ctx context.Context, documentHash string) (*domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docsByHash[documentHash]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := doc
	return &out, nil
}

func (s *memStore) Revoke(ctx context.Context, id string, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for hash, doc := range s.docsByHash {
		if doc.ID == id {
			doc.Status = domain.DocumentStatusRevoked
			s.docsByHash[hash] = doc
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *memStore) Append(ctx context.Context, v domain.Verification) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	v.ID = fmt.Sprintf("ver-%d", s.nextID)
	s.verifications = append(s.verifications, v)
	return v.ID, nil
}
