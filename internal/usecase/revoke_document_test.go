package usecase

import (
	"context"
	"errors"
	"testing"

	"veridoc/internal/domain"
)

func TestRevokeDocument(t *testing.T) {
	docs := newDocumentRepoStub()
	docs.docs["0xabc"] = &domain.Document{
		ID:           "doc-1",
		DocumentHash: "0xabc",
		Status:       domain.DocumentStatusActive,
	}
	audit := &auditRepoStub{}
	uc := &RevokeDocument{Documents: docs, Audit: NewAuditEmitter(audit, fixedClock)}

	if err := uc.Execute(context.Background(), "0xabc", "issued in error", "ops-1"); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if docs.docs["0xabc"].Status != domain.DocumentStatusRevoked {
		t.Fatalf("status = %s", docs.docs["0xabc"].Status)
	}
	types := audit.eventTypes()
	if len(types) != 1 || types[0] != domain.AuditEventDocumentRevoked {
		t.Fatalf("expected document_revoked event, got %v", types)
	}
}

func TestRevokeDocumentAlreadyRevoked(t *testing.T) {
	docs := newDocumentRepoStub()
	docs.docs["0xabc"] = &domain.Document{
		ID:           "doc-1",
		DocumentHash: "0xabc",
		Status:       domain.DocumentStatusRevoked,
	}
	uc := &RevokeDocument{Documents: docs}

	err := uc.Execute(context.Background(), "0xabc", "again", "ops-1")
	if !errors.Is(err, domain.ErrDocumentRevoked) {
		t.Fatalf("expected ErrDocumentRevoked, got %v", err)
	}
}

func TestRevokeDocumentUnknownHash(t *testing.T) {
	uc := &RevokeDocument{Documents: newDocumentRepoStub()}

	err := uc.Execute(context.Background(), "0xmissing", "", "ops-1")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
