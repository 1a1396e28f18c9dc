package usecase

import (
	"context"
	"fmt"

	"veridoc/internal/domain"
)

// RevokeDocument flips a document to revoked. Already-issued proofs stay
// valid as historical records; new verifications of the hash fail the
// verdict from then on.
type RevokeDocument struct {
	Documents domain.DocumentRepository
	Audit     *AuditEmitter
}

func (uc *RevokeDocument) Execute(ctx context.Context, documentHash, reason, actorID string) error {
	doc, err := uc.Documents.GetByHash(ctx, documentHash)
	if err != nil {
		return err
	}
	if doc.Status == domain.DocumentStatusRevoked {
		return fmt.Errorf("%w: %s", domain.ErrDocumentRevoked, documentHash)
	}
	if err := uc.Documents.Revoke(ctx, doc.ID, reason); err != nil {
		uc.audit(ctx, actorID, documentHash, reason, domain.AuditResultFailure, "PERSISTENCE")
		return err
	}
	uc.audit(ctx, actorID, documentHash, reason, domain.AuditResultSuccess, "")
	return nil
}

func (uc *RevokeDocument) audit(ctx context.Context, actorID, documentHash, reason string, result domain.AuditResult, errorCode string) {
	if uc.Audit == nil {
		return
	}
	_ = uc.Audit.EmitDocumentRevoked(ctx, domain.AuditActorService, actorID, documentHash, reason, result, errorCode)
}
