package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"veridoc/internal/domain"
)

type AuditEmitter struct {
	Repo  domain.AuditEventRepository
	Clock Clock
}

func NewAuditEmitter(repo domain.AuditEventRepository, clock Clock) *AuditEmitter {
	return &AuditEmitter{
		Repo:  repo,
		Clock: clock,
	}
}

func (e *AuditEmitter) Emit(ctx context.Context, event domain.AuditEvent) (domain.AuditEvent, error) {
	if e == nil || e.Repo == nil {
		return domain.AuditEvent{}, errors.New("audit repository required")
	}
	if event.EventType == "" || event.TargetType == "" || event.Result == "" || event.ActorType == "" {
		return domain.AuditEvent{}, errors.New("audit event missing required fields")
	}
	if event.Payload == nil {
		event.Payload = map[string]any{}
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = e.now().UTC()
	} else {
		event.CreatedAt = event.CreatedAt.UTC()
	}
	return e.Repo.Append(ctx, event)
}

func (e *AuditEmitter) EmitDocumentAnchored(ctx context.Context, actorType domain.AuditActorType, actorID string, documentHash, txHash, outcome string, result domain.AuditResult, errorCode string) error {
	payload := map[string]any{
		"document_hash": documentHash,
		"outcome":       outcome,
	}
	if txHash != "" {
		payload["tx_hash"] = txHash
	}
	_, err := e.Emit(ctx, domain.AuditEvent{
		ActorType:   actorType,
		ActorIDHash: hashString(actorID),
		EventType:   domain.AuditEventDocumentAnchored,
		Payload:     payload,
		TargetType:  domain.AuditTargetDocument,
		TargetID:    documentHash,
		Result:      result,
		ErrorCode:   errorCode,
	})
	return err
}

func (e *AuditEmitter) EmitDocumentRevoked(ctx context.Context, actorType domain.AuditActorType, actorID string, documentHash, reason string, result domain.AuditResult, errorCode string) error {
	payload := map[string]any{
		"document_hash": documentHash,
	}
	if reason != "" {
		payload["reason"] = reason
	}
	_, err := e.Emit(ctx, domain.AuditEvent{
		ActorType:   actorType,
		ActorIDHash: hashString(actorID),
		EventType:   domain.AuditEventDocumentRevoked,
		Payload:     payload,
		TargetType:  domain.AuditTargetDocument,
		TargetID:    documentHash,
		Result:      result,
		ErrorCode:   errorCode,
	})
	return err
}

func (e *AuditEmitter) EmitProofIssued(ctx context.Context, actorType domain.AuditActorType, actorID string, proofHash, documentHash string, result domain.AuditResult, errorCode string) error {
	payload := map[string]any{
		"proof_hash":    proofHash,
		"document_hash": documentHash,
	}
	_, err := e.Emit(ctx, domain.AuditEvent{
		ActorType:   actorType,
		ActorIDHash: hashString(actorID),
		EventType:   domain.AuditEventProofIssued,
		Payload:     payload,
		TargetType:  domain.AuditTargetProof,
		TargetID:    proofHash,
		Result:      result,
		ErrorCode:   errorCode,
	})
	return err
}

func (e *AuditEmitter) EmitProofChecked(ctx context.Context, actorType domain.AuditActorType, actorID string, proofHash string, result domain.AuditResult, errorCode string) error {
	payload := map[string]any{
		"proof_hash": proofHash,
	}
	_, err := e.Emit(ctx, domain.AuditEvent{
		ActorType:   actorType,
		ActorIDHash: hashString(actorID),
		EventType:   domain.AuditEventProofChecked,
		Payload:     payload,
		TargetType:  domain.AuditTargetProof,
		TargetID:    proofHash,
		Result:      result,
		ErrorCode:   errorCode,
	})
	return err
}

// EmitProofTampered flags an integrity violation. It is emitted on every
// failed check, not just the first, so repeated probing stays visible.
func (e *AuditEmitter) EmitProofTampered(ctx context.Context, actorType domain.AuditActorType, actorID string, proofHash, detail string) error {
	payload := map[string]any{
		"proof_hash": proofHash,
		"detail":     detail,
	}
	_, err := e.Emit(ctx, domain.AuditEvent{
		ActorType:   actorType,
		ActorIDHash: hashString(actorID),
		EventType:   domain.AuditEventProofTampered,
		Payload:     payload,
		TargetType:  domain.AuditTargetProof,
		TargetID:    proofHash,
		Result:      domain.AuditResultFailure,
		ErrorCode:   "INTEGRITY_VIOLATION",
	})
	return err
}

func (e *AuditEmitter) now() time.Time {
	if e != nil && e.Clock != nil {
		return e.Clock()
	}
	return time.Now().UTC()
}

func hashString(value string) string {
	if value == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
