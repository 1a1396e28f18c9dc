package domain

import (
	"context"
	"time"
)

const AuditChainVersion = "audit_chain_v1"

type AuditActorType string

const (
	AuditActorSystem   AuditActorType = "system"
	AuditActorService  AuditActorType = "service"
	AuditActorVerifier AuditActorType = "verifier"
	AuditActorUploader AuditActorType = "uploader"
)

type AuditEventType string

const (
	AuditEventDocumentAnchored AuditEventType = "document_anchored"
	AuditEventDocumentRevoked  AuditEventType = "document_revoked"
	AuditEventProofIssued      AuditEventType = "proof_issued"
	AuditEventProofChecked     AuditEventType = "proof_checked"
	// AuditEventProofTampered is security relevant: it records that a stored
	// record no longer matches its hash, which is never an ordinary miss.
	AuditEventProofTampered AuditEventType = "proof_tampered"
)

type AuditTargetType string

const (
	AuditTargetDocument AuditTargetType = "document"
	AuditTargetProof    AuditTargetType = "proof"
)

type AuditResult string

const (
	AuditResultSuccess AuditResult = "success"
	AuditResultFailure AuditResult = "failure"
)

// AuditEvent is one link in the hash-chained audit trail. EventHash covers
// the canonical encoding of the event body plus PrevEventHash, so any
// rewrite of history breaks the chain.
type AuditEvent struct {
	ID            string
	Seq           int64
	EventType     AuditEventType
	Payload       any
	PayloadHash   string
	ActorType     AuditActorType
	ActorIDHash   string
	TargetType    AuditTargetType
	TargetID      string
	Result        AuditResult
	ErrorCode     string
	PrevEventHash string
	EventHash     string
	CreatedAt     time.Time
}

type AuditEventRepository interface {
	Append(ctx context.Context, event AuditEvent) (AuditEvent, error)
}
