package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"veridoc/internal/domain"
	"veridoc/internal/infra/canonical"
)

// ZeroEventHash seeds the chain: the first event links to all-zero bytes.
func ZeroEventHash() string {
	return strings.Repeat("0", 64)
}

// ChainPayloadHash digests the canonical encoding of the payload, so two
// payloads that differ only in key order or host typing hash the same.
func ChainPayloadHash(payload any) (string, error) {
	normalized, err := canonical.Normalize(payload)
	if err != nil {
		return "", err
	}
	encoded, err := canonical.Encode(normalized)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(encoded)
	return hex.EncodeToString(sum[:]), nil
}

// ComputeEventHash covers the event body plus PrevEventHash. Seq, payload
// hash and the link are all under the digest, so a rewritten, reordered or
// gapped history fails verification.
func ComputeEventHash(event domain.AuditEvent) (string, error) {
	body := map[string]any{
		"chain_version":   domain.AuditChainVersion,
		"seq":             event.Seq,
		"event_type":      string(event.EventType),
		"payload_hash":    event.PayloadHash,
		"actor_type":      string(event.ActorType),
		"actor_id_hash":   event.ActorIDHash,
		"target_type":     string(event.TargetType),
		"target_id":       event.TargetID,
		"result":          string(event.Result),
		"error_code":      event.ErrorCode,
		"prev_event_hash": event.PrevEventHash,
		"created_at":      canonical.ISOTimestamp(event.CreatedAt),
	}
	encoded, err := canonical.Encode(body)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(encoded)
	return hex.EncodeToString(sum[:]), nil
}

// SealEvent assigns the chain fields for an event about to be appended
// after prev. Repositories call it under their append lock.
func SealEvent(event domain.AuditEvent, prevSeq int64, prevHash string) (domain.AuditEvent, error) {
	payloadHash, err := ChainPayloadHash(event.Payload)
	if err != nil {
		return domain.AuditEvent{}, err
	}
	event.Seq = prevSeq + 1
	event.PayloadHash = payloadHash
	if prevHash == "" {
		prevHash = ZeroEventHash()
	}
	event.PrevEventHash = prevHash
	eventHash, err := ComputeEventHash(event)
	if err != nil {
		return domain.AuditEvent{}, err
	}
	event.EventHash = eventHash
	return event, nil
}

// VerifyAuditChain walks events in order and fails on the first broken
// link, recomputed-hash mismatch or sequence gap.
func VerifyAuditChain(ctx context.Context, events []domain.AuditEvent) error {
	prevHash := ZeroEventHash()
	for i, event := range events {
		if err := ctx.Err(); err != nil {
			return err
		}
		if event.Seq != int64(i)+1 {
			return fmt.Errorf("audit chain: seq gap at position %d (seq %d)", i, event.Seq)
		}
		if event.PrevEventHash != prevHash {
			return fmt.Errorf("audit chain: broken link at seq %d", event.Seq)
		}
		payloadHash, err := ChainPayloadHash(event.Payload)
		if err != nil {
			return err
		}
		if payloadHash != event.PayloadHash {
			return fmt.Errorf("audit chain: payload mutated at seq %d", event.Seq)
		}
		eventHash, err := ComputeEventHash(event)
		if err != nil {
			return err
		}
		if eventHash != event.EventHash {
			return fmt.Errorf("audit chain: event hash mismatch at seq %d", event.Seq)
		}
		prevHash = event.EventHash
	}
	return nil
}
