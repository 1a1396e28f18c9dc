package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"veridoc/internal/domain"
	"veridoc/internal/infra/crypto"
)

type AnchorDocumentRequest struct {
	Content         []byte
	Filename        string
	InstitutionName string
	UploaderID      string
	ExpiryDate      *time.Time
}

type AnchorReceipt struct {
	DocumentHash string
	TxHash       string
	BlockNumber  int64
	Outcome      string
	ExpiryDate   *time.Time
}

// AnchorDocument hashes a document, records it on the ledger and persists
// the local row. A hash already present on the ledger but missing locally
// is re-adopted with the recovered outcome instead of failing the upload.
type AnchorDocument struct {
	Ledger    domain.LedgerService
	Documents domain.DocumentRepository
	Audit     *AuditEmitter
	Clock     Clock
}

func (uc *AnchorDocument) Execute(ctx context.Context, req AnchorDocumentRequest) (*AnchorReceipt, error) {
	if len(req.Content) == 0 {
		return nil, fmt.Errorf("%w: document content", domain.ErrMalformedFacts)
	}
	if req.InstitutionName == "" {
		return nil, fmt.Errorf("%w: institution_name", domain.ErrMalformedFacts)
	}
	now := uc.now()
	if req.ExpiryDate != nil {
		// Date-only comparison: an expiry of today is still acceptable
		// until the UTC day ends.
		expiry := req.ExpiryDate.UTC()
		startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		if expiry.Before(startOfToday) {
			return nil, domain.ErrExpiryInPast
		}
	}

	docHash := crypto.HashDocument(req.Content)

	if existing, err := uc.Documents.GetByHash(ctx, docHash); err == nil && existing != nil {
		return &AnchorReceipt{
			DocumentHash: existing.DocumentHash,
			TxHash:       existing.TxHash,
			BlockNumber:  existing.BlockNumber,
			Outcome:      domain.AnchorOutcomeDuplicate,
			ExpiryDate:   existing.ExpiryDate,
		}, nil
	} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	txHash, blockNumber, outcome, err := uc.anchorOrRecover(ctx, docHash)
	if err != nil {
		uc.audit(ctx, req.UploaderID, docHash, "", outcome, domain.AuditResultFailure, "LEDGER")
		return nil, err
	}

	doc := domain.Document{
		InstitutionName: req.InstitutionName,
		Filename:        req.Filename,
		DocumentHash:    docHash,
		TxHash:          txHash,
		BlockNumber:     blockNumber,
		Status:          domain.DocumentStatusActive,
		ExpiryDate:      req.ExpiryDate,
		CreatedAt:       now,
	}
	if err := uc.Documents.Create(ctx, doc); err != nil {
		return nil, err
	}
	uc.audit(ctx, req.UploaderID, docHash, txHash, outcome, domain.AuditResultSuccess, "")

	return &AnchorReceipt{
		DocumentHash: docHash,
		TxHash:       txHash,
		BlockNumber:  blockNumber,
		Outcome:      outcome,
		ExpiryDate:   req.ExpiryDate,
	}, nil
}

func (uc *AnchorDocument) anchorOrRecover(ctx context.Context, docHash string) (string, int64, string, error) {
	lookup, err := uc.Ledger.Lookup(ctx, docHash)
	if err != nil {
		return "", 0, domain.AnchorOutcomeAnchored, fmt.Errorf("%w: %v", domain.ErrLedgerUnavailable, err)
	}
	if lookup.Exists {
		return domain.TxRecovered, 0, domain.AnchorOutcomeRecovered, nil
	}

	result, err := uc.Ledger.Anchor(ctx, docHash)
	if err != nil {
		// A false-negative lookup can race an anchor that is already on
		// the ledger; re-adopt instead of failing the upload.
		if errors.Is(err, domain.ErrAlreadyAnchored) {
			return domain.TxRecovered, 0, domain.AnchorOutcomeRecovered, nil
		}
		return "", 0, domain.AnchorOutcomeAnchored, fmt.Errorf("%w: %v", domain.ErrLedgerUnavailable, err)
	}
	return result.TxHash, result.BlockNumber, domain.AnchorOutcomeAnchored, nil
}

func (uc *AnchorDocument) audit(ctx context.Context, uploaderID, docHash, txHash, outcome string, result domain.AuditResult, errorCode string) {
	if uc.Audit == nil {
		return
	}
	_ = uc.Audit.EmitDocumentAnchored(ctx, domain.AuditActorUploader, uploaderID, docHash, txHash, outcome, result, errorCode)
}

func (uc *AnchorDocument) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock().UTC()
	}
	return time.Now().UTC()
}
