package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"veridoc/internal/domain"
	"veridoc/internal/infra/crypto"
)

type VerifyDocumentRequest struct {
	// Content is the presented document; when absent, DocumentHash must
	// carry the precomputed 0x-prefixed hash instead.
	Content      []byte
	DocumentHash string
	VerifierID   string
}

type CertificateRef struct {
	ProofHash string
	VerifyURL string
	JSONURL   string
}

type VerifyDocumentReceipt struct {
	Result       string
	DocumentHash string
	Institution  string
	TxHash       string
	BlockNumber  int64
	ExpiryDate   *time.Time
	Expired      bool
	Verdict      domain.VerdictEvaluation
	// Certificate is set only for valid verdicts, and may still be nil if
	// proof generation failed; a failed proof never fails the verification.
	Certificate *CertificateRef
}

// VerifyDocument checks a presented document against the ledger and the
// local store, logs the attempt, and issues a proof certificate when the
// verdict is valid.
type VerifyDocument struct {
	Ledger        domain.LedgerService
	Documents     domain.DocumentRepository
	Verifications domain.VerificationRepository
	Proofs        domain.ProofRepository
	Crypto        CryptoService
	Policy        VerdictEngine
	Audit         *AuditEmitter
	Clock         Clock
	VerifyBaseURL string
}

func (uc *VerifyDocument) Execute(ctx context.Context, req VerifyDocumentRequest) (*VerifyDocumentReceipt, error) {
	docHash := req.DocumentHash
	if len(req.Content) > 0 {
		docHash = crypto.HashDocument(req.Content)
	}
	if docHash == "" {
		return nil, fmt.Errorf("%w: document content or hash", domain.ErrMalformedFacts)
	}
	verifierType := domain.VerifierTypePublic
	if req.VerifierID != "" {
		verifierType = domain.VerifierTypeAuthenticated
	}
	now := uc.now()

	lookup, err := uc.Ledger.Lookup(ctx, docHash)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLedgerUnavailable, err)
	}

	doc, err := uc.Documents.GetByHash(ctx, docHash)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	input := domain.VerdictInput{
		LedgerExists: lookup.Exists,
		LedgerStatus: lookup.Status,
		VerifierType: verifierType,
	}
	if doc != nil {
		input.DocumentKnown = true
		input.DocumentStatus = doc.Status
		input.Expired = doc.Expired(now)
	}

	verdict, err := uc.evaluate(ctx, input)
	if err != nil {
		return nil, err
	}

	receipt := &VerifyDocumentReceipt{
		Result:       domain.VerificationInvalid,
		DocumentHash: docHash,
		Verdict:      verdict,
	}
	if doc != nil {
		receipt.Institution = doc.InstitutionName
		receipt.TxHash = doc.TxHash
		receipt.BlockNumber = doc.BlockNumber
		receipt.ExpiryDate = doc.ExpiryDate
		receipt.Expired = input.Expired
	}
	if verdict.Result.Eligible {
		receipt.Result = domain.VerificationValid
	}

	verificationID := uc.logVerification(ctx, doc, docHash, receipt.Result, verifierType, now)

	if receipt.Result == domain.VerificationValid && doc != nil {
		receipt.Certificate = uc.issueProof(ctx, doc, verificationID, verifierType, req.VerifierID, now)
	}
	return receipt, nil
}

func (uc *VerifyDocument) evaluate(ctx context.Context, input domain.VerdictInput) (domain.VerdictEvaluation, error) {
	if uc.Policy != nil {
		return uc.Policy.Evaluate(ctx, input)
	}
	return builtinVerdict(input), nil
}

// builtinVerdict mirrors the reference rego bundle for deployments that
// run without a policy engine.
func builtinVerdict(input domain.VerdictInput) domain.VerdictEvaluation {
	var deny []domain.VerdictDeny
	if !input.LedgerExists {
		deny = append(deny, domain.VerdictDeny{Code: "LEDGER_MISS", Message: "document hash is not anchored"})
	} else if input.LedgerStatus != domain.LedgerStatusActive {
		deny = append(deny, domain.VerdictDeny{Code: "LEDGER_REVOKED", Message: "ledger entry is revoked"})
	}
	if !input.DocumentKnown {
		deny = append(deny, domain.VerdictDeny{Code: "DOCUMENT_UNKNOWN", Message: "no local record for document hash"})
	} else {
		if input.DocumentStatus != domain.DocumentStatusActive {
			deny = append(deny, domain.VerdictDeny{Code: "DOCUMENT_REVOKED", Message: "document has been revoked"})
		}
		if input.Expired {
			deny = append(deny, domain.VerdictDeny{Code: "DOCUMENT_EXPIRED", Message: "document expiry date has passed"})
		}
	}
	return domain.VerdictEvaluation{
		BundleID: "builtin",
		Result: domain.VerdictResult{
			Eligible: len(deny) == 0,
			Deny:     deny,
		},
	}
}

func (uc *VerifyDocument) logVerification(ctx context.Context, doc *domain.Document, docHash, result, verifierType string, now time.Time) string {
	if uc.Verifications == nil {
		return ""
	}
	v := domain.Verification{
		UploadedHash: docHash,
		Result:       result,
		VerifierType: verifierType,
		CreatedAt:    now,
	}
	if doc != nil {
		v.DocumentID = doc.ID
	}
	id, err := uc.Verifications.Append(ctx, v)
	if err != nil {
		return ""
	}
	return id
}

// issueProof builds, hashes and persists the proof record. Each call
// produces a brand-new record with its own verified_at and hash; proofs
// are append-only and never updated in place.
func (uc *VerifyDocument) issueProof(ctx context.Context, doc *domain.Document, verificationID, verifierType, verifierID string, now time.Time) *CertificateRef {
	var expiry any
	if doc.ExpiryDate != nil {
		expiry = *doc.ExpiryDate
	}
	record, err := uc.Crypto.BuildRecord(domain.VerificationFacts{
		DocumentHash:    doc.DocumentHash,
		InstitutionName: doc.InstitutionName,
		VerifiedAt:      now,
		BlockchainTx:    doc.TxHash,
		BlockNumber:     doc.BlockNumber,
		VerifierType:    verifierType,
		ExpiryDate:      expiry,
	})
	if err != nil {
		uc.auditIssue(ctx, verifierID, "", doc.DocumentHash, domain.AuditResultFailure, "BUILD")
		return nil
	}
	proofHash, err := uc.Crypto.ComputeHash(record)
	if err != nil {
		uc.auditIssue(ctx, verifierID, "", doc.DocumentHash, domain.AuditResultFailure, "ENCODING_DEFECT")
		return nil
	}
	stored := domain.StoredProof{
		ProofHash:      proofHash,
		Record:         record,
		VerificationID: verificationID,
		CreatedAt:      now,
	}
	if err := uc.Proofs.Append(ctx, stored); err != nil {
		uc.auditIssue(ctx, verifierID, proofHash, doc.DocumentHash, domain.AuditResultFailure, "PERSISTENCE")
		return nil
	}
	uc.auditIssue(ctx, verifierID, proofHash, doc.DocumentHash, domain.AuditResultSuccess, "")

	return &CertificateRef{
		ProofHash: proofHash,
		VerifyURL: uc.VerifyBaseURL + "/verify-proof/" + proofHash,
		JSONURL:   uc.VerifyBaseURL + "/certificates/json/" + proofHash,
	}
}

func (uc *VerifyDocument) auditIssue(ctx context.Context, verifierID, proofHash, docHash string, result domain.AuditResult, errorCode string) {
	if uc.Audit == nil {
		return
	}
	_ = uc.Audit.EmitProofIssued(ctx, domain.AuditActorVerifier, verifierID, proofHash, docHash, result, errorCode)
}

func (uc *VerifyDocument) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock().UTC()
	}
	return time.Now().UTC()
}
