package domain

import "errors"

var (
	ErrMalformedFacts     = errors.New("malformed verification facts")
	ErrIntegrityViolation = errors.New("proof integrity violation")
	ErrNotFound           = errors.New("not found")
	ErrEncodingDefect     = errors.New("canonical encoding defect")
	ErrAlreadyAnchored    = errors.New("document already anchored")
	ErrDocumentRevoked    = errors.New("document revoked")
	ErrExpiryInPast       = errors.New("expiry date must be in the future")
	ErrLedgerUnavailable  = errors.New("ledger service unavailable")
)
