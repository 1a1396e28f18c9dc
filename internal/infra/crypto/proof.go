package crypto

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"veridoc/internal/domain"
	"veridoc/internal/infra/canonical"
)

// BuildRecord coerces raw verification facts into the fixed nine-field
// proof record. It is total over plausible inputs: mixed types are
// coerced, never rejected, and only genuinely missing or uncoercible
// required fields fail. The record carries all nine keys regardless of
// input shape; expiry is an explicit null when absent.
func BuildRecord(facts domain.VerificationFacts) (domain.ProofRecord, error) {
	documentHash, err := requireString("document_hash", facts.DocumentHash)
	if err != nil {
		return domain.ProofRecord{}, err
	}
	institutionName, err := requireString("institution_name", facts.InstitutionName)
	if err != nil {
		return domain.ProofRecord{}, err
	}
	verifiedAt, err := coerceTimestamp("verified_at", facts.VerifiedAt)
	if err != nil {
		return domain.ProofRecord{}, err
	}
	blockchainTx, err := requireString("blockchain_tx", facts.BlockchainTx)
	if err != nil {
		return domain.ProofRecord{}, err
	}
	blockNumber, err := coerceBlockNumber(facts.BlockNumber)
	if err != nil {
		return domain.ProofRecord{}, err
	}
	verifierType, err := requireString("verifier_type", facts.VerifierType)
	if err != nil {
		return domain.ProofRecord{}, err
	}

	return domain.ProofRecord{
		DocumentHash:       documentHash,
		InstitutionName:    institutionName,
		VerificationResult: domain.VerificationResultValid,
		VerifiedAt:         verifiedAt,
		BlockchainTx:       blockchainTx,
		BlockNumber:        blockNumber,
		VerifierType:       verifierType,
		ExpiryDate:         coerceExpiry(facts.ExpiryDate),
		SystemVersion:      domain.SystemVersion,
	}, nil
}

func requireString(field string, value any) (string, error) {
	s, ok := stringify(value)
	if !ok || s == "" {
		return "", fmt.Errorf("%w: %s", domain.ErrMalformedFacts, field)
	}
	return s, nil
}

// stringify mirrors a loose String() cast: numbers become their decimal
// form, so a numeric institution id and its string twin build the same
// record.
func stringify(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case fmt.Stringer:
		return v.String(), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			return strconv.FormatInt(int64(v), 10), true
		}
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}

func coerceTimestamp(field string, value any) (string, error) {
	switch v := value.(type) {
	case time.Time:
		return canonical.ISOTimestamp(v), nil
	case *time.Time:
		if v == nil {
			return "", fmt.Errorf("%w: %s", domain.ErrMalformedFacts, field)
		}
		return canonical.ISOTimestamp(*v), nil
	default:
		return requireString(field, value)
	}
}

func coerceBlockNumber(value any) (int64, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case uint64:
		return int64(v), nil
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) || math.IsNaN(v) {
			return 0, fmt.Errorf("%w: block_number", domain.ErrMalformedFacts)
		}
		return int64(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("%w: block_number", domain.ErrMalformedFacts)
		}
		return n, nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: block_number", domain.ErrMalformedFacts)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%w: block_number", domain.ErrMalformedFacts)
	}
}

// coerceExpiry truncates any date-like expiry to its 10-char UTC date
// form. Absent or falsy expiry yields nil, which still encodes as an
// explicit null; the key is never dropped from the record.
func coerceExpiry(value any) *string {
	switch v := value.(type) {
	case nil:
		return nil
	case time.Time:
		if v.IsZero() {
			return nil
		}
		d := canonical.ISODate(v)
		return &d
	case *time.Time:
		if v == nil || v.IsZero() {
			return nil
		}
		d := canonical.ISODate(*v)
		return &d
	case string:
		if v == "" {
			return nil
		}
		d := v
		if len(d) > 10 {
			d = d[:10]
		}
		return &d
	default:
		s, ok := stringify(v)
		if !ok || s == "" {
			return nil
		}
		if len(s) > 10 {
			s = s[:10]
		}
		return &s
	}
}
