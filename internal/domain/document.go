package domain

import (
	"context"
	"time"
)

const (
	DocumentStatusActive  = "active"
	DocumentStatusRevoked = "revoked"
)

// Document is an anchored document as known locally. The ledger holds the
// hash; everything else (institution, filename, expiry) lives here.
type Document struct {
	ID              string
	InstitutionName string
	Filename        string
	DocumentHash    string
	TxHash          string
	BlockNumber     int64
	Status          string
	ExpiryDate      *time.Time
	CreatedAt       time.Time
}

// Expired reports whether the document's expiry has passed. Expiry is
// date-only: the document stays valid through the end of its expiry day in
// UTC, regardless of the caller's local zone.
func (d Document) Expired(now time.Time) bool {
	if d.ExpiryDate == nil {
		return false
	}
	expiry := d.ExpiryDate.UTC()
	endOfDay := time.Date(expiry.Year(), expiry.Month(), expiry.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
	return now.UTC().After(endOfDay)
}

type DocumentRepository interface {
	Create(ctx context.Context, doc Document) error
	GetByHash(ctx context.Context, documentHash string) (*Document, error)
	Revoke(ctx context.Context, id string, reason string) error
}
