package db

import "time"

type DocumentModel struct {
	ID              string `gorm:"type:uuid;primaryKey"`
	InstitutionName string `gorm:"not null"`
	Filename        string
	DocumentHash    string `gorm:"uniqueIndex;not null"`
	TxHash          string `gorm:"not null"`
	BlockNumber     int64  `gorm:"not null"`
	Status          string `gorm:"index;not null"`
	ExpiryDate      *time.Time
	RevokedReason   *string
	CreatedAt       time.Time `gorm:"not null"`
}

func (DocumentModel) TableName() string {
	return "documents"
}

type VerificationModel struct {
	ID           string    `gorm:"type:uuid;primaryKey"`
	DocumentID   *string   `gorm:"type:uuid;index"`
	UploadedHash string    `gorm:"index;not null"`
	Result       string    `gorm:"not null"`
	VerifierType string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (VerificationModel) TableName() string {
	return "verifications"
}

// ProofModel keeps the record as a jsonb object, never a pre-serialized
// string, so reloaded records re-normalize to the same canonical bytes.
type ProofModel struct {
	ID             string    `gorm:"type:uuid;primaryKey"`
	ProofHash      string    `gorm:"uniqueIndex;not null"`
	RecordJSON     []byte    `gorm:"type:jsonb;not null"`
	VerificationID *string   `gorm:"type:uuid;index"`
	CreatedAt      time.Time `gorm:"not null"`
}

func (ProofModel) TableName() string {
	return "verification_proofs"
}

type AuditEventModel struct {
	ID            string `gorm:"type:uuid;primaryKey"`
	Seq           int64  `gorm:"uniqueIndex;not null"`
	EventType     string `gorm:"column:event_type;not null"`
	PayloadJSON   []byte `gorm:"type:jsonb;not null"`
	PayloadHash   string `gorm:"not null"`
	ActorType     string `gorm:"not null"`
	ActorIDHash   *string
	TargetType    string `gorm:"not null"`
	TargetID      *string
	Result        string `gorm:"not null"`
	ErrorCode     *string
	PrevEventHash string    `gorm:"not null"`
	EventHash     string    `gorm:"not null"`
	CreatedAt     time.Time `gorm:"column:created_at;not null"`
}

func (AuditEventModel) TableName() string {
	return "audit_events"
}
