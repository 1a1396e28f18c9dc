package db

import (
	"context"
	"errors"
	"time"

	"veridoc/internal/domain"

	"gorm.io/gorm"
)

type VerificationRepository struct {
	db *gorm.DB
}

func NewVerificationRepository(gdb *gorm.DB) *VerificationRepository {
	return &VerificationRepository{db: gdb}
}

func (r *VerificationRepository) Append(ctx context.Context, v domain.Verification) (string, error) {
	if r == nil || r.db == nil {
		return "", errDBUnavailable
	}
	if v.UploadedHash == "" {
		return "", errors.New("uploaded_hash is required")
	}
	if v.Result != domain.VerificationValid && v.Result != domain.VerificationInvalid {
		return "", errors.New("result must be valid or invalid")
	}
	id, err := newUUID()
	if err != nil {
		return "", err
	}
	createdAt := v.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	model := VerificationModel{
		ID:           id,
		DocumentID:   stringPtrIfNotEmpty(v.DocumentID),
		UploadedHash: v.UploadedHash,
		Result:       v.Result,
		VerifierType: v.VerifierType,
		CreatedAt:    createdAt,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return "", err
	}
	return id, nil
}

var _ domain.VerificationRepository = (*VerificationRepository)(nil)
