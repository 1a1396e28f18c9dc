package db

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"veridoc/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProofRepository struct {
	db *gorm.DB
}

func NewProofRepository(gdb *gorm.DB) *ProofRepository {
	return &ProofRepository{db: gdb}
}

func (r *ProofRepository) Append(ctx context.Context, proof domain.StoredProof) error {
	if r == nil || r.db == nil {
		return errDBUnavailable
	}
	if proof.ProofHash == "" {
		return errors.New("proof_hash is required")
	}
	recordJSON, err := json.Marshal(proof.Record)
	if err != nil {
		return err
	}
	id, err := newUUID()
	if err != nil {
		return err
	}
	createdAt := proof.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	model := ProofModel{
		ID:             id,
		ProofHash:      proof.ProofHash,
		RecordJSON:     recordJSON,
		VerificationID: stringPtrIfNotEmpty(proof.VerificationID),
		CreatedAt:      createdAt,
	}
	// Same hash means same canonical record; re-inserting is a no-op.
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "proof_hash"}}, DoNothing: true}).
		Create(&model).Error
}

func (r *ProofRepository) GetByHash(ctx context.Context, proofHash string) (*domain.StoredProof, error) {
	if r == nil || r.db == nil {
		return nil, errDBUnavailable
	}
	var model ProofModel
	err := r.db.WithContext(ctx).
		Where("proof_hash = ?", proofHash).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	var record domain.ProofRecord
	if err := json.Unmarshal(model.RecordJSON, &record); err != nil {
		return nil, err
	}
	return &domain.StoredProof{
		ProofHash:      model.ProofHash,
		Record:         record,
		VerificationID: stringValue(model.VerificationID),
		CreatedAt:      model.CreatedAt,
	}, nil
}

var _ domain.ProofRepository = (*ProofRepository)(nil)
