package db

import (
	"context"
	"errors"
	"time"

	"veridoc/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(gdb *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: gdb}
}

func (r *DocumentRepository) Create(ctx context.Context, doc domain.Document) error {
	if r == nil || r.db == nil {
		return errDBUnavailable
	}
	if doc.DocumentHash == "" {
		return errors.New("document_hash is required")
	}
	if doc.InstitutionName == "" {
		return errors.New("institution_name is required")
	}
	id := doc.ID
	if id == "" {
		var err error
		id, err = newUUID()
		if err != nil {
			return err
		}
	}
	createdAt := doc.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	model := DocumentModel{
		ID:              id,
		InstitutionName: doc.InstitutionName,
		Filename:        doc.Filename,
		DocumentHash:    doc.DocumentHash,
		TxHash:          doc.TxHash,
		BlockNumber:     doc.BlockNumber,
		Status:          doc.Status,
		ExpiryDate:      doc.ExpiryDate,
		CreatedAt:       createdAt,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model).Error
}

func (r *DocumentRepository) GetByHash(ctx context.Context, documentHash string) (*domain.Document, error) {
	if r == nil || r.db == nil {
		return nil, errDBUnavailable
	}
	var model DocumentModel
	err := r.db.WithContext(ctx).
		Where("document_hash = ?", documentHash).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	doc := documentFromModel(model)
	return &doc, nil
}

func (r *DocumentRepository) Revoke(ctx context.Context, id string, reason string) error {
	if r == nil || r.db == nil {
		return errDBUnavailable
	}
	result := r.db.WithContext(ctx).
		Model(&DocumentModel{}).
		Where("id = ? AND status = ?", id, domain.DocumentStatusActive).
		Updates(map[string]any{
			"status":         domain.DocumentStatusRevoked,
			"revoked_reason": stringPtrIfNotEmpty(reason),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func documentFromModel(model DocumentModel) domain.Document {
	return domain.Document{
		ID:              model.ID,
		InstitutionName: model.InstitutionName,
		Filename:        model.Filename,
		DocumentHash:    model.DocumentHash,
		TxHash:          model.TxHash,
		BlockNumber:     model.BlockNumber,
		Status:          model.Status,
		ExpiryDate:      model.ExpiryDate,
		CreatedAt:       model.CreatedAt,
	}
}

var _ domain.DocumentRepository = (*DocumentRepository)(nil)
