package db

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"veridoc/internal/domain"
	"veridoc/internal/usecase"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AuditEventRepository struct {
	db *gorm.DB
}

func NewAuditEventRepository(gdb *gorm.DB) *AuditEventRepository {
	return &AuditEventRepository{db: gdb}
}

// Append seals the event into the chain under a row lock on the latest
// event, so concurrent appends serialize and the seq stays gapless.
func (r *AuditEventRepository) Append(ctx context.Context, event domain.AuditEvent) (domain.AuditEvent, error) {
	if r == nil || r.db == nil {
		return domain.AuditEvent{}, errDBUnavailable
	}
	id, err := newUUID()
	if err != nil {
		return domain.AuditEvent{}, err
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	var sealed domain.AuditEvent
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last AuditEventModel
		prevSeq := int64(0)
		prevHash := ""
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Order("seq DESC").
			First(&last).Error
		switch {
		case err == nil:
			prevSeq = last.Seq
			prevHash = last.EventHash
		case errors.Is(err, gorm.ErrRecordNotFound):
		default:
			return err
		}

		sealed, err = usecase.SealEvent(event, prevSeq, prevHash)
		if err != nil {
			return err
		}
		sealed.ID = id

		payloadJSON, err := json.Marshal(sealed.Payload)
		if err != nil {
			return err
		}
		model := AuditEventModel{
			ID:            id,
			Seq:           sealed.Seq,
			EventType:     string(sealed.EventType),
			PayloadJSON:   payloadJSON,
			PayloadHash:   sealed.PayloadHash,
			ActorType:     string(sealed.ActorType),
			ActorIDHash:   stringPtrIfNotEmpty(sealed.ActorIDHash),
			TargetType:    string(sealed.TargetType),
			TargetID:      stringPtrIfNotEmpty(sealed.TargetID),
			Result:        string(sealed.Result),
			ErrorCode:     stringPtrIfNotEmpty(sealed.ErrorCode),
			PrevEventHash: sealed.PrevEventHash,
			EventHash:     sealed.EventHash,
			CreatedAt:     sealed.CreatedAt,
		}
		return tx.Create(&model).Error
	})
	if err != nil {
		return domain.AuditEvent{}, err
	}
	return sealed, nil
}

func (r *AuditEventRepository) List(ctx context.Context) ([]domain.AuditEvent, error) {
	if r == nil || r.db == nil {
		return nil, errDBUnavailable
	}
	var models []AuditEventModel
	if err := r.db.WithContext(ctx).
		Order("seq ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]domain.AuditEvent, 0, len(models))
	for _, model := range models {
		out = append(out, auditEventFromModel(model))
	}
	return out, nil
}

func auditEventFromModel(model AuditEventModel) domain.AuditEvent {
	return domain.AuditEvent{
		ID:            model.ID,
		Seq:           model.Seq,
		EventType:     domain.AuditEventType(model.EventType),
		Payload:       json.RawMessage(copyBytes(model.PayloadJSON)),
		PayloadHash:   model.PayloadHash,
		ActorType:     domain.AuditActorType(model.ActorType),
		ActorIDHash:   stringValue(model.ActorIDHash),
		TargetType:    domain.AuditTargetType(model.TargetType),
		TargetID:      stringValue(model.TargetID),
		Result:        domain.AuditResult(model.Result),
		ErrorCode:     stringValue(model.ErrorCode),
		PrevEventHash: model.PrevEventHash,
		EventHash:     model.EventHash,
		CreatedAt:     model.CreatedAt,
	}
}

var _ domain.AuditEventRepository = (*AuditEventRepository)(nil)
