package auditmem

import (
	"context"
	"sync"
	"time"

	"veridoc/internal/domain"
	"veridoc/internal/usecase"
)

// Log is an in-memory hash-chained audit sink for tests and the offline
// CLI mode. It seals events exactly like the database repository.
type Log struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func New() *Log {
	return &Log{}
}

func (l *Log) Append(ctx context.Context, event domain.AuditEvent) (domain.AuditEvent, error) {
	if err := ctx.Err(); err != nil {
		return domain.AuditEvent{}, err
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	prevSeq := int64(0)
	prevHash := ""
	if n := len(l.events); n > 0 {
		prevSeq = l.events[n-1].Seq
		prevHash = l.events[n-1].EventHash
	}
	sealed, err := usecase.SealEvent(event, prevSeq, prevHash)
	if err != nil {
		return domain.AuditEvent{}, err
	}
	l.events = append(l.events, sealed)
	return sealed, nil
}

func (l *Log) List(ctx context.Context) ([]domain.AuditEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.AuditEvent, len(l.events))
	copy(out, l.events)
	return out, nil
}

var _ domain.AuditEventRepository = (*Log)(nil)
