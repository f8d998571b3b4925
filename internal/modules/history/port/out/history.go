package out

import (
	"context"
	"time"

	"stillpoint/internal/modules/history/domain"
)

// NoteStore renders a human-readable session note. Note writes are
// best-effort; the projection is the durable record.
type NoteStore interface {
	Write(ctx context.Context, record domain.Record) (string, error)
	// WriteMinimal is the reduced fallback representation used when the
	// full note fails to encode or write.
	WriteMinimal(ctx context.Context, record domain.Record) (string, error)
}

// Projector is the queryable session record store. Upsert is idempotent by
// record ID so a crash between append and active-state cleanup can never
// produce a duplicate record.
type Projector interface {
	Upsert(ctx context.Context, record domain.Record) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int, error)
	List(ctx context.Context) ([]domain.Record, error)
	StartDates(ctx context.Context) ([]time.Time, error)
}
