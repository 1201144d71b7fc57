package application

import (
	"context"
	"time"

	"github.com/parchados/parchados-services/api/internal/places/domain"
)

// Record is the wire shape of a place as stored remotely. Enum-like fields
// travel as plain strings so one bad value never poisons a whole push.
type Record struct {
	ID              string
	Title           string
	Description     string
	Address         string
	City            string
	Latitude        float64
	Longitude       float64
	Images          []string
	PhoneNumber     string
	Type            string
	Schedules       []ScheduleRecord
	CreatedByUserID string
	CreatedAt       time.Time
	Status          string
}

// ScheduleRecord is one opening range on the wire, times as "HH:mm".
type ScheduleRecord struct {
	Day   string
	Open  string
	Close string
}

// Batch is a single push from the backing store: either a full ordered
// snapshot of records or a channel-level error, never both.
type Batch struct {
	Records []Record
	Err     error
}

// PlaceRepository is the remote store contract. The server assigns ids on
// Create; Subscribe delivers full snapshots ordered by the given field and
// keeps delivering until the returned cancel func is called.
type PlaceRepository interface {
	Create(ctx context.Context, record Record) (string, error)
	Update(ctx context.Context, id string, patch map[string]any) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*Record, error)
	SubscribeOrdered(orderField string, descending bool) (<-chan Batch, func())
}

// MediaUploader pushes a locally-referenced image to the media host and
// returns its public URL.
type MediaUploader interface {
	Upload(ctx context.Context, localRef string) (string, error)
}

// Session exposes the currently authenticated user, nil when logged out.
type Session interface {
	CurrentUser() *domain.User
}

// Review is a rating + comment a user attaches to a place.
type Review struct {
	PlaceID   string
	UserID    string
	Rating    int
	Comment   string
	CreatedAt time.Time
}

// ReviewRepository persists submitted reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review Review) error
}
