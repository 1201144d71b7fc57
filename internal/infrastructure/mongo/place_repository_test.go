package mongo

import (
	"testing"
	"time"

	"github.com/parchados/parchados-services/api/internal/places/application"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPlaceDocumentMapping(t *testing.T) {
	createdAt := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	record := application.Record{
		Title:       "Café Andino",
		Description: "Café de especialidad",
		Address:     "Cra 0 # 00-00",
		City:        "ARMENIA",
		Latitude:    4.515,
		Longitude:   -75.675,
		Images:      []string{"https://cdn.example.com/a"},
		PhoneNumber: "+57 311 000 1122",
		Type:        "RESTAURANT",
		Schedules: []application.ScheduleRecord{
			{Day: "MONDAY", Open: "08:00", Close: "18:00"},
		},
		CreatedByUserID: "user-1",
		CreatedAt:       createdAt,
		Status:          "PENDING",
	}

	doc := placeDocumentFromRecord(record)
	doc.ID = primitive.NewObjectID()

	back := recordFromPlaceDocument(doc)
	assert.Equal(t, doc.ID.Hex(), back.ID)
	assert.Equal(t, record.Title, back.Title)
	assert.Equal(t, record.City, back.City)
	assert.Equal(t, record.Images, back.Images)
	assert.Equal(t, record.Schedules, back.Schedules)
	assert.Equal(t, record.CreatedByUserID, back.CreatedByUserID)
	assert.Equal(t, record.CreatedAt, back.CreatedAt)
	assert.Equal(t, record.Status, back.Status)
}

// Enum-like fields pass through as-is: the document layer never rejects or
// rewrites unknown values, that tolerance lives in the application layer.
func TestPlaceDocumentKeepsUnknownEnumValues(t *testing.T) {
	doc := placeDocument{
		ID:     primitive.NewObjectID(),
		Title:  "Lugar raro",
		City:   "BOGOTA",
		Type:   "MUSEUM",
		Status: "ARCHIVED",
	}

	record := recordFromPlaceDocument(doc)
	assert.Equal(t, "BOGOTA", record.City)
	assert.Equal(t, "MUSEUM", record.Type)
	assert.Equal(t, "ARCHIVED", record.Status)
	require.Empty(t, record.Schedules)
	require.Empty(t, record.Images)
}
