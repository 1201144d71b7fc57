package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/parchados/parchados-services/api/internal/places/application"
	"github.com/parchados/parchados-services/api/internal/places/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// watchRetryDelay spaces out re-subscription attempts after a change stream
// failure.
const watchRetryDelay = 5 * time.Second

// PlaceRepository implements application.PlaceRepository on MongoDB. Pushes
// are driven by a change stream: every event triggers a full ordered
// re-query, matching the whole-snapshot replacement contract of the live
// store.
type PlaceRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewPlaceRepository creates a Mongo-backed place repository.
func NewPlaceRepository(db *mongo.Database, collectionName string, logger *zap.Logger) *PlaceRepository {
	return &PlaceRepository{collection: db.Collection(collectionName), logger: logger}
}

// Create inserts the record with a server-assigned id and timestamp. Every
// new place enters moderation: the stored status is always PENDING no matter
// what the caller sent.
func (r *PlaceRepository) Create(ctx context.Context, record application.Record) (string, error) {
	doc := placeDocumentFromRecord(record)
	doc.ID = primitive.NewObjectID()
	doc.CreatedAt = time.Now().UTC()
	doc.Status = string(domain.StatusPending)

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return "", err
	}
	return doc.ID.Hex(), nil
}

// Update applies a field patch to one place.
func (r *PlaceRepository) Update(ctx context.Context, id string, patch map[string]any) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": bson.M(patch)})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes one place.
func (r *PlaceRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	return err
}

// Get returns one record, nil when the id is unknown or malformed.
func (r *PlaceRepository) Get(ctx context.Context, id string) (*application.Record, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var doc placeDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	record := recordFromPlaceDocument(doc)
	return &record, nil
}

// SubscribeOrdered emits the current snapshot immediately and again after
// every collection change. Channel-level failures are delivered as error
// batches and the subscription keeps retrying until cancelled; cancel closes
// the batch channel.
func (r *PlaceRepository) SubscribeOrdered(orderField string, descending bool) (<-chan application.Batch, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	batches := make(chan application.Batch, 1)

	go func() {
		defer close(batches)
		r.emitSnapshot(ctx, batches, orderField, descending)

		for ctx.Err() == nil {
			stream, err := r.collection.Watch(ctx, mongo.Pipeline{})
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				r.deliver(ctx, batches, application.Batch{Err: err})
				if !sleepCtx(ctx, watchRetryDelay) {
					return
				}
				continue
			}

			for stream.Next(ctx) {
				r.emitSnapshot(ctx, batches, orderField, descending)
			}
			if err := stream.Err(); err != nil && ctx.Err() == nil {
				r.deliver(ctx, batches, application.Batch{Err: err})
			}
			_ = stream.Close(context.Background())

			if ctx.Err() == nil && !sleepCtx(ctx, watchRetryDelay) {
				return
			}
		}
	}()

	return batches, cancel
}

func (r *PlaceRepository) emitSnapshot(ctx context.Context, batches chan<- application.Batch, orderField string, descending bool) {
	records, err := r.querySnapshot(ctx, orderField, descending)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		r.deliver(ctx, batches, application.Batch{Err: err})
		return
	}
	r.deliver(ctx, batches, application.Batch{Records: records})
}

func (r *PlaceRepository) querySnapshot(ctx context.Context, orderField string, descending bool) ([]application.Record, error) {
	direction := 1
	if descending {
		direction = -1
	}
	opts := options.Find().SetSort(bson.D{{Key: orderField, Value: direction}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := make([]application.Record, 0)
	for cursor.Next(ctx) {
		var doc placeDocument
		if err := cursor.Decode(&doc); err != nil {
			r.logger.Debug("documento de lugar ilegible, se omite", zap.Error(err))
			continue
		}
		records = append(records, recordFromPlaceDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *PlaceRepository) deliver(ctx context.Context, batches chan<- application.Batch, batch application.Batch) {
	select {
	case batches <- batch:
	case <-ctx.Done():
	}
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

func placeDocumentFromRecord(record application.Record) placeDocument {
	schedules := make([]scheduleDocument, 0, len(record.Schedules))
	for _, s := range record.Schedules {
		schedules = append(schedules, scheduleDocument{Day: s.Day, Open: s.Open, Close: s.Close})
	}
	return placeDocument{
		Title:           record.Title,
		Description:     record.Description,
		Address:         record.Address,
		City:            record.City,
		Latitude:        record.Latitude,
		Longitude:       record.Longitude,
		Images:          append([]string{}, record.Images...),
		PhoneNumber:     record.PhoneNumber,
		Type:            record.Type,
		Schedules:       schedules,
		CreatedByUserID: record.CreatedByUserID,
		CreatedAt:       record.CreatedAt,
		Status:          record.Status,
	}
}

func recordFromPlaceDocument(doc placeDocument) application.Record {
	schedules := make([]application.ScheduleRecord, 0, len(doc.Schedules))
	for _, s := range doc.Schedules {
		schedules = append(schedules, application.ScheduleRecord{Day: s.Day, Open: s.Open, Close: s.Close})
	}
	return application.Record{
		ID:              doc.ID.Hex(),
		Title:           doc.Title,
		Description:     doc.Description,
		Address:         doc.Address,
		City:            doc.City,
		Latitude:        doc.Latitude,
		Longitude:       doc.Longitude,
		Images:          append([]string{}, doc.Images...),
		PhoneNumber:     doc.PhoneNumber,
		Type:            doc.Type,
		Schedules:       schedules,
		CreatedByUserID: doc.CreatedByUserID,
		CreatedAt:       doc.CreatedAt,
		Status:          doc.Status,
	}
}
