package mongo

import (
	"context"

	"github.com/parchados/parchados-services/api/internal/auth"
	"github.com/parchados/parchados-services/api/internal/places/application"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ReviewRepository implements application.ReviewRepository on MongoDB.
type ReviewRepository struct {
	collection *mongo.Collection
}

// NewReviewRepository creates a Mongo-backed review repository.
func NewReviewRepository(db *mongo.Database, collectionName string) *ReviewRepository {
	return &ReviewRepository{collection: db.Collection(collectionName)}
}

// Create persists one submitted review.
func (r *ReviewRepository) Create(ctx context.Context, review application.Review) error {
	placeID, err := primitive.ObjectIDFromHex(review.PlaceID)
	if err != nil {
		return err
	}
	doc := reviewDocument{
		ID:        primitive.NewObjectID(),
		PlaceID:   placeID,
		UserID:    review.UserID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}
	_, err = r.collection.InsertOne(ctx, doc)
	return err
}

// ResetRepository implements auth.ResetRepository on MongoDB.
type ResetRepository struct {
	collection *mongo.Collection
}

// NewResetRepository creates a Mongo-backed password reset repository.
func NewResetRepository(db *mongo.Database, collectionName string) *ResetRepository {
	return &ResetRepository{collection: db.Collection(collectionName)}
}

// Create persists one recovery code.
func (r *ResetRepository) Create(ctx context.Context, reset auth.PasswordReset) error {
	doc := passwordResetDocument{
		ID:        primitive.NewObjectID(),
		Email:     reset.Email,
		Code:      reset.Code,
		CreatedAt: reset.CreatedAt,
	}
	_, err := r.collection.InsertOne(ctx, doc)
	return err
}
