package mongo

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/parchados/parchados-services/api/internal/places/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository implements auth.UserRepository on MongoDB.
type UserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a Mongo-backed user repository.
func NewUserRepository(db *mongo.Database, collectionName string) *UserRepository {
	return &UserRepository{collection: db.Collection(collectionName)}
}

// FindByEmail looks up an account by email, case-insensitively.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": caseInsensitiveExact(email)})
}

// FindByUsername looks up an account by username, case-insensitively.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": caseInsensitiveExact(username)})
}

// FindByID looks up an account by its id; malformed ids count as not found.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	return r.findOne(ctx, bson.M{"_id": objectID})
}

// Create inserts the account and returns its new id.
func (r *UserRepository) Create(ctx context.Context, user domain.User) (string, error) {
	doc := userDocument{
		ID:             primitive.NewObjectID(),
		Name:           user.Name,
		Username:       user.Username,
		Role:           string(user.Role),
		City:           string(user.City),
		Email:          strings.TrimSpace(user.Email),
		CredentialHash: user.CredentialHash,
		CreatedAt:      time.Now().UTC(),
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return "", err
	}
	return doc.ID.Hex(), nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc userDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	user := mapUserDocument(doc)
	return &user, nil
}

func mapUserDocument(doc userDocument) domain.User {
	return domain.User{
		ID:             doc.ID.Hex(),
		Name:           doc.Name,
		Username:       doc.Username,
		Role:           domain.RoleFromString(doc.Role),
		City:           domain.CityFromString(doc.City),
		Email:          doc.Email,
		CredentialHash: doc.CredentialHash,
	}
}

func caseInsensitiveExact(value string) bson.M {
	return bson.M{
		"$regex":   "^" + regexp.QuoteMeta(strings.TrimSpace(value)) + "$",
		"$options": "i",
	}
}
