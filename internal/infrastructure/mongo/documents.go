package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// placeDocument is the MongoDB schema of a place. Enum-like fields stay as
// plain strings; decoding them into the domain happens one layer up so a bad
// value in one document never breaks a whole snapshot.
type placeDocument struct {
	ID              primitive.ObjectID `bson:"_id"`
	Title           string             `bson:"title"`
	Description     string             `bson:"description"`
	Address         string             `bson:"address,omitempty"`
	City            string             `bson:"city,omitempty"`
	Latitude        float64            `bson:"latitude,omitempty"`
	Longitude       float64            `bson:"longitude,omitempty"`
	Images          []string           `bson:"images,omitempty"`
	PhoneNumber     string             `bson:"phoneNumber,omitempty"`
	Type            string             `bson:"type,omitempty"`
	Schedules       []scheduleDocument `bson:"schedules,omitempty"`
	CreatedByUserID string             `bson:"createdByUserId,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt"`
	Status          string             `bson:"status"`
}

// scheduleDocument is one opening range, times as "HH:mm".
type scheduleDocument struct {
	Day   string `bson:"day"`
	Open  string `bson:"open"`
	Close string `bson:"close"`
}

// userDocument is the MongoDB schema of an account.
type userDocument struct {
	ID             primitive.ObjectID `bson:"_id"`
	Name           string             `bson:"name"`
	Username       string             `bson:"username"`
	Role           string             `bson:"role,omitempty"`
	City           string             `bson:"city,omitempty"`
	Email          string             `bson:"email"`
	CredentialHash string             `bson:"credentialHash"`
	CreatedAt      time.Time          `bson:"createdAt"`
}

// reviewDocument is one submitted review.
type reviewDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	PlaceID   primitive.ObjectID `bson:"placeId"`
	UserID    string             `bson:"userId"`
	Rating    int                `bson:"rating"`
	Comment   string             `bson:"comment"`
	CreatedAt time.Time          `bson:"createdAt"`
}

// passwordResetDocument is a pending recovery code.
type passwordResetDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	Email     string             `bson:"email"`
	Code      string             `bson:"code"`
	CreatedAt time.Time          `bson:"createdAt"`
}
