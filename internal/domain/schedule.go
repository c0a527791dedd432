package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Schedule is a class session run by one trainer for a set of members.
// MemberIDs has set semantics: membership is deduplicated at write time via
// $addToSet, so adding a member twice is a no-op.
type Schedule struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title     string               `bson:"title" json:"title"`
	Date      time.Time            `bson:"date" json:"date"`
	Time      string               `bson:"time" json:"time"` // display window, e.g. "07:00 - 08:00"
	TrainerID primitive.ObjectID   `bson:"trainer" json:"trainer"`
	MemberIDs []primitive.ObjectID `bson:"members" json:"members"`
	GymID     primitive.ObjectID   `bson:"gym" json:"gym"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt" json:"updatedAt"`
}
