package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Gym is the tenant root. Every manager, trainer, member and schedule
// references exactly one gym, and nothing is ever moved between gyms.
type Gym struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
