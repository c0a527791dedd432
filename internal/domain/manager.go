package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Manager administrates a single gym. Created atomically together with the
// gym itself; the GymID never changes afterwards.
type Manager struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"` // Should be unique
	PasswordHash string             `bson:"passwordHash" json:"-"`
	GymID        primitive.ObjectID `bson:"gym" json:"gym"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
