package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Member is a gym member. TrainerID, when set, must reference a trainer in
// the same gym; the service layer validates this before assignment.
type Member struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name           string              `bson:"name" json:"name"`
	Age            int                 `bson:"age" json:"age"`
	MembershipType string              `bson:"membershipType" json:"membershipType"`
	ContactInfo    string              `bson:"contactInfo" json:"contactInfo"`
	Email          string              `bson:"email" json:"email"` // Should be unique
	PasswordHash   string              `bson:"passwordHash" json:"-"`
	GymID          primitive.ObjectID  `bson:"gym" json:"gym"`
	TrainerID      *primitive.ObjectID `bson:"trainer,omitempty" json:"trainer,omitempty"`
	CreatedAt      time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// HasTrainer reports whether the member has an assigned trainer.
func (m *Member) HasTrainer() bool {
	return m.TrainerID != nil && !m.TrainerID.IsZero()
}
