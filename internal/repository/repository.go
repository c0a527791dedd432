package repository

import (
	"context"
	"time"

	"gymhub/gym-api/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound = RepositoryError("not found")
	ErrConflict = RepositoryError("conflict")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// TimeWindow is an inclusive [Start, End] range used for calendar-day
// schedule filters.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// GymRepository defines the interface for interacting with gym data.
// Delete exists only as the compensating step of gym+manager registration.
type GymRepository interface {
	Create(ctx context.Context, gym *domain.Gym) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Gym, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ManagerRepository defines the interface for interacting with manager data.
type ManagerRepository interface {
	Create(ctx context.Context, manager *domain.Manager) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.Manager, error)
	// GetByID resolves the authenticated caller record from a token subject.
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Manager, error)
}

// TrainerPatch carries the mutable trainer fields for an update. Nil fields
// are left untouched; the gym reference is immutable and deliberately absent.
type TrainerPatch struct {
	Name         *string
	Age          *int
	ContactInfo  *string
	Email        *string
	PasswordHash *string
}

// TrainerRepository defines the interface for interacting with trainer data.
// Every query except caller self-resolution (GetByID, GetByEmail for login)
// takes the gym ID and must apply it in the filter.
type TrainerRepository interface {
	Create(ctx context.Context, trainer *domain.Trainer) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.Trainer, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Trainer, error)
	GetInGym(ctx context.Context, id, gymID primitive.ObjectID) (*domain.Trainer, error)
	GetManyInGym(ctx context.Context, ids []primitive.ObjectID, gymID primitive.ObjectID) ([]domain.Trainer, error)
	List(ctx context.Context, gymID primitive.ObjectID, nameFilter string) ([]domain.Trainer, error)
	Update(ctx context.Context, id, gymID primitive.ObjectID, patch TrainerPatch) (*domain.Trainer, error)
	Delete(ctx context.Context, id, gymID primitive.ObjectID) error
	CountByGym(ctx context.Context, gymID primitive.ObjectID) (int64, error)
}

// MemberPatch carries the mutable member fields for an update. The gym and
// trainer references are excluded; trainer assignment has its own method with
// a same-gym check in front of it.
type MemberPatch struct {
	Name           *string
	Age            *int
	MembershipType *string
	ContactInfo    *string
	Email          *string
	PasswordHash   *string
}

// MemberRepository defines the interface for interacting with member data.
type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.Member, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Member, error)
	GetInGym(ctx context.Context, id, gymID primitive.ObjectID) (*domain.Member, error)
	GetManyInGym(ctx context.Context, ids []primitive.ObjectID, gymID primitive.ObjectID) ([]domain.Member, error)
	List(ctx context.Context, gymID primitive.ObjectID, nameFilter string) ([]domain.Member, error)
	ListByTrainer(ctx context.Context, trainerID, gymID primitive.ObjectID) ([]domain.Member, error)
	Update(ctx context.Context, id, gymID primitive.ObjectID, patch MemberPatch) (*domain.Member, error)
	AssignTrainer(ctx context.Context, memberID, trainerID, gymID primitive.ObjectID) (*domain.Member, error)
	Delete(ctx context.Context, id, gymID primitive.ObjectID) error
	CountByGym(ctx context.Context, gymID primitive.ObjectID) (int64, error)
}

// ScheduleRepository defines the interface for interacting with schedule data.
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *domain.Schedule) (primitive.ObjectID, error)
	// ListByGym returns the gym's schedules, optionally restricted to a
	// calendar-day window.
	ListByGym(ctx context.Context, gymID primitive.ObjectID, window *TimeWindow) ([]domain.Schedule, error)
	// ListByTrainer and ListByMember return schedules sorted ascending by date.
	ListByTrainer(ctx context.Context, trainerID, gymID primitive.ObjectID) ([]domain.Schedule, error)
	ListByMember(ctx context.Context, memberID, gymID primitive.ObjectID) ([]domain.Schedule, error)
	// AddMember performs an idempotent set-insert of the member and returns
	// the updated schedule.
	AddMember(ctx context.Context, scheduleID, memberID, gymID primitive.ObjectID) (*domain.Schedule, error)
	Delete(ctx context.Context, id, gymID primitive.ObjectID) error
	CountInWindow(ctx context.Context, gymID primitive.ObjectID, window TimeWindow) (int64, error)
}
