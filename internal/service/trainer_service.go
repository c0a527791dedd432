package service

import (
	"context"
	"errors"

	"gymhub/gym-api/internal/domain"
	"gymhub/gym-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrManagerNotFound = errors.New("manager not found")
	ErrTrainerNotFound = errors.New("trainer not found")
)

// TrainerInput carries the fields for creating a trainer.
type TrainerInput struct {
	Name        string
	Age         int
	ContactInfo string
	Email       string
	Password    string
}

// TrainerUpdate carries an optional-field patch for a trainer. Nil fields
// are left untouched.
type TrainerUpdate struct {
	Name        *string
	Age         *int
	ContactInfo *string
	Email       *string
	Password    *string
}

// TrainerService covers the manager-facing trainer CRUD and the
// trainer-facing self views. Manager operations are scoped to the manager's
// gym; trainer operations are scoped to the trainer's own gym.
type TrainerService interface {
	Create(ctx context.Context, managerID primitive.ObjectID, input TrainerInput) (*domain.Trainer, error)
	List(ctx context.Context, managerID primitive.ObjectID, nameFilter string) ([]domain.Trainer, error)
	Update(ctx context.Context, managerID, trainerID primitive.ObjectID, update TrainerUpdate) (*domain.Trainer, error)
	Delete(ctx context.Context, managerID, trainerID primitive.ObjectID) error

	AssignedMembers(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Member, error)
	Schedules(ctx context.Context, trainerID primitive.ObjectID) ([]ScheduleDetail, error)
}

type trainerService struct {
	managerRepo  repository.ManagerRepository
	trainerRepo  repository.TrainerRepository
	memberRepo   repository.MemberRepository
	scheduleRepo repository.ScheduleRepository
}

// NewTrainerService creates a new instance of trainerService.
func NewTrainerService(
	managerRepo repository.ManagerRepository,
	trainerRepo repository.TrainerRepository,
	memberRepo repository.MemberRepository,
	scheduleRepo repository.ScheduleRepository,
) TrainerService {
	return &trainerService{
		managerRepo:  managerRepo,
		trainerRepo:  trainerRepo,
		memberRepo:   memberRepo,
		scheduleRepo: scheduleRepo,
	}
}

// === Manager-facing ===

// Create adds a trainer to the manager's gym.
func (s *trainerService) Create(ctx context.Context, managerID primitive.ObjectID, input TrainerInput) (*domain.Trainer, error) {
	manager, err := resolveManager(ctx, s.managerRepo, managerID)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	trainer := &domain.Trainer{
		Name:         input.Name,
		Age:          input.Age,
		ContactInfo:  input.ContactInfo,
		Email:        input.Email,
		PasswordHash: string(hash),
		GymID:        manager.GymID,
	}
	trainerID, err := s.trainerRepo.Create(ctx, trainer)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	trainer.ID = trainerID

	trainer.PasswordHash = ""
	return trainer, nil
}

// List returns the gym's trainers, optionally filtered by a case-insensitive
// name substring.
func (s *trainerService) List(ctx context.Context, managerID primitive.ObjectID, nameFilter string) ([]domain.Trainer, error) {
	manager, err := resolveManager(ctx, s.managerRepo, managerID)
	if err != nil {
		return nil, err
	}
	return s.trainerRepo.List(ctx, manager.GymID, nameFilter)
}

// Update patches a trainer of the manager's gym. A trainer in another gym is
// reported as not found; the gym reference itself cannot be changed.
func (s *trainerService) Update(ctx context.Context, managerID, trainerID primitive.ObjectID, update TrainerUpdate) (*domain.Trainer, error) {
	manager, err := resolveManager(ctx, s.managerRepo, managerID)
	if err != nil {
		return nil, err
	}

	patch := repository.TrainerPatch{
		Name:        update.Name,
		Age:         update.Age,
		ContactInfo: update.ContactInfo,
		Email:       update.Email,
	}
	if update.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, ErrHashingFailed
		}
		hashStr := string(hash)
		patch.PasswordHash = &hashStr
	}

	trainer, err := s.trainerRepo.Update(ctx, trainerID, manager.GymID, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainerNotFound
		}
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return trainer, nil
}

// Delete removes a trainer of the manager's gym.
func (s *trainerService) Delete(ctx context.Context, managerID, trainerID primitive.ObjectID) error {
	manager, err := resolveManager(ctx, s.managerRepo, managerID)
	if err != nil {
		return err
	}

	if err := s.trainerRepo.Delete(ctx, trainerID, manager.GymID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTrainerNotFound
		}
		return err
	}
	return nil
}

// === Trainer-facing ===

// AssignedMembers returns the members assigned to the authenticated trainer.
func (s *trainerService) AssignedMembers(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Member, error) {
	trainer, err := s.resolveTrainer(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	return s.memberRepo.ListByTrainer(ctx, trainer.ID, trainer.GymID)
}

// Schedules returns the trainer's schedules sorted ascending by date, with
// trainer and member projections resolved.
func (s *trainerService) Schedules(ctx context.Context, trainerID primitive.ObjectID) ([]ScheduleDetail, error) {
	trainer, err := s.resolveTrainer(ctx, trainerID)
	if err != nil {
		return nil, err
	}

	schedules, err := s.scheduleRepo.ListByTrainer(ctx, trainer.ID, trainer.GymID)
	if err != nil {
		return nil, err
	}
	return populateSchedules(ctx, s.trainerRepo, s.memberRepo, trainer.GymID, schedules)
}

// resolveTrainer re-resolves the authenticated trainer record from its token
// subject ID.
func (s *trainerService) resolveTrainer(ctx context.Context, id primitive.ObjectID) (*domain.Trainer, error) {
	trainer, err := s.trainerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}
	return trainer, nil
}
