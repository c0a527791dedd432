package service

import (
	"context"
	"errors"

	"gymhub/gym-api/internal/domain"
	"gymhub/gym-api/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrEmailTaken    = errors.New("an account with this email already exists")
	ErrHashingFailed = errors.New("failed to hash password")
)

// GymService handles gym registration, the one operation that creates two
// records at once.
type GymService interface {
	Register(ctx context.Context, gymName, managerName, managerEmail, managerPassword string) (*domain.Gym, *domain.Manager, error)
}

type gymService struct {
	gymRepo     repository.GymRepository
	managerRepo repository.ManagerRepository
	logger      zerolog.Logger
}

// NewGymService creates a new instance of gymService.
func NewGymService(gymRepo repository.GymRepository, managerRepo repository.ManagerRepository, logger zerolog.Logger) GymService {
	return &gymService{
		gymRepo:     gymRepo,
		managerRepo: managerRepo,
		logger:      logger,
	}
}

// Register creates a gym together with its first manager. If the manager
// insert fails the gym is deleted again, so from the caller's perspective
// either both records exist or neither does.
func (s *gymService) Register(ctx context.Context, gymName, managerName, managerEmail, managerPassword string) (*domain.Gym, *domain.Manager, error) {
	if gymName == "" || managerName == "" || managerEmail == "" || managerPassword == "" {
		return nil, nil, errors.New("gym name and manager name, email, and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(managerPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, ErrHashingFailed
	}

	gym := &domain.Gym{Name: gymName}
	gymID, err := s.gymRepo.Create(ctx, gym)
	if err != nil {
		return nil, nil, err
	}
	gym.ID = gymID

	manager := &domain.Manager{
		Name:         managerName,
		Email:        managerEmail,
		PasswordHash: string(hash),
		GymID:        gymID,
	}
	managerID, err := s.managerRepo.Create(ctx, manager)
	if err != nil {
		// Compensating delete keeps the gym from being orphaned.
		if delErr := s.gymRepo.Delete(ctx, gymID); delErr != nil {
			s.logger.Error().Err(delErr).Str("gymId", gymID.Hex()).
				Msg("failed to roll back gym after manager create failure")
		}
		if errors.Is(err, repository.ErrConflict) {
			return nil, nil, ErrEmailTaken
		}
		return nil, nil, err
	}
	manager.ID = managerID

	manager.PasswordHash = ""
	return gym, manager, nil
}
