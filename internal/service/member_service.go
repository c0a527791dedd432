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
	ErrMemberNotFound    = errors.New("member not found")
	ErrNoAssignedTrainer = errors.New("no trainer assigned")
)

// MemberInput carries the fields for creating a member.
type MemberInput struct {
	Name           string
	Age            int
	MembershipType string
	ContactInfo    string
	Email          string
	Password       string
}

// MemberUpdate carries an optional-field patch for a member.
type MemberUpdate struct {
	Name           *string
	Age            *int
	MembershipType *string
	ContactInfo    *string
	Email          *string
	Password       *string
}

// MemberDetail is a member with the assigned trainer resolved to its display
// projection.
type MemberDetail struct {
	domain.Member
	Trainer *TrainerRef `json:"trainer,omitempty"`
}

// MemberService covers the manager-facing member CRUD plus trainer
// assignment, and the member-facing self views.
type MemberService interface {
	Create(ctx context.Context, managerID primitive.ObjectID, input MemberInput) (*domain.Member, error)
	List(ctx context.Context, managerID primitive.ObjectID, nameFilter string) ([]MemberDetail, error)
	Update(ctx context.Context, managerID, memberID primitive.ObjectID, update MemberUpdate) (*domain.Member, error)
	Delete(ctx context.Context, managerID, memberID primitive.ObjectID) error
	// AssignTrainer validates that the trainer belongs to the manager's gym
	// before mutating the member. A cross-gym trainer is reported as not
	// found and the member is left untouched.
	AssignTrainer(ctx context.Context, managerID, memberID, trainerID primitive.ObjectID) (*MemberDetail, error)

	Me(ctx context.Context, memberID primitive.ObjectID) (*domain.Member, error)
	AssignedTrainer(ctx context.Context, memberID primitive.ObjectID) (*domain.Trainer, error)
	Schedules(ctx context.Context, memberID primitive.ObjectID) ([]ScheduleDetail, error)
}

type memberService struct {
	managerRepo  repository.ManagerRepository
	trainerRepo  repository.TrainerRepository
	memberRepo   repository.MemberRepository
	scheduleRepo repository.ScheduleRepository
}

// NewMemberService creates a new instance of memberService.
func NewMemberService(
	managerRepo repository.ManagerRepository,
	trainerRepo repository.TrainerRepository,
	memberRepo repository.MemberRepository,
	scheduleRepo repository.ScheduleRepository,
) MemberService {
	return &memberService{
		managerRepo:  managerRepo,
		trainerRepo:  trainerRepo,
		memberRepo:   memberRepo,
		scheduleRepo: scheduleRepo,
	}
}

// === Manager-facing ===

// Create adds a member to the manager's gym.
func (s *memberService) Create(ctx context.Context, managerID primitive.ObjectID, input MemberInput) (*domain.Member, error) {
	manager, err := resolveManager(ctx, s.managerRepo, managerID)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	member := &domain.Member{
		Name:           input.Name,
		Age:            input.Age,
		MembershipType: input.MembershipType,
		ContactInfo:    input.ContactInfo,
		Email:          input.Email,
		PasswordHash:   string(hash),
		GymID:          manager.GymID,
	}
	memberID, err := s.memberRepo.Create(ctx, member)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	member.ID = memberID

	member.PasswordHash = ""
	return member, nil
}

// List returns the gym's members with their assigned trainers joined in,
// optionally filtered by a case-insensitive name substring.
func (s *memberService) List(ctx context.Context, managerID primitive.ObjectID, nameFilter string) ([]MemberDetail, error) {
	manager, err := resolveManager(ctx, s.managerRepo, managerID)
	if err != nil {
		return nil, err
	}

	members, err := s.memberRepo.List(ctx, manager.GymID, nameFilter)
	if err != nil {
		return nil, err
	}
	return s.joinTrainers(ctx, manager.GymID, members)
}

// Update patches a member of the manager's gym.
func (s *memberService) Update(ctx context.Context, managerID, memberID primitive.ObjectID, update MemberUpdate) (*domain.Member, error) {
	manager, err := resolveManager(ctx, s.managerRepo, managerID)
	if err != nil {
		return nil, err
	}

	patch := repository.MemberPatch{
		Name:           update.Name,
		Age:            update.Age,
		MembershipType: update.MembershipType,
		ContactInfo:    update.ContactInfo,
		Email:          update.Email,
	}
	if update.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, ErrHashingFailed
		}
		hashStr := string(hash)
		patch.PasswordHash = &hashStr
	}

	member, err := s.memberRepo.Update(ctx, memberID, manager.GymID, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return member, nil
}

// Delete removes a member of the manager's gym.
func (s *memberService) Delete(ctx context.Context, managerID, memberID primitive.ObjectID) error {
	manager, err := resolveManager(ctx, s.managerRepo, managerID)
	if err != nil {
		return err
	}

	if err := s.memberRepo.Delete(ctx, memberID, manager.GymID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMemberNotFound
		}
		return err
	}
	return nil
}

// AssignTrainer assigns a trainer of the same gym to a member. The trainer
// fetch is gym-scoped, so a trainer of another gym fails the lookup before
// any write happens.
func (s *memberService) AssignTrainer(ctx context.Context, managerID, memberID, trainerID primitive.ObjectID) (*MemberDetail, error) {
	manager, err := resolveManager(ctx, s.managerRepo, managerID)
	if err != nil {
		return nil, err
	}

	trainer, err := s.trainerRepo.GetInGym(ctx, trainerID, manager.GymID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainerNotInGym
		}
		return nil, err
	}

	member, err := s.memberRepo.AssignTrainer(ctx, memberID, trainer.ID, manager.GymID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	return &MemberDetail{
		Member:  *member,
		Trainer: &TrainerRef{Name: trainer.Name, Email: trainer.Email},
	}, nil
}

// === Member-facing ===

// Me returns the authenticated member's own record.
func (s *memberService) Me(ctx context.Context, memberID primitive.ObjectID) (*domain.Member, error) {
	return s.resolveMember(ctx, memberID)
}

// AssignedTrainer returns the member's assigned trainer, scoped to the
// member's gym.
func (s *memberService) AssignedTrainer(ctx context.Context, memberID primitive.ObjectID) (*domain.Trainer, error) {
	member, err := s.resolveMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if !member.HasTrainer() {
		return nil, ErrNoAssignedTrainer
	}

	trainer, err := s.trainerRepo.GetInGym(ctx, *member.TrainerID, member.GymID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoAssignedTrainer
		}
		return nil, err
	}
	return trainer, nil
}

// Schedules returns the schedules the member is enrolled in, sorted ascending
// by date, with trainer and member projections resolved.
func (s *memberService) Schedules(ctx context.Context, memberID primitive.ObjectID) ([]ScheduleDetail, error) {
	member, err := s.resolveMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	schedules, err := s.scheduleRepo.ListByMember(ctx, member.ID, member.GymID)
	if err != nil {
		return nil, err
	}
	return populateSchedules(ctx, s.trainerRepo, s.memberRepo, member.GymID, schedules)
}

// resolveMember re-resolves the authenticated member record from its token
// subject ID.
func (s *memberService) resolveMember(ctx context.Context, id primitive.ObjectID) (*domain.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

// joinTrainers resolves assigned-trainer references for a batch of members
// with one gym-scoped lookup.
func (s *memberService) joinTrainers(ctx context.Context, gymID primitive.ObjectID, members []domain.Member) ([]MemberDetail, error) {
	trainerIDs := make([]primitive.ObjectID, 0)
	seen := make(map[primitive.ObjectID]bool)
	for _, m := range members {
		if m.HasTrainer() && !seen[*m.TrainerID] {
			seen[*m.TrainerID] = true
			trainerIDs = append(trainerIDs, *m.TrainerID)
		}
	}

	trainers, err := s.trainerRepo.GetManyInGym(ctx, trainerIDs, gymID)
	if err != nil {
		return nil, err
	}
	refs := make(map[primitive.ObjectID]TrainerRef, len(trainers))
	for _, t := range trainers {
		refs[t.ID] = TrainerRef{Name: t.Name, Email: t.Email}
	}

	details := make([]MemberDetail, 0, len(members))
	for _, m := range members {
		detail := MemberDetail{Member: m}
		if m.HasTrainer() {
			if ref, ok := refs[*m.TrainerID]; ok {
				detail.Trainer = &ref
			}
		}
		details = append(details, detail)
	}
	return details, nil
}
