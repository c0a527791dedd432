package service

import (
	"context"
	"errors"
	"time"

	"gymhub/gym-api/internal/domain"
	"gymhub/gym-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrTrainerNotInGym  = errors.New("trainer not found in this gym")
	ErrMemberNotInGym   = errors.New("member not found in this gym")
)

// TrainerRef is the trainer projection embedded in schedule views.
type TrainerRef struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// MemberRef is the member projection embedded in schedule views.
type MemberRef struct {
	Name string `json:"name"`
}

// ScheduleDetail is a schedule with its trainer and member references
// resolved to display projections, the way the API returns schedules.
type ScheduleDetail struct {
	ID      primitive.ObjectID `json:"id"`
	Title   string             `json:"title"`
	Date    time.Time          `json:"date"`
	Time    string             `json:"time"`
	Trainer TrainerRef         `json:"trainer"`
	Members []MemberRef        `json:"members"`
	GymID   primitive.ObjectID `json:"gym"`
}

// ScheduleInput carries the fields for creating a schedule.
type ScheduleInput struct {
	Title     string
	Date      time.Time
	Time      string
	TrainerID primitive.ObjectID
}

// ScheduleService manages class sessions for a gym. Every operation resolves
// the manager caller first and scopes everything to the manager's gym.
type ScheduleService interface {
	Create(ctx context.Context, managerID primitive.ObjectID, input ScheduleInput) (*ScheduleDetail, error)
	// List returns the gym's schedules; when day is non-nil only schedules
	// dated within that calendar day are returned.
	List(ctx context.Context, managerID primitive.ObjectID, day *time.Time) ([]ScheduleDetail, error)
	AddMember(ctx context.Context, managerID, scheduleID, memberID primitive.ObjectID) (*ScheduleDetail, error)
	Delete(ctx context.Context, managerID, scheduleID primitive.ObjectID) error
}

type scheduleService struct {
	managerRepo  repository.ManagerRepository
	trainerRepo  repository.TrainerRepository
	memberRepo   repository.MemberRepository
	scheduleRepo repository.ScheduleRepository
}

// NewScheduleService creates a new instance of scheduleService.
func NewScheduleService(
	managerRepo repository.ManagerRepository,
	trainerRepo repository.TrainerRepository,
	memberRepo repository.MemberRepository,
	scheduleRepo repository.ScheduleRepository,
) ScheduleService {
	return &scheduleService{
		managerRepo:  managerRepo,
		trainerRepo:  trainerRepo,
		memberRepo:   memberRepo,
		scheduleRepo: scheduleRepo,
	}
}

// Create validates that the trainer resolves within the manager's gym, then
// persists the schedule with an empty members set.
func (s *scheduleService) Create(ctx context.Context, managerID primitive.ObjectID, input ScheduleInput) (*ScheduleDetail, error) {
	manager, err := resolveManager(ctx, s.managerRepo, managerID)
	if err != nil {
		return nil, err
	}

	trainer, err := s.trainerRepo.GetInGym(ctx, input.TrainerID, manager.GymID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainerNotInGym
		}
		return nil, err
	}

	schedule := &domain.Schedule{
		Title:     input.Title,
		Date:      input.Date,
		Time:      input.Time,
		TrainerID: trainer.ID,
		GymID:     manager.GymID,
	}
	scheduleID, err := s.scheduleRepo.Create(ctx, schedule)
	if err != nil {
		return nil, err
	}
	schedule.ID = scheduleID

	detail := toScheduleDetail(schedule, map[primitive.ObjectID]TrainerRef{
		trainer.ID: {Name: trainer.Name, Email: trainer.Email},
	}, nil)
	return &detail, nil
}

// List returns the gym's schedules, optionally restricted to one calendar day.
func (s *scheduleService) List(ctx context.Context, managerID primitive.ObjectID, day *time.Time) ([]ScheduleDetail, error) {
	manager, err := resolveManager(ctx, s.managerRepo, managerID)
	if err != nil {
		return nil, err
	}

	var window *repository.TimeWindow
	if day != nil {
		w := DayWindow(*day)
		window = &w
	}

	schedules, err := s.scheduleRepo.ListByGym(ctx, manager.GymID, window)
	if err != nil {
		return nil, err
	}
	return s.populateSchedules(ctx, manager.GymID, schedules)
}

// AddMember validates the member within the gym and performs the idempotent
// set-insert. Adding a member that is already present succeeds and leaves the
// set unchanged.
func (s *scheduleService) AddMember(ctx context.Context, managerID, scheduleID, memberID primitive.ObjectID) (*ScheduleDetail, error) {
	manager, err := resolveManager(ctx, s.managerRepo, managerID)
	if err != nil {
		return nil, err
	}

	if _, err := s.memberRepo.GetInGym(ctx, memberID, manager.GymID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMemberNotInGym
		}
		return nil, err
	}

	schedule, err := s.scheduleRepo.AddMember(ctx, scheduleID, memberID, manager.GymID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}

	details, err := s.populateSchedules(ctx, manager.GymID, []domain.Schedule{*schedule})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

// Delete removes a schedule of the manager's gym.
func (s *scheduleService) Delete(ctx context.Context, managerID, scheduleID primitive.ObjectID) error {
	manager, err := resolveManager(ctx, s.managerRepo, managerID)
	if err != nil {
		return err
	}

	if err := s.scheduleRepo.Delete(ctx, scheduleID, manager.GymID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrScheduleNotFound
		}
		return err
	}
	return nil
}

// populateSchedules resolves trainer and member references to their display
// projections with two batched, gym-scoped lookups.
func (s *scheduleService) populateSchedules(ctx context.Context, gymID primitive.ObjectID, schedules []domain.Schedule) ([]ScheduleDetail, error) {
	return populateSchedules(ctx, s.trainerRepo, s.memberRepo, gymID, schedules)
}

func populateSchedules(
	ctx context.Context,
	trainerRepo repository.TrainerRepository,
	memberRepo repository.MemberRepository,
	gymID primitive.ObjectID,
	schedules []domain.Schedule,
) ([]ScheduleDetail, error) {
	trainerIDs := make([]primitive.ObjectID, 0, len(schedules))
	memberIDs := make([]primitive.ObjectID, 0)
	seenTrainer := make(map[primitive.ObjectID]bool)
	seenMember := make(map[primitive.ObjectID]bool)
	for _, sched := range schedules {
		if !seenTrainer[sched.TrainerID] {
			seenTrainer[sched.TrainerID] = true
			trainerIDs = append(trainerIDs, sched.TrainerID)
		}
		for _, mid := range sched.MemberIDs {
			if !seenMember[mid] {
				seenMember[mid] = true
				memberIDs = append(memberIDs, mid)
			}
		}
	}

	trainers, err := trainerRepo.GetManyInGym(ctx, trainerIDs, gymID)
	if err != nil {
		return nil, err
	}
	members, err := memberRepo.GetManyInGym(ctx, memberIDs, gymID)
	if err != nil {
		return nil, err
	}

	trainerRefs := make(map[primitive.ObjectID]TrainerRef, len(trainers))
	for _, t := range trainers {
		trainerRefs[t.ID] = TrainerRef{Name: t.Name, Email: t.Email}
	}
	memberRefs := make(map[primitive.ObjectID]MemberRef, len(members))
	for _, m := range members {
		memberRefs[m.ID] = MemberRef{Name: m.Name}
	}

	details := make([]ScheduleDetail, 0, len(schedules))
	for i := range schedules {
		details = append(details, toScheduleDetail(&schedules[i], trainerRefs, memberRefs))
	}
	return details, nil
}

func toScheduleDetail(
	schedule *domain.Schedule,
	trainerRefs map[primitive.ObjectID]TrainerRef,
	memberRefs map[primitive.ObjectID]MemberRef,
) ScheduleDetail {
	members := make([]MemberRef, 0, len(schedule.MemberIDs))
	for _, mid := range schedule.MemberIDs {
		// A member deleted after being added simply drops out of the view.
		if ref, ok := memberRefs[mid]; ok {
			members = append(members, ref)
		}
	}
	return ScheduleDetail{
		ID:      schedule.ID,
		Title:   schedule.Title,
		Date:    schedule.Date,
		Time:    schedule.Time,
		Trainer: trainerRefs[schedule.TrainerID],
		Members: members,
		GymID:   schedule.GymID,
	}
}

// DayWindow expands a point in time to the inclusive calendar-day window
// [00:00:00, 23:59:59.999] in that time's location.
func DayWindow(t time.Time) repository.TimeWindow {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end := start.Add(24*time.Hour - time.Millisecond)
	return repository.TimeWindow{Start: start, End: end}
}
