package service

import (
	"context"
	"time"

	"gymhub/gym-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DashboardReport aggregates the per-gym counts shown on the manager
// dashboard.
type DashboardReport struct {
	TotalMembers   int64 `json:"totalMembers"`
	TotalTrainers  int64 `json:"totalTrainers"`
	TodaySchedules int64 `json:"todaySchedules"`
}

// ReportService computes read-only aggregations over the manager's gym.
type ReportService interface {
	Dashboard(ctx context.Context, managerID primitive.ObjectID) (*DashboardReport, error)
}

type reportService struct {
	managerRepo  repository.ManagerRepository
	trainerRepo  repository.TrainerRepository
	memberRepo   repository.MemberRepository
	scheduleRepo repository.ScheduleRepository
	now          func() time.Time
}

// NewReportService creates a new instance of reportService.
func NewReportService(
	managerRepo repository.ManagerRepository,
	trainerRepo repository.TrainerRepository,
	memberRepo repository.MemberRepository,
	scheduleRepo repository.ScheduleRepository,
) ReportService {
	return &reportService{
		managerRepo:  managerRepo,
		trainerRepo:  trainerRepo,
		memberRepo:   memberRepo,
		scheduleRepo: scheduleRepo,
		now:          time.Now,
	}
}

// Dashboard returns member and trainer totals plus the number of schedules
// dated today (server-local midnight boundaries), all scoped to the
// manager's gym.
func (s *reportService) Dashboard(ctx context.Context, managerID primitive.ObjectID) (*DashboardReport, error) {
	manager, err := resolveManager(ctx, s.managerRepo, managerID)
	if err != nil {
		return nil, err
	}

	totalMembers, err := s.memberRepo.CountByGym(ctx, manager.GymID)
	if err != nil {
		return nil, err
	}
	totalTrainers, err := s.trainerRepo.CountByGym(ctx, manager.GymID)
	if err != nil {
		return nil, err
	}
	todaySchedules, err := s.scheduleRepo.CountInWindow(ctx, manager.GymID, DayWindow(s.now()))
	if err != nil {
		return nil, err
	}

	return &DashboardReport{
		TotalMembers:   totalMembers,
		TotalTrainers:  totalTrainers,
		TodaySchedules: todaySchedules,
	}, nil
}
