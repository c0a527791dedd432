package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateScheduleRequiresTrainerInGym(t *testing.T) {
	f := newFixture()
	_, manager1 := f.seedGym("G1")
	gym2, _ := f.seedGym("G2")
	foreignTrainer := f.seedTrainer(gym2, "Dana", "dana@example.com")
	svc := f.scheduleService()

	_, err := svc.Create(context.Background(), manager1, ScheduleInput{
		Title:     "Morning HIIT",
		Date:      time.Date(2024, 5, 1, 7, 0, 0, 0, time.UTC),
		Time:      "07:00 - 08:00",
		TrainerID: foreignTrainer,
	})
	assert.ErrorIs(t, err, ErrTrainerNotInGym)
	assert.Empty(t, f.schedules.schedules)
}

func TestCreateSchedulePersistsWithEmptyMembers(t *testing.T) {
	f := newFixture()
	gymID, managerID := f.seedGym("G1")
	trainerID := f.seedTrainer(gymID, "Anna", "anna@example.com")
	svc := f.scheduleService()

	detail, err := svc.Create(context.Background(), managerID, ScheduleInput{
		Title:     "Morning HIIT",
		Date:      time.Date(2024, 5, 1, 7, 0, 0, 0, time.UTC),
		Time:      "07:00 - 08:00",
		TrainerID: trainerID,
	})
	require.NoError(t, err)

	assert.Equal(t, gymID, detail.GymID)
	assert.Equal(t, TrainerRef{Name: "Anna", Email: "anna@example.com"}, detail.Trainer)
	assert.Empty(t, detail.Members)

	stored := f.schedules.schedules[detail.ID]
	assert.Empty(t, stored.MemberIDs)
}

func TestAddMemberIsIdempotent(t *testing.T) {
	f := newFixture()
	gymID, managerID := f.seedGym("G1")
	trainerID := f.seedTrainer(gymID, "Anna", "anna@example.com")
	memberID := f.seedMember(gymID, "Mia", "mia@example.com", nil)
	scheduleID := f.seedSchedule(gymID, trainerID, "Morning HIIT", time.Date(2024, 5, 1, 7, 0, 0, 0, time.UTC))
	svc := f.scheduleService()

	first, err := svc.AddMember(context.Background(), managerID, scheduleID, memberID)
	require.NoError(t, err)
	require.Len(t, first.Members, 1)

	second, err := svc.AddMember(context.Background(), managerID, scheduleID, memberID)
	require.NoError(t, err, "re-adding an enrolled member must succeed")
	require.Len(t, second.Members, 1, "members is a set, not a list")

	assert.Len(t, f.schedules.schedules[scheduleID].MemberIDs, 1)
}

func TestAddMemberCrossGymRejected(t *testing.T) {
	f := newFixture()
	gym1, manager1 := f.seedGym("G1")
	gym2, _ := f.seedGym("G2")
	trainerID := f.seedTrainer(gym1, "Anna", "anna@example.com")
	foreignMember := f.seedMember(gym2, "Zoe", "zoe@example.com", nil)
	scheduleID := f.seedSchedule(gym1, trainerID, "Morning HIIT", time.Date(2024, 5, 1, 7, 0, 0, 0, time.UTC))
	svc := f.scheduleService()

	_, err := svc.AddMember(context.Background(), manager1, scheduleID, foreignMember)
	assert.ErrorIs(t, err, ErrMemberNotInGym)
	assert.Empty(t, f.schedules.schedules[scheduleID].MemberIDs)
}

func TestAddMemberUnknownSchedule(t *testing.T) {
	f := newFixture()
	gym1, manager1 := f.seedGym("G1")
	gym2, _ := f.seedGym("G2")
	trainerID := f.seedTrainer(gym2, "Dana", "dana@example.com")
	memberID := f.seedMember(gym1, "Mia", "mia@example.com", nil)
	foreignSchedule := f.seedSchedule(gym2, trainerID, "Evening Yoga", time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC))
	svc := f.scheduleService()

	// A schedule of another gym is indistinguishable from a missing one.
	_, err := svc.AddMember(context.Background(), manager1, foreignSchedule, memberID)
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestListDayWindowBoundaries(t *testing.T) {
	f := newFixture()
	gymID, managerID := f.seedGym("G1")
	trainerID := f.seedTrainer(gymID, "Anna", "anna@example.com")
	f.seedSchedule(gymID, trainerID, "Late class", time.Date(2024, 5, 1, 23, 59, 0, 0, time.UTC))
	svc := f.scheduleService()

	day1 := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	schedules, err := svc.List(context.Background(), managerID, &day1)
	require.NoError(t, err)
	require.Len(t, schedules, 1, "23:59 belongs to its calendar day")
	assert.Equal(t, "Late class", schedules[0].Title)

	day2 := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	schedules, err = svc.List(context.Background(), managerID, &day2)
	require.NoError(t, err)
	assert.Empty(t, schedules)
}

func TestListWithoutDateReturnsAllGymSchedules(t *testing.T) {
	f := newFixture()
	gym1, manager1 := f.seedGym("G1")
	gym2, _ := f.seedGym("G2")
	t1 := f.seedTrainer(gym1, "Anna", "anna@example.com")
	t2 := f.seedTrainer(gym2, "Dana", "dana@example.com")
	f.seedSchedule(gym1, t1, "Ours", time.Date(2024, 5, 1, 7, 0, 0, 0, time.UTC))
	f.seedSchedule(gym2, t2, "Theirs", time.Date(2024, 5, 1, 7, 0, 0, 0, time.UTC))
	svc := f.scheduleService()

	schedules, err := svc.List(context.Background(), manager1, nil)
	require.NoError(t, err)
	require.Len(t, schedules, 1)
	assert.Equal(t, "Ours", schedules[0].Title)
}

func TestDeleteScheduleCrossGymIsNotFound(t *testing.T) {
	f := newFixture()
	_, manager1 := f.seedGym("G1")
	gym2, _ := f.seedGym("G2")
	trainerID := f.seedTrainer(gym2, "Dana", "dana@example.com")
	foreignSchedule := f.seedSchedule(gym2, trainerID, "Evening Yoga", time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC))
	svc := f.scheduleService()

	err := svc.Delete(context.Background(), manager1, foreignSchedule)
	assert.ErrorIs(t, err, ErrScheduleNotFound)
	assert.Contains(t, f.schedules.schedules, foreignSchedule)
}

func TestDayWindowCoversWholeCalendarDay(t *testing.T) {
	w := DayWindow(time.Date(2024, 5, 1, 14, 30, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2024, 5, 1, 23, 59, 59, 999_000_000, time.UTC), w.End)
}

// End-to-end over the service layer: gym registration through to the member
// seeing exactly the schedule they were enrolled in.
func TestMemberSeesEnrolledScheduleEndToEnd(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	gym, manager, err := NewGymService(f.gyms, f.managers, zerolog.Nop()).
		Register(ctx, "PowerHouse", "Pat", "pat@example.com", "s3cret-pass")
	require.NoError(t, err)

	trainer, err := f.trainerService().Create(ctx, manager.ID, TrainerInput{
		Name: "Anna", Age: 30, ContactInfo: "555-0101", Email: "anna@example.com", Password: "s3cret-pass",
	})
	require.NoError(t, err)

	member, err := f.memberService().Create(ctx, manager.ID, MemberInput{
		Name: "Mia", Age: 25, MembershipType: "gold", ContactInfo: "555-0102",
		Email: "mia@example.com", Password: "s3cret-pass",
	})
	require.NoError(t, err)

	_, err = f.memberService().AssignTrainer(ctx, manager.ID, member.ID, trainer.ID)
	require.NoError(t, err)

	created, err := f.scheduleService().Create(ctx, manager.ID, ScheduleInput{
		Title:     "Morning HIIT",
		Date:      time.Date(2024, 5, 1, 7, 0, 0, 0, time.UTC),
		Time:      "07:00 - 08:00",
		TrainerID: trainer.ID,
	})
	require.NoError(t, err)

	_, err = f.scheduleService().AddMember(ctx, manager.ID, created.ID, member.ID)
	require.NoError(t, err)

	schedules, err := f.memberService().Schedules(ctx, member.ID)
	require.NoError(t, err)

	require.Len(t, schedules, 1)
	assert.Equal(t, created.ID, schedules[0].ID)
	assert.Equal(t, gym.ID, schedules[0].GymID)
	assert.Equal(t, TrainerRef{Name: "Anna", Email: "anna@example.com"}, schedules[0].Trainer)
	assert.Equal(t, []MemberRef{{Name: "Mia"}}, schedules[0].Members)
}
