package service

import (
	"time"

	"gymhub/gym-api/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fixture wires the fakes together and offers direct seeding helpers so
// tests can arrange multi-gym data without going through the services.
type fixture struct {
	gyms      *fakeGymRepo
	managers  *fakeManagerRepo
	trainers  *fakeTrainerRepo
	members   *fakeMemberRepo
	schedules *fakeScheduleRepo
}

func newFixture() *fixture {
	return &fixture{
		gyms:      newFakeGymRepo(),
		managers:  newFakeManagerRepo(),
		trainers:  newFakeTrainerRepo(),
		members:   newFakeMemberRepo(),
		schedules: newFakeScheduleRepo(),
	}
}

func (f *fixture) trainerService() TrainerService {
	return NewTrainerService(f.managers, f.trainers, f.members, f.schedules)
}

func (f *fixture) memberService() MemberService {
	return NewMemberService(f.managers, f.trainers, f.members, f.schedules)
}

func (f *fixture) scheduleService() ScheduleService {
	return NewScheduleService(f.managers, f.trainers, f.members, f.schedules)
}

// seedGym creates a gym with one manager and returns both ids.
func (f *fixture) seedGym(name string) (gymID, managerID primitive.ObjectID) {
	gymID = primitive.NewObjectID()
	f.gyms.gyms[gymID] = domain.Gym{ID: gymID, Name: name}

	managerID = primitive.NewObjectID()
	f.managers.managers[managerID] = domain.Manager{
		ID:    managerID,
		Name:  name + " manager",
		Email: name + "-manager@example.com",
		GymID: gymID,
	}
	return gymID, managerID
}

func (f *fixture) seedTrainer(gymID primitive.ObjectID, name, email string) primitive.ObjectID {
	id := primitive.NewObjectID()
	f.trainers.trainers[id] = domain.Trainer{
		ID:    id,
		Name:  name,
		Email: email,
		GymID: gymID,
	}
	return id
}

func (f *fixture) seedMember(gymID primitive.ObjectID, name, email string, trainerID *primitive.ObjectID) primitive.ObjectID {
	id := primitive.NewObjectID()
	f.members.members[id] = domain.Member{
		ID:        id,
		Name:      name,
		Email:     email,
		GymID:     gymID,
		TrainerID: trainerID,
	}
	return id
}

func (f *fixture) seedSchedule(gymID, trainerID primitive.ObjectID, title string, date time.Time, memberIDs ...primitive.ObjectID) primitive.ObjectID {
	id := primitive.NewObjectID()
	if memberIDs == nil {
		memberIDs = []primitive.ObjectID{}
	}
	f.schedules.schedules[id] = domain.Schedule{
		ID:        id,
		Title:     title,
		Date:      date,
		Time:      "07:00 - 08:00",
		TrainerID: trainerID,
		MemberIDs: memberIDs,
		GymID:     gymID,
	}
	return id
}
