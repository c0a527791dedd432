package service

import (
	"context"
	"sort"
	"strings"

	"gymhub/gym-api/internal/domain"
	"gymhub/gym-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes shared by the service tests. They mirror the
// Mongo implementations' behavior: gym-scoped filters, set semantics on
// schedule membership, ascending date sorts.

type fakeGymRepo struct {
	gyms map[primitive.ObjectID]domain.Gym
}

func newFakeGymRepo() *fakeGymRepo {
	return &fakeGymRepo{gyms: make(map[primitive.ObjectID]domain.Gym)}
}

func (r *fakeGymRepo) Create(_ context.Context, gym *domain.Gym) (primitive.ObjectID, error) {
	gym.ID = primitive.NewObjectID()
	r.gyms[gym.ID] = *gym
	return gym.ID, nil
}

func (r *fakeGymRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Gym, error) {
	gym, ok := r.gyms[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &gym, nil
}

func (r *fakeGymRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.gyms[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.gyms, id)
	return nil
}

type fakeManagerRepo struct {
	managers  map[primitive.ObjectID]domain.Manager
	createErr error
}

func newFakeManagerRepo() *fakeManagerRepo {
	return &fakeManagerRepo{managers: make(map[primitive.ObjectID]domain.Manager)}
}

func (r *fakeManagerRepo) Create(_ context.Context, manager *domain.Manager) (primitive.ObjectID, error) {
	if r.createErr != nil {
		return primitive.NilObjectID, r.createErr
	}
	manager.ID = primitive.NewObjectID()
	r.managers[manager.ID] = *manager
	return manager.ID, nil
}

func (r *fakeManagerRepo) GetByEmail(_ context.Context, email string) (*domain.Manager, error) {
	for _, m := range r.managers {
		if m.Email == email {
			m := m
			return &m, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeManagerRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Manager, error) {
	m, ok := r.managers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &m, nil
}

type fakeTrainerRepo struct {
	trainers map[primitive.ObjectID]domain.Trainer
}

func newFakeTrainerRepo() *fakeTrainerRepo {
	return &fakeTrainerRepo{trainers: make(map[primitive.ObjectID]domain.Trainer)}
}

func (r *fakeTrainerRepo) Create(_ context.Context, trainer *domain.Trainer) (primitive.ObjectID, error) {
	trainer.ID = primitive.NewObjectID()
	r.trainers[trainer.ID] = *trainer
	return trainer.ID, nil
}

func (r *fakeTrainerRepo) GetByEmail(_ context.Context, email string) (*domain.Trainer, error) {
	for _, t := range r.trainers {
		if t.Email == email {
			t := t
			return &t, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeTrainerRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Trainer, error) {
	t, ok := r.trainers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (r *fakeTrainerRepo) GetInGym(_ context.Context, id, gymID primitive.ObjectID) (*domain.Trainer, error) {
	t, ok := r.trainers[id]
	if !ok || t.GymID != gymID {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (r *fakeTrainerRepo) GetManyInGym(_ context.Context, ids []primitive.ObjectID, gymID primitive.ObjectID) ([]domain.Trainer, error) {
	out := []domain.Trainer{}
	for _, id := range ids {
		if t, ok := r.trainers[id]; ok && t.GymID == gymID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTrainerRepo) List(_ context.Context, gymID primitive.ObjectID, nameFilter string) ([]domain.Trainer, error) {
	out := []domain.Trainer{}
	for _, t := range r.trainers {
		if t.GymID != gymID {
			continue
		}
		if nameFilter != "" && !strings.Contains(strings.ToLower(t.Name), strings.ToLower(nameFilter)) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *fakeTrainerRepo) Update(_ context.Context, id, gymID primitive.ObjectID, patch repository.TrainerPatch) (*domain.Trainer, error) {
	t, ok := r.trainers[id]
	if !ok || t.GymID != gymID {
		return nil, repository.ErrNotFound
	}
	if patch.Name != nil {
		t.Name = *patch.Name
	}
	if patch.Age != nil {
		t.Age = *patch.Age
	}
	if patch.ContactInfo != nil {
		t.ContactInfo = *patch.ContactInfo
	}
	if patch.Email != nil {
		t.Email = *patch.Email
	}
	if patch.PasswordHash != nil {
		t.PasswordHash = *patch.PasswordHash
	}
	r.trainers[id] = t
	return &t, nil
}

func (r *fakeTrainerRepo) Delete(_ context.Context, id, gymID primitive.ObjectID) error {
	t, ok := r.trainers[id]
	if !ok || t.GymID != gymID {
		return repository.ErrNotFound
	}
	delete(r.trainers, id)
	return nil
}

func (r *fakeTrainerRepo) CountByGym(_ context.Context, gymID primitive.ObjectID) (int64, error) {
	var n int64
	for _, t := range r.trainers {
		if t.GymID == gymID {
			n++
		}
	}
	return n, nil
}

type fakeMemberRepo struct {
	members map[primitive.ObjectID]domain.Member
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: make(map[primitive.ObjectID]domain.Member)}
}

func (r *fakeMemberRepo) Create(_ context.Context, member *domain.Member) (primitive.ObjectID, error) {
	member.ID = primitive.NewObjectID()
	r.members[member.ID] = *member
	return member.ID, nil
}

func (r *fakeMemberRepo) GetByEmail(_ context.Context, email string) (*domain.Member, error) {
	for _, m := range r.members {
		if m.Email == email {
			m := m
			return &m, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeMemberRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Member, error) {
	m, ok := r.members[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &m, nil
}

func (r *fakeMemberRepo) GetInGym(_ context.Context, id, gymID primitive.ObjectID) (*domain.Member, error) {
	m, ok := r.members[id]
	if !ok || m.GymID != gymID {
		return nil, repository.ErrNotFound
	}
	return &m, nil
}

func (r *fakeMemberRepo) GetManyInGym(_ context.Context, ids []primitive.ObjectID, gymID primitive.ObjectID) ([]domain.Member, error) {
	out := []domain.Member{}
	for _, id := range ids {
		if m, ok := r.members[id]; ok && m.GymID == gymID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMemberRepo) List(_ context.Context, gymID primitive.ObjectID, nameFilter string) ([]domain.Member, error) {
	out := []domain.Member{}
	for _, m := range r.members {
		if m.GymID != gymID {
			continue
		}
		if nameFilter != "" && !strings.Contains(strings.ToLower(m.Name), strings.ToLower(nameFilter)) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *fakeMemberRepo) ListByTrainer(_ context.Context, trainerID, gymID primitive.ObjectID) ([]domain.Member, error) {
	out := []domain.Member{}
	for _, m := range r.members {
		if m.GymID == gymID && m.TrainerID != nil && *m.TrainerID == trainerID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMemberRepo) Update(_ context.Context, id, gymID primitive.ObjectID, patch repository.MemberPatch) (*domain.Member, error) {
	m, ok := r.members[id]
	if !ok || m.GymID != gymID {
		return nil, repository.ErrNotFound
	}
	if patch.Name != nil {
		m.Name = *patch.Name
	}
	if patch.Age != nil {
		m.Age = *patch.Age
	}
	if patch.MembershipType != nil {
		m.MembershipType = *patch.MembershipType
	}
	if patch.ContactInfo != nil {
		m.ContactInfo = *patch.ContactInfo
	}
	if patch.Email != nil {
		m.Email = *patch.Email
	}
	if patch.PasswordHash != nil {
		m.PasswordHash = *patch.PasswordHash
	}
	r.members[id] = m
	return &m, nil
}

func (r *fakeMemberRepo) AssignTrainer(_ context.Context, memberID, trainerID, gymID primitive.ObjectID) (*domain.Member, error) {
	m, ok := r.members[memberID]
	if !ok || m.GymID != gymID {
		return nil, repository.ErrNotFound
	}
	m.TrainerID = &trainerID
	r.members[memberID] = m
	return &m, nil
}

func (r *fakeMemberRepo) Delete(_ context.Context, id, gymID primitive.ObjectID) error {
	m, ok := r.members[id]
	if !ok || m.GymID != gymID {
		return repository.ErrNotFound
	}
	delete(r.members, id)
	return nil
}

func (r *fakeMemberRepo) CountByGym(_ context.Context, gymID primitive.ObjectID) (int64, error) {
	var n int64
	for _, m := range r.members {
		if m.GymID == gymID {
			n++
		}
	}
	return n, nil
}

type fakeScheduleRepo struct {
	schedules map[primitive.ObjectID]domain.Schedule
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{schedules: make(map[primitive.ObjectID]domain.Schedule)}
}

func (r *fakeScheduleRepo) Create(_ context.Context, schedule *domain.Schedule) (primitive.ObjectID, error) {
	schedule.ID = primitive.NewObjectID()
	if schedule.MemberIDs == nil {
		schedule.MemberIDs = []primitive.ObjectID{}
	}
	r.schedules[schedule.ID] = *schedule
	return schedule.ID, nil
}

func (r *fakeScheduleRepo) ListByGym(_ context.Context, gymID primitive.ObjectID, window *repository.TimeWindow) ([]domain.Schedule, error) {
	out := []domain.Schedule{}
	for _, s := range r.schedules {
		if s.GymID != gymID {
			continue
		}
		if window != nil && (s.Date.Before(window.Start) || s.Date.After(window.End)) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeScheduleRepo) ListByTrainer(_ context.Context, trainerID, gymID primitive.ObjectID) ([]domain.Schedule, error) {
	out := []domain.Schedule{}
	for _, s := range r.schedules {
		if s.GymID == gymID && s.TrainerID == trainerID {
			out = append(out, s)
		}
	}
	sortByDate(out)
	return out, nil
}

func (r *fakeScheduleRepo) ListByMember(_ context.Context, memberID, gymID primitive.ObjectID) ([]domain.Schedule, error) {
	out := []domain.Schedule{}
	for _, s := range r.schedules {
		if s.GymID != gymID {
			continue
		}
		for _, mid := range s.MemberIDs {
			if mid == memberID {
				out = append(out, s)
				break
			}
		}
	}
	sortByDate(out)
	return out, nil
}

func (r *fakeScheduleRepo) AddMember(_ context.Context, scheduleID, memberID, gymID primitive.ObjectID) (*domain.Schedule, error) {
	s, ok := r.schedules[scheduleID]
	if !ok || s.GymID != gymID {
		return nil, repository.ErrNotFound
	}
	present := false
	for _, mid := range s.MemberIDs {
		if mid == memberID {
			present = true
			break
		}
	}
	if !present {
		s.MemberIDs = append(s.MemberIDs, memberID)
	}
	r.schedules[scheduleID] = s
	return &s, nil
}

func (r *fakeScheduleRepo) Delete(_ context.Context, id, gymID primitive.ObjectID) error {
	s, ok := r.schedules[id]
	if !ok || s.GymID != gymID {
		return repository.ErrNotFound
	}
	delete(r.schedules, id)
	return nil
}

func (r *fakeScheduleRepo) CountInWindow(_ context.Context, gymID primitive.ObjectID, window repository.TimeWindow) (int64, error) {
	var n int64
	for _, s := range r.schedules {
		if s.GymID == gymID && !s.Date.Before(window.Start) && !s.Date.After(window.End) {
			n++
		}
	}
	return n, nil
}

func sortByDate(schedules []domain.Schedule) {
	sort.Slice(schedules, func(i, j int) bool {
		return schedules[i].Date.Before(schedules[j].Date)
	})
}
