package mongo

import (
	"context"
	"errors"
	"time"

	"gymhub/gym-api/internal/domain"
	"gymhub/gym-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const scheduleCollectionName = "schedules"

// mongoScheduleRepository implements repository.ScheduleRepository using MongoDB.
type mongoScheduleRepository struct {
	collection *mongo.Collection
}

// NewMongoScheduleRepository creates a new instance of mongoScheduleRepository.
func NewMongoScheduleRepository(db *mongo.Database) repository.ScheduleRepository {
	return &mongoScheduleRepository{
		collection: db.Collection(scheduleCollectionName),
	}
}

// Create inserts a new schedule with an empty members set.
func (r *mongoScheduleRepository) Create(ctx context.Context, schedule *domain.Schedule) (primitive.ObjectID, error) {
	if schedule.Title == "" || schedule.TrainerID.IsZero() || schedule.GymID.IsZero() {
		return primitive.NilObjectID, errors.New("schedule title, trainer, and gym are required")
	}

	schedule.ID = primitive.NewObjectID()
	if schedule.MemberIDs == nil {
		schedule.MemberIDs = []primitive.ObjectID{}
	}
	now := time.Now().UTC()
	schedule.CreatedAt = now
	schedule.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, schedule)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// ListByGym returns the gym's schedules, optionally restricted to a calendar
// day window ([00:00:00, 23:59:59.999] inclusive).
func (r *mongoScheduleRepository) ListByGym(ctx context.Context, gymID primitive.ObjectID, window *repository.TimeWindow) ([]domain.Schedule, error) {
	filter := bson.M{"gym": gymID}
	if window != nil {
		filter["date"] = bson.M{"$gte": window.Start, "$lte": window.End}
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var schedules []domain.Schedule
	if err = cursor.All(ctx, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

// ListByTrainer returns the trainer's schedules within the gym, sorted
// ascending by date.
func (r *mongoScheduleRepository) ListByTrainer(ctx context.Context, trainerID, gymID primitive.ObjectID) ([]domain.Schedule, error) {
	filter := bson.M{"trainer": trainerID, "gym": gymID}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var schedules []domain.Schedule
	if err = cursor.All(ctx, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

// ListByMember returns the schedules whose members set contains the member,
// within the gym, sorted ascending by date.
func (r *mongoScheduleRepository) ListByMember(ctx context.Context, memberID, gymID primitive.ObjectID) ([]domain.Schedule, error) {
	// Matching a scalar against the members array is Mongo's array-contains.
	filter := bson.M{"members": memberID, "gym": gymID}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var schedules []domain.Schedule
	if err = cursor.All(ctx, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

// AddMember inserts the member into the schedule's members set in a single
// atomic update. $addToSet keeps the set deduplicated, so concurrent or
// repeated adds of the same member converge without error.
func (r *mongoScheduleRepository) AddMember(ctx context.Context, scheduleID, memberID, gymID primitive.ObjectID) (*domain.Schedule, error) {
	filter := bson.M{"_id": scheduleID, "gym": gymID}
	update := bson.M{
		"$addToSet": bson.M{"members": memberID},
		"$set":      bson.M{"updatedAt": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var schedule domain.Schedule
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&schedule)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &schedule, nil
}

// Delete removes a schedule, ensuring it belongs to the gym.
func (r *mongoScheduleRepository) Delete(ctx context.Context, id, gymID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "gym": gymID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// CountInWindow counts the gym's schedules dated within the window.
func (r *mongoScheduleRepository) CountInWindow(ctx context.Context, gymID primitive.ObjectID, window repository.TimeWindow) (int64, error) {
	filter := bson.M{
		"gym":  gymID,
		"date": bson.M{"$gte": window.Start, "$lte": window.End},
	}
	return r.collection.CountDocuments(ctx, filter)
}

// EnsureScheduleIndexes creates necessary indexes for the schedules collection.
func EnsureScheduleIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "gym", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "trainer", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "members", Value: 1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
