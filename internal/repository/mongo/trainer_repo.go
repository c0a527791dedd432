package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"gymhub/gym-api/internal/domain"
	"gymhub/gym-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const trainerCollectionName = "trainers"

// mongoTrainerRepository implements repository.TrainerRepository using MongoDB.
// All queries other than login/caller resolution carry the gym in the filter;
// a trainer is never reachable from outside its own gym.
type mongoTrainerRepository struct {
	collection *mongo.Collection
}

// NewMongoTrainerRepository creates a new instance of mongoTrainerRepository.
func NewMongoTrainerRepository(db *mongo.Database) repository.TrainerRepository {
	return &mongoTrainerRepository{
		collection: db.Collection(trainerCollectionName),
	}
}

// Create inserts a new trainer.
func (r *mongoTrainerRepository) Create(ctx context.Context, trainer *domain.Trainer) (primitive.ObjectID, error) {
	if trainer.Email == "" || trainer.PasswordHash == "" || trainer.GymID.IsZero() {
		return primitive.NilObjectID, errors.New("trainer email, password hash, and gym are required")
	}

	trainer.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	trainer.CreatedAt = now
	trainer.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, trainer)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrConflict
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByEmail retrieves a trainer by email address. Used by login.
func (r *mongoTrainerRepository) GetByEmail(ctx context.Context, email string) (*domain.Trainer, error) {
	var trainer domain.Trainer
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&trainer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &trainer, nil
}

// GetByID resolves the authenticated trainer from a token subject ID.
func (r *mongoTrainerRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Trainer, error) {
	var trainer domain.Trainer
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&trainer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &trainer, nil
}

// GetInGym retrieves a trainer scoped to a gym. A trainer in another gym is
// indistinguishable from a missing one.
func (r *mongoTrainerRepository) GetInGym(ctx context.Context, id, gymID primitive.ObjectID) (*domain.Trainer, error) {
	var trainer domain.Trainer
	filter := bson.M{"_id": id, "gym": gymID}

	err := r.collection.FindOne(ctx, filter).Decode(&trainer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &trainer, nil
}

// GetManyInGym retrieves the trainers among ids that belong to the gym.
func (r *mongoTrainerRepository) GetManyInGym(ctx context.Context, ids []primitive.ObjectID, gymID primitive.ObjectID) ([]domain.Trainer, error) {
	if len(ids) == 0 {
		return []domain.Trainer{}, nil
	}

	filter := bson.M{"_id": bson.M{"$in": ids}, "gym": gymID}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var trainers []domain.Trainer
	if err = cursor.All(ctx, &trainers); err != nil {
		return nil, err
	}
	return trainers, nil
}

// List returns the gym's trainers, optionally filtered by a case-insensitive
// name substring. The name filter composes with the gym filter, it never
// replaces it.
func (r *mongoTrainerRepository) List(ctx context.Context, gymID primitive.ObjectID, nameFilter string) ([]domain.Trainer, error) {
	filter := bson.M{"gym": gymID}
	if nameFilter != "" {
		filter["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(nameFilter), Options: "i"}
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var trainers []domain.Trainer
	if err = cursor.All(ctx, &trainers); err != nil {
		return nil, err
	}
	return trainers, nil
}

// Update applies a field patch to a trainer within the gym. The gym reference
// itself is immutable and never part of the $set document.
func (r *mongoTrainerRepository) Update(ctx context.Context, id, gymID primitive.ObjectID, patch repository.TrainerPatch) (*domain.Trainer, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Age != nil {
		set["age"] = *patch.Age
	}
	if patch.ContactInfo != nil {
		set["contactInfo"] = *patch.ContactInfo
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.PasswordHash != nil {
		set["passwordHash"] = *patch.PasswordHash
	}

	filter := bson.M{"_id": id, "gym": gymID}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var trainer domain.Trainer
	err := r.collection.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&trainer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, repository.ErrConflict
		}
		return nil, err
	}
	return &trainer, nil
}

// Delete removes a trainer, ensuring it belongs to the gym. The combined
// filter means a cross-gym delete attempt simply matches nothing.
func (r *mongoTrainerRepository) Delete(ctx context.Context, id, gymID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "gym": gymID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// CountByGym counts the trainers of a gym.
func (r *mongoTrainerRepository) CountByGym(ctx context.Context, gymID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"gym": gymID})
}

// EnsureTrainerIndexes creates necessary indexes for the trainers collection.
func EnsureTrainerIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "gym", Value: 1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
