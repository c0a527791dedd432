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

const managerCollectionName = "managers"

// mongoManagerRepository implements repository.ManagerRepository using MongoDB.
type mongoManagerRepository struct {
	collection *mongo.Collection
}

// NewMongoManagerRepository creates a new instance of mongoManagerRepository.
func NewMongoManagerRepository(db *mongo.Database) repository.ManagerRepository {
	return &mongoManagerRepository{
		collection: db.Collection(managerCollectionName),
	}
}

// Create inserts a new manager.
func (r *mongoManagerRepository) Create(ctx context.Context, manager *domain.Manager) (primitive.ObjectID, error) {
	if manager.Email == "" || manager.PasswordHash == "" || manager.GymID.IsZero() {
		return primitive.NilObjectID, errors.New("manager email, password hash, and gym are required")
	}

	manager.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	manager.CreatedAt = now
	manager.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, manager)
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

// GetByEmail retrieves a manager by email address. Used by login.
func (r *mongoManagerRepository) GetByEmail(ctx context.Context, email string) (*domain.Manager, error) {
	var manager domain.Manager
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&manager)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &manager, nil
}

// GetByID resolves the authenticated manager from a token subject ID.
func (r *mongoManagerRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Manager, error) {
	var manager domain.Manager
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&manager)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &manager, nil
}

// EnsureManagerIndexes creates necessary indexes for the managers collection.
func EnsureManagerIndexes(ctx context.Context, collection *mongo.Collection) {
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
