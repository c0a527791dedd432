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

const memberCollectionName = "members"

// mongoMemberRepository implements repository.MemberRepository using MongoDB.
type mongoMemberRepository struct {
	collection *mongo.Collection
}

// NewMongoMemberRepository creates a new instance of mongoMemberRepository.
func NewMongoMemberRepository(db *mongo.Database) repository.MemberRepository {
	return &mongoMemberRepository{
		collection: db.Collection(memberCollectionName),
	}
}

// Create inserts a new member.
func (r *mongoMemberRepository) Create(ctx context.Context, member *domain.Member) (primitive.ObjectID, error) {
	if member.Email == "" || member.PasswordHash == "" || member.GymID.IsZero() {
		return primitive.NilObjectID, errors.New("member email, password hash, and gym are required")
	}

	member.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	member.CreatedAt = now
	member.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, member)
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

// GetByEmail retrieves a member by email address. Used by login.
func (r *mongoMemberRepository) GetByEmail(ctx context.Context, email string) (*domain.Member, error) {
	var member domain.Member
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&member)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &member, nil
}

// GetByID resolves the authenticated member from a token subject ID.
func (r *mongoMemberRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Member, error) {
	var member domain.Member
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&member)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &member, nil
}

// GetInGym retrieves a member scoped to a gym.
func (r *mongoMemberRepository) GetInGym(ctx context.Context, id, gymID primitive.ObjectID) (*domain.Member, error) {
	var member domain.Member
	filter := bson.M{"_id": id, "gym": gymID}

	err := r.collection.FindOne(ctx, filter).Decode(&member)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &member, nil
}

// GetManyInGym retrieves the members among ids that belong to the gym.
func (r *mongoMemberRepository) GetManyInGym(ctx context.Context, ids []primitive.ObjectID, gymID primitive.ObjectID) ([]domain.Member, error) {
	if len(ids) == 0 {
		return []domain.Member{}, nil
	}

	filter := bson.M{"_id": bson.M{"$in": ids}, "gym": gymID}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var members []domain.Member
	if err = cursor.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// List returns the gym's members, optionally filtered by a case-insensitive
// name substring layered on top of the gym filter.
func (r *mongoMemberRepository) List(ctx context.Context, gymID primitive.ObjectID, nameFilter string) ([]domain.Member, error) {
	filter := bson.M{"gym": gymID}
	if nameFilter != "" {
		filter["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(nameFilter), Options: "i"}
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var members []domain.Member
	if err = cursor.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// ListByTrainer returns the members assigned to a trainer within the gym.
func (r *mongoMemberRepository) ListByTrainer(ctx context.Context, trainerID, gymID primitive.ObjectID) ([]domain.Member, error) {
	filter := bson.M{"trainer": trainerID, "gym": gymID}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var members []domain.Member
	if err = cursor.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// Update applies a field patch to a member within the gym. Gym and trainer
// references are not patchable here; assignment goes through AssignTrainer.
func (r *mongoMemberRepository) Update(ctx context.Context, id, gymID primitive.ObjectID, patch repository.MemberPatch) (*domain.Member, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Age != nil {
		set["age"] = *patch.Age
	}
	if patch.MembershipType != nil {
		set["membershipType"] = *patch.MembershipType
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

	var member domain.Member
	err := r.collection.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&member)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, repository.ErrConflict
		}
		return nil, err
	}
	return &member, nil
}

// AssignTrainer sets the member's trainer reference. The caller must have
// already verified the trainer resolves within the same gym.
func (r *mongoMemberRepository) AssignTrainer(ctx context.Context, memberID, trainerID, gymID primitive.ObjectID) (*domain.Member, error) {
	filter := bson.M{"_id": memberID, "gym": gymID}
	update := bson.M{
		"$set": bson.M{
			"trainer":   trainerID,
			"updatedAt": time.Now().UTC(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var member domain.Member
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&member)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &member, nil
}

// Delete removes a member, ensuring it belongs to the gym.
func (r *mongoMemberRepository) Delete(ctx context.Context, id, gymID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "gym": gymID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// CountByGym counts the members of a gym.
func (r *mongoMemberRepository) CountByGym(ctx context.Context, gymID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"gym": gymID})
}

// EnsureMemberIndexes creates necessary indexes for the members collection.
func EnsureMemberIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "gym", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "trainer", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
