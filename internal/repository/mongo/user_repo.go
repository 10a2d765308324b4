package mongo

import (
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/repository" // Import the repository interfaces package
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const userCollectionName = "users"

// mongoUserRepository implements the repository.UserRepository interface using MongoDB.
type mongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new instance of mongoUserRepository.
// It expects a connected *mongo.Database instance.
func NewMongoUserRepository(db *mongo.Database) repository.UserRepository {
	return &mongoUserRepository{
		collection: db.Collection(userCollectionName),
	}
}

// Create inserts a new user into the database.
func (r *mongoUserRepository) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	if user.Email == "" || user.PasswordHash == "" || user.Role == "" {
		return primitive.NilObjectID, errors.New("user email, password hash, and role are required")
	}

	user.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		// Unique index on email
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByEmail retrieves a user by their (already normalized) email address.
func (r *mongoUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// GetByID retrieves a user by their MongoDB ObjectID.
func (r *mongoUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoUserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var user domain.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *mongoUserRepository) findMany(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]domain.User, error) {
	cursor, err := r.collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []domain.User{}
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

// GetByIDs retrieves every user whose ID is in ids. Missing IDs are skipped.
func (r *mongoUserRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.User, error) {
	if len(ids) == 0 {
		return []domain.User{}, nil
	}
	return r.findMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

// ListByRole retrieves all users with the given role, by name.
func (r *mongoUserRepository) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	return r.findMany(ctx, bson.M{"role": role}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
}

// UpdateProfile overwrites the name and the (already merged) profile.
func (r *mongoUserRepository) UpdateProfile(ctx context.Context, id primitive.ObjectID, name string, profile domain.Profile) error {
	return r.updateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"name": name, "profile": profile, "updatedAt": time.Now().UTC()},
	})
}

// SetAvatar records the storage object key of the user's avatar.
func (r *mongoUserRepository) SetAvatar(ctx context.Context, id primitive.ObjectID, objectKey string) error {
	return r.updateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"profile.avatar": objectKey, "updatedAt": time.Now().UTC()},
	})
}

func (r *mongoUserRepository) updateOne(ctx context.Context, filter, update bson.M) error {
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// GetClientsByTrainerID retrieves all regular users assigned to a trainer.
func (r *mongoUserRepository) GetClientsByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.User, error) {
	filter := bson.M{"assignedTrainer": trainerID, "role": domain.RoleUser}
	return r.findMany(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
}

// GetClientOfTrainer retrieves a user only if they are assigned to trainerID.
func (r *mongoUserRepository) GetClientOfTrainer(ctx context.Context, clientID, trainerID primitive.ObjectID) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": clientID, "assignedTrainer": trainerID})
}

// AssignTrainerIfUnassigned is a compare-and-swap on assignedTrainer: the write
// only matches while the field is unset or already equal to trainerID.
func (r *mongoUserRepository) AssignTrainerIfUnassigned(ctx context.Context, userID, trainerID primitive.ObjectID) error {
	filter := bson.M{
		"_id":             userID,
		"role":            domain.RoleUser,
		"assignedTrainer": bson.M{"$in": bson.A{nil, trainerID}},
	}
	update := bson.M{
		"$set": bson.M{
			"assignedTrainer": trainerID,
			"updatedAt":       time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		// Either the user is gone or someone else got there first.
		if _, err := r.GetByID(ctx, userID); err != nil {
			return err
		}
		return repository.ErrConflict
	}
	return nil
}

// ClearTrainer removes the user's trainer assignment unconditionally.
func (r *mongoUserRepository) ClearTrainer(ctx context.Context, userID primitive.ObjectID) error {
	return r.updateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$unset": bson.M{"assignedTrainer": ""},
		"$set":   bson.M{"updatedAt": time.Now().UTC()},
	})
}

// EnsureUserIndexes creates necessary indexes for the users collection.
// Call this once during application startup.
func EnsureUserIndexes(ctx context.Context, collection *mongo.Collection) error {
	return createIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "role", Value: 1}},
			Options: options.Index(),
		},
		{
			// Sparse because most users have no trainer
			Keys:    bson.D{{Key: "assignedTrainer", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	})
}
