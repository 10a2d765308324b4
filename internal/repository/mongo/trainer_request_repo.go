package mongo

import (
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const trainerRequestCollectionName = "trainer_requests"

// mongoTrainerRequestRepository implements repository.TrainerRequestRepository.
type mongoTrainerRequestRepository struct {
	collection *mongo.Collection
	byUser     scopedCollection[domain.TrainerRequest]
	byTrainer  scopedCollection[domain.TrainerRequest]
}

// NewMongoTrainerRequestRepository creates a new TrainerRequest repository.
func NewMongoTrainerRequestRepository(db *mongo.Database) repository.TrainerRequestRepository {
	coll := db.Collection(trainerRequestCollectionName)
	return &mongoTrainerRequestRepository{
		collection: coll,
		byUser:     newScopedCollection[domain.TrainerRequest](coll, "user"),
		byTrainer:  newScopedCollection[domain.TrainerRequest](coll, "trainer"),
	}
}

// Create inserts a pending request. A second pending request from the same
// user violates the partial unique index and yields repository.ErrDuplicate.
func (r *mongoTrainerRequestRepository) Create(ctx context.Context, req *domain.TrainerRequest) (primitive.ObjectID, error) {
	if req.UserID == primitive.NilObjectID || req.TrainerID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("trainer request requires user and trainer")
	}
	req.ID = primitive.NewObjectID()
	req.Status = domain.RequestPending
	now := time.Now().UTC()
	req.CreatedAt = now
	req.UpdatedAt = now
	return r.byUser.insert(ctx, req)
}

func (r *mongoTrainerRequestRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainerRequest, error) {
	var req domain.TrainerRequest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&req)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

// FindPendingByUser returns the user's pending request or repository.ErrNotFound.
func (r *mongoTrainerRequestRepository) FindPendingByUser(ctx context.Context, userID primitive.ObjectID) (*domain.TrainerRequest, error) {
	return r.byUser.findOne(ctx, userID, bson.M{"status": domain.RequestPending})
}

// ListPendingForTrainer returns pending requests addressed to trainerID, newest first.
func (r *mongoTrainerRequestRepository) ListPendingForTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]domain.TrainerRequest, error) {
	return r.byTrainer.find(ctx, trainerID, bson.M{"status": domain.RequestPending}, newestFirst())
}

// Resolve is a conditional transition out of pending. The filter carries the
// status, so two concurrent resolutions cannot both succeed.
func (r *mongoTrainerRequestRepository) Resolve(ctx context.Context, id, trainerID primitive.ObjectID, status domain.RequestStatus, response string, at time.Time) (*domain.TrainerRequest, error) {
	if !status.Terminal() {
		return nil, errors.New("resolve requires a terminal status")
	}
	filter := r.byTrainer.scope(trainerID, bson.M{"_id": id, "status": domain.RequestPending})
	update := bson.M{
		"$set": bson.M{
			"status":          status,
			"responseMessage": response,
			"respondedAt":     at,
			"updatedAt":       at,
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var req domain.TrainerRequest
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&req)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

// Reopen reverts an approved request to pending, clearing the response. The
// partial unique index rejects it while the user has another pending request.
func (r *mongoTrainerRequestRepository) Reopen(ctx context.Context, id primitive.ObjectID) error {
	return r.updateApproved(ctx, id, bson.M{
		"$set":   bson.M{"status": domain.RequestPending, "updatedAt": time.Now().UTC()},
		"$unset": bson.M{"responseMessage": "", "respondedAt": ""},
	})
}

// Withdraw turns an approved request into a rejected one.
func (r *mongoTrainerRequestRepository) Withdraw(ctx context.Context, id primitive.ObjectID, response string, at time.Time) error {
	return r.updateApproved(ctx, id, bson.M{
		"$set": bson.M{
			"status":          domain.RequestRejected,
			"responseMessage": response,
			"respondedAt":     at,
			"updatedAt":       at,
		},
	})
}

func (r *mongoTrainerRequestRepository) updateApproved(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id, "status": domain.RequestApproved}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeletePending removes the request only while it is pending and owned by userID.
func (r *mongoTrainerRequestRepository) DeletePending(ctx context.Context, id, userID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, r.byUser.scope(userID, bson.M{"_id": id, "status": domain.RequestPending}))
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureTrainerRequestIndexes creates necessary indexes. The partial unique
// index allows at most one pending request per user.
func EnsureTrainerRequestIndexes(ctx context.Context, collection *mongo.Collection) error {
	return createIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": domain.RequestPending}).
				SetName("one_pending_per_user"),
		},
		{
			Keys:    bson.D{{Key: "trainer", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index(),
		},
	})
}
