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

const goalCollectionName = "goals"

type mongoGoalRepository struct {
	goals scopedCollection[domain.Goal]
}

// NewMongoGoalRepository creates a new Goal repository.
func NewMongoGoalRepository(db *mongo.Database) repository.GoalRepository {
	return &mongoGoalRepository{
		goals: newScopedCollection[domain.Goal](db.Collection(goalCollectionName), "user"),
	}
}

func (r *mongoGoalRepository) Create(ctx context.Context, goal *domain.Goal) (primitive.ObjectID, error) {
	if goal.UserID == primitive.NilObjectID || goal.Title == "" {
		return primitive.NilObjectID, errors.New("goal requires user and title")
	}
	goal.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	goal.CreatedAt = now
	goal.UpdatedAt = now
	return r.goals.insert(ctx, goal)
}

func (r *mongoGoalRepository) GetByID(ctx context.Context, ownerID, id primitive.ObjectID) (*domain.Goal, error) {
	return r.goals.get(ctx, ownerID, id)
}

// List returns goals ordered by deadline. An empty status matches every goal.
func (r *mongoGoalRepository) List(ctx context.Context, ownerID primitive.ObjectID, status domain.GoalStatus) ([]domain.Goal, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return r.goals.find(ctx, ownerID, filter, options.Find().SetSort(bson.D{{Key: "deadline", Value: 1}}))
}

func (r *mongoGoalRepository) Update(ctx context.Context, goal *domain.Goal) error {
	if goal.ID == primitive.NilObjectID {
		return errors.New("goal ID is required for update")
	}
	return r.goals.set(ctx, goal.UserID, goal.ID, bson.M{
		"type":         goal.Type,
		"title":        goal.Title,
		"description":  goal.Description,
		"targetValue":  goal.TargetValue,
		"currentValue": goal.CurrentValue,
		"unit":         goal.Unit,
		"startDate":    goal.StartDate,
		"deadline":     goal.Deadline,
		"status":       goal.Status,
	})
}

func (r *mongoGoalRepository) Delete(ctx context.Context, ownerID, id primitive.ObjectID) error {
	return r.goals.delete(ctx, ownerID, id)
}

func EnsureGoalIndexes(ctx context.Context, collection *mongo.Collection) error {
	return createIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user", Value: 1}, {Key: "status", Value: 1}, {Key: "deadline", Value: 1}},
			Options: options.Index(),
		},
	})
}
