// internal/repository/mongo/training_plan_repo.go
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

const trainerPlanCollectionName = "trainer_plans"

// mongoTrainerPlanRepository implements repository.TrainerPlanRepository.
// A plan is written by its trainer and read by either party, so the same
// collection is scoped two ways.
type mongoTrainerPlanRepository struct {
	byTrainer scopedCollection[domain.TrainerPlan]
	byClient  scopedCollection[domain.TrainerPlan]
}

// NewMongoTrainerPlanRepository creates a new TrainerPlan repository.
func NewMongoTrainerPlanRepository(db *mongo.Database) repository.TrainerPlanRepository {
	coll := db.Collection(trainerPlanCollectionName)
	return &mongoTrainerPlanRepository{
		byTrainer: newScopedCollection[domain.TrainerPlan](coll, "trainer"),
		byClient:  newScopedCollection[domain.TrainerPlan](coll, "client"),
	}
}

// Create inserts a new trainer plan.
func (r *mongoTrainerPlanRepository) Create(ctx context.Context, plan *domain.TrainerPlan) (primitive.ObjectID, error) {
	if plan.ClientID == primitive.NilObjectID || plan.TrainerID == primitive.NilObjectID || plan.Name == "" {
		return primitive.NilObjectID, errors.New("plan requires client, trainer, and name")
	}
	plan.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now
	return r.byTrainer.insert(ctx, plan)
}

// GetForTrainer retrieves a plan authored by trainerID.
func (r *mongoTrainerPlanRepository) GetForTrainer(ctx context.Context, id, trainerID primitive.ObjectID) (*domain.TrainerPlan, error) {
	return r.byTrainer.get(ctx, trainerID, id)
}

// GetForClient retrieves a plan addressed to clientID.
func (r *mongoTrainerPlanRepository) GetForClient(ctx context.Context, id, clientID primitive.ObjectID) (*domain.TrainerPlan, error) {
	return r.byClient.get(ctx, clientID, id)
}

// ListByTrainer returns every plan the trainer authored, newest first.
func (r *mongoTrainerPlanRepository) ListByTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]domain.TrainerPlan, error) {
	return r.byTrainer.find(ctx, trainerID, nil, newestFirst())
}

// ListByClient returns every plan addressed to the client, newest first,
// regardless of the client's current trainer.
func (r *mongoTrainerPlanRepository) ListByClient(ctx context.Context, clientID primitive.ObjectID) ([]domain.TrainerPlan, error) {
	return r.byClient.find(ctx, clientID, nil, newestFirst())
}

func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
}

// Update overwrites the authored content. Trainer and client never change.
func (r *mongoTrainerPlanRepository) Update(ctx context.Context, plan *domain.TrainerPlan) error {
	if plan.ID == primitive.NilObjectID {
		return errors.New("trainer plan ID is required for update")
	}
	return r.byTrainer.set(ctx, plan.TrainerID, plan.ID, bson.M{
		"name":               plan.Name,
		"description":        plan.Description,
		"workoutPlan":        plan.WorkoutPlan,
		"mealPlan":           plan.MealPlan,
		"dailyCalorieTarget": plan.DailyCalorieTarget,
		"dailyProteinTarget": plan.DailyProteinTarget,
		"startDate":          plan.StartDate,
		"endDate":            plan.EndDate,
		"status":             plan.Status,
		"notes":              plan.Notes,
	})
}

// Delete removes a plan authored by trainerID.
func (r *mongoTrainerPlanRepository) Delete(ctx context.Context, id, trainerID primitive.ObjectID) error {
	return r.byTrainer.delete(ctx, trainerID, id)
}

// EnsureTrainerPlanIndexes creates necessary indexes. Call during startup.
func EnsureTrainerPlanIndexes(ctx context.Context, collection *mongo.Collection) error {
	return createIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "trainer", Value: 1}, {Key: "client", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "client", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	})
}
