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

const weightCollectionName = "weight_logs"

type mongoWeightRepository struct {
	logs scopedCollection[domain.WeightLog]
}

// NewMongoWeightRepository creates a new WeightLog repository.
func NewMongoWeightRepository(db *mongo.Database) repository.WeightRepository {
	return &mongoWeightRepository{
		logs: newScopedCollection[domain.WeightLog](db.Collection(weightCollectionName), "user"),
	}
}

func (r *mongoWeightRepository) Create(ctx context.Context, log *domain.WeightLog) (primitive.ObjectID, error) {
	if log.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("weight log requires user")
	}
	log.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	log.CreatedAt = now
	log.UpdatedAt = now
	return r.logs.insert(ctx, log)
}

func (r *mongoWeightRepository) GetByID(ctx context.Context, ownerID, id primitive.ObjectID) (*domain.WeightLog, error) {
	return r.logs.get(ctx, ownerID, id)
}

// List returns up to limit entries, newest first. A limit of 0 means all.
func (r *mongoWeightRepository) List(ctx context.Context, ownerID primitive.ObjectID, limit int) ([]domain.WeightLog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return r.logs.find(ctx, ownerID, nil, opts)
}

// Latest returns the most recent entry or repository.ErrNotFound.
func (r *mongoWeightRepository) Latest(ctx context.Context, ownerID primitive.ObjectID) (*domain.WeightLog, error) {
	return r.logs.findOne(ctx, ownerID, nil, options.FindOne().SetSort(bson.D{{Key: "date", Value: -1}}))
}

// History returns entries in the range, oldest first.
func (r *mongoWeightRepository) History(ctx context.Context, ownerID primitive.ObjectID, dates repository.DateRange) ([]domain.WeightLog, error) {
	return r.logs.find(ctx, ownerID, dateFilter(dates), options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
}

func (r *mongoWeightRepository) Update(ctx context.Context, log *domain.WeightLog) error {
	if log.ID == primitive.NilObjectID {
		return errors.New("weight log ID is required for update")
	}
	return r.logs.set(ctx, log.UserID, log.ID, bson.M{
		"weight":          log.Weight,
		"bodyFat":         log.BodyFat,
		"muscleMass":      log.MuscleMass,
		"waterPercentage": log.WaterPercentage,
		"notes":           log.Notes,
		"date":            log.Date,
	})
}

func (r *mongoWeightRepository) Delete(ctx context.Context, ownerID, id primitive.ObjectID) error {
	return r.logs.delete(ctx, ownerID, id)
}

func EnsureWeightIndexes(ctx context.Context, collection *mongo.Collection) error {
	return createIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index(),
		},
	})
}
