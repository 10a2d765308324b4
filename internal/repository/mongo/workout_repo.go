// internal/repository/mongo/workout_repo.go
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

const workoutCollectionName = "workouts"

// mongoWorkoutRepository implements repository.WorkoutRepository
type mongoWorkoutRepository struct {
	workouts scopedCollection[domain.Workout]
}

// NewMongoWorkoutRepository creates a new Workout repository.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		workouts: newScopedCollection[domain.Workout](db.Collection(workoutCollectionName), "user"),
	}
}

// Create inserts a new workout.
func (r *mongoWorkoutRepository) Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	if workout.UserID == primitive.NilObjectID || workout.Name == "" {
		return primitive.NilObjectID, errors.New("workout requires user and name")
	}
	workout.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	workout.CreatedAt = now
	workout.UpdatedAt = now
	return r.workouts.insert(ctx, workout)
}

// GetByID retrieves a single workout owned by ownerID.
func (r *mongoWorkoutRepository) GetByID(ctx context.Context, ownerID, id primitive.ObjectID) (*domain.Workout, error) {
	return r.workouts.get(ctx, ownerID, id)
}

// List returns one page of workouts, newest first, plus the total match count.
func (r *mongoWorkoutRepository) List(ctx context.Context, ownerID primitive.ObjectID, dates repository.DateRange, page repository.Page) ([]domain.Workout, int64, error) {
	filter := dateFilter(dates)
	workouts, err := r.workouts.find(ctx, ownerID, filter, pageOptions(page))
	if err != nil {
		return nil, 0, err
	}
	total, err := r.workouts.count(ctx, ownerID, filter)
	if err != nil {
		return nil, 0, err
	}
	return workouts, total, nil
}

// ListInRange returns every workout in the range, oldest first.
func (r *mongoWorkoutRepository) ListInRange(ctx context.Context, ownerID primitive.ObjectID, dates repository.DateRange) ([]domain.Workout, error) {
	return r.workouts.find(ctx, ownerID, dateFilter(dates), options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
}

// Recent returns the n newest workouts.
func (r *mongoWorkoutRepository) Recent(ctx context.Context, ownerID primitive.ObjectID, n int) ([]domain.Workout, error) {
	return r.workouts.find(ctx, ownerID, nil, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}).SetLimit(int64(n)))
}

// Update overwrites the mutable fields. The owner is never changed.
func (r *mongoWorkoutRepository) Update(ctx context.Context, workout *domain.Workout) error {
	if workout.ID == primitive.NilObjectID {
		return errors.New("workout ID is required for update")
	}
	return r.workouts.set(ctx, workout.UserID, workout.ID, bson.M{
		"name":                workout.Name,
		"exercises":           workout.Exercises,
		"totalDuration":       workout.TotalDuration,
		"totalCaloriesBurned": workout.TotalCaloriesBurned,
		"notes":               workout.Notes,
		"date":                workout.Date,
	})
}

// Delete removes a workout owned by ownerID.
func (r *mongoWorkoutRepository) Delete(ctx context.Context, ownerID, id primitive.ObjectID) error {
	return r.workouts.delete(ctx, ownerID, id)
}

// Stats rolls up every workout since the given instant. No match yields zeros.
func (r *mongoWorkoutRepository) Stats(ctx context.Context, ownerID primitive.ObjectID, since time.Time) (domain.WorkoutStats, error) {
	pipeline := mongo.Pipeline{
		r.workouts.matchSince(ownerID, since),
		{{Key: "$group", Value: bson.M{
			"_id":           nil,
			"totalWorkouts": bson.M{"$sum": 1},
			"totalDuration": bson.M{"$sum": "$totalDuration"},
			"totalCalories": bson.M{"$sum": "$totalCaloriesBurned"},
			"avgDuration":   bson.M{"$avg": "$totalDuration"},
		}}},
	}
	stats, err := aggregate[domain.WorkoutStats](ctx, r.workouts.collection, pipeline)
	if err != nil {
		return domain.WorkoutStats{}, err
	}
	if len(stats) == 0 {
		return domain.WorkoutStats{}, nil
	}
	return stats[0], nil
}

// WeeklyBreakdown buckets workouts by ISO week; empty weeks are absent.
func (r *mongoWorkoutRepository) WeeklyBreakdown(ctx context.Context, ownerID primitive.ObjectID, since time.Time) ([]domain.WeeklyWorkouts, error) {
	pipeline := mongo.Pipeline{
		r.workouts.matchSince(ownerID, since),
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"year": bson.M{"$isoWeekYear": "$date"},
				"week": bson.M{"$isoWeek": "$date"},
			},
			"workouts": bson.M{"$sum": 1},
			"duration": bson.M{"$sum": "$totalDuration"},
			"calories": bson.M{"$sum": "$totalCaloriesBurned"},
		}}},
		{{Key: "$project", Value: bson.M{
			"_id":      0,
			"year":     "$_id.year",
			"week":     "$_id.week",
			"workouts": 1,
			"duration": 1,
			"calories": 1,
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "year", Value: 1}, {Key: "week", Value: 1}}}},
	}
	return aggregate[domain.WeeklyWorkouts](ctx, r.workouts.collection, pipeline)
}

// DailyCaloriesBurned sums calories burned per UTC day, oldest first.
func (r *mongoWorkoutRepository) DailyCaloriesBurned(ctx context.Context, ownerID primitive.ObjectID, since time.Time) ([]domain.DailyCalories, error) {
	pipeline := mongo.Pipeline{
		r.workouts.matchSince(ownerID, since),
		{{Key: "$group", Value: bson.M{
			"_id":      dayKey("$date"),
			"calories": bson.M{"$sum": "$totalCaloriesBurned"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
	return aggregate[domain.DailyCalories](ctx, r.workouts.collection, pipeline)
}

// EnsureWorkoutIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutIndexes(ctx context.Context, collection *mongo.Collection) error {
	return createIndexes(ctx, collection, []mongo.IndexModel{
		{
			// Main access pattern: a user's workouts by date
			Keys:    bson.D{{Key: "user", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index(),
		},
	})
}
