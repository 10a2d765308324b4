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

const mealCollectionName = "meals"

// mongoMealRepository implements repository.MealRepository
type mongoMealRepository struct {
	meals scopedCollection[domain.Meal]
}

// NewMongoMealRepository creates a new Meal repository.
func NewMongoMealRepository(db *mongo.Database) repository.MealRepository {
	return &mongoMealRepository{
		meals: newScopedCollection[domain.Meal](db.Collection(mealCollectionName), "user"),
	}
}

// Create inserts a new meal. Totals must already be applied by the caller.
func (r *mongoMealRepository) Create(ctx context.Context, meal *domain.Meal) (primitive.ObjectID, error) {
	if meal.UserID == primitive.NilObjectID || meal.Type == "" {
		return primitive.NilObjectID, errors.New("meal requires user and type")
	}
	meal.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	meal.CreatedAt = now
	meal.UpdatedAt = now
	return r.meals.insert(ctx, meal)
}

func (r *mongoMealRepository) GetByID(ctx context.Context, ownerID, id primitive.ObjectID) (*domain.Meal, error) {
	return r.meals.get(ctx, ownerID, id)
}

// List returns one page of meals, newest first, plus the total match count.
func (r *mongoMealRepository) List(ctx context.Context, ownerID primitive.ObjectID, filter repository.MealFilter, page repository.Page) ([]domain.Meal, int64, error) {
	query := dateFilter(filter.Dates)
	if filter.Type != "" {
		query["type"] = filter.Type
	}
	meals, err := r.meals.find(ctx, ownerID, query, pageOptions(page))
	if err != nil {
		return nil, 0, err
	}
	total, err := r.meals.count(ctx, ownerID, query)
	if err != nil {
		return nil, 0, err
	}
	return meals, total, nil
}

func (r *mongoMealRepository) ListInRange(ctx context.Context, ownerID primitive.ObjectID, dates repository.DateRange) ([]domain.Meal, error) {
	return r.meals.find(ctx, ownerID, dateFilter(dates), options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
}

func (r *mongoMealRepository) Recent(ctx context.Context, ownerID primitive.ObjectID, n int) ([]domain.Meal, error) {
	return r.meals.find(ctx, ownerID, nil, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}).SetLimit(int64(n)))
}

// Update overwrites the mutable fields, including the recomputed totals.
func (r *mongoMealRepository) Update(ctx context.Context, meal *domain.Meal) error {
	if meal.ID == primitive.NilObjectID {
		return errors.New("meal ID is required for update")
	}
	return r.meals.set(ctx, meal.UserID, meal.ID, bson.M{
		"type":          meal.Type,
		"foods":         meal.Foods,
		"totalCalories": meal.TotalCalories,
		"totalProtein":  meal.TotalProtein,
		"totalCarbs":    meal.TotalCarbs,
		"totalFat":      meal.TotalFat,
		"notes":         meal.Notes,
		"date":          meal.Date,
	})
}

func (r *mongoMealRepository) Delete(ctx context.Context, ownerID, id primitive.ObjectID) error {
	return r.meals.delete(ctx, ownerID, id)
}

// DailyTotals sums every nutrient per UTC day, oldest first.
func (r *mongoMealRepository) DailyTotals(ctx context.Context, ownerID primitive.ObjectID, since time.Time) ([]domain.DailyNutrition, error) {
	pipeline := mongo.Pipeline{
		r.meals.matchSince(ownerID, since),
		{{Key: "$group", Value: bson.M{
			"_id":           dayKey("$date"),
			"dailyCalories": bson.M{"$sum": "$totalCalories"},
			"dailyProtein":  bson.M{"$sum": "$totalProtein"},
			"dailyCarbs":    bson.M{"$sum": "$totalCarbs"},
			"dailyFat":      bson.M{"$sum": "$totalFat"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
	return aggregate[domain.DailyNutrition](ctx, r.meals.collection, pipeline)
}

// DailyCaloriesEaten sums meal calories per UTC day, oldest first.
func (r *mongoMealRepository) DailyCaloriesEaten(ctx context.Context, ownerID primitive.ObjectID, since time.Time) ([]domain.DailyCalories, error) {
	pipeline := mongo.Pipeline{
		r.meals.matchSince(ownerID, since),
		{{Key: "$group", Value: bson.M{
			"_id":      dayKey("$date"),
			"calories": bson.M{"$sum": "$totalCalories"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
	return aggregate[domain.DailyCalories](ctx, r.meals.collection, pipeline)
}

func EnsureMealIndexes(ctx context.Context, collection *mongo.Collection) error {
	return createIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "user", Value: 1}, {Key: "type", Value: 1}},
			Options: options.Index(),
		},
	})
}
