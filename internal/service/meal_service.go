package service

import (
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/repository"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MealPatch is a partial update of a meal. Nil fields are left unchanged.
type MealPatch struct {
	Type  *domain.MealType
	Foods *[]domain.FoodItem
	Notes *string
	Date  *time.Time
}

// DayMeals is every meal of one calendar day plus their summed totals.
type DayMeals struct {
	Meals  []domain.Meal
	Totals domain.MealTotals
}

type MealService interface {
	Create(ctx context.Context, ownerID primitive.ObjectID, meal *domain.Meal) (*domain.Meal, error)
	List(ctx context.Context, ownerID primitive.ObjectID, filter repository.MealFilter, page repository.Page) (*PageResult[domain.Meal], error)
	Get(ctx context.Context, ownerID, id primitive.ObjectID) (*domain.Meal, error)
	Update(ctx context.Context, ownerID, id primitive.ObjectID, patch MealPatch) (*domain.Meal, error)
	Delete(ctx context.Context, ownerID, id primitive.ObjectID) error
	Today(ctx context.Context, ownerID primitive.ObjectID) (*DayMeals, error)
	Stats(ctx context.Context, ownerID primitive.ObjectID, periodDays int) ([]domain.DailyNutrition, error)
}

type mealService struct {
	mealRepo repository.MealRepository
}

func NewMealService(mealRepo repository.MealRepository) MealService {
	return &mealService{mealRepo: mealRepo}
}

// Create stores a meal for ownerID. Totals are always computed from the foods.
func (s *mealService) Create(ctx context.Context, ownerID primitive.ObjectID, meal *domain.Meal) (*domain.Meal, error) {
	meal.UserID = ownerID
	if meal.Date.IsZero() {
		meal.Date = timeNow()
	}
	if meal.Foods == nil {
		meal.Foods = []domain.FoodItem{}
	}
	normalizeFoods(meal.Foods)
	if err := validateMeal(meal); err != nil {
		return nil, err
	}
	meal.ApplyTotals()

	id, err := s.mealRepo.Create(ctx, meal)
	if err != nil {
		return nil, err
	}
	meal.ID = id
	return meal, nil
}

func (s *mealService) List(ctx context.Context, ownerID primitive.ObjectID, filter repository.MealFilter, page repository.Page) (*PageResult[domain.Meal], error) {
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, Validation(FieldError{Field: "type", Message: "Unknown meal type"})
	}
	page = normalizePage(page, DefaultMealPageSize)
	meals, total, err := s.mealRepo.List(ctx, ownerID, filter, page)
	if err != nil {
		return nil, err
	}
	return newPageResult(meals, total, page), nil
}

func (s *mealService) Get(ctx context.Context, ownerID, id primitive.ObjectID) (*domain.Meal, error) {
	meal, err := s.mealRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMealNotFound
		}
		return nil, err
	}
	return meal, nil
}

// Update applies patch and recomputes the totals from the resulting foods.
func (s *mealService) Update(ctx context.Context, ownerID, id primitive.ObjectID, patch MealPatch) (*domain.Meal, error) {
	meal, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if patch.Type != nil {
		meal.Type = *patch.Type
	}
	if patch.Foods != nil {
		meal.Foods = *patch.Foods
		if meal.Foods == nil {
			meal.Foods = []domain.FoodItem{}
		}
		normalizeFoods(meal.Foods)
	}
	if patch.Notes != nil {
		meal.Notes = *patch.Notes
	}
	if patch.Date != nil {
		meal.Date = *patch.Date
	}
	if err := validateMeal(meal); err != nil {
		return nil, err
	}
	meal.ApplyTotals()

	if err := s.mealRepo.Update(ctx, meal); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMealNotFound
		}
		return nil, err
	}
	return meal, nil
}

func (s *mealService) Delete(ctx context.Context, ownerID, id primitive.ObjectID) error {
	err := s.mealRepo.Delete(ctx, ownerID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrMealNotFound
	}
	return err
}

// Today returns the meals of the current UTC day, oldest first.
func (s *mealService) Today(ctx context.Context, ownerID primitive.ObjectID) (*DayMeals, error) {
	now := timeNow()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24*time.Hour - time.Nanosecond)

	meals, err := s.mealRepo.ListInRange(ctx, ownerID, repository.DateRange{From: &start, To: &end})
	if err != nil {
		return nil, err
	}
	day := &DayMeals{Meals: meals}
	for i := range meals {
		day.Totals = day.Totals.Add(meals[i].Totals())
	}
	return day, nil
}

// Stats returns per-day nutrient sums over the trailing periodDays (default 7).
func (s *mealService) Stats(ctx context.Context, ownerID primitive.ObjectID, periodDays int) ([]domain.DailyNutrition, error) {
	return s.mealRepo.DailyTotals(ctx, ownerID, trailingWindow(periodDays, defaultStatsPeriodDays))
}

// normalizeFoods applies item defaults: quantity 1, vegetarian.
func normalizeFoods(foods []domain.FoodItem) {
	for i := range foods {
		foods[i].Name = strings.TrimSpace(foods[i].Name)
		if foods[i].Quantity == 0 {
			foods[i].Quantity = 1
		}
		if foods[i].FoodType == "" {
			foods[i].FoodType = domain.FoodVegetarian
		}
	}
}

func validateMeal(m *domain.Meal) error {
	var errs fieldErrors
	errs.check(m.Type.Valid(), "type", "Meal type must be breakfast, lunch, dinner, snack or evening-snack")
	for i, f := range m.Foods {
		field := fmt.Sprintf("foods[%d]", i)
		errs.check(f.Name != "", field+".name", "Food name is required")
		errs.check(f.FoodType.Valid(), field+".foodType", "Unknown food type")
		errs.check(f.Quantity > 0, field+".quantity", "Quantity must be positive")
		errs.check(f.Calories >= 0 && f.Protein >= 0 && f.Carbs >= 0 && f.Fat >= 0, field, "Nutrient values cannot be negative")
		errs.check(nonNegative(f.Fiber), field+".fiber", "Fiber cannot be negative")
	}
	return errs.err()
}
