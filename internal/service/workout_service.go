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

const defaultStatsPeriodDays = 7

// WorkoutPatch is a partial update of a workout. Nil fields are left unchanged.
type WorkoutPatch struct {
	Name          *string
	Exercises     *[]domain.Exercise
	TotalDuration *float64
	Notes         *string
	Date          *time.Time
}

type WorkoutService interface {
	Create(ctx context.Context, ownerID primitive.ObjectID, workout *domain.Workout) (*domain.Workout, error)
	List(ctx context.Context, ownerID primitive.ObjectID, dates repository.DateRange, page repository.Page) (*PageResult[domain.Workout], error)
	Get(ctx context.Context, ownerID, id primitive.ObjectID) (*domain.Workout, error)
	Update(ctx context.Context, ownerID, id primitive.ObjectID, patch WorkoutPatch) (*domain.Workout, error)
	Delete(ctx context.Context, ownerID, id primitive.ObjectID) error
	Stats(ctx context.Context, ownerID primitive.ObjectID, periodDays int) (domain.WorkoutStats, error)
}

type workoutService struct {
	workoutRepo repository.WorkoutRepository
}

func NewWorkoutService(workoutRepo repository.WorkoutRepository) WorkoutService {
	return &workoutService{workoutRepo: workoutRepo}
}

// Create stores a workout for ownerID with derived totals applied.
func (s *workoutService) Create(ctx context.Context, ownerID primitive.ObjectID, workout *domain.Workout) (*domain.Workout, error) {
	workout.UserID = ownerID
	workout.Name = strings.TrimSpace(workout.Name)
	if workout.Date.IsZero() {
		workout.Date = timeNow()
	}
	normalizeExercises(workout.Exercises)
	if err := validateWorkout(workout); err != nil {
		return nil, err
	}
	if workout.Exercises == nil {
		workout.Exercises = []domain.Exercise{}
	}
	workout.ApplyTotals()

	id, err := s.workoutRepo.Create(ctx, workout)
	if err != nil {
		return nil, err
	}
	workout.ID = id
	return workout, nil
}

func (s *workoutService) List(ctx context.Context, ownerID primitive.ObjectID, dates repository.DateRange, page repository.Page) (*PageResult[domain.Workout], error) {
	page = normalizePage(page, DefaultWorkoutPageSize)
	workouts, total, err := s.workoutRepo.List(ctx, ownerID, dates, page)
	if err != nil {
		return nil, err
	}
	return newPageResult(workouts, total, page), nil
}

func (s *workoutService) Get(ctx context.Context, ownerID, id primitive.ObjectID) (*domain.Workout, error) {
	workout, err := s.workoutRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return workout, nil
}

// Update applies patch and recomputes the derived totals.
func (s *workoutService) Update(ctx context.Context, ownerID, id primitive.ObjectID, patch WorkoutPatch) (*domain.Workout, error) {
	workout, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		workout.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Exercises != nil {
		workout.Exercises = *patch.Exercises
		normalizeExercises(workout.Exercises)
	}
	if patch.TotalDuration != nil {
		workout.TotalDuration = *patch.TotalDuration
	}
	if patch.Notes != nil {
		workout.Notes = *patch.Notes
	}
	if patch.Date != nil {
		workout.Date = *patch.Date
	}
	if err := validateWorkout(workout); err != nil {
		return nil, err
	}
	if workout.Exercises == nil {
		workout.Exercises = []domain.Exercise{}
	}
	workout.ApplyTotals()

	if err := s.workoutRepo.Update(ctx, workout); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return workout, nil
}

func (s *workoutService) Delete(ctx context.Context, ownerID, id primitive.ObjectID) error {
	err := s.workoutRepo.Delete(ctx, ownerID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrWorkoutNotFound
	}
	return err
}

// Stats rolls up the trailing periodDays (default 7).
func (s *workoutService) Stats(ctx context.Context, ownerID primitive.ObjectID, periodDays int) (domain.WorkoutStats, error) {
	return s.workoutRepo.Stats(ctx, ownerID, trailingWindow(periodDays, defaultStatsPeriodDays))
}

func normalizeExercises(exercises []domain.Exercise) {
	for i := range exercises {
		exercises[i].Name = strings.TrimSpace(exercises[i].Name)
		if exercises[i].Category == "" {
			exercises[i].Category = domain.CategoryOther
		}
	}
}

func validateWorkout(w *domain.Workout) error {
	var errs fieldErrors
	errs.check(w.Name != "", "name", "Workout name is required")
	errs.check(w.TotalDuration >= 0, "totalDuration", "Duration cannot be negative")
	for i, ex := range w.Exercises {
		field := fmt.Sprintf("exercises[%d]", i)
		errs.check(ex.Name != "", field+".name", "Exercise name is required")
		errs.check(ex.Category.Valid(), field+".category", "Unknown exercise category")
		errs.check(ex.CaloriesBurned >= 0, field+".caloriesBurned", "Calories cannot be negative")
		errs.check(nonNegative(ex.Duration), field+".duration", "Duration cannot be negative")
		errs.check(nonNegative(ex.Distance), field+".distance", "Distance cannot be negative")
		errs.check(nonNegative(ex.Weight), field+".weight", "Weight cannot be negative")
	}
	return errs.err()
}
