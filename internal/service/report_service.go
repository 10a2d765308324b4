package service

import (
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/repository"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

const (
	defaultSummaryDays = 30
	defaultReportWeeks = 4
	defaultCalorieDays = 14
)

// CalorieBalance is the daily intake and burn series. Days without records are
// absent from each series.
type CalorieBalance struct {
	CaloriesIn  []domain.DailyCalories `json:"caloriesIn"`
	CaloriesOut []domain.DailyCalories `json:"caloriesOut"`
}

type ReportService interface {
	// Summary covers [start, end]; nil bounds default to the last 30 days.
	Summary(ctx context.Context, ownerID primitive.ObjectID, start, end *time.Time) (*domain.ProgressReport, error)
	Weekly(ctx context.Context, ownerID primitive.ObjectID, weeks int) ([]domain.WeeklyWorkouts, error)
	DailyCalories(ctx context.Context, ownerID primitive.ObjectID, days int) (*CalorieBalance, error)
}

type reportService struct {
	workoutRepo repository.WorkoutRepository
	mealRepo    repository.MealRepository
	weightRepo  repository.WeightRepository
	goalRepo    repository.GoalRepository
}

func NewReportService(
	workoutRepo repository.WorkoutRepository,
	mealRepo repository.MealRepository,
	weightRepo repository.WeightRepository,
	goalRepo repository.GoalRepository,
) ReportService {
	return &reportService{
		workoutRepo: workoutRepo,
		mealRepo:    mealRepo,
		weightRepo:  weightRepo,
		goalRepo:    goalRepo,
	}
}

func (s *reportService) Summary(ctx context.Context, ownerID primitive.ObjectID, start, end *time.Time) (*domain.ProgressReport, error) {
	now := timeNow()
	to := now
	if end != nil {
		to = *end
	}
	from := now.AddDate(0, 0, -defaultSummaryDays)
	if start != nil {
		from = *start
	}
	if from.After(to) {
		return nil, Validation(FieldError{Field: "startDate", Message: "Start date must not be after end date"})
	}
	dates := repository.DateRange{From: &from, To: &to}

	var (
		workouts []domain.Workout
		meals    []domain.Meal
		weights  []domain.WeightLog
		goals    []domain.Goal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		workouts, err = s.workoutRepo.ListInRange(gctx, ownerID, dates)
		return err
	})
	g.Go(func() (err error) {
		meals, err = s.mealRepo.ListInRange(gctx, ownerID, dates)
		return err
	})
	g.Go(func() (err error) {
		weights, err = s.weightRepo.History(gctx, ownerID, dates)
		return err
	})
	g.Go(func() (err error) {
		// Goals are not windowed: the summary reports every goal.
		goals, err = s.goalRepo.List(gctx, ownerID, "")
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := domain.BuildProgressReport(from, to, workouts, meals, weights, goals, now)
	return &report, nil
}

// Weekly buckets the trailing weeks (default 4) of workouts by ISO week.
func (s *reportService) Weekly(ctx context.Context, ownerID primitive.ObjectID, weeks int) ([]domain.WeeklyWorkouts, error) {
	if weeks <= 0 {
		weeks = defaultReportWeeks
	}
	return s.workoutRepo.WeeklyBreakdown(ctx, ownerID, trailingWindow(weeks*7, defaultReportWeeks*7))
}

// DailyCalories loads intake and burn for the trailing days (default 14) concurrently.
func (s *reportService) DailyCalories(ctx context.Context, ownerID primitive.ObjectID, days int) (*CalorieBalance, error) {
	since := trailingWindow(days, defaultCalorieDays)
	out := &CalorieBalance{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.CaloriesIn, err = s.mealRepo.DailyCaloriesEaten(gctx, ownerID, since)
		return err
	})
	g.Go(func() (err error) {
		out.CaloriesOut, err = s.workoutRepo.DailyCaloriesBurned(gctx, ownerID, since)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
