package service

import (
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/repository"
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GoalPatch is a partial update of a goal. Nil fields are left unchanged.
type GoalPatch struct {
	Type         *domain.GoalType
	Title        *string
	Description  *string
	TargetValue  *float64
	CurrentValue *float64
	Unit         *string
	StartDate    *time.Time
	Deadline     *time.Time
	Status       *domain.GoalStatus
}

type GoalService interface {
	Create(ctx context.Context, ownerID primitive.ObjectID, goal *domain.Goal) (*domain.Goal, error)
	List(ctx context.Context, ownerID primitive.ObjectID, status domain.GoalStatus) ([]domain.Goal, error)
	Get(ctx context.Context, ownerID, id primitive.ObjectID) (*domain.Goal, error)
	Update(ctx context.Context, ownerID, id primitive.ObjectID, patch GoalPatch) (*domain.Goal, error)
	// UpdateProgress records a new current value and completes the goal once
	// it reaches the target.
	UpdateProgress(ctx context.Context, ownerID, id primitive.ObjectID, current float64) (*domain.Goal, error)
	Delete(ctx context.Context, ownerID, id primitive.ObjectID) error
}

type goalService struct {
	goalRepo repository.GoalRepository
}

func NewGoalService(goalRepo repository.GoalRepository) GoalService {
	return &goalService{goalRepo: goalRepo}
}

func (s *goalService) Create(ctx context.Context, ownerID primitive.ObjectID, goal *domain.Goal) (*domain.Goal, error) {
	goal.UserID = ownerID
	goal.Title = strings.TrimSpace(goal.Title)
	goal.Unit = strings.TrimSpace(goal.Unit)
	if goal.Status == "" {
		goal.Status = domain.GoalActive
	}
	if goal.StartDate.IsZero() {
		goal.StartDate = timeNow()
	}
	if err := validateGoal(goal); err != nil {
		return nil, err
	}

	id, err := s.goalRepo.Create(ctx, goal)
	if err != nil {
		return nil, err
	}
	goal.ID = id
	return goal, nil
}

// List returns goals by deadline; an empty status lists all of them.
func (s *goalService) List(ctx context.Context, ownerID primitive.ObjectID, status domain.GoalStatus) ([]domain.Goal, error) {
	if status != "" && !status.Valid() {
		return nil, Validation(FieldError{Field: "status", Message: "Status must be active, completed or abandoned"})
	}
	return s.goalRepo.List(ctx, ownerID, status)
}

func (s *goalService) Get(ctx context.Context, ownerID, id primitive.ObjectID) (*domain.Goal, error) {
	goal, err := s.goalRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}
	return goal, nil
}

// Update overwrites the supplied fields. Status is taken as given; only
// UpdateProgress completes a goal automatically.
func (s *goalService) Update(ctx context.Context, ownerID, id primitive.ObjectID, patch GoalPatch) (*domain.Goal, error) {
	goal, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if patch.Type != nil {
		goal.Type = *patch.Type
	}
	if patch.Title != nil {
		goal.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		goal.Description = *patch.Description
	}
	if patch.TargetValue != nil {
		goal.TargetValue = *patch.TargetValue
	}
	if patch.CurrentValue != nil {
		goal.CurrentValue = *patch.CurrentValue
	}
	if patch.Unit != nil {
		goal.Unit = strings.TrimSpace(*patch.Unit)
	}
	if patch.StartDate != nil {
		goal.StartDate = *patch.StartDate
	}
	if patch.Deadline != nil {
		goal.Deadline = *patch.Deadline
	}
	if patch.Status != nil {
		goal.Status = *patch.Status
	}
	return s.save(ctx, goal)
}

func (s *goalService) UpdateProgress(ctx context.Context, ownerID, id primitive.ObjectID, current float64) (*domain.Goal, error) {
	goal, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	goal.RecordProgress(current)
	return s.save(ctx, goal)
}

func (s *goalService) save(ctx context.Context, goal *domain.Goal) (*domain.Goal, error) {
	if err := validateGoal(goal); err != nil {
		return nil, err
	}
	if err := s.goalRepo.Update(ctx, goal); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}
	return goal, nil
}

func (s *goalService) Delete(ctx context.Context, ownerID, id primitive.ObjectID) error {
	err := s.goalRepo.Delete(ctx, ownerID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrGoalNotFound
	}
	return err
}

func validateGoal(g *domain.Goal) error {
	var errs fieldErrors
	errs.check(g.Type.Valid(), "type", "Unknown goal type")
	errs.check(g.Title != "", "title", "Title is required")
	errs.check(g.Unit != "", "unit", "Unit is required")
	errs.check(!g.Deadline.IsZero(), "deadline", "Deadline is required")
	errs.check(g.Status.Valid(), "status", "Status must be active, completed or abandoned")
	return errs.err()
}
