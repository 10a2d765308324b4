package service

import (
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/repository"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

const (
	clientRecentWorkouts = 5
	clientRecentMeals    = 10
	clientRecentWeights  = 10

	supersededResponse = "Superseded by a newer request"
)

// ClientDetail is what a trainer sees when opening one client.
type ClientDetail struct {
	Client         *domain.User       `json:"client"`
	RecentWorkouts []domain.Workout   `json:"recentWorkouts"`
	RecentMeals    []domain.Meal      `json:"recentMeals"`
	WeightLogs     []domain.WeightLog `json:"weightLogs"`
	ActiveGoals    []domain.Goal      `json:"activeGoals"`
}

// PlanPatch is a partial update of a plan. Nil fields are left unchanged.
type PlanPatch struct {
	Name               *string
	Description        *string
	WorkoutPlan        *[]domain.WorkoutPlanDay
	MealPlan           *[]domain.MealPlanDay
	DailyCalorieTarget *float64
	DailyProteinTarget *float64
	StartDate          *time.Time
	EndDate            *time.Time
	Status             *domain.PlanStatus
	Notes              *string
}

type TrainerService interface {
	// Client Management
	ListClients(ctx context.Context, trainerID primitive.ObjectID) ([]domain.User, error)
	GetClientDetail(ctx context.Context, trainerID, clientID primitive.ObjectID) (*ClientDetail, error)
	AssignClient(ctx context.Context, trainerID, clientID primitive.ObjectID) (*domain.User, error)

	// Requests
	ListRequests(ctx context.Context, trainerID primitive.ObjectID) ([]RequestDetails, error)
	ApproveRequest(ctx context.Context, trainerID, requestID primitive.ObjectID, response string) (*RequestDetails, error)
	RejectRequest(ctx context.Context, trainerID, requestID primitive.ObjectID, response string) (*RequestDetails, error)

	// Plans
	ListPlans(ctx context.Context, trainerID primitive.ObjectID) ([]PlanDetails, error)
	GetPlan(ctx context.Context, trainerID, planID primitive.ObjectID) (*PlanDetails, error)
	CreatePlan(ctx context.Context, trainerID primitive.ObjectID, plan *domain.TrainerPlan) (*PlanDetails, error)
	UpdatePlan(ctx context.Context, trainerID, planID primitive.ObjectID, patch PlanPatch) (*PlanDetails, error)
	DeletePlan(ctx context.Context, trainerID, planID primitive.ObjectID) error
}

// trainerService implements the TrainerService interface.
type trainerService struct {
	userRepo    repository.UserRepository
	requestRepo repository.TrainerRequestRepository
	planRepo    repository.TrainerPlanRepository
	workoutRepo repository.WorkoutRepository
	mealRepo    repository.MealRepository
	weightRepo  repository.WeightRepository
	goalRepo    repository.GoalRepository
}

// NewTrainerService creates a new instance of trainerService.
func NewTrainerService(
	userRepo repository.UserRepository,
	requestRepo repository.TrainerRequestRepository,
	planRepo repository.TrainerPlanRepository,
	workoutRepo repository.WorkoutRepository,
	mealRepo repository.MealRepository,
	weightRepo repository.WeightRepository,
	goalRepo repository.GoalRepository,
) TrainerService {
	return &trainerService{
		userRepo:    userRepo,
		requestRepo: requestRepo,
		planRepo:    planRepo,
		workoutRepo: workoutRepo,
		mealRepo:    mealRepo,
		weightRepo:  weightRepo,
		goalRepo:    goalRepo,
	}
}

// === Client Management ===

// ListClients retrieves the users currently assigned to the trainer.
func (s *trainerService) ListClients(ctx context.Context, trainerID primitive.ObjectID) ([]domain.User, error) {
	clients, err := s.userRepo.GetClientsByTrainerID(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	for i := range clients {
		clients[i].PasswordHash = ""
	}
	return clients, nil
}

// GetClientDetail loads a client's recent activity. Users not assigned to the
// trainer are reported as not found.
func (s *trainerService) GetClientDetail(ctx context.Context, trainerID, clientID primitive.ObjectID) (*ClientDetail, error) {
	client, err := s.userRepo.GetClientOfTrainer(ctx, clientID, trainerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	client.PasswordHash = ""

	detail := &ClientDetail{Client: client}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		detail.RecentWorkouts, err = s.workoutRepo.Recent(gctx, clientID, clientRecentWorkouts)
		return err
	})
	g.Go(func() (err error) {
		detail.RecentMeals, err = s.mealRepo.Recent(gctx, clientID, clientRecentMeals)
		return err
	})
	g.Go(func() (err error) {
		detail.WeightLogs, err = s.weightRepo.List(gctx, clientID, clientRecentWeights)
		return err
	})
	g.Go(func() (err error) {
		detail.ActiveGoals, err = s.goalRepo.List(gctx, clientID, domain.GoalActive)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return detail, nil
}

// AssignClient claims a regular user directly. It never takes a user away
// from another trainer.
func (s *trainerService) AssignClient(ctx context.Context, trainerID, clientID primitive.ObjectID) (*domain.User, error) {
	client, err := s.userRepo.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if client.Role != domain.RoleUser {
		return nil, ErrClientNotAssignable
	}

	if err := s.userRepo.AssignTrainerIfUnassigned(ctx, clientID, trainerID); err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			return nil, ErrClientTaken
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	client.AssignedTrainer = &trainerID
	client.PasswordHash = ""
	return client, nil
}

// === Requests ===

// ListRequests returns the pending requests addressed to the trainer.
func (s *trainerService) ListRequests(ctx context.Context, trainerID primitive.ObjectID) ([]RequestDetails, error) {
	reqs, err := s.requestRepo.ListPendingForTrainer(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	return populateRequests(ctx, s.userRepo, reqs)
}

// ApproveRequest resolves the request and assigns the trainer. Both writes are
// conditional: if the user gained a trainer in between, the request goes back
// to pending and the call fails with a conflict.
func (s *trainerService) ApproveRequest(ctx context.Context, trainerID, requestID primitive.ObjectID, response string) (*RequestDetails, error) {
	response = strings.TrimSpace(response)
	if err := checkMessage("responseMessage", response); err != nil {
		return nil, err
	}

	req, err := s.requestRepo.Resolve(ctx, requestID, trainerID, domain.RequestApproved, response, timeNow())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	if err := s.userRepo.AssignTrainerIfUnassigned(ctx, req.UserID, trainerID); err != nil {
		s.undoApproval(ctx, req.ID)
		switch {
		case errors.Is(err, repository.ErrConflict):
			return nil, ErrClientTaken
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("assign trainer: %w", err)
	}

	return populateRequest(ctx, s.userRepo, req)
}

// undoApproval reverts a request whose assignment failed. It goes back to
// pending unless the user has opened a newer pending request since, in which
// case it is withdrawn as rejected.
func (s *trainerService) undoApproval(ctx context.Context, requestID primitive.ObjectID) {
	err := s.requestRepo.Reopen(ctx, requestID)
	if errors.Is(err, repository.ErrDuplicate) {
		err = s.requestRepo.Withdraw(ctx, requestID, supersededResponse, timeNow())
	}
	if err != nil {
		log.Printf("ERROR: Failed to roll back trainer request %s after assignment failure: %v", requestID.Hex(), err)
	}
}

// RejectRequest resolves the request without touching the assignment.
func (s *trainerService) RejectRequest(ctx context.Context, trainerID, requestID primitive.ObjectID, response string) (*RequestDetails, error) {
	response = strings.TrimSpace(response)
	if err := checkMessage("responseMessage", response); err != nil {
		return nil, err
	}

	req, err := s.requestRepo.Resolve(ctx, requestID, trainerID, domain.RequestRejected, response, timeNow())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return populateRequest(ctx, s.userRepo, req)
}

// === Plans ===

func (s *trainerService) ListPlans(ctx context.Context, trainerID primitive.ObjectID) ([]PlanDetails, error) {
	plans, err := s.planRepo.ListByTrainer(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	return populatePlans(ctx, s.userRepo, plans)
}

func (s *trainerService) GetPlan(ctx context.Context, trainerID, planID primitive.ObjectID) (*PlanDetails, error) {
	plan, err := s.planRepo.GetForTrainer(ctx, planID, trainerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return populatePlan(ctx, s.userRepo, plan)
}

// CreatePlan stores a plan for a client currently assigned to the trainer.
func (s *trainerService) CreatePlan(ctx context.Context, trainerID primitive.ObjectID, plan *domain.TrainerPlan) (*PlanDetails, error) {
	plan.Name = strings.TrimSpace(plan.Name)
	if plan.Status == "" {
		plan.Status = domain.PlanActive
	}
	if plan.StartDate.IsZero() {
		plan.StartDate = timeNow()
	}
	if err := validatePlan(plan); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetClientOfTrainer(ctx, plan.ClientID, trainerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanClient
		}
		return nil, err
	}

	plan.TrainerID = trainerID
	if plan.WorkoutPlan == nil {
		plan.WorkoutPlan = []domain.WorkoutPlanDay{}
	}
	if plan.MealPlan == nil {
		plan.MealPlan = []domain.MealPlanDay{}
	}
	id, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		return nil, err
	}
	plan.ID = id
	return populatePlan(ctx, s.userRepo, plan)
}

// UpdatePlan applies patch to a plan the trainer authored.
func (s *trainerService) UpdatePlan(ctx context.Context, trainerID, planID primitive.ObjectID, patch PlanPatch) (*PlanDetails, error) {
	plan, err := s.planRepo.GetForTrainer(ctx, planID, trainerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	applyPlanPatch(plan, patch)
	if err := validatePlan(plan); err != nil {
		return nil, err
	}

	if err := s.planRepo.Update(ctx, plan); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return populatePlan(ctx, s.userRepo, plan)
}

func (s *trainerService) DeletePlan(ctx context.Context, trainerID, planID primitive.ObjectID) error {
	err := s.planRepo.Delete(ctx, planID, trainerID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrPlanNotFound
	}
	return err
}

func applyPlanPatch(plan *domain.TrainerPlan, p PlanPatch) {
	if p.Name != nil {
		plan.Name = strings.TrimSpace(*p.Name)
	}
	if p.Description != nil {
		plan.Description = *p.Description
	}
	if p.WorkoutPlan != nil {
		plan.WorkoutPlan = *p.WorkoutPlan
	}
	if p.MealPlan != nil {
		plan.MealPlan = *p.MealPlan
	}
	if p.DailyCalorieTarget != nil {
		plan.DailyCalorieTarget = p.DailyCalorieTarget
	}
	if p.DailyProteinTarget != nil {
		plan.DailyProteinTarget = p.DailyProteinTarget
	}
	if p.StartDate != nil {
		plan.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		plan.EndDate = p.EndDate
	}
	if p.Status != nil {
		plan.Status = *p.Status
	}
	if p.Notes != nil {
		plan.Notes = *p.Notes
	}
}

// validatePlan checks names and enums only. Weekday entries may repeat or be
// missing; they are stored as given.
func validatePlan(plan *domain.TrainerPlan) error {
	var errs fieldErrors
	errs.check(plan.Name != "", "name", "Plan name is required")
	errs.check(plan.ClientID != primitive.NilObjectID, "clientId", "Client is required")
	errs.check(plan.Status.Valid(), "status", "Status must be active, completed or paused")
	errs.check(nonNegative(plan.DailyCalorieTarget), "dailyCalorieTarget", "Target cannot be negative")
	errs.check(nonNegative(plan.DailyProteinTarget), "dailyProteinTarget", "Target cannot be negative")
	for i, d := range plan.WorkoutPlan {
		errs.check(d.Day.Valid(), fmt.Sprintf("workoutPlan[%d].day", i), "Day must be a weekday name")
		for j, ex := range d.Exercises {
			errs.check(strings.TrimSpace(ex.Name) != "", fmt.Sprintf("workoutPlan[%d].exercises[%d].name", i, j), "Exercise name is required")
		}
	}
	for i, d := range plan.MealPlan {
		errs.check(d.Day.Valid(), fmt.Sprintf("mealPlan[%d].day", i), "Day must be a weekday name")
		for j, m := range d.Meals {
			errs.check(m.Type.Valid(), fmt.Sprintf("mealPlan[%d].meals[%d].type", i, j), "Meal type must be breakfast, lunch, dinner or snack")
		}
	}
	return errs.err()
}
