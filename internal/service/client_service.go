package service

import (
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/repository"
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClientService is the regular user's side of the trainer relationship.
type ClientService interface {
	RequestTrainer(ctx context.Context, userID, trainerID primitive.ObjectID, message string) (*RequestDetails, error)
	// MyRequest returns the caller's pending request, or nil when there is none.
	MyRequest(ctx context.Context, userID primitive.ObjectID) (*RequestDetails, error)
	CancelRequest(ctx context.Context, userID, requestID primitive.ObjectID) error
	RemoveTrainer(ctx context.Context, userID primitive.ObjectID) (*Account, error)

	MyPlans(ctx context.Context, userID primitive.ObjectID) ([]PlanDetails, error)
	MyPlan(ctx context.Context, userID, planID primitive.ObjectID) (*PlanDetails, error)
}

// clientService implements the ClientService interface.
type clientService struct {
	userRepo    repository.UserRepository
	requestRepo repository.TrainerRequestRepository
	planRepo    repository.TrainerPlanRepository
}

// NewClientService creates a new instance of clientService.
func NewClientService(
	userRepo repository.UserRepository,
	requestRepo repository.TrainerRequestRepository,
	planRepo repository.TrainerPlanRepository,
) ClientService {
	return &clientService{
		userRepo:    userRepo,
		requestRepo: requestRepo,
		planRepo:    planRepo,
	}
}

func checkMessage(field, msg string) error {
	if utf8.RuneCountInString(msg) > domain.MaxRequestMessageLen {
		return Validation(FieldError{Field: field, Message: fmt.Sprintf("Message cannot exceed %d characters", domain.MaxRequestMessageLen)})
	}
	return nil
}

// RequestTrainer creates a pending request. A user holds at most one pending
// request and may not ask while a trainer is assigned.
func (s *clientService) RequestTrainer(ctx context.Context, userID, trainerID primitive.ObjectID, message string) (*RequestDetails, error) {
	message = strings.TrimSpace(message)
	if err := checkMessage("message", message); err != nil {
		return nil, err
	}

	trainer, err := s.userRepo.GetByID(ctx, trainerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}
	if !trainer.IsTrainer() {
		return nil, ErrTrainerNotFound
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.HasTrainer() {
		return nil, ErrAlreadyHasTrainer
	}

	if _, err := s.requestRepo.FindPendingByUser(ctx, userID); err == nil {
		return nil, ErrPendingRequestExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	req := &domain.TrainerRequest{
		UserID:    userID,
		TrainerID: trainerID,
		Message:   message,
	}
	id, err := s.requestRepo.Create(ctx, req)
	if err != nil {
		// The partial unique index caught a concurrent request.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrPendingRequestExists
		}
		return nil, err
	}
	req.ID = id

	return populateRequest(ctx, s.userRepo, req)
}

func (s *clientService) MyRequest(ctx context.Context, userID primitive.ObjectID) (*RequestDetails, error) {
	req, err := s.requestRepo.FindPendingByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return populateRequest(ctx, s.userRepo, req)
}

// CancelRequest deletes the caller's own request while it is still pending.
func (s *clientService) CancelRequest(ctx context.Context, userID, requestID primitive.ObjectID) error {
	err := s.requestRepo.DeletePending(ctx, requestID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrRequestNotFound
	}
	return err
}

// RemoveTrainer clears the assignment. Existing plans stay readable.
func (s *clientService) RemoveTrainer(ctx context.Context, userID primitive.ObjectID) (*Account, error) {
	if err := s.userRepo.ClearTrainer(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return &Account{User: user}, nil
}

// MyPlans lists every plan addressed to the caller, newest first.
func (s *clientService) MyPlans(ctx context.Context, userID primitive.ObjectID) ([]PlanDetails, error) {
	plans, err := s.planRepo.ListByClient(ctx, userID)
	if err != nil {
		return nil, err
	}
	return populatePlans(ctx, s.userRepo, plans)
}

func (s *clientService) MyPlan(ctx context.Context, userID, planID primitive.ObjectID) (*PlanDetails, error) {
	plan, err := s.planRepo.GetForClient(ctx, planID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return populatePlan(ctx, s.userRepo, plan)
}
