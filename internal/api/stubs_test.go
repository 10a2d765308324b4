package api

import (
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/repository"
	"alcyxob/fittrack/internal/service"
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Stubs embed the service interfaces; calling a method that a test did not
// override panics on the nil embedded value.

type stubAuth struct {
	service.AuthService
	tokens   map[string]*domain.User
	accounts map[primitive.ObjectID]*service.Account
}

func (s *stubAuth) ResolveToken(_ context.Context, token string) (*domain.User, error) {
	if u, ok := s.tokens[token]; ok {
		return u, nil
	}
	return nil, service.ErrInvalidToken
}

func (s *stubAuth) GetAccount(_ context.Context, id primitive.ObjectID) (*service.Account, error) {
	if a, ok := s.accounts[id]; ok {
		return a, nil
	}
	return nil, service.ErrUserNotFound
}

func (s *stubAuth) Register(_ context.Context, in service.RegisterInput) (*service.Session, error) {
	if in.Role == "" {
		in.Role = domain.RoleUser
	}
	return &service.Session{
		Token: "new-token",
		User:  &domain.User{ID: primitive.NewObjectID(), Name: in.Name, Email: in.Email, Role: in.Role},
	}, nil
}

type stubWorkouts struct {
	service.WorkoutService
	err       error
	owner     primitive.ObjectID
	created   *domain.Workout
	dates     repository.DateRange
	page      repository.Page
	getCalled bool
}

func (s *stubWorkouts) Create(_ context.Context, ownerID primitive.ObjectID, w *domain.Workout) (*domain.Workout, error) {
	s.owner, s.created = ownerID, w
	w.ID = primitive.NewObjectID()
	w.UserID = ownerID
	return w, s.err
}

func (s *stubWorkouts) Get(_ context.Context, _, _ primitive.ObjectID) (*domain.Workout, error) {
	s.getCalled = true
	return nil, s.err
}

func (s *stubWorkouts) List(_ context.Context, ownerID primitive.ObjectID, dates repository.DateRange, page repository.Page) (*service.PageResult[domain.Workout], error) {
	s.owner, s.dates, s.page = ownerID, dates, page
	if s.err != nil {
		return nil, s.err
	}
	return &service.PageResult[domain.Workout]{Items: []domain.Workout{}, Total: 12, CurrentPage: page.Page, TotalPages: 3}, nil
}

type stubMeals struct {
	service.MealService
	today *service.DayMeals
}

func (s *stubMeals) Today(_ context.Context, _ primitive.ObjectID) (*service.DayMeals, error) {
	return s.today, nil
}

type stubClient struct {
	service.ClientService
	err     error
	pending *service.RequestDetails
	trainer primitive.ObjectID
	message string
}

func (s *stubClient) RequestTrainer(_ context.Context, _, trainerID primitive.ObjectID, message string) (*service.RequestDetails, error) {
	s.trainer, s.message = trainerID, message
	return s.pending, s.err
}

func (s *stubClient) MyRequest(_ context.Context, _ primitive.ObjectID) (*service.RequestDetails, error) {
	return s.pending, nil
}

type stubTrainer struct {
	service.TrainerService
	response string
	result   *service.RequestDetails
}

func (s *stubTrainer) ApproveRequest(_ context.Context, _, _ primitive.ObjectID, response string) (*service.RequestDetails, error) {
	s.response = response
	return s.result, nil
}

func (s *stubTrainer) ListClients(_ context.Context, _ primitive.ObjectID) ([]domain.User, error) {
	return []domain.User{}, nil
}
