package api

import (
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/service"
	"time"
)

// UserSummary is the populated form of a user reference.
type UserSummary struct {
	ID      string          `json:"_id"`
	Name    string          `json:"name,omitempty"`
	Email   string          `json:"email,omitempty"`
	Profile *domain.Profile `json:"profile,omitempty"`
}

// UserResponse excludes sensitive info like password hash
type UserResponse struct {
	ID              string         `json:"_id"`
	Name            string         `json:"name"`
	Email           string         `json:"email"`
	Role            domain.Role    `json:"role"`
	Profile         domain.Profile `json:"profile"`
	AssignedTrainer *UserSummary   `json:"assignedTrainer"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// SessionResponse carries the user fields and the bearer token side by side.
type SessionResponse struct {
	UserResponse
	Token string `json:"token"`
}

func newSession(session *service.Session) SessionResponse {
	return SessionResponse{UserResponse: mapUser(session.User, nil), Token: session.Token}
}

func summarize(u *domain.User) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{ID: u.ID.Hex(), Name: u.Name, Email: u.Email}
}

// mapUser converts a domain User to a UserResponse. When trainer is nil but the
// user has one, only the trainer's ID is included.
func mapUser(u *domain.User, trainer *domain.User) UserResponse {
	resp := UserResponse{
		ID:        u.ID.Hex(),
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Profile:   u.Profile,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	switch {
	case trainer != nil:
		resp.AssignedTrainer = summarize(trainer)
	case u.HasTrainer():
		resp.AssignedTrainer = &UserSummary{ID: u.AssignedTrainer.Hex()}
	}
	return resp
}

func mapAccount(a *service.Account) UserResponse {
	return mapUser(a.User, a.Trainer)
}

func mapUsers(users []domain.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = mapUser(&users[i], nil)
	}
	return out
}

// TrainerResponse is a trainer as listed to users choosing one.
type TrainerResponse struct {
	ID      string         `json:"_id"`
	Name    string         `json:"name"`
	Email   string         `json:"email"`
	Profile domain.Profile `json:"profile"`
}

func mapTrainers(users []domain.User) []TrainerResponse {
	out := make([]TrainerResponse, len(users))
	for i, u := range users {
		out[i] = TrainerResponse{ID: u.ID.Hex(), Name: u.Name, Email: u.Email, Profile: u.Profile}
	}
	return out
}

// GoalResponse adds the derived progress percentage.
type GoalResponse struct {
	domain.Goal
	Progress float64 `json:"progress"`
}

func mapGoal(g *domain.Goal) GoalResponse {
	return GoalResponse{Goal: *g, Progress: domain.Round(g.Progress(), 1)}
}

func mapGoals(goals []domain.Goal) []GoalResponse {
	out := make([]GoalResponse, len(goals))
	for i := range goals {
		out[i] = mapGoal(&goals[i])
	}
	return out
}

// RequestResponse is a trainer request with both parties populated.
type RequestResponse struct {
	domain.TrainerRequest
	User    *UserSummary `json:"user"`
	Trainer *UserSummary `json:"trainer"`
}

func mapRequest(d *service.RequestDetails) RequestResponse {
	resp := RequestResponse{TrainerRequest: d.Request, User: summarize(d.User), Trainer: summarize(d.Trainer)}
	if d.User != nil {
		profile := d.User.Profile
		resp.User.Profile = &profile
	}
	return resp
}

func mapRequests(ds []service.RequestDetails) []RequestResponse {
	out := make([]RequestResponse, len(ds))
	for i := range ds {
		out[i] = mapRequest(&ds[i])
	}
	return out
}

// PlanResponse is a trainer plan with both parties populated.
type PlanResponse struct {
	domain.TrainerPlan
	Trainer *UserSummary `json:"trainer"`
	Client  *UserSummary `json:"client"`
}

func mapPlan(d *service.PlanDetails) PlanResponse {
	return PlanResponse{TrainerPlan: d.Plan, Trainer: summarize(d.Trainer), Client: summarize(d.Client)}
}

func mapPlans(ds []service.PlanDetails) []PlanResponse {
	out := make([]PlanResponse, len(ds))
	for i := range ds {
		out[i] = mapPlan(&ds[i])
	}
	return out
}

// Pagination is the page metadata of a listing.
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
}

func paginationOf[T any](r *service.PageResult[T]) Pagination {
	return Pagination{Total: r.Total, Page: r.CurrentPage, Pages: r.TotalPages}
}

type WorkoutListResponse struct {
	Workouts   []domain.Workout `json:"workouts"`
	Pagination Pagination       `json:"pagination"`
}

type MealListResponse struct {
	Meals      []domain.Meal `json:"meals"`
	Pagination Pagination    `json:"pagination"`
}

type TodayMealsResponse struct {
	Meals  []domain.Meal     `json:"meals"`
	Totals domain.MealTotals `json:"totals"`
}

type ClientDetailResponse struct {
	Client         UserResponse       `json:"client"`
	RecentWorkouts []domain.Workout   `json:"recentWorkouts"`
	RecentMeals    []domain.Meal      `json:"recentMeals"`
	WeightLogs     []domain.WeightLog `json:"weightLogs"`
	ActiveGoals    []GoalResponse     `json:"activeGoals"`
}
