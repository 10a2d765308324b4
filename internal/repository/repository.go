package repository

import (
	"alcyxob/fittrack/internal/domain" // Import our defined domain models
	"context"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive" // For using ObjectIDs
)

// Error constants for repository layer
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate key")
	ErrConflict  = RepositoryError("conditional update did not match")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// DateRange bounds a query on the "date" field. Nil ends are open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// Page selects one page of a date-descending listing. Page is 1-based.
type Page struct {
	Limit int
	Page  int
}

// Skip is the number of documents before the requested page. It saturates at
// math.MaxInt64, so a page far past the end is simply empty.
func (p Page) Skip() int64 {
	if p.Page < 1 || p.Limit < 1 {
		return 0
	}
	before, limit := int64(p.Page-1), int64(p.Limit)
	if before > math.MaxInt64/limit {
		return math.MaxInt64
	}
	return before * limit
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.User, error)
	ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, name string, profile domain.Profile) error
	SetAvatar(ctx context.Context, id primitive.ObjectID, objectKey string) error

	// Trainer assignment
	GetClientsByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.User, error)
	GetClientOfTrainer(ctx context.Context, clientID, trainerID primitive.ObjectID) (*domain.User, error)
	// AssignTrainerIfUnassigned sets assignedTrainer only when the user has none
	// (or already has this trainer). Returns ErrConflict otherwise.
	AssignTrainerIfUnassigned(ctx context.Context, userID, trainerID primitive.ObjectID) error
	ClearTrainer(ctx context.Context, userID primitive.ObjectID) error
}

// WorkoutRepository defines the interface for interacting with workout data.
// Every method is scoped to the owning user.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error)
	GetByID(ctx context.Context, ownerID, id primitive.ObjectID) (*domain.Workout, error)
	List(ctx context.Context, ownerID primitive.ObjectID, dates DateRange, page Page) ([]domain.Workout, int64, error)
	ListInRange(ctx context.Context, ownerID primitive.ObjectID, dates DateRange) ([]domain.Workout, error)
	Recent(ctx context.Context, ownerID primitive.ObjectID, n int) ([]domain.Workout, error)
	Update(ctx context.Context, workout *domain.Workout) error
	Delete(ctx context.Context, ownerID, id primitive.ObjectID) error

	Stats(ctx context.Context, ownerID primitive.ObjectID, since time.Time) (domain.WorkoutStats, error)
	WeeklyBreakdown(ctx context.Context, ownerID primitive.ObjectID, since time.Time) ([]domain.WeeklyWorkouts, error)
	DailyCaloriesBurned(ctx context.Context, ownerID primitive.ObjectID, since time.Time) ([]domain.DailyCalories, error)
}

// MealFilter narrows a meal listing.
type MealFilter struct {
	Dates DateRange
	Type  domain.MealType
}

// MealRepository defines the interface for interacting with meal data.
type MealRepository interface {
	Create(ctx context.Context, meal *domain.Meal) (primitive.ObjectID, error)
	GetByID(ctx context.Context, ownerID, id primitive.ObjectID) (*domain.Meal, error)
	List(ctx context.Context, ownerID primitive.ObjectID, filter MealFilter, page Page) ([]domain.Meal, int64, error)
	// ListInRange returns meals oldest first.
	ListInRange(ctx context.Context, ownerID primitive.ObjectID, dates DateRange) ([]domain.Meal, error)
	Recent(ctx context.Context, ownerID primitive.ObjectID, n int) ([]domain.Meal, error)
	Update(ctx context.Context, meal *domain.Meal) error
	Delete(ctx context.Context, ownerID, id primitive.ObjectID) error

	DailyTotals(ctx context.Context, ownerID primitive.ObjectID, since time.Time) ([]domain.DailyNutrition, error)
	DailyCaloriesEaten(ctx context.Context, ownerID primitive.ObjectID, since time.Time) ([]domain.DailyCalories, error)
}

// WeightRepository defines the interface for interacting with weight logs.
type WeightRepository interface {
	Create(ctx context.Context, log *domain.WeightLog) (primitive.ObjectID, error)
	GetByID(ctx context.Context, ownerID, id primitive.ObjectID) (*domain.WeightLog, error)
	// List returns the newest entries first.
	List(ctx context.Context, ownerID primitive.ObjectID, limit int) ([]domain.WeightLog, error)
	Latest(ctx context.Context, ownerID primitive.ObjectID) (*domain.WeightLog, error)
	// History returns entries in the range oldest first.
	History(ctx context.Context, ownerID primitive.ObjectID, dates DateRange) ([]domain.WeightLog, error)
	Update(ctx context.Context, log *domain.WeightLog) error
	Delete(ctx context.Context, ownerID, id primitive.ObjectID) error
}

// GoalRepository defines the interface for interacting with goal data.
type GoalRepository interface {
	Create(ctx context.Context, goal *domain.Goal) (primitive.ObjectID, error)
	GetByID(ctx context.Context, ownerID, id primitive.ObjectID) (*domain.Goal, error)
	// List returns goals by deadline ascending; an empty status matches all.
	List(ctx context.Context, ownerID primitive.ObjectID, status domain.GoalStatus) ([]domain.Goal, error)
	Update(ctx context.Context, goal *domain.Goal) error
	Delete(ctx context.Context, ownerID, id primitive.ObjectID) error
}

// TrainerRequestRepository defines the interface for trainer requests.
type TrainerRequestRepository interface {
	Create(ctx context.Context, req *domain.TrainerRequest) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainerRequest, error)
	FindPendingByUser(ctx context.Context, userID primitive.ObjectID) (*domain.TrainerRequest, error)
	ListPendingForTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]domain.TrainerRequest, error)
	// Resolve moves a pending request addressed to trainerID into a terminal
	// status. Returns ErrNotFound when no such pending request exists.
	Resolve(ctx context.Context, id, trainerID primitive.ObjectID, status domain.RequestStatus, response string, at time.Time) (*domain.TrainerRequest, error)
	// Reopen puts an approved request back to pending. Returns ErrDuplicate when
	// the user has opened another pending request in the meantime.
	Reopen(ctx context.Context, id primitive.ObjectID) error
	// Withdraw moves an approved request to rejected.
	Withdraw(ctx context.Context, id primitive.ObjectID, response string, at time.Time) error
	DeletePending(ctx context.Context, id, userID primitive.ObjectID) error
}

// TrainerPlanRepository defines the interface for interacting with trainer plans.
type TrainerPlanRepository interface {
	Create(ctx context.Context, plan *domain.TrainerPlan) (primitive.ObjectID, error)
	GetForTrainer(ctx context.Context, id, trainerID primitive.ObjectID) (*domain.TrainerPlan, error)
	GetForClient(ctx context.Context, id, clientID primitive.ObjectID) (*domain.TrainerPlan, error)
	ListByTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]domain.TrainerPlan, error)
	ListByClient(ctx context.Context, clientID primitive.ObjectID) ([]domain.TrainerPlan, error)
	Update(ctx context.Context, plan *domain.TrainerPlan) error
	Delete(ctx context.Context, id, trainerID primitive.ObjectID) error
}
