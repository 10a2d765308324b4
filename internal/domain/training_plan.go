// internal/domain/training_plan.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

func (d Weekday) Valid() bool {
	switch d {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return true
	}
	return false
}

type PlanStatus string

const (
	PlanActive    PlanStatus = "active"
	PlanCompleted PlanStatus = "completed"
	PlanPaused    PlanStatus = "paused"
)

func (s PlanStatus) Valid() bool {
	switch s {
	case PlanActive, PlanCompleted, PlanPaused:
		return true
	}
	return false
}

// PlanMealType is narrower than MealType: plans have no evening snack slot.
type PlanMealType string

const (
	PlanBreakfast PlanMealType = "breakfast"
	PlanLunch     PlanMealType = "lunch"
	PlanDinner    PlanMealType = "dinner"
	PlanSnack     PlanMealType = "snack"
)

func (t PlanMealType) Valid() bool {
	switch t {
	case PlanBreakfast, PlanLunch, PlanDinner, PlanSnack:
		return true
	}
	return false
}

type PlannedExercise struct {
	Name     string   `bson:"name" json:"name"`
	Sets     *int     `bson:"sets,omitempty" json:"sets,omitempty"`
	Reps     *int     `bson:"reps,omitempty" json:"reps,omitempty"`
	Weight   *float64 `bson:"weight,omitempty" json:"weight,omitempty"`
	Duration *float64 `bson:"duration,omitempty" json:"duration,omitempty"`
	Notes    string   `bson:"notes,omitempty" json:"notes,omitempty"`
}

// WorkoutPlanDay is either a rest day or a list of exercises. Days are not
// required to be unique or complete within a plan.
type WorkoutPlanDay struct {
	Day       Weekday           `bson:"day" json:"day"`
	Exercises []PlannedExercise `bson:"exercises" json:"exercises"`
	IsRestDay bool              `bson:"isRestDay" json:"isRestDay"`
}

type PlannedMeal struct {
	Type           PlanMealType `bson:"type" json:"type"`
	Description    string       `bson:"description,omitempty" json:"description,omitempty"`
	TargetCalories *float64     `bson:"targetCalories,omitempty" json:"targetCalories,omitempty"`
	Suggestions    []string     `bson:"suggestions,omitempty" json:"suggestions,omitempty"`
}

type MealPlanDay struct {
	Day   Weekday       `bson:"day" json:"day"`
	Meals []PlannedMeal `bson:"meals" json:"meals"`
}

// TrainerPlan represents a structured program authored by a trainer for one client.
type TrainerPlan struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	TrainerID          primitive.ObjectID `bson:"trainer" json:"trainer"` // Who created the plan
	ClientID           primitive.ObjectID `bson:"client" json:"client"`   // Who the plan is for
	Name               string             `bson:"name" json:"name"`
	Description        string             `bson:"description,omitempty" json:"description,omitempty"`
	WorkoutPlan        []WorkoutPlanDay   `bson:"workoutPlan" json:"workoutPlan"`
	MealPlan           []MealPlanDay      `bson:"mealPlan" json:"mealPlan"`
	DailyCalorieTarget *float64           `bson:"dailyCalorieTarget,omitempty" json:"dailyCalorieTarget,omitempty"`
	DailyProteinTarget *float64           `bson:"dailyProteinTarget,omitempty" json:"dailyProteinTarget,omitempty"`
	StartDate          time.Time          `bson:"startDate" json:"startDate"`
	EndDate            *time.Time         `bson:"endDate,omitempty" json:"endDate,omitempty"`
	Status             PlanStatus         `bson:"status" json:"status"`
	Notes              string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}
