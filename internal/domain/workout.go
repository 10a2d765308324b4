package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseCategory classifies a logged exercise.
type ExerciseCategory string

const (
	CategoryCardio      ExerciseCategory = "cardio"
	CategoryStrength    ExerciseCategory = "strength"
	CategoryFlexibility ExerciseCategory = "flexibility"
	CategoryBalance     ExerciseCategory = "balance"
	CategoryYoga        ExerciseCategory = "yoga"
	CategoryTraditional ExerciseCategory = "traditional"
	CategorySports      ExerciseCategory = "sports"
	CategoryDance       ExerciseCategory = "dance"
	CategoryOther       ExerciseCategory = "other"
)

func (c ExerciseCategory) Valid() bool {
	switch c {
	case CategoryCardio, CategoryStrength, CategoryFlexibility, CategoryBalance, CategoryYoga,
		CategoryTraditional, CategorySports, CategoryDance, CategoryOther:
		return true
	}
	return false
}

// Exercise is one line item of a logged workout.
type Exercise struct {
	Name           string           `bson:"name" json:"name"`
	Category       ExerciseCategory `bson:"category" json:"category"`
	Sets           *int             `bson:"sets,omitempty" json:"sets,omitempty"`
	Reps           *int             `bson:"reps,omitempty" json:"reps,omitempty"`
	Weight         *float64         `bson:"weight,omitempty" json:"weight,omitempty"`     // kg
	Duration       *float64         `bson:"duration,omitempty" json:"duration,omitempty"` // minutes
	Distance       *float64         `bson:"distance,omitempty" json:"distance,omitempty"` // km
	CaloriesBurned float64          `bson:"caloriesBurned" json:"caloriesBurned"`
}

// Workout represents a single exercise session logged by a user.
type Workout struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID              primitive.ObjectID `bson:"user" json:"user"`
	Name                string             `bson:"name" json:"name"`
	Exercises           []Exercise         `bson:"exercises" json:"exercises"`
	TotalDuration       float64            `bson:"totalDuration" json:"totalDuration"` // minutes
	TotalCaloriesBurned float64            `bson:"totalCaloriesBurned" json:"totalCaloriesBurned"`
	Notes               string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Date                time.Time          `bson:"date" json:"date"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// WorkoutStats is the trailing-window rollup returned by the stats endpoint.
type WorkoutStats struct {
	TotalWorkouts int     `bson:"totalWorkouts" json:"totalWorkouts"`
	TotalDuration float64 `bson:"totalDuration" json:"totalDuration"`
	TotalCalories float64 `bson:"totalCalories" json:"totalCalories"`
	AvgDuration   float64 `bson:"avgDuration" json:"avgDuration"`
}

// WeeklyWorkouts is one ISO-week bucket of the weekly report.
type WeeklyWorkouts struct {
	Year     int     `bson:"year" json:"year"`
	Week     int     `bson:"week" json:"week"`
	Workouts int     `bson:"workouts" json:"workouts"`
	Duration float64 `bson:"duration" json:"duration"`
	Calories float64 `bson:"calories" json:"calories"`
}
