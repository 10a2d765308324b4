package domain

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type GoalType string

const (
	GoalWeightLoss  GoalType = "weight_loss"
	GoalWeightGain  GoalType = "weight_gain"
	GoalMuscleGain  GoalType = "muscle_gain"
	GoalEndurance   GoalType = "endurance"
	GoalStrength    GoalType = "strength"
	GoalFlexibility GoalType = "flexibility"
	GoalCustom      GoalType = "custom"
)

func (t GoalType) Valid() bool {
	switch t {
	case GoalWeightLoss, GoalWeightGain, GoalMuscleGain, GoalEndurance, GoalStrength, GoalFlexibility, GoalCustom:
		return true
	}
	return false
}

// GoalStatus type for goal lifecycle
type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalAbandoned GoalStatus = "abandoned"
)

func (s GoalStatus) Valid() bool {
	switch s {
	case GoalActive, GoalCompleted, GoalAbandoned:
		return true
	}
	return false
}

// Goal is a target metric with a deadline.
type Goal struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID       primitive.ObjectID `bson:"user" json:"user"`
	Type         GoalType           `bson:"type" json:"type"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	TargetValue  float64            `bson:"targetValue" json:"targetValue"`
	CurrentValue float64            `bson:"currentValue" json:"currentValue"`
	Unit         string             `bson:"unit" json:"unit"` // kg, lbs, reps, minutes, ...
	StartDate    time.Time          `bson:"startDate" json:"startDate"`
	Deadline     time.Time          `bson:"deadline" json:"deadline"`
	Status       GoalStatus         `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Progress is the completion percentage, capped at 100.
func (g *Goal) Progress() float64 {
	if g.TargetValue == 0 {
		return 0
	}
	return math.Min(100, g.CurrentValue/g.TargetValue*100)
}

// RecordProgress stores a new current value and completes the goal once the
// target is reached. It never moves a goal back to active.
func (g *Goal) RecordProgress(current float64) {
	g.CurrentValue = current
	if g.CurrentValue >= g.TargetValue {
		g.Status = GoalCompleted
	}
}

// GoalsSummary is the goal breakdown used by the progress report.
type GoalsSummary struct {
	Total     int    `json:"total"`
	Active    int    `json:"active"`
	Completed int    `json:"completed"`
	Goals     []Goal `json:"goals"`
}
