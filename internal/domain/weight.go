package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WeightLog is a point-in-time body measurement.
type WeightLog struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID          primitive.ObjectID `bson:"user" json:"user"`
	Weight          float64            `bson:"weight" json:"weight"` // kg
	BodyFat         *float64           `bson:"bodyFat,omitempty" json:"bodyFat,omitempty"`
	MuscleMass      *float64           `bson:"muscleMass,omitempty" json:"muscleMass,omitempty"`
	WaterPercentage *float64           `bson:"waterPercentage,omitempty" json:"waterPercentage,omitempty"`
	Notes           string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Date            time.Time          `bson:"date" json:"date"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// WeightProgress summarises a chronological weight history.
type WeightProgress struct {
	StartWeight   float64     `json:"startWeight"`
	CurrentWeight float64     `json:"currentWeight"`
	Change        float64     `json:"change"`
	PercentChange float64     `json:"percentChange"`
	Entries       int         `json:"entries"`
	History       []WeightLog `json:"history"`
}
