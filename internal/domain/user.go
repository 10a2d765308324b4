package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between user roles
type Role string

const (
	RoleUser    Role = "user"
	RoleTrainer Role = "trainer"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleTrainer:
		return true
	}
	return false
}

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

type HeightUnit string

const (
	HeightUnitCM HeightUnit = "cm"
	HeightUnitFT HeightUnit = "ft"
)

func (u HeightUnit) Valid() bool {
	return u == HeightUnitCM || u == HeightUnitFT
}

type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

func (a ActivityLevel) Valid() bool {
	switch a {
	case ActivitySedentary, ActivityLight, ActivityModerate, ActivityActive, ActivityVeryActive:
		return true
	}
	return false
}

// Profile holds the optional body metrics of a user. Height is stored in cm;
// HeightFeet/HeightInches are kept only for display when HeightUnit is ft.
type Profile struct {
	Age           *int          `bson:"age,omitempty" json:"age,omitempty"`
	Gender        Gender        `bson:"gender,omitempty" json:"gender,omitempty"`
	Height        *float64      `bson:"height,omitempty" json:"height,omitempty"`
	HeightFeet    *float64      `bson:"heightFeet,omitempty" json:"heightFeet,omitempty"`
	HeightInches  *float64      `bson:"heightInches,omitempty" json:"heightInches,omitempty"`
	HeightUnit    HeightUnit    `bson:"heightUnit,omitempty" json:"heightUnit,omitempty"`
	ActivityLevel ActivityLevel `bson:"activityLevel,omitempty" json:"activityLevel,omitempty"`
	Avatar        string        `bson:"avatar,omitempty" json:"avatar,omitempty"` // object key in file storage
}

// ProfilePatch is a partial profile; nil fields leave the stored value alone.
type ProfilePatch struct {
	Age           *int
	Gender        *Gender
	Height        *float64
	HeightFeet    *float64
	HeightInches  *float64
	HeightUnit    *HeightUnit
	ActivityLevel *ActivityLevel
}

// Merge applies a shallow per-field overwrite of p onto the profile.
func (pr Profile) Merge(p ProfilePatch) Profile {
	if p.Age != nil {
		pr.Age = p.Age
	}
	if p.Gender != nil {
		pr.Gender = *p.Gender
	}
	if p.Height != nil {
		pr.Height = p.Height
	}
	if p.HeightFeet != nil {
		pr.HeightFeet = p.HeightFeet
	}
	if p.HeightInches != nil {
		pr.HeightInches = p.HeightInches
	}
	if p.HeightUnit != nil {
		pr.HeightUnit = *p.HeightUnit
	}
	if p.ActivityLevel != nil {
		pr.ActivityLevel = *p.ActivityLevel
	}
	if pr.HeightUnit == "" {
		pr.HeightUnit = HeightUnitCM
	}
	return pr
}

// User represents an account in the system (either a regular user or a Trainer).
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`    // unique, lower-cased
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	Role         Role               `bson:"role" json:"role"`
	Profile      Profile            `bson:"profile" json:"profile"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`

	// Set only through trainer-request approval (or a trainer claiming an
	// unassigned user); at most one trainer per user.
	AssignedTrainer *primitive.ObjectID `bson:"assignedTrainer,omitempty" json:"assignedTrainer,omitempty"`
}

func (u *User) IsTrainer() bool {
	return u.Role == RoleTrainer
}

// HasTrainer reports whether the user currently has an assigned trainer.
func (u *User) HasTrainer() bool {
	return u.AssignedTrainer != nil && *u.AssignedTrainer != primitive.NilObjectID
}

// NormalizeEmail lower-cases and trims an address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
