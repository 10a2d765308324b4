package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestProfileMerge(t *testing.T) {
	age := 30
	height := 180.0
	base := Profile{Age: &age, Gender: GenderFemale, Avatar: "avatars/x.png"}

	newAge := 31
	level := ActivityModerate
	merged := base.Merge(ProfilePatch{Age: &newAge, Height: &height, ActivityLevel: &level})

	assert.Equal(t, 31, *merged.Age)
	assert.Equal(t, GenderFemale, merged.Gender)
	assert.Equal(t, 180.0, *merged.Height)
	assert.Equal(t, ActivityModerate, merged.ActivityLevel)
	assert.Equal(t, HeightUnitCM, merged.HeightUnit)
	assert.Equal(t, "avatars/x.png", merged.Avatar)
	assert.Equal(t, 30, *base.Age, "merge must not touch the receiver")
}

func TestUserHasTrainer(t *testing.T) {
	u := User{Role: RoleUser}
	assert.False(t, u.HasTrainer())

	nilID := primitive.NilObjectID
	u.AssignedTrainer = &nilID
	assert.False(t, u.HasTrainer())

	id := primitive.NewObjectID()
	u.AssignedTrainer = &id
	assert.True(t, u.HasTrainer())
	assert.False(t, u.IsTrainer())
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "bob@example.com", NormalizeEmail("  Bob@Example.COM "))
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, MealEveningSnack.Valid())
	assert.False(t, PlanMealType("evening-snack").Valid())
	assert.True(t, Sunday.Valid())
	assert.False(t, Weekday("Sunday").Valid())
	assert.True(t, RequestApproved.Terminal())
	assert.False(t, RequestPending.Terminal())
	assert.False(t, Role("admin").Valid())
}

func TestGoalProgress(t *testing.T) {
	g := Goal{TargetValue: 0, CurrentValue: 5}
	assert.Zero(t, g.Progress())

	g = Goal{TargetValue: 10, Status: GoalActive}
	g.RecordProgress(5)
	assert.Equal(t, 50.0, g.Progress())
	assert.Equal(t, GoalActive, g.Status)

	g.RecordProgress(12)
	assert.Equal(t, 100.0, g.Progress())
	assert.Equal(t, GoalCompleted, g.Status)

	g = Goal{TargetValue: 10, Status: GoalActive}
	g.RecordProgress(10)
	assert.Equal(t, GoalCompleted, g.Status)
	assert.Equal(t, 100.0, g.Progress())
}
