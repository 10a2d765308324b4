package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeMealTotals(t *testing.T) {
	foods := []FoodItem{
		{Name: "Oats", Calories: 150, Protein: 5, Carbs: 27, Fat: 3, Quantity: 2},
		{Name: "Milk", Calories: 100, Protein: 8, Carbs: 12, Fat: 2.5, Quantity: 0.5},
	}
	assert.Equal(t, MealTotals{Calories: 350, Protein: 14, Carbs: 60, Fat: 7.25}, ComputeMealTotals(foods))
	assert.Equal(t, MealTotals{}, ComputeMealTotals(nil))
}

func TestMealApplyTotalsOverwrites(t *testing.T) {
	m := Meal{TotalCalories: 9999, Foods: []FoodItem{{Calories: 300, Quantity: 1}}}
	m.ApplyTotals()
	assert.Equal(t, 300.0, m.TotalCalories)
	assert.Equal(t, MealTotals{Calories: 300}, m.Totals())
}

func TestWorkoutApplyTotals(t *testing.T) {
	d := func(v float64) *float64 { return &v }

	tests := []struct {
		name         string
		workout      Workout
		wantDuration float64
		wantCalories float64
	}{
		{
			name: "derives duration when unset",
			workout: Workout{Exercises: []Exercise{
				{Duration: d(20), CaloriesBurned: 100},
				{CaloriesBurned: 50},
			}},
			wantDuration: 20,
			wantCalories: 150,
		},
		{
			name: "keeps explicit duration",
			workout: Workout{TotalDuration: 90, Exercises: []Exercise{
				{Duration: d(20), CaloriesBurned: 100},
			}},
			wantDuration: 90,
			wantCalories: 100,
		},
		{
			name:         "empty workout",
			workout:      Workout{TotalCaloriesBurned: 42},
			wantDuration: 0,
			wantCalories: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := tt.workout
			w.ApplyTotals()
			assert.Equal(t, tt.wantDuration, w.TotalDuration)
			assert.Equal(t, tt.wantCalories, w.TotalCaloriesBurned)
		})
	}
}
