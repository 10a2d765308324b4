package domain

// ComputeMealTotals sums each nutrient weighted by the item quantity.
func ComputeMealTotals(foods []FoodItem) MealTotals {
	var t MealTotals
	for _, f := range foods {
		t.Calories += f.Calories * f.Quantity
		t.Protein += f.Protein * f.Quantity
		t.Carbs += f.Carbs * f.Quantity
		t.Fat += f.Fat * f.Quantity
	}
	return t
}

// ApplyTotals recomputes the derived totals from the meal's food items.
func (m *Meal) ApplyTotals() {
	t := ComputeMealTotals(m.Foods)
	m.TotalCalories = t.Calories
	m.TotalProtein = t.Protein
	m.TotalCarbs = t.Carbs
	m.TotalFat = t.Fat
}

// ComputeWorkoutCalories sums the calories burned by each exercise.
func ComputeWorkoutCalories(exercises []Exercise) float64 {
	var total float64
	for _, ex := range exercises {
		total += ex.CaloriesBurned
	}
	return total
}

// ComputeWorkoutDuration sums exercise durations; exercises without one count as zero.
func ComputeWorkoutDuration(exercises []Exercise) float64 {
	var total float64
	for _, ex := range exercises {
		if ex.Duration != nil {
			total += *ex.Duration
		}
	}
	return total
}

// ApplyTotals recomputes TotalCaloriesBurned from the exercises. TotalDuration is
// caller supplied; it is derived from the exercises only when left at zero.
func (w *Workout) ApplyTotals() {
	w.TotalCaloriesBurned = ComputeWorkoutCalories(w.Exercises)
	if w.TotalDuration <= 0 {
		w.TotalDuration = ComputeWorkoutDuration(w.Exercises)
	}
}
