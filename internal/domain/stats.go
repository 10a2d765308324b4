package domain

import (
	"math"
	"sort"
	"time"
)

// DayLayout is the calendar-day bucket key used by every daily aggregate.
const DayLayout = "2006-01-02"

// SummarizeWorkouts computes the count/sum/average rollup over workouts.
// An empty input yields the zero value, never an error.
func SummarizeWorkouts(workouts []Workout) WorkoutStats {
	var s WorkoutStats
	for _, w := range workouts {
		s.TotalWorkouts++
		s.TotalDuration += w.TotalDuration
		s.TotalCalories += w.TotalCaloriesBurned
	}
	if s.TotalWorkouts > 0 {
		s.AvgDuration = s.TotalDuration / float64(s.TotalWorkouts)
	}
	return s
}

// GroupMealsByDay sums meal totals per UTC calendar day, oldest day first.
func GroupMealsByDay(meals []Meal) []DailyNutrition {
	byDay := map[string]*DailyNutrition{}
	for _, m := range meals {
		key := m.Date.UTC().Format(DayLayout)
		d, ok := byDay[key]
		if !ok {
			d = &DailyNutrition{Date: key}
			byDay[key] = d
		}
		d.DailyCalories += m.TotalCalories
		d.DailyProtein += m.TotalProtein
		d.DailyCarbs += m.TotalCarbs
		d.DailyFat += m.TotalFat
	}
	out := make([]DailyNutrition, 0, len(byDay))
	for _, d := range byDay {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// GroupWorkoutsByWeek buckets workouts by ISO week, oldest first. Weeks without
// workouts are absent.
func GroupWorkoutsByWeek(workouts []Workout) []WeeklyWorkouts {
	type key struct{ year, week int }
	byWeek := map[key]*WeeklyWorkouts{}
	for _, w := range workouts {
		y, wk := w.Date.UTC().ISOWeek()
		k := key{y, wk}
		b, ok := byWeek[k]
		if !ok {
			b = &WeeklyWorkouts{Year: y, Week: wk}
			byWeek[k] = b
		}
		b.Workouts++
		b.Duration += w.TotalDuration
		b.Calories += w.TotalCaloriesBurned
	}
	out := make([]WeeklyWorkouts, 0, len(byWeek))
	for _, b := range byWeek {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Week < out[j].Week
	})
	return out
}

// GroupCaloriesBurnedByDay sums workout calories per UTC day, oldest first.
func GroupCaloriesBurnedByDay(workouts []Workout) []DailyCalories {
	byDay := map[string]float64{}
	for _, w := range workouts {
		byDay[w.Date.UTC().Format(DayLayout)] += w.TotalCaloriesBurned
	}
	return sortedDailyCalories(byDay)
}

// GroupCaloriesEatenByDay sums meal calories per UTC day, oldest first.
func GroupCaloriesEatenByDay(meals []Meal) []DailyCalories {
	byDay := map[string]float64{}
	for _, m := range meals {
		byDay[m.Date.UTC().Format(DayLayout)] += m.TotalCalories
	}
	return sortedDailyCalories(byDay)
}

func sortedDailyCalories(byDay map[string]float64) []DailyCalories {
	out := make([]DailyCalories, 0, len(byDay))
	for day, cal := range byDay {
		out = append(out, DailyCalories{Date: day, Calories: cal})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// ComputeWeightProgress expects logs sorted oldest first. With fewer than two
// entries the change is zero and the start weight equals the current weight.
func ComputeWeightProgress(logs []WeightLog) WeightProgress {
	p := WeightProgress{Entries: len(logs), History: logs}
	if p.History == nil {
		p.History = []WeightLog{}
	}
	if len(logs) == 0 {
		return p
	}
	if len(logs) < 2 {
		p.StartWeight = logs[0].Weight
		p.CurrentWeight = logs[0].Weight
		return p
	}
	p.StartWeight = logs[0].Weight
	p.CurrentWeight = logs[len(logs)-1].Weight
	p.Change = p.CurrentWeight - p.StartWeight
	if p.StartWeight != 0 {
		p.PercentChange = Round(p.Change/p.StartWeight*100, 2)
	}
	return p
}

// SummarizeGoals counts goals by status.
func SummarizeGoals(goals []Goal) GoalsSummary {
	s := GoalsSummary{Total: len(goals), Goals: goals}
	if s.Goals == nil {
		s.Goals = []Goal{}
	}
	for _, g := range goals {
		switch g.Status {
		case GoalActive:
			s.Active++
		case GoalCompleted:
			s.Completed++
		case GoalAbandoned:
		}
	}
	return s
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// PerWeek spreads count over the window length in weeks, rounded to one decimal.
func PerWeek(count int, start, end time.Time) float64 {
	weeks := end.Sub(start).Hours() / (24 * 7)
	if weeks <= 0 {
		return 0
	}
	return Round(float64(count)/weeks, 1)
}

// ReportPeriod is the inclusive window a report covers.
type ReportPeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type ReportWorkoutStats struct {
	TotalWorkouts       int     `json:"totalWorkouts"`
	TotalDuration       float64 `json:"totalDuration"`
	TotalCaloriesBurned float64 `json:"totalCaloriesBurned"`
	AvgWorkoutsPerWeek  float64 `json:"avgWorkoutsPerWeek"`
}

type NutritionStats struct {
	AvgDailyCalories float64 `json:"avgDailyCalories"`
	AvgDailyProtein  float64 `json:"avgDailyProtein"`
	TotalMealsLogged int     `json:"totalMealsLogged"`
}

// SummarizeNutrition averages calories and protein per logged meal, rounded to
// whole units.
func SummarizeNutrition(meals []Meal) NutritionStats {
	s := NutritionStats{TotalMealsLogged: len(meals)}
	if len(meals) == 0 {
		return s
	}
	var cal, protein float64
	for _, m := range meals {
		cal += m.TotalCalories
		protein += m.TotalProtein
	}
	n := float64(len(meals))
	s.AvgDailyCalories = math.Round(cal / n)
	s.AvgDailyProtein = math.Round(protein / n)
	return s
}

// ReportWeightProgress is present in a report only when the window holds at
// least two weight entries.
type ReportWeightProgress struct {
	StartWeight   float64     `json:"startWeight"`
	CurrentWeight float64     `json:"currentWeight"`
	Change        float64     `json:"change"`
	Trend         []WeightLog `json:"trend"`
}

// ProgressReport is the comprehensive summary over a date window.
type ProgressReport struct {
	Period         ReportPeriod          `json:"period"`
	WorkoutStats   ReportWorkoutStats    `json:"workoutStats"`
	NutritionStats NutritionStats        `json:"nutritionStats"`
	WeightProgress *ReportWeightProgress `json:"weightProgress"`
	GoalsSummary   GoalsSummary          `json:"goalsSummary"`
	GeneratedAt    time.Time             `json:"generatedAt"`
}

// BuildProgressReport combines the per-collection data of one window. Weight
// logs must be sorted oldest first.
func BuildProgressReport(start, end time.Time, workouts []Workout, meals []Meal, weights []WeightLog, goals []Goal, now time.Time) ProgressReport {
	ws := SummarizeWorkouts(workouts)
	r := ProgressReport{
		Period: ReportPeriod{Start: start, End: end},
		WorkoutStats: ReportWorkoutStats{
			TotalWorkouts:       ws.TotalWorkouts,
			TotalDuration:       ws.TotalDuration,
			TotalCaloriesBurned: ws.TotalCalories,
			AvgWorkoutsPerWeek:  PerWeek(ws.TotalWorkouts, start, end),
		},
		NutritionStats: SummarizeNutrition(meals),
		GoalsSummary:   SummarizeGoals(goals),
		GeneratedAt:    now,
	}
	if len(weights) >= 2 {
		first, last := weights[0], weights[len(weights)-1]
		r.WeightProgress = &ReportWeightProgress{
			StartWeight:   first.Weight,
			CurrentWeight: last.Weight,
			Change:        last.Weight - first.Weight,
			Trend:         weights,
		}
	}
	return r
}
