package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MealType string

const (
	MealBreakfast    MealType = "breakfast"
	MealLunch        MealType = "lunch"
	MealDinner       MealType = "dinner"
	MealSnack        MealType = "snack"
	MealEveningSnack MealType = "evening-snack"
)

func (t MealType) Valid() bool {
	switch t {
	case MealBreakfast, MealLunch, MealDinner, MealSnack, MealEveningSnack:
		return true
	}
	return false
}

type FoodType string

const (
	FoodVegetarian    FoodType = "vegetarian"
	FoodVegan         FoodType = "vegan"
	FoodNonVegetarian FoodType = "non-vegetarian"
	FoodEggetarian    FoodType = "eggetarian"
)

func (f FoodType) Valid() bool {
	switch f {
	case FoodVegetarian, FoodVegan, FoodNonVegetarian, FoodEggetarian:
		return true
	}
	return false
}

// FoodItem is one line item of a meal. Nutrient values are per serving and are
// multiplied by Quantity when totals are computed.
type FoodItem struct {
	Name        string   `bson:"name" json:"name"`
	Calories    float64  `bson:"calories" json:"calories"`
	Protein     float64  `bson:"protein" json:"protein"` // grams
	Carbs       float64  `bson:"carbs" json:"carbs"`
	Fat         float64  `bson:"fat" json:"fat"`
	Fiber       *float64 `bson:"fiber,omitempty" json:"fiber,omitempty"`
	ServingSize string   `bson:"servingSize,omitempty" json:"servingSize,omitempty"`
	Quantity    float64  `bson:"quantity" json:"quantity"`
	FoodType    FoodType `bson:"foodType" json:"foodType"`
	Region      string   `bson:"region,omitempty" json:"region,omitempty"`
}

// MealTotals are the derived sums of a meal's food items.
type MealTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Add returns the element-wise sum of two totals.
func (t MealTotals) Add(o MealTotals) MealTotals {
	return MealTotals{
		Calories: t.Calories + o.Calories,
		Protein:  t.Protein + o.Protein,
		Carbs:    t.Carbs + o.Carbs,
		Fat:      t.Fat + o.Fat,
	}
}

// Meal is a logged eating event.
type Meal struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID        primitive.ObjectID `bson:"user" json:"user"`
	Type          MealType           `bson:"type" json:"type"`
	Foods         []FoodItem         `bson:"foods" json:"foods"`
	TotalCalories float64            `bson:"totalCalories" json:"totalCalories"`
	TotalProtein  float64            `bson:"totalProtein" json:"totalProtein"`
	TotalCarbs    float64            `bson:"totalCarbs" json:"totalCarbs"`
	TotalFat      float64            `bson:"totalFat" json:"totalFat"`
	Notes         string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Date          time.Time          `bson:"date" json:"date"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Totals returns the stored totals of the meal.
func (m *Meal) Totals() MealTotals {
	return MealTotals{Calories: m.TotalCalories, Protein: m.TotalProtein, Carbs: m.TotalCarbs, Fat: m.TotalFat}
}

// DailyNutrition is one calendar-day bucket of summed meal totals.
type DailyNutrition struct {
	Date          string  `bson:"_id" json:"date"` // YYYY-MM-DD (UTC)
	DailyCalories float64 `bson:"dailyCalories" json:"dailyCalories"`
	DailyProtein  float64 `bson:"dailyProtein" json:"dailyProtein"`
	DailyCarbs    float64 `bson:"dailyCarbs" json:"dailyCarbs"`
	DailyFat      float64 `bson:"dailyFat" json:"dailyFat"`
}

// DailyCalories is one calendar-day bucket of calories in or out.
type DailyCalories struct {
	Date     string  `bson:"_id" json:"date"`
	Calories float64 `bson:"calories" json:"calories"`
}
