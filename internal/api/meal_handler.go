package api

import (
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/repository"
	"alcyxob/fittrack/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type MealHandler struct {
	mealService service.MealService
}

func NewMealHandler(mealService service.MealService) *MealHandler {
	return &MealHandler{mealService: mealService}
}

type FoodItemRequest struct {
	Name        string          `json:"name" binding:"required"`
	Calories    float64         `json:"calories" binding:"gte=0"`
	Protein     float64         `json:"protein" binding:"gte=0"`
	Carbs       float64         `json:"carbs" binding:"gte=0"`
	Fat         float64         `json:"fat" binding:"gte=0"`
	Fiber       *float64        `json:"fiber" binding:"omitempty,gte=0"`
	ServingSize string          `json:"servingSize"`
	Quantity    float64         `json:"quantity" binding:"gte=0"`
	FoodType    domain.FoodType `json:"foodType" binding:"omitempty,oneof=vegetarian vegan non-vegetarian eggetarian"`
	Region      string          `json:"region"`
}

type CreateMealRequest struct {
	Type  domain.MealType   `json:"type" binding:"required,oneof=breakfast lunch dinner snack evening-snack"`
	Foods []FoodItemRequest `json:"foods" binding:"dive"`
	Notes string            `json:"notes"`
	Date  *Date             `json:"date"`
}

type UpdateMealRequest struct {
	Type  *domain.MealType   `json:"type" binding:"omitempty,oneof=breakfast lunch dinner snack evening-snack"`
	Foods *[]FoodItemRequest `json:"foods" binding:"omitempty,dive"`
	Notes *string            `json:"notes"`
	Date  *Date              `json:"date"`
}

func toFoods(in []FoodItemRequest) []domain.FoodItem {
	out := make([]domain.FoodItem, len(in))
	for i, f := range in {
		out[i] = domain.FoodItem{
			Name:        f.Name,
			Calories:    f.Calories,
			Protein:     f.Protein,
			Carbs:       f.Carbs,
			Fat:         f.Fat,
			Fiber:       f.Fiber,
			ServingSize: f.ServingSize,
			Quantity:    f.Quantity,
			FoodType:    f.FoodType,
			Region:      f.Region,
		}
	}
	return out
}

// CreateMeal godoc
// @Summary Log a meal; totals are computed from the food items
// @Tags Meals
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param meal body CreateMealRequest true "Meal"
// @Success 201 {object} domain.Meal
// @Router /meals [post]
func (h *MealHandler) CreateMeal(c *gin.Context) {
	var req CreateMealRequest
	if !bindJSON(c, &req) {
		return
	}

	meal, err := h.mealService.Create(c.Request.Context(), currentUser(c).ID, &domain.Meal{
		Type:  req.Type,
		Foods: toFoods(req.Foods),
		Notes: req.Notes,
		Date:  req.Date.timeOrZero(),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, meal)
}

// ListMeals godoc
// @Summary Page through the caller's meals, newest first
// @Tags Meals
// @Security BearerAuth
// @Param page query int false "Page (1-based)"
// @Param limit query int false "Page size"
// @Param type query string false "Meal type"
// @Param startDate query string false "Earliest date"
// @Param endDate query string false "Latest date (inclusive)"
// @Success 200 {object} MealListResponse
// @Router /meals [get]
func (h *MealHandler) ListMeals(c *gin.Context) {
	dates, ok := dateRangeQuery(c)
	if !ok {
		return
	}
	page, ok := pageQuery(c)
	if !ok {
		return
	}
	filter := repository.MealFilter{Dates: dates, Type: domain.MealType(c.Query("type"))}

	result, err := h.mealService.List(c.Request.Context(), currentUser(c).ID, filter, page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MealListResponse{
		Meals:   result.Items,
		Pagination: paginationOf(result),
	})
}

// TodayMeals godoc
// @Summary Every meal of the current UTC day with summed totals
// @Tags Meals
// @Security BearerAuth
// @Success 200 {object} TodayMealsResponse
// @Router /meals/today [get]
func (h *MealHandler) TodayMeals(c *gin.Context) {
	day, err := h.mealService.Today(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, TodayMealsResponse{Meals: day.Meals, Totals: day.Totals})
}

// MealStats godoc
// @Summary Per-day nutrition totals over the trailing period
// @Tags Meals
// @Security BearerAuth
// @Param period query int false "Days (default 7)"
// @Success 200 {array} domain.DailyNutrition
// @Router /meals/stats/summary [get]
func (h *MealHandler) MealStats(c *gin.Context) {
	period, ok := intQuery(c, "period")
	if !ok {
		return
	}
	stats, err := h.mealService.Stats(c.Request.Context(), currentUser(c).ID, period)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetMeal godoc
// @Summary Get one meal
// @Tags Meals
// @Security BearerAuth
// @Param id path string true "Meal ID"
// @Success 200 {object} domain.Meal
// @Failure 404 {object} ErrorResponse "Meal not found"
// @Router /meals/{id} [get]
func (h *MealHandler) GetMeal(c *gin.Context) {
	id, ok := objectIDParam(c, "id", service.ErrMealNotFound)
	if !ok {
		return
	}
	meal, err := h.mealService.Get(c.Request.Context(), currentUser(c).ID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

// UpdateMeal godoc
// @Summary Change a meal; totals are recomputed
// @Tags Meals
// @Security BearerAuth
// @Param id path string true "Meal ID"
// @Param meal body UpdateMealRequest true "Fields to change"
// @Success 200 {object} domain.Meal
// @Router /meals/{id} [put]
func (h *MealHandler) UpdateMeal(c *gin.Context) {
	id, ok := objectIDParam(c, "id", service.ErrMealNotFound)
	if !ok {
		return
	}
	var req UpdateMealRequest
	if !bindJSON(c, &req) {
		return
	}

	patch := service.MealPatch{Type: req.Type, Notes: req.Notes, Date: req.Date.timePtr()}
	if req.Foods != nil {
		foods := toFoods(*req.Foods)
		patch.Foods = &foods
	}

	meal, err := h.mealService.Update(c.Request.Context(), currentUser(c).ID, id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

// DeleteMeal godoc
// @Summary Delete a meal
// @Tags Meals
// @Security BearerAuth
// @Param id path string true "Meal ID"
// @Success 200 {object} MessageResponse
// @Router /meals/{id} [delete]
func (h *MealHandler) DeleteMeal(c *gin.Context) {
	id, ok := objectIDParam(c, "id", service.ErrMealNotFound)
	if !ok {
		return
	}
	if err := h.mealService.Delete(c.Request.Context(), currentUser(c).ID, id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Meal removed")
}
