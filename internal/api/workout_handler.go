package api

import (
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type WorkoutHandler struct {
	workoutService service.WorkoutService
}

func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

type ExerciseRequest struct {
	Name           string                  `json:"name" binding:"required"`
	Category       domain.ExerciseCategory `json:"category" binding:"omitempty,oneof=cardio strength flexibility balance yoga traditional sports dance other"`
	Sets           *int                    `json:"sets" binding:"omitempty,gte=0"`
	Reps           *int                    `json:"reps" binding:"omitempty,gte=0"`
	Weight         *float64                `json:"weight" binding:"omitempty,gte=0"`
	Duration       *float64                `json:"duration" binding:"omitempty,gte=0"`
	Distance       *float64                `json:"distance" binding:"omitempty,gte=0"`
	CaloriesBurned float64                 `json:"caloriesBurned" binding:"gte=0"`
}

type CreateWorkoutRequest struct {
	Name          string            `json:"name" binding:"required"`
	Exercises     []ExerciseRequest `json:"exercises" binding:"dive"`
	TotalDuration float64           `json:"totalDuration" binding:"gte=0"`
	Notes         string            `json:"notes"`
	Date          *Date             `json:"date"`
}

type UpdateWorkoutRequest struct {
	Name          *string            `json:"name" binding:"omitempty,min=1"`
	Exercises     *[]ExerciseRequest `json:"exercises" binding:"omitempty,dive"`
	TotalDuration *float64           `json:"totalDuration" binding:"omitempty,gte=0"`
	Notes         *string            `json:"notes"`
	Date          *Date              `json:"date"`
}

func toExercises(in []ExerciseRequest) []domain.Exercise {
	out := make([]domain.Exercise, len(in))
	for i, e := range in {
		out[i] = domain.Exercise{
			Name:           e.Name,
			Category:       e.Category,
			Sets:           e.Sets,
			Reps:           e.Reps,
			Weight:         e.Weight,
			Duration:       e.Duration,
			Distance:       e.Distance,
			CaloriesBurned: e.CaloriesBurned,
		}
	}
	return out
}

// CreateWorkout godoc
// @Summary Log a workout
// @Tags Workouts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param workout body CreateWorkoutRequest true "Workout"
// @Success 201 {object} domain.Workout
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Router /workouts [post]
func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	var req CreateWorkoutRequest
	if !bindJSON(c, &req) {
		return
	}

	workout, err := h.workoutService.Create(c.Request.Context(), currentUser(c).ID, &domain.Workout{
		Name:          req.Name,
		Exercises:     toExercises(req.Exercises),
		TotalDuration: req.TotalDuration,
		Notes:         req.Notes,
		Date:          req.Date.timeOrZero(),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, workout)
}

// ListWorkouts godoc
// @Summary Page through the caller's workouts, newest first
// @Tags Workouts
// @Security BearerAuth
// @Param page query int false "Page (1-based)"
// @Param limit query int false "Page size"
// @Param startDate query string false "Earliest date"
// @Param endDate query string false "Latest date (inclusive)"
// @Success 200 {object} WorkoutListResponse
// @Router /workouts [get]
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	dates, ok := dateRangeQuery(c)
	if !ok {
		return
	}
	page, ok := pageQuery(c)
	if !ok {
		return
	}

	result, err := h.workoutService.List(c.Request.Context(), currentUser(c).ID, dates, page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, WorkoutListResponse{
		Workouts:   result.Items,
		Pagination: paginationOf(result),
	})
}

// GetWorkout godoc
// @Summary Get one workout
// @Tags Workouts
// @Security BearerAuth
// @Param id path string true "Workout ID"
// @Success 200 {object} domain.Workout
// @Failure 404 {object} ErrorResponse "Workout not found"
// @Router /workouts/{id} [get]
func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	id, ok := objectIDParam(c, "id", service.ErrWorkoutNotFound)
	if !ok {
		return
	}
	workout, err := h.workoutService.Get(c.Request.Context(), currentUser(c).ID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, workout)
}

// UpdateWorkout godoc
// @Summary Change a workout; totals are recomputed
// @Tags Workouts
// @Security BearerAuth
// @Param id path string true "Workout ID"
// @Param workout body UpdateWorkoutRequest true "Fields to change"
// @Success 200 {object} domain.Workout
// @Router /workouts/{id} [put]
func (h *WorkoutHandler) UpdateWorkout(c *gin.Context) {
	id, ok := objectIDParam(c, "id", service.ErrWorkoutNotFound)
	if !ok {
		return
	}
	var req UpdateWorkoutRequest
	if !bindJSON(c, &req) {
		return
	}

	patch := service.WorkoutPatch{
		Name:          req.Name,
		TotalDuration: req.TotalDuration,
		Notes:         req.Notes,
		Date:          req.Date.timePtr(),
	}
	if req.Exercises != nil {
		exercises := toExercises(*req.Exercises)
		patch.Exercises = &exercises
	}

	workout, err := h.workoutService.Update(c.Request.Context(), currentUser(c).ID, id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, workout)
}

// DeleteWorkout godoc
// @Summary Delete a workout
// @Tags Workouts
// @Security BearerAuth
// @Param id path string true "Workout ID"
// @Success 200 {object} MessageResponse
// @Router /workouts/{id} [delete]
func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	id, ok := objectIDParam(c, "id", service.ErrWorkoutNotFound)
	if !ok {
		return
	}
	if err := h.workoutService.Delete(c.Request.Context(), currentUser(c).ID, id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Workout removed")
}

// WorkoutStats godoc
// @Summary Totals over the trailing period
// @Tags Workouts
// @Security BearerAuth
// @Param period query int false "Days (default 7)"
// @Success 200 {object} domain.WorkoutStats
// @Router /workouts/stats/summary [get]
func (h *WorkoutHandler) WorkoutStats(c *gin.Context) {
	period, ok := intQuery(c, "period")
	if !ok {
		return
	}
	stats, err := h.workoutService.Stats(c.Request.Context(), currentUser(c).ID, period)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
