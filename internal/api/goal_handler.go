package api

import (
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type GoalHandler struct {
	goalService service.GoalService
}

func NewGoalHandler(goalService service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

type CreateGoalRequest struct {
	Type         domain.GoalType `json:"type" binding:"required,oneof=weight_loss weight_gain muscle_gain endurance strength flexibility custom"`
	Title        string          `json:"title" binding:"required"`
	Description  string          `json:"description"`
	TargetValue  float64         `json:"targetValue" binding:"gte=0"`
	CurrentValue float64         `json:"currentValue" binding:"gte=0"`
	Unit         string          `json:"unit" binding:"required"`
	StartDate    *Date           `json:"startDate"`
	Deadline     *Date           `json:"deadline" binding:"required"`
}

type UpdateGoalRequest struct {
	Type         *domain.GoalType   `json:"type" binding:"omitempty,oneof=weight_loss weight_gain muscle_gain endurance strength flexibility custom"`
	Title        *string            `json:"title" binding:"omitempty,min=1"`
	Description  *string            `json:"description"`
	TargetValue  *float64           `json:"targetValue" binding:"omitempty,gte=0"`
	CurrentValue *float64           `json:"currentValue" binding:"omitempty,gte=0"`
	Unit         *string            `json:"unit" binding:"omitempty,min=1"`
	StartDate    *Date              `json:"startDate"`
	Deadline     *Date              `json:"deadline"`
	Status       *domain.GoalStatus `json:"status" binding:"omitempty,oneof=active completed abandoned"`
}

type GoalProgressRequest struct {
	CurrentValue *float64 `json:"currentValue" binding:"required,gte=0"`
}

// CreateGoal godoc
// @Summary Set a new goal
// @Tags Goals
// @Security BearerAuth
// @Param goal body CreateGoalRequest true "Goal"
// @Success 201 {object} GoalResponse
// @Router /goals [post]
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	var req CreateGoalRequest
	if !bindJSON(c, &req) {
		return
	}

	goal, err := h.goalService.Create(c.Request.Context(), currentUser(c).ID, &domain.Goal{
		Type:         req.Type,
		Title:        req.Title,
		Description:  req.Description,
		TargetValue:  req.TargetValue,
		CurrentValue: req.CurrentValue,
		Unit:         req.Unit,
		StartDate:    req.StartDate.timeOrZero(),
		Deadline:     req.Deadline.timeOrZero(),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mapGoal(goal))
}

// ListGoals godoc
// @Summary The caller's goals by deadline
// @Tags Goals
// @Security BearerAuth
// @Param status query string false "active, completed or abandoned"
// @Success 200 {array} GoalResponse
// @Router /goals [get]
func (h *GoalHandler) ListGoals(c *gin.Context) {
	goals, err := h.goalService.List(c.Request.Context(), currentUser(c).ID, domain.GoalStatus(c.Query("status")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapGoals(goals))
}

// GetGoal godoc
// @Summary Get one goal
// @Tags Goals
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Success 200 {object} GoalResponse
// @Failure 404 {object} ErrorResponse "Goal not found"
// @Router /goals/{id} [get]
func (h *GoalHandler) GetGoal(c *gin.Context) {
	id, ok := objectIDParam(c, "id", service.ErrGoalNotFound)
	if !ok {
		return
	}
	goal, err := h.goalService.Get(c.Request.Context(), currentUser(c).ID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapGoal(goal))
}

// UpdateGoal godoc
// @Summary Change a goal
// @Tags Goals
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Param goal body UpdateGoalRequest true "Fields to change"
// @Success 200 {object} GoalResponse
// @Router /goals/{id} [put]
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	id, ok := objectIDParam(c, "id", service.ErrGoalNotFound)
	if !ok {
		return
	}
	var req UpdateGoalRequest
	if !bindJSON(c, &req) {
		return
	}

	goal, err := h.goalService.Update(c.Request.Context(), currentUser(c).ID, id, service.GoalPatch{
		Type:         req.Type,
		Title:        req.Title,
		Description:  req.Description,
		TargetValue:  req.TargetValue,
		CurrentValue: req.CurrentValue,
		Unit:         req.Unit,
		StartDate:    req.StartDate.timePtr(),
		Deadline:     req.Deadline.timePtr(),
		Status:       req.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapGoal(goal))
}

// UpdateGoalProgress godoc
// @Summary Record a new current value; completes the goal at target
// @Tags Goals
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Param progress body GoalProgressRequest true "Current value"
// @Success 200 {object} GoalResponse
// @Router /goals/{id}/progress [put]
func (h *GoalHandler) UpdateGoalProgress(c *gin.Context) {
	id, ok := objectIDParam(c, "id", service.ErrGoalNotFound)
	if !ok {
		return
	}
	var req GoalProgressRequest
	if !bindJSON(c, &req) {
		return
	}

	goal, err := h.goalService.UpdateProgress(c.Request.Context(), currentUser(c).ID, id, *req.CurrentValue)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapGoal(goal))
}

// DeleteGoal godoc
// @Summary Delete a goal
// @Tags Goals
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Success 200 {object} MessageResponse
// @Router /goals/{id} [delete]
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	id, ok := objectIDParam(c, "id", service.ErrGoalNotFound)
	if !ok {
		return
	}
	if err := h.goalService.Delete(c.Request.Context(), currentUser(c).ID, id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Goal removed")
}
