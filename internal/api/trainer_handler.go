package api

import (
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/service"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainerHandler handles HTTP requests related to trainer actions.
type TrainerHandler struct {
	trainerService service.TrainerService
}

// NewTrainerHandler creates a new TrainerHandler.
func NewTrainerHandler(trainerService service.TrainerService) *TrainerHandler {
	return &TrainerHandler{trainerService: trainerService}
}

// --- Request/Response Structs ---

type RespondRequestBody struct {
	ResponseMessage string `json:"responseMessage" binding:"max=500"`
}

type AssignClientResponse struct {
	Message string       `json:"message"`
	Client  UserResponse `json:"client"`
}

type PlannedExerciseRequest struct {
	Name     string   `json:"name" binding:"required"`
	Sets     *int     `json:"sets" binding:"omitempty,gte=0"`
	Reps     *int     `json:"reps" binding:"omitempty,gte=0"`
	Weight   *float64 `json:"weight" binding:"omitempty,gte=0"`
	Duration *float64 `json:"duration" binding:"omitempty,gte=0"`
	Notes    string   `json:"notes"`
}

type WorkoutPlanDayRequest struct {
	Day       domain.Weekday           `json:"day" binding:"required,weekday"`
	Exercises []PlannedExerciseRequest `json:"exercises" binding:"dive"`
	IsRestDay bool                     `json:"isRestDay"`
}

type PlannedMealRequest struct {
	Type           domain.PlanMealType `json:"type" binding:"required,oneof=breakfast lunch dinner snack"`
	Description    string              `json:"description"`
	TargetCalories *float64            `json:"targetCalories" binding:"omitempty,gte=0"`
	Suggestions    []string            `json:"suggestions"`
}

type MealPlanDayRequest struct {
	Day   domain.Weekday       `json:"day" binding:"required,weekday"`
	Meals []PlannedMealRequest `json:"meals" binding:"dive"`
}

type CreatePlanRequest struct {
	ClientID           string                  `json:"clientId" binding:"required"`
	Name               string                  `json:"name" binding:"required"`
	Description        string                  `json:"description"`
	WorkoutPlan        []WorkoutPlanDayRequest `json:"workoutPlan" binding:"dive"`
	MealPlan           []MealPlanDayRequest    `json:"mealPlan" binding:"dive"`
	DailyCalorieTarget *float64                `json:"dailyCalorieTarget" binding:"omitempty,gte=0"`
	DailyProteinTarget *float64                `json:"dailyProteinTarget" binding:"omitempty,gte=0"`
	StartDate          *Date                   `json:"startDate"`
	EndDate            *Date                   `json:"endDate"`
	Status             domain.PlanStatus       `json:"status" binding:"omitempty,oneof=active completed paused"`
	Notes              string                  `json:"notes"`
}

type UpdatePlanRequest struct {
	Name               *string                  `json:"name" binding:"omitempty,min=1"`
	Description        *string                  `json:"description"`
	WorkoutPlan        *[]WorkoutPlanDayRequest `json:"workoutPlan" binding:"omitempty,dive"`
	MealPlan           *[]MealPlanDayRequest    `json:"mealPlan" binding:"omitempty,dive"`
	DailyCalorieTarget *float64                 `json:"dailyCalorieTarget" binding:"omitempty,gte=0"`
	DailyProteinTarget *float64                 `json:"dailyProteinTarget" binding:"omitempty,gte=0"`
	StartDate          *Date                    `json:"startDate"`
	EndDate            *Date                    `json:"endDate"`
	Status             *domain.PlanStatus       `json:"status" binding:"omitempty,oneof=active completed paused"`
	Notes              *string                  `json:"notes"`
}

func toWorkoutPlan(in []WorkoutPlanDayRequest) []domain.WorkoutPlanDay {
	out := make([]domain.WorkoutPlanDay, len(in))
	for i, d := range in {
		exercises := make([]domain.PlannedExercise, len(d.Exercises))
		for j, e := range d.Exercises {
			exercises[j] = domain.PlannedExercise{
				Name:     e.Name,
				Sets:     e.Sets,
				Reps:     e.Reps,
				Weight:   e.Weight,
				Duration: e.Duration,
				Notes:    e.Notes,
			}
		}
		out[i] = domain.WorkoutPlanDay{Day: d.Day, Exercises: exercises, IsRestDay: d.IsRestDay}
	}
	return out
}

func toMealPlan(in []MealPlanDayRequest) []domain.MealPlanDay {
	out := make([]domain.MealPlanDay, len(in))
	for i, d := range in {
		meals := make([]domain.PlannedMeal, len(d.Meals))
		for j, m := range d.Meals {
			meals[j] = domain.PlannedMeal{
				Type:           m.Type,
				Description:    m.Description,
				TargetCalories: m.TargetCalories,
				Suggestions:    m.Suggestions,
			}
		}
		out[i] = domain.MealPlanDay{Day: d.Day, Meals: meals}
	}
	return out
}

// --- Client management ---

// GetClients godoc
// @Summary Get trainer's clients
// @Description Retrieves a list of clients assigned to the currently authenticated trainer.
// @Tags Trainer
// @Produce json
// @Security BearerAuth
// @Success 200 {array} UserResponse
// @Failure 403 {object} ErrorResponse "Access denied. Trainers only."
// @Router /trainer/clients [get]
func (h *TrainerHandler) GetClients(c *gin.Context) {
	clients, err := h.trainerService.ListClients(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapUsers(clients))
}

// GetClientDetail godoc
// @Summary One client with their recent activity
// @Tags Trainer
// @Security BearerAuth
// @Param clientId path string true "Client ID"
// @Success 200 {object} ClientDetailResponse
// @Failure 404 {object} ErrorResponse "Client not found"
// @Router /trainer/clients/{clientId} [get]
func (h *TrainerHandler) GetClientDetail(c *gin.Context) {
	clientID, ok := objectIDParam(c, "clientId", service.ErrClientNotFound)
	if !ok {
		return
	}
	detail, err := h.trainerService.GetClientDetail(c.Request.Context(), currentUser(c).ID, clientID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ClientDetailResponse{
		Client:         mapUser(detail.Client, currentUser(c)),
		RecentWorkouts: detail.RecentWorkouts,
		RecentMeals:    detail.RecentMeals,
		WeightLogs:     detail.WeightLogs,
		ActiveGoals:    mapGoals(detail.ActiveGoals),
	})
}

// AssignClient godoc
// @Summary Take on a user who has no trainer
// @Tags Trainer
// @Security BearerAuth
// @Param clientId path string true "User ID"
// @Success 200 {object} AssignClientResponse
// @Failure 409 {object} ErrorResponse "User already has another trainer"
// @Router /trainer/clients/{clientId}/assign [post]
func (h *TrainerHandler) AssignClient(c *gin.Context) {
	clientID, ok := objectIDParam(c, "clientId", service.ErrClientNotFound)
	if !ok {
		return
	}
	trainer := currentUser(c)
	client, err := h.trainerService.AssignClient(c.Request.Context(), trainer.ID, clientID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, AssignClientResponse{
		Message: "Client assigned successfully",
		Client:  mapUser(client, trainer),
	})
}

// --- Requests ---

// GetRequests godoc
// @Summary Pending requests addressed to the trainer
// @Tags Trainer
// @Security BearerAuth
// @Success 200 {array} RequestResponse
// @Router /trainer/requests [get]
func (h *TrainerHandler) GetRequests(c *gin.Context) {
	requests, err := h.trainerService.ListRequests(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapRequests(requests))
}

// ApproveRequest godoc
// @Summary Accept a request; the user becomes the trainer's client
// @Tags Trainer
// @Security BearerAuth
// @Param requestId path string true "Request ID"
// @Param body body RespondRequestBody false "Optional reply"
// @Success 200 {object} RequestResponse
// @Failure 404 {object} ErrorResponse "Request not found or already processed"
// @Failure 409 {object} ErrorResponse "User was assigned to another trainer"
// @Router /trainer/requests/{requestId}/approve [put]
func (h *TrainerHandler) ApproveRequest(c *gin.Context) {
	h.respond(c, h.trainerService.ApproveRequest)
}

// RejectRequest godoc
// @Summary Decline a request
// @Tags Trainer
// @Security BearerAuth
// @Param requestId path string true "Request ID"
// @Param body body RespondRequestBody false "Optional reply"
// @Success 200 {object} RequestResponse
// @Failure 404 {object} ErrorResponse "Request not found or already processed"
// @Router /trainer/requests/{requestId}/reject [put]
func (h *TrainerHandler) RejectRequest(c *gin.Context) {
	h.respond(c, h.trainerService.RejectRequest)
}

type resolveFunc func(ctx context.Context, trainerID, requestID primitive.ObjectID, response string) (*service.RequestDetails, error)

func (h *TrainerHandler) respond(c *gin.Context, resolve resolveFunc) {
	requestID, ok := objectIDParam(c, "requestId", service.ErrRequestNotFound)
	if !ok {
		return
	}
	var req RespondRequestBody
	if !bindOptionalJSON(c, &req) {
		return
	}

	details, err := resolve(c.Request.Context(), currentUser(c).ID, requestID, req.ResponseMessage)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapRequest(details))
}

// --- Plans ---

// GetPlans godoc
// @Summary Plans the trainer has written
// @Tags Trainer
// @Security BearerAuth
// @Success 200 {array} PlanResponse
// @Router /trainer/plans [get]
func (h *TrainerHandler) GetPlans(c *gin.Context) {
	plans, err := h.trainerService.ListPlans(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapPlans(plans))
}

// GetPlan godoc
// @Summary Get one plan
// @Tags Trainer
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Success 200 {object} PlanResponse
// @Failure 404 {object} ErrorResponse "Plan not found"
// @Router /trainer/plans/{planId} [get]
func (h *TrainerHandler) GetPlan(c *gin.Context) {
	planID, ok := objectIDParam(c, "planId", service.ErrPlanNotFound)
	if !ok {
		return
	}
	plan, err := h.trainerService.GetPlan(c.Request.Context(), currentUser(c).ID, planID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapPlan(plan))
}

// CreatePlan godoc
// @Summary Write a plan for one of the trainer's clients
// @Tags Trainer
// @Security BearerAuth
// @Param plan body CreatePlanRequest true "Plan"
// @Success 201 {object} PlanResponse
// @Failure 404 {object} ErrorResponse "Client not found or not assigned to you"
// @Router /trainer/plans [post]
func (h *TrainerHandler) CreatePlan(c *gin.Context) {
	var req CreatePlanRequest
	if !bindJSON(c, &req) {
		return
	}
	clientID, err := parseObjectID(req.ClientID)
	if err != nil {
		respondError(c, service.ErrPlanClient)
		return
	}

	plan, err := h.trainerService.CreatePlan(c.Request.Context(), currentUser(c).ID, &domain.TrainerPlan{
		ClientID:           clientID,
		Name:               req.Name,
		Description:        req.Description,
		WorkoutPlan:        toWorkoutPlan(req.WorkoutPlan),
		MealPlan:           toMealPlan(req.MealPlan),
		DailyCalorieTarget: req.DailyCalorieTarget,
		DailyProteinTarget: req.DailyProteinTarget,
		StartDate:          req.StartDate.timeOrZero(),
		EndDate:            req.EndDate.timePtr(),
		Status:             req.Status,
		Notes:              req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mapPlan(plan))
}

// UpdatePlan godoc
// @Summary Change a plan
// @Tags Trainer
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Param plan body UpdatePlanRequest true "Fields to change"
// @Success 200 {object} PlanResponse
// @Router /trainer/plans/{planId} [put]
func (h *TrainerHandler) UpdatePlan(c *gin.Context) {
	planID, ok := objectIDParam(c, "planId", service.ErrPlanNotFound)
	if !ok {
		return
	}
	var req UpdatePlanRequest
	if !bindJSON(c, &req) {
		return
	}

	patch := service.PlanPatch{
		Name:               req.Name,
		Description:        req.Description,
		DailyCalorieTarget: req.DailyCalorieTarget,
		DailyProteinTarget: req.DailyProteinTarget,
		StartDate:          req.StartDate.timePtr(),
		EndDate:            req.EndDate.timePtr(),
		Status:             req.Status,
		Notes:              req.Notes,
	}
	if req.WorkoutPlan != nil {
		days := toWorkoutPlan(*req.WorkoutPlan)
		patch.WorkoutPlan = &days
	}
	if req.MealPlan != nil {
		days := toMealPlan(*req.MealPlan)
		patch.MealPlan = &days
	}

	plan, err := h.trainerService.UpdatePlan(c.Request.Context(), currentUser(c).ID, planID, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapPlan(plan))
}

// DeletePlan godoc
// @Summary Delete a plan
// @Tags Trainer
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Success 200 {object} MessageResponse
// @Router /trainer/plans/{planId} [delete]
func (h *TrainerHandler) DeletePlan(c *gin.Context) {
	planID, ok := objectIDParam(c, "planId", service.ErrPlanNotFound)
	if !ok {
		return
	}
	if err := h.trainerService.DeletePlan(c.Request.Context(), currentUser(c).ID, planID); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Plan removed")
}
