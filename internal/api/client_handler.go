package api

import (
	"alcyxob/fittrack/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ClientHandler serves the user side of the trainer relationship: requests,
// the assignment itself and the plans a trainer has written.
type ClientHandler struct {
	clientService service.ClientService
}

func NewClientHandler(clientService service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

type TrainerRequestBody struct {
	TrainerID string `json:"trainerId" binding:"required"`
	Message   string `json:"message" binding:"max=500"`
}

// RequestTrainer godoc
// @Summary Ask a trainer to take the caller on
// @Tags Auth
// @Security BearerAuth
// @Param request body TrainerRequestBody true "Trainer and message"
// @Success 201 {object} RequestResponse
// @Failure 404 {object} ErrorResponse "Trainer not found"
// @Failure 409 {object} ErrorResponse "Already assigned or request pending"
// @Router /auth/trainer-request [post]
func (h *ClientHandler) RequestTrainer(c *gin.Context) {
	var req TrainerRequestBody
	if !bindJSON(c, &req) {
		return
	}
	trainerID, err := parseObjectID(req.TrainerID)
	if err != nil {
		respondError(c, service.ErrTrainerNotFound)
		return
	}

	details, err := h.clientService.RequestTrainer(c.Request.Context(), currentUser(c).ID, trainerID, req.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mapRequest(details))
}

// MyRequest godoc
// @Summary The caller's pending trainer request, or null
// @Tags Auth
// @Security BearerAuth
// @Success 200 {object} RequestResponse
// @Router /auth/trainer-request/my-request [get]
func (h *ClientHandler) MyRequest(c *gin.Context) {
	details, err := h.clientService.MyRequest(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	if details == nil {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, mapRequest(details))
}

// CancelRequest godoc
// @Summary Withdraw a pending trainer request
// @Tags Auth
// @Security BearerAuth
// @Param requestId path string true "Request ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse "Request not found or already processed"
// @Router /auth/trainer-request/{requestId} [delete]
func (h *ClientHandler) CancelRequest(c *gin.Context) {
	requestID, ok := objectIDParam(c, "requestId", service.ErrRequestNotFound)
	if !ok {
		return
	}
	if err := h.clientService.CancelRequest(c.Request.Context(), currentUser(c).ID, requestID); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Request cancelled")
}

// RemoveTrainer godoc
// @Summary Drop the caller's assigned trainer
// @Tags Auth
// @Security BearerAuth
// @Success 200 {object} UserResponse
// @Router /auth/profile/trainer [delete]
func (h *ClientHandler) RemoveTrainer(c *gin.Context) {
	acc, err := h.clientService.RemoveTrainer(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapAccount(acc))
}

// MyPlans godoc
// @Summary Plans written for the caller
// @Tags Auth
// @Security BearerAuth
// @Success 200 {array} PlanResponse
// @Router /auth/my-plans [get]
func (h *ClientHandler) MyPlans(c *gin.Context) {
	plans, err := h.clientService.MyPlans(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapPlans(plans))
}

// MyPlan godoc
// @Summary One plan written for the caller
// @Tags Auth
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Success 200 {object} PlanResponse
// @Failure 404 {object} ErrorResponse "Plan not found"
// @Router /auth/my-plans/{planId} [get]
func (h *ClientHandler) MyPlan(c *gin.Context) {
	planID, ok := objectIDParam(c, "planId", service.ErrPlanNotFound)
	if !ok {
		return
	}
	plan, err := h.clientService.MyPlan(c.Request.Context(), currentUser(c).ID, planID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapPlan(plan))
}
