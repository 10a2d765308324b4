package api

import (
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type WeightHandler struct {
	weightService service.WeightService
}

func NewWeightHandler(weightService service.WeightService) *WeightHandler {
	return &WeightHandler{weightService: weightService}
}

type CreateWeightRequest struct {
	Weight          float64  `json:"weight" binding:"required,gt=0"`
	BodyFat         *float64 `json:"bodyFat" binding:"omitempty,gte=0,lte=100"`
	MuscleMass      *float64 `json:"muscleMass" binding:"omitempty,gte=0"`
	WaterPercentage *float64 `json:"waterPercentage" binding:"omitempty,gte=0,lte=100"`
	Notes           string   `json:"notes"`
	Date            *Date    `json:"date"`
}

type UpdateWeightRequest struct {
	Weight          *float64 `json:"weight" binding:"omitempty,gt=0"`
	BodyFat         *float64 `json:"bodyFat" binding:"omitempty,gte=0,lte=100"`
	MuscleMass      *float64 `json:"muscleMass" binding:"omitempty,gte=0"`
	WaterPercentage *float64 `json:"waterPercentage" binding:"omitempty,gte=0,lte=100"`
	Notes           *string  `json:"notes"`
	Date            *Date    `json:"date"`
}

// CreateWeight godoc
// @Summary Log a body measurement
// @Tags Weight
// @Security BearerAuth
// @Param entry body CreateWeightRequest true "Measurement"
// @Success 201 {object} domain.WeightLog
// @Router /weight [post]
func (h *WeightHandler) CreateWeight(c *gin.Context) {
	var req CreateWeightRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, err := h.weightService.Create(c.Request.Context(), currentUser(c).ID, &domain.WeightLog{
		Weight:          req.Weight,
		BodyFat:         req.BodyFat,
		MuscleMass:      req.MuscleMass,
		WaterPercentage: req.WaterPercentage,
		Notes:           req.Notes,
		Date:            req.Date.timeOrZero(),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// ListWeights godoc
// @Summary Newest measurements first
// @Tags Weight
// @Security BearerAuth
// @Param limit query int false "Max entries (default 30)"
// @Success 200 {array} domain.WeightLog
// @Router /weight [get]
func (h *WeightHandler) ListWeights(c *gin.Context) {
	limit, ok := intQuery(c, "limit")
	if !ok {
		return
	}
	entries, err := h.weightService.List(c.Request.Context(), currentUser(c).ID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// LatestWeight godoc
// @Summary Most recent measurement, or null
// @Tags Weight
// @Security BearerAuth
// @Success 200 {object} domain.WeightLog
// @Router /weight/latest [get]
func (h *WeightHandler) LatestWeight(c *gin.Context) {
	entry, err := h.weightService.Latest(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	if entry == nil {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// WeightProgress godoc
// @Summary Change from the first to the latest measurement
// @Tags Weight
// @Security BearerAuth
// @Success 200 {object} domain.WeightProgress
// @Router /weight/stats/progress [get]
func (h *WeightHandler) WeightProgress(c *gin.Context) {
	progress, err := h.weightService.Progress(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

// GetWeight godoc
// @Summary Get one measurement
// @Tags Weight
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Success 200 {object} domain.WeightLog
// @Failure 404 {object} ErrorResponse "Weight log not found"
// @Router /weight/{id} [get]
func (h *WeightHandler) GetWeight(c *gin.Context) {
	id, ok := objectIDParam(c, "id", service.ErrWeightNotFound)
	if !ok {
		return
	}
	entry, err := h.weightService.Get(c.Request.Context(), currentUser(c).ID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// UpdateWeight godoc
// @Summary Change a measurement
// @Tags Weight
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Param entry body UpdateWeightRequest true "Fields to change"
// @Success 200 {object} domain.WeightLog
// @Router /weight/{id} [put]
func (h *WeightHandler) UpdateWeight(c *gin.Context) {
	id, ok := objectIDParam(c, "id", service.ErrWeightNotFound)
	if !ok {
		return
	}
	var req UpdateWeightRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, err := h.weightService.Update(c.Request.Context(), currentUser(c).ID, id, service.WeightPatch{
		Weight:          req.Weight,
		BodyFat:         req.BodyFat,
		MuscleMass:      req.MuscleMass,
		WaterPercentage: req.WaterPercentage,
		Notes:           req.Notes,
		Date:            req.Date.timePtr(),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// DeleteWeight godoc
// @Summary Delete a measurement
// @Tags Weight
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Success 200 {object} MessageResponse
// @Router /weight/{id} [delete]
func (h *WeightHandler) DeleteWeight(c *gin.Context) {
	id, ok := objectIDParam(c, "id", service.ErrWeightNotFound)
	if !ok {
		return
	}
	if err := h.weightService.Delete(c.Request.Context(), currentUser(c).ID, id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Weight log removed")
}
