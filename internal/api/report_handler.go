package api

import (
	"alcyxob/fittrack/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Summary godoc
// @Summary Workouts, nutrition, weight and goals over a date range
// @Tags Reports
// @Security BearerAuth
// @Param startDate query string false "Start (default 30 days ago)"
// @Param endDate query string false "End (default now, inclusive)"
// @Success 200 {object} domain.ProgressReport
// @Router /reports/summary [get]
func (h *ReportHandler) Summary(c *gin.Context) {
	dates, ok := dateRangeQuery(c)
	if !ok {
		return
	}
	report, err := h.reportService.Summary(c.Request.Context(), currentUser(c).ID, dates.From, dates.To)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Weekly godoc
// @Summary Workout totals per ISO week
// @Tags Reports
// @Security BearerAuth
// @Param weeks query int false "Weeks (default 4)"
// @Success 200 {array} domain.WeeklyWorkouts
// @Router /reports/weekly [get]
func (h *ReportHandler) Weekly(c *gin.Context) {
	weeks, ok := intQuery(c, "weeks")
	if !ok {
		return
	}
	buckets, err := h.reportService.Weekly(c.Request.Context(), currentUser(c).ID, weeks)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, buckets)
}

// DailyCalories godoc
// @Summary Calories eaten and burned per day
// @Tags Reports
// @Security BearerAuth
// @Param days query int false "Days (default 14)"
// @Success 200 {object} service.CalorieBalance
// @Router /reports/daily-calories [get]
func (h *ReportHandler) DailyCalories(c *gin.Context) {
	days, ok := intQuery(c, "days")
	if !ok {
		return
	}
	balance, err := h.reportService.DailyCalories(c.Request.Context(), currentUser(c).ID, days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, balance)
}
