package controllers

import (
	"net/http"

	"transport-report-be/middlewares"
	"transport-report-be/services"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	reports *services.ReportService
}

func NewReportController(reports *services.ReportService) *ReportController {
	return &ReportController{reports: reports}
}

// CreateReport handles an anonymous report submission
func (h *ReportController) CreateReport(c *gin.Context) {
	var input services.SubmitReportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.reports.Submit(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Report submitted successfully! Authorities have been notified.",
		"report":  report,
	})
}

// GetAllReports lists reports matching the search and status query parameters
func (h *ReportController) GetAllReports(c *gin.Context) {
	reports, err := h.reports.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	filtered := services.Filter(reports, c.Query("search"), c.DefaultQuery("status", services.StatusAll))
	c.JSON(http.StatusOK, gin.H{
		"reports":      filtered,
		"totalReports": len(filtered),
	})
}

// GetReport retrieves a report by its ID
func (h *ReportController) GetReport(c *gin.Context) {
	report, err := h.reports.Find(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetDashboard returns summary statistics and the filtered report list
func (h *ReportController) GetDashboard(c *gin.Context) {
	identity, ok := middlewares.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	dash, err := h.reports.Dashboard(c.Request.Context(), c.Query("search"), c.DefaultQuery("status", services.StatusAll))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":           identity,
		"stats":          dash.Stats,
		"resolutionRate": dash.ResolutionRate,
		"categoryLabels": dash.CategoryLabels,
		"reports":        dash.Reports,
	})
}
