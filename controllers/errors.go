package controllers

import (
	"errors"
	"net/http"

	"transport-report-be/services"
	"transport-report-be/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto HTTP responses
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	var ve *services.ValidationError
	var se *services.SubmissionError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": ve.Fields})
	case services.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
	case errors.As(err, &se):
		c.JSON(http.StatusInternalServerError, gin.H{"error": se.Error()})
	case utils.IsTimeout(err):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "Request timed out"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}
