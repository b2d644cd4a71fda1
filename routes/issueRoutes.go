package routes

import (
	"transport-report-be/controllers"

	"github.com/gin-gonic/gin"
)

// ReportRoutes sets up the report and dashboard routes. Submitting a
// report needs no session; reading reports does.
func ReportRoutes(r *gin.Engine, reports *controllers.ReportController, requireSession, limitSubmissions gin.HandlerFunc) {
	group := r.Group("/api/reports")
	{
		group.POST("", limitSubmissions, reports.CreateReport)
		group.GET("", requireSession, reports.GetAllReports)
		group.GET("/:id", requireSession, reports.GetReport)
	}

	r.GET("/api/dashboard", requireSession, reports.GetDashboard)
}
