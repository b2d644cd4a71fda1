package routes

import (
	"transport-report-be/controllers"

	"github.com/gin-gonic/gin"
)

// AuthRoutes sets up the authentication routes
func AuthRoutes(r *gin.Engine, auth *controllers.AuthController, requireSession gin.HandlerFunc) {
	group := r.Group("/api/auth")
	{
		group.POST("/login", auth.LoginUser)
		group.POST("/logout", requireSession, auth.LogoutUser)
		group.GET("/me", requireSession, auth.GetMe)
	}
}
