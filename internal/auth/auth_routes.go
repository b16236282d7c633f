package auth

import (
	"github.com/Yaseenhassan/college-leave-app/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimitByIP(0.08, 5), handler.Login)
		auth.POST("/refresh", handler.RefreshToken)
		auth.POST("/logout", middleware.RateLimitByStaff(2, 5), handler.Logout)
		auth.GET("/me", middleware.AuthMiddleware(), middleware.RateLimitByStaff(2, 5), handler.Me)
	}
}
