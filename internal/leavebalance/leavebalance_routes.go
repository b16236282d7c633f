package leavebalance

import (
	"github.com/Yaseenhassan/college-leave-app/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	rbacService middleware.RBACService,
) {
	balances := r.Group("/leave-balances")

	balances.Use(middleware.AuthMiddleware())

	{
		balances.GET("", middleware.RBACAuthorize(rbacService, "balance", "read"), h.Get)
		balances.GET("/staff/:staffId", middleware.RBACAuthorize(rbacService, "balance", "read"), h.GetByStaff)
		balances.POST("", middleware.RBACAuthorize(rbacService, "balance", "initialize"), h.Initialize)
		balances.POST("/adjust", middleware.RBACAuthorize(rbacService, "balance", "adjust"), h.Adjust)
	}
}
