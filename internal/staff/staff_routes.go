package staff

import (
	"github.com/Yaseenhassan/college-leave-app/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	rbacService middleware.RBACService,
) {
	members := r.Group("/staff")

	members.Use(middleware.AuthMiddleware())

	{
		members.GET("", middleware.RBACAuthorize(rbacService, "staff", "read"), h.GetAll)
		members.GET("/options", middleware.RBACAuthorize(rbacService, "staff", "read"), h.GetOptions)
		members.POST("", middleware.RBACAuthorize(rbacService, "staff", "create"), h.Create)
		members.GET("/:id", middleware.RBACAuthorize(rbacService, "staff", "read"), h.GetById)
		members.PUT("/:id", middleware.RBACAuthorize(rbacService, "staff", "update"), h.Update)
		members.DELETE("/:id", middleware.RBACAuthorize(rbacService, "staff", "delete"), h.Delete)
	}
}
