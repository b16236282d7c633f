package leave

import (
	"github.com/Yaseenhassan/college-leave-app/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	rbacService middleware.RBACService,
	rdb *redis.Client,
) {
	leaves := r.Group("/leave-applications")

	leaves.Use(middleware.AuthMiddleware())

	{
		leaves.GET("", middleware.RBACAuthorize(rbacService, "leave", "read"), h.GetAll)
		leaves.GET("/mine", middleware.RBACAuthorize(rbacService, "leave", "read"), h.GetMine)
		leaves.GET("/:id", middleware.RBACAuthorize(rbacService, "leave", "read"), h.GetById)
		leaves.POST("", middleware.RBACAuthorize(rbacService, "leave", "create"), middleware.Idempotency(rdb), h.Create)
		leaves.POST("/:id/hod-decision", middleware.RBACAuthorize(rbacService, "leave", "approve_hod"), middleware.Idempotency(rdb), h.DecideHOD)
		leaves.POST("/:id/principal-decision", middleware.RBACAuthorize(rbacService, "leave", "approve_principal"), middleware.Idempotency(rdb), h.DecidePrincipal)
		leaves.POST("/:id/cancel", middleware.RBACAuthorize(rbacService, "leave", "cancel"), h.Cancel)
	}
}
