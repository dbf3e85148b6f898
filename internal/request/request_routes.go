package request

import (
	"github.com/gin-gonic/gin"

	"go-timekeep/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	requests := r.Group("/requests")

	requests.Use(middleware.AuthMiddleware())

	{
		requests.POST("", middleware.RateLimitByUser(1, 5), h.Create)
		requests.GET("/me", h.GetMine)
		requests.GET("", middleware.RoleMiddleware("ADMIN", "HR", "MANAGER"), h.GetAll)
		requests.GET("/:id", h.GetByID)
		requests.POST("/:id/approve", middleware.RoleMiddleware("ADMIN", "HR", "MANAGER"), h.Approve)
		requests.POST("/:id/reject", middleware.RoleMiddleware("ADMIN", "HR", "MANAGER"), h.Reject)
		requests.POST("/:id/cancel", h.Cancel)
	}
}
