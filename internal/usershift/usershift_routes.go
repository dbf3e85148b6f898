package usershift

import (
	"github.com/gin-gonic/gin"

	"go-timekeep/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	schedules := r.Group("/schedules")

	schedules.Use(middleware.AuthMiddleware())

	{
		schedules.GET("", middleware.RoleMiddleware("ADMIN", "HR", "MANAGER"), h.GetSchedule)
		schedules.POST("", middleware.RoleMiddleware("ADMIN", "HR"), h.Assign)
	}
}
