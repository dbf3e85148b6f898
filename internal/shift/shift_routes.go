package shift

import (
	"github.com/gin-gonic/gin"

	"go-timekeep/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	shifts := r.Group("/shifts")

	shifts.Use(middleware.AuthMiddleware())

	{
		shifts.GET("", h.GetAll)
		shifts.GET("/:id", h.GetByID)
		shifts.POST("", middleware.RoleMiddleware("ADMIN", "HR"), h.Create)
		shifts.PUT("/:id", middleware.RoleMiddleware("ADMIN", "HR"), h.Update)
		shifts.DELETE("/:id", middleware.RoleMiddleware("ADMIN"), h.Delete)
	}
}
