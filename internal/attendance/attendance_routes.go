package attendance

import (
	"github.com/gin-gonic/gin"

	"go-timekeep/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware())
	{
		attendances.POST("/check-in",
			middleware.RateLimitByUser(0.5, 3),
			h.CheckIn,
		)
		attendances.POST("/check-out",
			middleware.RateLimitByUser(0.5, 3),
			h.CheckOut,
		)
		attendances.GET("/today", h.GetToday)
		attendances.GET("/me", h.GetMy)
		attendances.GET("",
			middleware.RoleMiddleware("ADMIN", "HR", "MANAGER"),
			h.GetAll,
		)
	}
}
