package company

import (
	"github.com/gin-gonic/gin"

	"go-timekeep/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	companies := r.Group("/companies")

	companies.Use(middleware.AuthMiddleware())

	{
		companies.POST("", middleware.RoleMiddleware("SUPER_ADMIN"), h.Create)
		companies.GET("/me", h.GetMe)
		companies.GET("/me/subnets", middleware.RoleMiddleware("ADMIN", "HR"), h.ListSubnets)
		companies.POST("/me/subnets", middleware.RoleMiddleware("ADMIN"), h.AddSubnet)
		companies.DELETE("/me/subnets/:id", middleware.RoleMiddleware("ADMIN"), h.RemoveSubnet)
	}
}
