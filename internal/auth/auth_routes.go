package auth

import (
	"github.com/gin-gonic/gin"

	"go-timekeep/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimitByIP(0.08, 5), h.Login)
		auth.POST("/refresh", h.RefreshToken)
		auth.POST("/logout", h.Logout)
		auth.GET("/me", middleware.AuthMiddleware(), middleware.RateLimitByUser(2, 5), h.Me)
		auth.POST("/register",
			middleware.AuthMiddleware(),
			middleware.RoleMiddleware("SUPER_ADMIN", "ADMIN", "HR"),
			h.Register,
		)
	}
}
