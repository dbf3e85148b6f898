package salary

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"go-timekeep/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rdb *redis.Client) {
	salaries := r.Group("/salaries")
	salaries.Use(middleware.AuthMiddleware())
	{
		salaries.GET("",
			middleware.RoleMiddleware("ADMIN", "HR", "MANAGER"),
			h.GetAll,
		)
		salaries.GET("/:id",
			middleware.RoleMiddleware("ADMIN", "HR", "MANAGER"),
			h.GetByID,
		)

		// Generation is guarded twice: an idempotency key dedupes client
		// retries, the unique period index rejects true duplicates.
		salaries.POST("/compute",
			middleware.RoleMiddleware("ADMIN", "HR"),
			middleware.Idempotency(rdb),
			h.Compute,
		)
		salaries.POST("/compute-company",
			middleware.RoleMiddleware("ADMIN", "HR"),
			middleware.Idempotency(rdb),
			middleware.RateLimitByUser(0.05, 1),
			h.ComputeForCompany,
		)

		salaries.PUT("/:id",
			middleware.RoleMiddleware("ADMIN", "HR"),
			h.Update,
		)
		salaries.PATCH("/:id/status",
			middleware.RoleMiddleware("ADMIN", "HR"),
			h.UpdateStatus,
		)
		salaries.POST("/:id/payslip",
			middleware.RoleMiddleware("ADMIN", "HR"),
			h.GeneratePayslip,
		)
	}
}
