package app

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-timekeep/internal/config"
	"go-timekeep/internal/shared/connection"
)

func BuildApp(router *gin.Engine, cfg *config.Config) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
		cfg.DBSSLMode,
		5,
	)
	if err != nil {
		return err
	}
	zap.L().Info("database connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, 5)
	if err != nil {
		return err
	}
	zap.L().Info("redis connection established")

	return registerModules(router, cfg, sqlDB, gormDB, rdb)
}
