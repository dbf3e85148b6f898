package main

import (
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"go-timekeep/internal/app"
	"go-timekeep/internal/config"
	"go-timekeep/internal/shared/apperror"
)

func main() {
	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	if err := app.RunConsumer(config.Load()); err != nil {
		logger.Fatal("run consumer failed", zap.Error(err))
	}
}
