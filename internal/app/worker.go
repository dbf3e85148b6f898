package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"go-timekeep/internal/config"
	"go-timekeep/internal/messaging/kafka"
	"go-timekeep/internal/messaging/kafka/producer"
	"go-timekeep/internal/shared/connection"
	"go-timekeep/internal/shift"
	"go-timekeep/internal/usershift"
)

// RunWorker publishes outbox events to Kafka and sweeps expired schedule
// assignments once an hour.
func RunWorker(cfg *config.Config) error {
	logger := zap.L().Named("app.worker")

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

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if cfg.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, 5)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, 5)
	if err != nil {
		return err
	}
	defer rdb.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)
	shiftService := shift.NewService(sqlDB, shift.NewRepository(gormDB), rdb, cfg.WorkHours)
	userShiftService := usershift.NewService(sqlDB, usershift.NewRepository(gormDB), shiftService)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(
		ctx,
		outboxRepo,
		kafkaWriter,
		logger,
		3*time.Second,
	)

	go sweepExpiredAssignments(ctx, userShiftService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()

	return nil
}

func sweepExpiredAssignments(ctx context.Context, svc usershift.Service, logger *zap.Logger) {
	log := logger.Named("schedule.sweeper")
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("schedule sweeper stopped")
			return
		case <-ticker.C:
			expired, err := svc.ExpireStale(ctx, time.Now().UTC())
			if err != nil {
				log.Error("expire stale assignments failed", zap.Error(err))
				continue
			}
			if expired > 0 {
				log.Info("expired stale assignments", zap.Int64("count", expired))
			}
		}
	}
}
