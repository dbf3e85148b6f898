package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"go-timekeep/internal/attendance"
	"go-timekeep/internal/company"
	"go-timekeep/internal/config"
	"go-timekeep/internal/employee"
	"go-timekeep/internal/events"
	"go-timekeep/internal/face"
	"go-timekeep/internal/messaging/kafka"
	"go-timekeep/internal/messaging/kafka/consumer"
	"go-timekeep/internal/request"
	"go-timekeep/internal/salary"
	"go-timekeep/internal/shared/connection"
	"go-timekeep/internal/shared/counter"
	"go-timekeep/internal/shift"
	"go-timekeep/internal/storage"
	"go-timekeep/internal/usershift"
)

// RunConsumer renders payslips for approved salaries as the requests arrive
// on Kafka.
func RunConsumer(cfg *config.Config) error {
	logger := zap.L().Named("app.consumer")

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

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, 5)
	if err != nil {
		return err
	}
	defer rdb.Close()

	artifactStore, err := storage.NewLocalStore(cfg.ArtifactDir)
	if err != nil {
		return err
	}

	var verifier face.Verifier
	if cfg.Face.ServiceURL != "" {
		verifier = face.NewHTTPVerifier(cfg.Face)
	} else {
		verifier = face.NewFileVerifier(cfg.ArtifactDir)
	}
	matcher := face.NewEuclideanMatcher(cfg.Face.MatchThreshold)

	outboxRepo := kafka.NewOutboxRepository(sqlDB)
	employeeRepo := employee.NewRepository(gormDB)
	companyService := company.NewService(company.NewRepository(gormDB))
	requestService := request.NewService(sqlDB, request.NewRepository(gormDB))
	shiftService := shift.NewService(sqlDB, shift.NewRepository(gormDB), rdb, cfg.WorkHours)
	userShiftService := usershift.NewService(sqlDB, usershift.NewRepository(gormDB), shiftService)
	employeeService := employee.NewService(sqlDB, employeeRepo, counter.NewRepository(gormDB), outboxRepo, rdb, verifier)

	gate := attendance.NewGate(cfg.Face.Required, verifier, matcher, companyService, requestService)
	attendanceService := attendance.NewService(
		sqlDB,
		attendance.NewRepository(gormDB),
		gate,
		employeeService,
		userShiftService,
		artifactStore,
		attendance.Policy{WorkStart: cfg.WorkHours.WorkStart, WorkEnd: cfg.WorkHours.WorkEnd},
	)

	salaryService := salary.NewService(
		sqlDB,
		salary.NewRepository(gormDB),
		attendanceService,
		employeeRepo,
		outboxRepo,
		artifactStore,
		cfg.Payroll,
	)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.KafkaBroker},
		Topic:          events.SalaryPayslipRequestedTopic,
		GroupID:        "go-timekeep-payslip",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeSalaryPayslipRequested(ctx, reader, salaryService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
