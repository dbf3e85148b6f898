package app

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-timekeep/internal/attendance"
	"go-timekeep/internal/auth"
	"go-timekeep/internal/company"
	"go-timekeep/internal/config"
	"go-timekeep/internal/employee"
	"go-timekeep/internal/face"
	"go-timekeep/internal/messaging/kafka"
	"go-timekeep/internal/request"
	"go-timekeep/internal/salary"
	"go-timekeep/internal/shared/counter"
	"go-timekeep/internal/shift"
	"go-timekeep/internal/storage"
	"go-timekeep/internal/usershift"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	logger := zap.L()

	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	companyRepo := company.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	requestRepo := request.NewRepository(gormDB)
	salaryRepo := salary.NewRepository(gormDB)
	shiftRepo := shift.NewRepository(gormDB)
	userShiftRepo := usershift.NewRepository(gormDB)

	// --- Shared infrastructure ---
	artifactStore, err := storage.NewLocalStore(cfg.ArtifactDir)
	if err != nil {
		return err
	}

	// The HTTP verifier needs a running face service; the file verifier
	// reads descriptors from disk and keeps development self-contained.
	var verifier face.Verifier
	if cfg.Face.ServiceURL != "" {
		verifier = face.NewHTTPVerifier(cfg.Face)
	} else {
		verifier = face.NewFileVerifier(cfg.ArtifactDir)
	}
	matcher := face.NewEuclideanMatcher(cfg.Face.MatchThreshold)

	// --- Services ---
	companyService := company.NewService(companyRepo)
	shiftService := shift.NewService(db, shiftRepo, rdb, cfg.WorkHours)
	userShiftService := usershift.NewService(db, userShiftRepo, shiftService)
	requestService := request.NewService(db, requestRepo)
	employeeService := employee.NewService(db, employeeRepo, counterRepo, outboxRepo, rdb, verifier)
	authService := auth.NewService(authRepo, employeeRepo)

	gate := attendance.NewGate(cfg.Face.Required, verifier, matcher, companyService, requestService)
	attendanceService := attendance.NewService(
		db,
		attendanceRepo,
		gate,
		employeeService,
		userShiftService,
		artifactStore,
		attendance.Policy{WorkStart: cfg.WorkHours.WorkStart, WorkEnd: cfg.WorkHours.WorkEnd},
	)

	salaryService := salary.NewService(db, salaryRepo, attendanceService, employeeRepo, outboxRepo, artifactStore, cfg.Payroll)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService)
	authHandler := auth.NewHandler(authService)
	companyHandler := company.NewHandler(companyService)
	employeeHandler := employee.NewHandler(employeeService)
	requestHandler := request.NewHandler(requestService)
	salaryHandler := salary.NewHandler(salaryService)
	shiftHandler := shift.NewHandler(shiftService)
	userShiftHandler := usershift.NewHandler(userShiftService, employeeService.GetType)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		attendance.RegisterRoutes(api, attendanceHandler)
		auth.RegisterRoutes(api, authHandler)
		company.RegisterRoutes(api, companyHandler)
		employee.RegisterRoutes(api, employeeHandler, logger)
		request.RegisterRoutes(api, requestHandler)
		salary.RegisterRoutes(api, salaryHandler, rdb)
		shift.RegisterRoutes(api, shiftHandler)
		usershift.RegisterRoutes(api, userShiftHandler)
	}

	return nil
}
