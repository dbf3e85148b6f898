package usershift

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-timekeep/internal/domain"
	"go-timekeep/internal/shift"
	usershifterrors "go-timekeep/internal/usershift/errors"
)

//go:generate mockgen -source=usershift_service.go -destination=mock/usershift_service_mock.go -package=mock
type Service interface {
	// ResolveForDate returns the employee's assignment for the given day,
	// provisioning one on the fly for official employees on weekdays.
	ResolveForDate(ctx context.Context, companyID, employeeID string, employeeType domain.EmployeeType, date time.Time) (*ShiftAssignment, error)
	Assign(ctx context.Context, companyID string, employeeType domain.EmployeeType, req AssignShiftRequest) (AssignmentResponse, error)
	GetSchedule(ctx context.Context, companyID string, from, to time.Time) ([]AssignmentResponse, error)
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	shiftSvc shift.Service
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, shiftSvc shift.Service, logger ...*zap.Logger) Service {
	l := zap.L().Named("usershift.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &service{db: db, repo: repo, shiftSvc: shiftSvc, logger: l}
}

func isWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (s *service) ResolveForDate(ctx context.Context, companyID, employeeID string, employeeType domain.EmployeeType, date time.Time) (*ShiftAssignment, error) {
	day := truncateToDay(date)

	existing, err := s.repo.FindByEmployeeAndDate(ctx, companyID, employeeID, day)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Only official employees get an assignment provisioned on demand.
	if employeeType != domain.EmployeeTypeOfficial {
		return nil, usershifterrors.ErrNoScheduledShift
	}
	if isWeekend(day) {
		return nil, usershifterrors.ErrNoScheduledShift
	}

	sh, err := s.shiftSvc.EnsureAdministrative(ctx, companyID)
	if err != nil {
		return nil, err
	}

	assignment := &ShiftAssignment{
		ID:         uuid.NewString(),
		CompanyID:  companyID,
		EmployeeID: employeeID,
		ShiftID:    sh.ID,
		Date:       day,
		Status:     StatusActive,
	}
	if err := s.repo.Create(ctx, assignment); err != nil {
		// A concurrent resolution won the unique index. Use its row.
		if errors.Is(MapAssignmentError(err), usershifterrors.ErrAssignmentExists) {
			return s.repo.FindByEmployeeAndDate(ctx, companyID, employeeID, day)
		}
		return nil, err
	}

	s.logger.Info("shift assignment provisioned",
		zap.String("company_id", companyID),
		zap.String("employee_id", employeeID),
		zap.String("date", day.Format("2006-01-02")))

	assignment.Shift = sh
	return assignment, nil
}

func (s *service) Assign(ctx context.Context, companyID string, employeeType domain.EmployeeType, req AssignShiftRequest) (AssignmentResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return AssignmentResponse{}, err
	}
	if employeeType == domain.EmployeeTypeOfficial && isWeekend(date) {
		return AssignmentResponse{}, usershifterrors.ErrWeekendAssignment
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AssignmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	assignment := &ShiftAssignment{
		ID:         uuid.NewString(),
		CompanyID:  companyID,
		EmployeeID: req.EmployeeID,
		ShiftID:    req.ShiftID,
		Date:       date,
		Status:     StatusActive,
	}
	if err := qtx.Create(ctx, assignment); err != nil {
		return AssignmentResponse{}, MapAssignmentError(err)
	}

	if err := tx.Commit(); err != nil {
		return AssignmentResponse{}, err
	}

	return mapToResponse(*assignment), nil
}

func (s *service) GetSchedule(ctx context.Context, companyID string, from, to time.Time) ([]AssignmentResponse, error) {
	assignments, err := s.repo.FindAllByCompany(ctx, companyID, from, to)
	if err != nil {
		return nil, err
	}
	resp := make([]AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		resp = append(resp, mapToResponse(a))
	}
	return resp, nil
}

// ExpireStale deactivates assignments whose day has fully passed.
func (s *service) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	cutoff := truncateToDay(now)
	n, err := s.repo.ExpireBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info("expired stale shift assignments", zap.Int64("count", n))
	}
	return n, nil
}
