package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	attendanceerrors "go-timekeep/internal/attendance/errors"
	"go-timekeep/internal/domain"
	"go-timekeep/internal/employee"
	"go-timekeep/internal/storage"
	"go-timekeep/internal/usershift"
	usershifterrors "go-timekeep/internal/usershift/errors"
)

// EmployeeDirectory is the slice of the employee service the gate flow
// needs.
type EmployeeDirectory interface {
	GetForVerification(ctx context.Context, companyID, id string) (*employee.Employee, error)
}

// ShiftResolver is satisfied by the usershift service.
type ShiftResolver interface {
	ResolveForDate(ctx context.Context, companyID, employeeID string, employeeType domain.EmployeeType, date time.Time) (*usershift.ShiftAssignment, error)
}

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	CheckIn(ctx context.Context, companyID, employeeID string, in CheckInput) (AttendanceResponse, error)
	CheckOut(ctx context.Context, companyID, employeeID string, in CheckInput) (AttendanceResponse, error)
	GetToday(ctx context.Context, companyID, employeeID string) (AttendanceResponse, error)
	GetMy(ctx context.Context, companyID, employeeID string, q ListQuery) ([]AttendanceResponse, int64, error)
	GetAll(ctx context.Context, companyID string, q ListQuery) ([]AttendanceResponse, int64, error)
	MonthRecords(ctx context.Context, companyID, employeeID string, year int, month time.Month) ([]Attendance, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	gate      *Gate
	directory EmployeeDirectory
	resolver  ShiftResolver
	artifacts storage.Store
	policy    Policy
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	gate *Gate,
	directory EmployeeDirectory,
	resolver ShiftResolver,
	artifacts storage.Store,
	policy Policy,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		gate:      gate,
		directory: directory,
		resolver:  resolver,
		artifacts: artifacts,
		policy:    policy,
		now:       time.Now,
		logger:    l,
	}
}

func (s *service) CheckIn(ctx context.Context, companyID, employeeID string, in CheckInput) (AttendanceResponse, error) {
	now := s.now()
	day := truncateToDay(now)

	empl, err := s.directory.GetForVerification(ctx, companyID, employeeID)
	if err != nil {
		return AttendanceResponse{}, err
	}

	if err := s.gate.Admit(ctx, AdmissionInput{
		Employee:  empl,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		Image:     in.Image,
		IP:        in.IP,
		Now:       now,
	}); err != nil {
		return AttendanceResponse{}, err
	}

	assignment, err := s.resolver.ResolveForDate(ctx, companyID, employeeID, empl.EmployeeType, now)
	if err != nil {
		return AttendanceResponse{}, err
	}

	if _, err := s.repo.FindByEmployeeAndDate(ctx, companyID, employeeID, day); err == nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedIn
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, err
	}

	policy := s.policyFor(assignment)
	result := policy.ClassifyCheckIn(day, now)

	var imageRef string
	if len(in.Image) > 0 && s.artifacts != nil {
		imageRef, err = s.artifacts.Save(ctx, employeeID, "checkin", "jpg", in.Image)
		if err != nil {
			s.logger.Error("check-in image store failed", zap.Error(err))
			return AttendanceResponse{}, err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAttendanceNotFound
	}
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAttendanceNotFound
	}
	var assignmentID *uuid.UUID
	if parsed, err := uuid.Parse(assignment.ID); err == nil {
		assignmentID = &parsed
	}
	record := &Attendance{
		ID:              uuid.New(),
		CompanyID:       companyUUID,
		EmployeeID:      employeeUUID,
		AssignmentID:    assignmentID,
		AttendanceDate:  day,
		CheckInTime:     now,
		Status:          result.Status,
		LateMinutes:     result.LateMinutes,
		CheckInLat:      in.Latitude,
		CheckInLng:      in.Longitude,
		IPAddress:       in.IP,
		CheckInImageRef: imageRef,
	}
	if err := qtx.Create(ctx, record); err != nil {
		// The unique day index backstops a concurrent first check-in.
		return AttendanceResponse{}, mapAttendanceError(err)
	}

	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	s.logger.Info("check-in recorded",
		zap.String("employee_id", employeeID),
		zap.String("status", result.Status),
		zap.Int("late_minutes", result.LateMinutes),
	)
	return mapToResponse(*record), nil
}

func (s *service) CheckOut(ctx context.Context, companyID, employeeID string, in CheckInput) (AttendanceResponse, error) {
	now := s.now()
	day := truncateToDay(now)

	empl, err := s.directory.GetForVerification(ctx, companyID, employeeID)
	if err != nil {
		return AttendanceResponse{}, err
	}

	if err := s.gate.Admit(ctx, AdmissionInput{
		Employee:  empl,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		Image:     in.Image,
		IP:        in.IP,
		Now:       now,
	}); err != nil {
		return AttendanceResponse{}, err
	}

	record, err := s.repo.FindByEmployeeAndDate(ctx, companyID, employeeID, day)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrNotCheckedIn
		}
		return AttendanceResponse{}, err
	}
	if record.CheckOutTime != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedOut
	}

	// Check-out measures against the same shift boundaries the check-in was
	// classified with, anchored to the record's own day so a shift closed
	// after midnight still measures against the day it opened.
	assignment, err := s.resolver.ResolveForDate(ctx, companyID, employeeID, empl.EmployeeType, record.AttendanceDate)
	if err != nil && !errors.Is(err, usershifterrors.ErrNoScheduledShift) {
		return AttendanceResponse{}, err
	}
	result := s.policyFor(assignment).ClassifyCheckOut(record.AttendanceDate, record.CheckInTime, now, record.Status)

	var imageRef string
	if len(in.Image) > 0 && s.artifacts != nil {
		imageRef, err = s.artifacts.Save(ctx, employeeID, "checkout", "jpg", in.Image)
		if err != nil {
			s.logger.Error("check-out image store failed", zap.Error(err))
			return AttendanceResponse{}, err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	record.CheckOutTime = &now
	record.Status = result.Status
	record.TotalHours = result.TotalHours
	record.OvertimeHours = result.OvertimeHours
	record.EarlyMinutes = result.EarlyMinutes
	record.CheckOutLat = in.Latitude
	record.CheckOutLng = in.Longitude
	record.CheckOutImageRef = imageRef

	if err := qtx.Update(ctx, record); err != nil {
		return AttendanceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	s.logger.Info("check-out recorded",
		zap.String("employee_id", employeeID),
		zap.String("status", result.Status),
		zap.Float64("total_hours", result.TotalHours),
		zap.Float64("overtime_hours", result.OvertimeHours),
	)
	return mapToResponse(*record), nil
}

func (s *service) GetToday(ctx context.Context, companyID, employeeID string) (AttendanceResponse, error) {
	record, err := s.repo.FindByEmployeeAndDate(ctx, companyID, employeeID, truncateToDay(s.now()))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrAttendanceNotFound
		}
		return AttendanceResponse{}, err
	}
	return mapToResponse(*record), nil
}

func (s *service) GetMy(ctx context.Context, companyID, employeeID string, q ListQuery) ([]AttendanceResponse, int64, error) {
	records, total, err := s.repo.FindByEmployee(ctx, companyID, employeeID, q)
	if err != nil {
		return nil, 0, err
	}
	return mapToListResponse(records), total, nil
}

func (s *service) GetAll(ctx context.Context, companyID string, q ListQuery) ([]AttendanceResponse, int64, error) {
	records, total, err := s.repo.FindAllByCompany(ctx, companyID, q)
	if err != nil {
		return nil, 0, err
	}
	return mapToListResponse(records), total, nil
}

// MonthRecords feeds the payroll engine.
func (s *service) MonthRecords(ctx context.Context, companyID, employeeID string, year int, month time.Month) ([]Attendance, error) {
	return s.repo.FindByEmployeeAndMonth(ctx, companyID, employeeID, year, month)
}

// policyFor prefers the resolved shift's own boundaries over the defaults.
func (s *service) policyFor(assignment *usershift.ShiftAssignment) Policy {
	if assignment != nil && assignment.Shift != nil {
		return Policy{WorkStart: assignment.Shift.StartTime, WorkEnd: assignment.Shift.EndTime}
	}
	return s.policy
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
