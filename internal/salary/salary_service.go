package salary

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-timekeep/internal/attendance"
	"go-timekeep/internal/config"
	"go-timekeep/internal/employee"
	employeeerrors "go-timekeep/internal/employee/errors"
	"go-timekeep/internal/events"
	"go-timekeep/internal/messaging/kafka"
	salaryerrors "go-timekeep/internal/salary/errors"
	"go-timekeep/internal/shared/contextutil"
	"go-timekeep/internal/storage"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusPaid     = "paid"
)

// AttendanceSource supplies the month's attendance facts. Satisfied by the
// attendance service.
type AttendanceSource interface {
	MonthRecords(ctx context.Context, companyID, employeeID string, year int, month time.Month) ([]attendance.Attendance, error)
}

// ProfileSource is the slice of the employee repository the engine needs.
type ProfileSource interface {
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*employee.Employee, error)
	FindAllByCompany(ctx context.Context, companyID string) ([]employee.Employee, error)
}

//go:generate mockgen -source=salary_service.go -destination=mock/salary_service_mock.go -package=mock
type Service interface {
	Compute(ctx context.Context, companyID, employeeID string, month, year int) (SalaryResponse, error)
	ComputeForCompany(ctx context.Context, companyID string, month, year int) (BulkComputeResult, error)
	GetAll(ctx context.Context, companyID string, q ListQuery) ([]SalaryResponse, int64, error)
	GetByID(ctx context.Context, companyID, id string) (SalaryResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateSalaryRequest) (SalaryResponse, error)
	UpdateStatus(ctx context.Context, companyID, actorID, id, status string) (SalaryResponse, error)
	RenderPayslip(ctx context.Context, companyID, id string) (string, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	att       AttendanceSource
	profiles  ProfileSource
	outbox    kafka.OutboxRepository
	artifacts storage.Store
	cfg       config.PayrollConfig
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	att AttendanceSource,
	profiles ProfileSource,
	outbox kafka.OutboxRepository,
	artifacts storage.Store,
	cfg config.PayrollConfig,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("salary.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salary.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		att:       att,
		profiles:  profiles,
		outbox:    outbox,
		artifacts: artifacts,
		cfg:       cfg,
		logger:    l,
	}
}

// tally is the per-month aggregation of attendance facts.
type tally struct {
	workingDays   int
	lateCount     int
	earlyCount    int
	absentCount   int
	overtimeHours float64
}

func tallyRecords(records []attendance.Attendance) tally {
	var t tally
	t.workingDays = len(records)
	for _, rec := range records {
		// One penalty per record, keyed on its final status. A late arrival
		// followed by an early departure ends the day as early and is
		// charged once.
		switch rec.Status {
		case attendance.StatusLate:
			t.lateCount++
		case attendance.StatusEarly:
			t.earlyCount++
		case attendance.StatusAbsent:
			t.absentCount++
		}
		t.overtimeHours += rec.OvertimeHours
	}
	return t
}

func validPeriod(month, year int) bool {
	return month >= 1 && month <= 12 && year >= 2000 && year <= 2100
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (s *service) Compute(ctx context.Context, companyID, employeeID string, month, year int) (SalaryResponse, error) {
	record, err := s.compute(ctx, companyID, employeeID, month, year)
	if err != nil {
		return SalaryResponse{}, err
	}
	return mapToResponse(*record), nil
}

func (s *service) compute(ctx context.Context, companyID, employeeID string, month, year int) (*Salary, error) {
	if !validPeriod(month, year) {
		return nil, salaryerrors.ErrInvalidPeriod
	}

	empl, err := s.profiles.FindByIDAndCompany(ctx, companyID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employeeerrors.ErrEmployeeNotFound
		}
		return nil, err
	}

	if _, err := s.repo.FindByEmployeeAndPeriod(ctx, companyID, employeeID, month, year); err == nil {
		return nil, salaryerrors.ErrSalaryExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	records, err := s.att.MonthRecords(ctx, companyID, employeeID, year, time.Month(month))
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, salaryerrors.ErrNoAttendance
	}

	t := tallyRecords(records)
	plan := PlanFor(s.cfg, empl.EmployeeType)

	baseSalary := 0.0
	overtimePay := 0.0
	if plan.PaysBase {
		baseSalary = empl.BaseSalary
	}
	if plan.PaysOvertime {
		overtimePay = t.overtimeHours * HourlyRate(baseSalary) * plan.OvertimeMultiplier
	}

	deduction := float64(t.lateCount)*plan.LatePenalty +
		float64(t.absentCount)*plan.AbsentPenalty +
		float64(t.earlyCount)*plan.EarlyPenalty

	// Deductions can drive the total negative; the employer settles that
	// outside the system.
	totalSalary := baseSalary + overtimePay + empl.Allowance + empl.Bonus - deduction

	record := &Salary{
		ID:          uuid.New(),
		CompanyID:   empl.CompanyID,
		EmployeeID:  empl.ID,
		Month:       month,
		Year:        year,
		BaseSalary:  baseSalary,
		OvertimePay: overtimePay,
		Allowance:   empl.Allowance,
		Bonus:       empl.Bonus,
		Deduction:   deduction,
		TotalSalary: totalSalary,
		Status:      StatusPending,
		WorkingDays: t.workingDays,
		TotalDays:   daysInMonth(year, time.Month(month)),
		Note: fmt.Sprintf("auto-computed: %d working days, %d late, %d early, %d absent, %.2f overtime hours",
			t.workingDays, t.lateCount, t.earlyCount, t.absentCount, t.overtimeHours),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Create(ctx, record); err != nil {
		return nil, mapSalaryError(err)
	}

	if s.outbox != nil {
		rid := contextutil.GetRequestID(ctx)
		event := events.SalaryGeneratedEvent{
			EventType:  "salary_generated",
			RequestID:  rid,
			SalaryID:   record.ID.String(),
			EmployeeID: employeeID,
			CompanyID:  companyID,
			Month:      month,
			Year:       year,
			OccurredAt: time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return nil, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "salary",
			AggregateID:   record.ID.String(),
			EventType:     event.EventType,
			Topic:         events.SalaryGeneratedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("salary computed",
		zap.String("employee_id", employeeID),
		zap.Int("month", month),
		zap.Int("year", year),
		zap.Float64("total_salary", totalSalary),
	)
	record.EmployeeName = empl.FullName
	record.EmployeeCode = empl.EmployeeCode
	return record, nil
}

func (s *service) ComputeForCompany(ctx context.Context, companyID string, month, year int) (BulkComputeResult, error) {
	if !validPeriod(month, year) {
		return BulkComputeResult{}, salaryerrors.ErrInvalidPeriod
	}

	profiles, err := s.profiles.FindAllByCompany(ctx, companyID)
	if err != nil {
		return BulkComputeResult{}, err
	}

	var result BulkComputeResult
	for _, empl := range profiles {
		_, err := s.compute(ctx, companyID, empl.ID.String(), month, year)
		if err != nil {
			// Already-generated and no-attendance employees count as
			// failures, not fatal errors.
			result.FailCount++
			s.logger.Debug("bulk salary skip",
				zap.String("employee_id", empl.ID.String()),
				zap.Error(err),
			)
			continue
		}
		result.SuccessCount++
	}

	result.Message = fmt.Sprintf("generated %d of %d salaries for %02d/%d",
		result.SuccessCount, len(profiles), month, year)
	s.logger.Info("bulk salary computed",
		zap.String("company_id", companyID),
		zap.Int("success", result.SuccessCount),
		zap.Int("failed", result.FailCount),
	)
	return result, nil
}

func (s *service) GetAll(ctx context.Context, companyID string, q ListQuery) ([]SalaryResponse, int64, error) {
	records, total, err := s.repo.FindAllByCompany(ctx, companyID, q)
	if err != nil {
		return nil, 0, err
	}
	return mapToListResponse(records), total, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (SalaryResponse, error) {
	record, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SalaryResponse{}, salaryerrors.ErrSalaryNotFound
		}
		return SalaryResponse{}, err
	}
	return mapToResponse(*record), nil
}

func (s *service) Update(ctx context.Context, companyID, id string, req UpdateSalaryRequest) (SalaryResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SalaryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	record, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SalaryResponse{}, salaryerrors.ErrSalaryNotFound
		}
		return SalaryResponse{}, err
	}
	if record.Status != StatusPending {
		return SalaryResponse{}, salaryerrors.ErrInvalidStatusTransition
	}

	if req.Bonus != nil {
		record.Bonus = *req.Bonus
	}
	if req.Deduction != nil {
		record.Deduction = *req.Deduction
	}
	if req.Note != nil {
		record.Note = *req.Note
	}
	record.TotalSalary = record.BaseSalary + record.OvertimePay + record.Allowance + record.Bonus - record.Deduction

	if err := qtx.Update(ctx, record); err != nil {
		return SalaryResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return SalaryResponse{}, err
	}
	return mapToResponse(*record), nil
}

func (s *service) UpdateStatus(ctx context.Context, companyID, actorID, id, status string) (SalaryResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SalaryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	record, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SalaryResponse{}, salaryerrors.ErrSalaryNotFound
		}
		return SalaryResponse{}, err
	}

	now := time.Now().UTC()
	switch {
	case record.Status == StatusPending && status == StatusApproved:
		record.Status = StatusApproved
		record.ApprovedAt = &now
		if actor, err := uuid.Parse(actorID); err == nil {
			record.ApprovedBy = &actor
		}
	case record.Status == StatusPending && status == StatusRejected:
		record.Status = StatusRejected
	case record.Status == StatusApproved && status == StatusPaid:
		record.Status = StatusPaid
		record.PaidAt = &now
	default:
		return SalaryResponse{}, salaryerrors.ErrInvalidStatusTransition
	}

	if err := qtx.Update(ctx, record); err != nil {
		return SalaryResponse{}, err
	}

	// Approval kicks off payslip rendering through the outbox.
	if record.Status == StatusApproved && s.outbox != nil {
		rid := contextutil.GetRequestID(ctx)
		event := events.SalaryPayslipRequestedEvent{
			EventType:   "salary_payslip_requested",
			SalaryID:    record.ID.String(),
			CompanyID:   companyID,
			RequestedBy: actorID,
			OccurredAt:  now,
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return SalaryResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "salary",
			AggregateID:   record.ID.String(),
			EventType:     event.EventType,
			Topic:         events.SalaryPayslipRequestedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			return SalaryResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return SalaryResponse{}, err
	}

	s.logger.Info("salary status changed",
		zap.String("salary_id", id),
		zap.String("status", record.Status),
	)
	return mapToResponse(*record), nil
}

// RenderPayslip builds the PDF for an approved or paid salary and stores it
// through the artifact store. Called by the payslip consumer and exposed as
// an admin endpoint for regeneration.
func (s *service) RenderPayslip(ctx context.Context, companyID, id string) (string, error) {
	record, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", salaryerrors.ErrSalaryNotFound
		}
		return "", err
	}
	if record.Status != StatusApproved && record.Status != StatusPaid {
		return "", salaryerrors.ErrSalaryNotApproved
	}

	empl, err := s.profiles.FindByIDAndCompany(ctx, companyID, record.EmployeeID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", employeeerrors.ErrEmployeeNotFound
		}
		return "", err
	}

	pdf, err := buildPayslipPDF(payslipLines(record, empl))
	if err != nil {
		return "", err
	}

	ref, err := s.artifacts.Save(ctx, record.EmployeeID.String(), "payslip", "pdf", pdf)
	if err != nil {
		return "", err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	now := time.Now().UTC()
	record.PayslipRef = ref
	record.PayslipGeneratedAt = &now
	if err := qtx.Update(ctx, record); err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}

	s.logger.Info("payslip rendered",
		zap.String("salary_id", id),
		zap.String("ref", ref),
	)
	return ref, nil
}

func payslipLines(record *Salary, empl *employee.Employee) []string {
	return []string{
		fmt.Sprintf("Payslip %02d/%d", record.Month, record.Year),
		fmt.Sprintf("Employee: %s (%s)", empl.FullName, empl.EmployeeCode),
		fmt.Sprintf("Working days: %d of %d", record.WorkingDays, record.TotalDays),
		fmt.Sprintf("Base salary: %.2f", record.BaseSalary),
		fmt.Sprintf("Overtime pay: %.2f", record.OvertimePay),
		fmt.Sprintf("Allowance: %.2f", record.Allowance),
		fmt.Sprintf("Bonus: %.2f", record.Bonus),
		fmt.Sprintf("Deduction: %.2f", record.Deduction),
		fmt.Sprintf("Total: %.2f", record.TotalSalary),
		fmt.Sprintf("Status: %s", record.Status),
	}
}
