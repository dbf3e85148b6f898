package salary

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"go-timekeep/internal/attendance"
	"go-timekeep/internal/config"
	"go-timekeep/internal/domain"
	"go-timekeep/internal/employee"
	"go-timekeep/internal/messaging/kafka"
	salaryerrors "go-timekeep/internal/salary/errors"
)

type fakeRepo struct {
	withTxFn     func(tx *sql.Tx) Repository
	createFn     func(ctx context.Context, s *Salary) error
	findPeriodFn func(ctx context.Context, companyID, employeeID string, month, year int) (*Salary, error)
	findByIDFn   func(ctx context.Context, companyID, id string) (*Salary, error)
	findAllFn    func(ctx context.Context, companyID string, q ListQuery) ([]Salary, int64, error)
	updateFn     func(ctx context.Context, s *Salary) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}
func (f *fakeRepo) Create(ctx context.Context, s *Salary) error { return f.createFn(ctx, s) }
func (f *fakeRepo) FindByEmployeeAndPeriod(ctx context.Context, companyID, employeeID string, month, year int) (*Salary, error) {
	return f.findPeriodFn(ctx, companyID, employeeID, month, year)
}
func (f *fakeRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Salary, error) {
	return f.findByIDFn(ctx, companyID, id)
}
func (f *fakeRepo) FindAllByCompany(ctx context.Context, companyID string, q ListQuery) ([]Salary, int64, error) {
	return f.findAllFn(ctx, companyID, q)
}
func (f *fakeRepo) Update(ctx context.Context, s *Salary) error { return f.updateFn(ctx, s) }

type fakeAttendance struct {
	byEmployee map[string][]attendance.Attendance
}

func (f *fakeAttendance) MonthRecords(ctx context.Context, companyID, employeeID string, year int, month time.Month) ([]attendance.Attendance, error) {
	return f.byEmployee[employeeID], nil
}

type fakeProfiles struct {
	byID func(ctx context.Context, companyID, id string) (*employee.Employee, error)
	all  func(ctx context.Context, companyID string) ([]employee.Employee, error)
}

func (f *fakeProfiles) FindByIDAndCompany(ctx context.Context, companyID, id string) (*employee.Employee, error) {
	return f.byID(ctx, companyID, id)
}
func (f *fakeProfiles) FindAllByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	return f.all(ctx, companyID)
}

type fakeOutbox struct {
	kafka.OutboxRepository
	created []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}

var testPayrollConfig = config.PayrollConfig{
	LatePenalty:   50000,
	AbsentPenalty: 200000,
	EarlyPenalty:  30000,

	InternLatePenalty:   20000,
	InternAbsentPenalty: 100000,
	InternEarlyPenalty:  15000,

	OfficialOvertimeMultiplier: 1.5,
	ContractOvertimeMultiplier: 1.2,
}

var testCompanyID = uuid.New()

func testProfile(empType domain.EmployeeType, base float64) *employee.Employee {
	return &employee.Employee{
		ID:           uuid.New(),
		CompanyID:    testCompanyID,
		EmployeeCode: "EMP-000042",
		FullName:     "Rizky Maulana",
		EmployeeType: empType,
		BaseSalary:   base,
		Allowance:    500000,
		Bonus:        100000,
	}
}

// 2 late days, 1 early day, 1 absent day, 2h overtime, 10 records total.
func monthOfAttendance() []attendance.Attendance {
	records := make([]attendance.Attendance, 0, 10)
	for i := 0; i < 10; i++ {
		rec := attendance.Attendance{Status: attendance.StatusOnTime}
		switch i {
		case 0, 1:
			rec.Status = attendance.StatusLate
			rec.LateMinutes = 15
		case 2:
			rec.Status = attendance.StatusEarly
			rec.EarlyMinutes = 30
		case 3:
			rec.Status = attendance.StatusAbsent
		case 4:
			rec.OvertimeHours = 2
		}
		records = append(records, rec)
	}
	return records
}

func setup(t *testing.T, repo Repository, att AttendanceSource, profiles ProfileSource, outbox kafka.OutboxRepository) (Service, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	svc := NewService(db, repo, att, profiles, outbox, nil, testPayrollConfig)
	return svc, mock, func() { db.Close() }
}

func TestService_Compute(t *testing.T) {
	ctx := context.Background()

	t.Run("official with penalties and overtime", func(t *testing.T) {
		// base 3,520,000 => hourly rate 20,000
		profile := testProfile(domain.EmployeeTypeOfficial, 3520000)
		var created *Salary
		repo := &fakeRepo{
			findPeriodFn: func(ctx context.Context, companyID, employeeID string, month, year int) (*Salary, error) {
				return nil, gorm.ErrRecordNotFound
			},
			createFn: func(ctx context.Context, s *Salary) error {
				created = s
				return nil
			},
		}
		att := &fakeAttendance{byEmployee: map[string][]attendance.Attendance{
			profile.ID.String(): monthOfAttendance(),
		}}
		outbox := &fakeOutbox{}
		svc, mock, closeFn := setup(t, repo, att, &fakeProfiles{byID: func(ctx context.Context, companyID, id string) (*employee.Employee, error) {
			return profile, nil
		}}, outbox)
		defer closeFn()

		mock.ExpectBegin()
		mock.ExpectCommit()

		resp, err := svc.Compute(ctx, testCompanyID.String(), profile.ID.String(), 3, 2026)
		assert.NoError(t, err)

		// overtime: 2h x 20,000 x 1.5 = 60,000
		assert.Equal(t, 3520000.0, resp.BaseSalary)
		assert.Equal(t, 60000.0, resp.OvertimePay)
		// 2 late x 50k + 1 absent x 200k + 1 early x 30k = 330,000
		assert.Equal(t, 330000.0, resp.Deduction)
		assert.Equal(t, 3520000.0+60000+500000+100000-330000, resp.TotalSalary)
		assert.Equal(t, StatusPending, resp.Status)
		assert.Equal(t, 10, resp.WorkingDays)
		assert.Equal(t, 31, resp.TotalDays)

		if assert.NotNil(t, created) {
			assert.Equal(t, 3, created.Month)
			assert.Equal(t, 2026, created.Year)
		}
		if assert.Len(t, outbox.created, 1) {
			assert.Equal(t, "salary_generated", outbox.created[0].EventType)
		}
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("late arrival ending early is charged once", func(t *testing.T) {
		profile := testProfile(domain.EmployeeTypeOfficial, 3520000)
		repo := &fakeRepo{
			findPeriodFn: func(ctx context.Context, companyID, employeeID string, month, year int) (*Salary, error) {
				return nil, gorm.ErrRecordNotFound
			},
			createFn: func(ctx context.Context, s *Salary) error { return nil },
		}
		// The day ends with status early even though the arrival was late;
		// only the early penalty applies.
		att := &fakeAttendance{byEmployee: map[string][]attendance.Attendance{
			profile.ID.String(): {
				{Status: attendance.StatusEarly, LateMinutes: 15, EarlyMinutes: 30},
			},
		}}
		svc, mock, closeFn := setup(t, repo, att, &fakeProfiles{byID: func(ctx context.Context, companyID, id string) (*employee.Employee, error) {
			return profile, nil
		}}, &fakeOutbox{})
		defer closeFn()

		mock.ExpectBegin()
		mock.ExpectCommit()

		resp, err := svc.Compute(ctx, testCompanyID.String(), profile.ID.String(), 3, 2026)
		assert.NoError(t, err)
		assert.Equal(t, 30000.0, resp.Deduction)
	})

	t.Run("contract uses the lower multiplier", func(t *testing.T) {
		profile := testProfile(domain.EmployeeTypeContract, 3520000)
		repo := &fakeRepo{
			findPeriodFn: func(ctx context.Context, companyID, employeeID string, month, year int) (*Salary, error) {
				return nil, gorm.ErrRecordNotFound
			},
			createFn: func(ctx context.Context, s *Salary) error { return nil },
		}
		att := &fakeAttendance{byEmployee: map[string][]attendance.Attendance{
			profile.ID.String(): monthOfAttendance(),
		}}
		svc, mock, closeFn := setup(t, repo, att, &fakeProfiles{byID: func(ctx context.Context, companyID, id string) (*employee.Employee, error) {
			return profile, nil
		}}, nil)
		defer closeFn()

		mock.ExpectBegin()
		mock.ExpectCommit()

		resp, err := svc.Compute(ctx, testCompanyID.String(), profile.ID.String(), 3, 2026)
		assert.NoError(t, err)
		// 2h x 20,000 x 1.2 = 48,000
		assert.Equal(t, 48000.0, resp.OvertimePay)
	})

	t.Run("intern gets no base and no overtime", func(t *testing.T) {
		// profile salary populated, must still be ignored
		profile := testProfile(domain.EmployeeTypeIntern, 1000000)
		repo := &fakeRepo{
			findPeriodFn: func(ctx context.Context, companyID, employeeID string, month, year int) (*Salary, error) {
				return nil, gorm.ErrRecordNotFound
			},
			createFn: func(ctx context.Context, s *Salary) error { return nil },
		}
		att := &fakeAttendance{byEmployee: map[string][]attendance.Attendance{
			profile.ID.String(): monthOfAttendance(),
		}}
		svc, mock, closeFn := setup(t, repo, att, &fakeProfiles{byID: func(ctx context.Context, companyID, id string) (*employee.Employee, error) {
			return profile, nil
		}}, nil)
		defer closeFn()

		mock.ExpectBegin()
		mock.ExpectCommit()

		resp, err := svc.Compute(ctx, testCompanyID.String(), profile.ID.String(), 3, 2026)
		assert.NoError(t, err)
		assert.Equal(t, 0.0, resp.BaseSalary)
		assert.Equal(t, 0.0, resp.OvertimePay)
		// reduced schedule: 2 late x 20k + 1 absent x 100k + 1 early x 15k
		assert.Equal(t, 155000.0, resp.Deduction)
		assert.Equal(t, 500000.0+100000-155000, resp.TotalSalary)
	})

	t.Run("existing period is a terminal conflict", func(t *testing.T) {
		profile := testProfile(domain.EmployeeTypeOfficial, 3520000)
		repo := &fakeRepo{
			findPeriodFn: func(ctx context.Context, companyID, employeeID string, month, year int) (*Salary, error) {
				return &Salary{}, nil
			},
		}
		svc, _, closeFn := setup(t, repo, &fakeAttendance{}, &fakeProfiles{byID: func(ctx context.Context, companyID, id string) (*employee.Employee, error) {
			return profile, nil
		}}, nil)
		defer closeFn()

		_, err := svc.Compute(ctx, testCompanyID.String(), profile.ID.String(), 3, 2026)
		assert.ErrorIs(t, err, salaryerrors.ErrSalaryExists)
	})

	t.Run("lost insert race maps to the same conflict", func(t *testing.T) {
		profile := testProfile(domain.EmployeeTypeOfficial, 3520000)
		repo := &fakeRepo{
			findPeriodFn: func(ctx context.Context, companyID, employeeID string, month, year int) (*Salary, error) {
				return nil, gorm.ErrRecordNotFound
			},
			createFn: func(ctx context.Context, s *Salary) error {
				return &pgconn.PgError{Code: "23505"}
			},
		}
		att := &fakeAttendance{byEmployee: map[string][]attendance.Attendance{
			profile.ID.String(): monthOfAttendance(),
		}}
		svc, mock, closeFn := setup(t, repo, att, &fakeProfiles{byID: func(ctx context.Context, companyID, id string) (*employee.Employee, error) {
			return profile, nil
		}}, nil)
		defer closeFn()

		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := svc.Compute(ctx, testCompanyID.String(), profile.ID.String(), 3, 2026)
		assert.ErrorIs(t, err, salaryerrors.ErrSalaryExists)
	})

	t.Run("zero attendance is rejected", func(t *testing.T) {
		profile := testProfile(domain.EmployeeTypeOfficial, 3520000)
		repo := &fakeRepo{
			findPeriodFn: func(ctx context.Context, companyID, employeeID string, month, year int) (*Salary, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		svc, _, closeFn := setup(t, repo, &fakeAttendance{}, &fakeProfiles{byID: func(ctx context.Context, companyID, id string) (*employee.Employee, error) {
			return profile, nil
		}}, nil)
		defer closeFn()

		_, err := svc.Compute(ctx, testCompanyID.String(), profile.ID.String(), 3, 2026)
		assert.ErrorIs(t, err, salaryerrors.ErrNoAttendance)
	})

	t.Run("invalid period", func(t *testing.T) {
		svc, _, closeFn := setup(t, &fakeRepo{}, &fakeAttendance{}, &fakeProfiles{}, nil)
		defer closeFn()

		_, err := svc.Compute(ctx, testCompanyID.String(), uuid.NewString(), 13, 2026)
		assert.ErrorIs(t, err, salaryerrors.ErrInvalidPeriod)
	})
}

func TestService_ComputeForCompany(t *testing.T) {
	ctx := context.Background()

	paid := testProfile(domain.EmployeeTypeOfficial, 3520000)
	existing := testProfile(domain.EmployeeTypeOfficial, 3520000)
	noShow := testProfile(domain.EmployeeTypeOfficial, 3520000)
	profiles := []employee.Employee{*paid, *existing, *noShow}

	byID := map[string]*employee.Employee{
		paid.ID.String():     paid,
		existing.ID.String(): existing,
		noShow.ID.String():   noShow,
	}
	repo := &fakeRepo{
		findPeriodFn: func(ctx context.Context, companyID, employeeID string, month, year int) (*Salary, error) {
			if employeeID == existing.ID.String() {
				return &Salary{}, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
		createFn: func(ctx context.Context, s *Salary) error { return nil },
	}
	att := &fakeAttendance{byEmployee: map[string][]attendance.Attendance{
		paid.ID.String():     monthOfAttendance(),
		existing.ID.String(): monthOfAttendance(),
	}}
	svc, mock, closeFn := setup(t, repo, att, &fakeProfiles{
		byID: func(ctx context.Context, companyID, id string) (*employee.Employee, error) {
			return byID[id], nil
		},
		all: func(ctx context.Context, companyID string) ([]employee.Employee, error) {
			return profiles, nil
		},
	}, nil)
	defer closeFn()

	mock.ExpectBegin()
	mock.ExpectCommit()

	result, err := svc.ComputeForCompany(ctx, testCompanyID.String(), 3, 2026)
	assert.NoError(t, err)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 2, result.FailCount)
	assert.Contains(t, result.Message, "generated 1 of 3")
}

func TestService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.NewString()

	pendingRecord := func() *Salary {
		return &Salary{
			ID:         uuid.New(),
			CompanyID:  testCompanyID,
			EmployeeID: uuid.New(),
			Month:      3,
			Year:       2026,
			Status:     StatusPending,
		}
	}

	run := func(t *testing.T, record *Salary, target string) (SalaryResponse, error) {
		t.Helper()
		repo := &fakeRepo{
			findByIDFn: func(ctx context.Context, companyID, id string) (*Salary, error) {
				return record, nil
			},
			updateFn: func(ctx context.Context, s *Salary) error { return nil },
		}
		svc, mock, closeFn := setup(t, repo, &fakeAttendance{}, &fakeProfiles{}, nil)
		t.Cleanup(closeFn)

		mock.ExpectBegin()
		mock.ExpectCommit()
		return svc.UpdateStatus(ctx, testCompanyID.String(), actorID, record.ID.String(), target)
	}

	t.Run("approve stamps the approver and requests a payslip", func(t *testing.T) {
		record := pendingRecord()
		outbox := &fakeOutbox{}
		repo := &fakeRepo{
			findByIDFn: func(ctx context.Context, companyID, id string) (*Salary, error) {
				return record, nil
			},
			updateFn: func(ctx context.Context, s *Salary) error { return nil },
		}
		svc, mock, closeFn := setup(t, repo, &fakeAttendance{}, &fakeProfiles{}, outbox)
		defer closeFn()

		mock.ExpectBegin()
		mock.ExpectCommit()

		resp, err := svc.UpdateStatus(ctx, testCompanyID.String(), actorID, record.ID.String(), StatusApproved)
		assert.NoError(t, err)
		assert.Equal(t, StatusApproved, resp.Status)
		assert.NotNil(t, resp.ApprovedAt)
		assert.Equal(t, actorID, *resp.ApprovedBy)
		if assert.Len(t, outbox.created, 1) {
			assert.Equal(t, "salary_payslip_requested", outbox.created[0].EventType)
		}
	})

	t.Run("approved moves to paid with a timestamp", func(t *testing.T) {
		record := pendingRecord()
		record.Status = StatusApproved

		resp, err := run(t, record, StatusPaid)
		assert.NoError(t, err)
		assert.Equal(t, StatusPaid, resp.Status)
		assert.NotNil(t, resp.PaidAt)
	})

	t.Run("pending cannot jump straight to paid", func(t *testing.T) {
		_, err := run(t, pendingRecord(), StatusPaid)
		assert.ErrorIs(t, err, salaryerrors.ErrInvalidStatusTransition)
	})

	t.Run("rejected is terminal", func(t *testing.T) {
		record := pendingRecord()
		record.Status = StatusRejected

		_, err := run(t, record, StatusApproved)
		assert.ErrorIs(t, err, salaryerrors.ErrInvalidStatusTransition)
	})

	t.Run("paid cannot regress", func(t *testing.T) {
		record := pendingRecord()
		record.Status = StatusPaid

		_, err := run(t, record, StatusApproved)
		assert.ErrorIs(t, err, salaryerrors.ErrInvalidStatusTransition)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("recomputes the total", func(t *testing.T) {
		record := &Salary{
			ID:          uuid.New(),
			CompanyID:   testCompanyID,
			Status:      StatusPending,
			BaseSalary:  3520000,
			OvertimePay: 60000,
			Allowance:   500000,
			Bonus:       100000,
			Deduction:   330000,
			TotalSalary: 3850000,
		}
		repo := &fakeRepo{
			findByIDFn: func(ctx context.Context, companyID, id string) (*Salary, error) {
				return record, nil
			},
			updateFn: func(ctx context.Context, s *Salary) error { return nil },
		}
		svc, mock, closeFn := setup(t, repo, &fakeAttendance{}, &fakeProfiles{}, nil)
		defer closeFn()

		mock.ExpectBegin()
		mock.ExpectCommit()

		bonus := 250000.0
		resp, err := svc.Update(ctx, testCompanyID.String(), record.ID.String(), UpdateSalaryRequest{Bonus: &bonus})
		assert.NoError(t, err)
		assert.Equal(t, 250000.0, resp.Bonus)
		assert.Equal(t, 3520000.0+60000+500000+250000-330000, resp.TotalSalary)
	})

	t.Run("approved record is immutable", func(t *testing.T) {
		record := &Salary{ID: uuid.New(), CompanyID: testCompanyID, Status: StatusApproved}
		repo := &fakeRepo{
			findByIDFn: func(ctx context.Context, companyID, id string) (*Salary, error) {
				return record, nil
			},
		}
		svc, mock, closeFn := setup(t, repo, &fakeAttendance{}, &fakeProfiles{}, nil)
		defer closeFn()

		mock.ExpectBegin()
		mock.ExpectRollback()

		bonus := 1.0
		_, err := svc.Update(ctx, testCompanyID.String(), record.ID.String(), UpdateSalaryRequest{Bonus: &bonus})
		assert.ErrorIs(t, err, salaryerrors.ErrInvalidStatusTransition)
	})
}
