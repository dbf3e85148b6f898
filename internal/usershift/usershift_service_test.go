package usershift

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

	"go-timekeep/internal/domain"
	"go-timekeep/internal/shift"
	usershifterrors "go-timekeep/internal/usershift/errors"
)

type fakeRepo struct {
	withTxFn    func(tx *sql.Tx) Repository
	createFn    func(ctx context.Context, a *ShiftAssignment) error
	findFn      func(ctx context.Context, companyID, employeeID string, date time.Time) (*ShiftAssignment, error)
	findAllFn   func(ctx context.Context, companyID string, from, to time.Time) ([]ShiftAssignment, error)
	expireFn    func(ctx context.Context, cutoff time.Time) (int64, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, a *ShiftAssignment) error {
	return f.createFn(ctx, a)
}
func (f *fakeRepo) FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*ShiftAssignment, error) {
	return f.findFn(ctx, companyID, employeeID, date)
}
func (f *fakeRepo) FindAllByCompany(ctx context.Context, companyID string, from, to time.Time) ([]ShiftAssignment, error) {
	return f.findAllFn(ctx, companyID, from, to)
}
func (f *fakeRepo) ExpireBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return f.expireFn(ctx, cutoff)
}

type fakeShiftService struct {
	shift.Service
	ensureFn func(ctx context.Context, companyID string) (*shift.Shift, error)
}

func (f *fakeShiftService) EnsureAdministrative(ctx context.Context, companyID string) (*shift.Shift, error) {
	return f.ensureFn(ctx, companyID)
}

// Monday 2026-01-05.
var monday = time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)

// Saturday 2026-01-03.
var saturday = time.Date(2026, 1, 3, 9, 0, 0, 0, time.UTC)

func TestService_ResolveForDate(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	companyID := uuid.NewString()
	employeeID := uuid.NewString()
	ctx := context.Background()

	adminShift := &shift.Shift{
		ID:        uuid.NewString(),
		CompanyID: companyID,
		Name:      "Administrative Shift",
		StartTime: "08:30",
		EndTime:   "17:30",
		Status:    shift.StatusActive,
	}

	t.Run("Existing assignment is returned untouched", func(t *testing.T) {
		existing := &ShiftAssignment{ID: uuid.NewString(), Shift: adminShift, Status: StatusActive}
		repo := &fakeRepo{}
		repo.findFn = func(ctx context.Context, companyID, employeeID string, date time.Time) (*ShiftAssignment, error) {
			return existing, nil
		}
		repo.createFn = func(ctx context.Context, a *ShiftAssignment) error {
			t.Fatal("create should not be called")
			return nil
		}

		svc := NewService(db, repo, &fakeShiftService{})
		got, err := svc.ResolveForDate(ctx, companyID, employeeID, domain.EmployeeTypeOfficial, monday)
		assert.NoError(t, err)
		assert.Equal(t, existing.ID, got.ID)
	})

	t.Run("Official weekday provisions assignment", func(t *testing.T) {
		var created *ShiftAssignment
		repo := &fakeRepo{}
		repo.findFn = func(ctx context.Context, companyID, employeeID string, date time.Time) (*ShiftAssignment, error) {
			return nil, gorm.ErrRecordNotFound
		}
		repo.createFn = func(ctx context.Context, a *ShiftAssignment) error { created = a; return nil }
		shiftSvc := &fakeShiftService{ensureFn: func(ctx context.Context, companyID string) (*shift.Shift, error) {
			return adminShift, nil
		}}

		svc := NewService(db, repo, shiftSvc)
		got, err := svc.ResolveForDate(ctx, companyID, employeeID, domain.EmployeeTypeOfficial, monday)
		assert.NoError(t, err)
		assert.NotNil(t, created)
		assert.Equal(t, adminShift.ID, got.ShiftID)
		assert.Equal(t, StatusActive, got.Status)
		// Assignment day is the record's own calendar day, stripped of time.
		assert.Equal(t, "2026-01-05", created.Date.Format("2006-01-02"))
	})

	t.Run("Official weekend gets no shift", func(t *testing.T) {
		repo := &fakeRepo{}
		repo.findFn = func(ctx context.Context, companyID, employeeID string, date time.Time) (*ShiftAssignment, error) {
			return nil, gorm.ErrRecordNotFound
		}

		svc := NewService(db, repo, &fakeShiftService{})
		_, err := svc.ResolveForDate(ctx, companyID, employeeID, domain.EmployeeTypeOfficial, saturday)
		assert.ErrorIs(t, err, usershifterrors.ErrNoScheduledShift)
	})

	t.Run("Contract employee without assignment gets no shift", func(t *testing.T) {
		repo := &fakeRepo{}
		repo.findFn = func(ctx context.Context, companyID, employeeID string, date time.Time) (*ShiftAssignment, error) {
			return nil, gorm.ErrRecordNotFound
		}

		svc := NewService(db, repo, &fakeShiftService{})
		_, err := svc.ResolveForDate(ctx, companyID, employeeID, domain.EmployeeTypeContract, monday)
		assert.ErrorIs(t, err, usershifterrors.ErrNoScheduledShift)
	})

	t.Run("Lost provisioning race falls back to winner's row", func(t *testing.T) {
		winner := &ShiftAssignment{ID: uuid.NewString(), Shift: adminShift, Status: StatusActive}
		calls := 0
		repo := &fakeRepo{}
		repo.findFn = func(ctx context.Context, companyID, employeeID string, date time.Time) (*ShiftAssignment, error) {
			calls++
			if calls == 1 {
				return nil, gorm.ErrRecordNotFound
			}
			return winner, nil
		}
		repo.createFn = func(ctx context.Context, a *ShiftAssignment) error {
			return &pgconn.PgError{Code: "23505"}
		}
		shiftSvc := &fakeShiftService{ensureFn: func(ctx context.Context, companyID string) (*shift.Shift, error) {
			return adminShift, nil
		}}

		svc := NewService(db, repo, shiftSvc)
		got, err := svc.ResolveForDate(ctx, companyID, employeeID, domain.EmployeeTypeOfficial, monday)
		assert.NoError(t, err)
		assert.Equal(t, winner.ID, got.ID)
	})
}

func TestService_Assign_WeekendRejected(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, &fakeShiftService{})
	_, err := svc.Assign(context.Background(), uuid.NewString(), domain.EmployeeTypeOfficial, AssignShiftRequest{
		EmployeeID: uuid.NewString(),
		ShiftID:    uuid.NewString(),
		Date:       "2026-01-03",
	})
	assert.ErrorIs(t, err, usershifterrors.ErrWeekendAssignment)
}

func TestService_ExpireStale(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	var gotCutoff time.Time
	repo := &fakeRepo{}
	repo.expireFn = func(ctx context.Context, cutoff time.Time) (int64, error) {
		gotCutoff = cutoff
		return 3, nil
	}

	svc := NewService(db, repo, &fakeShiftService{})
	n, err := svc.ExpireStale(context.Background(), monday)
	assert.NoError(t, err)
	assert.EqualValues(t, 3, n)
	assert.Equal(t, "2026-01-05", gotCutoff.Format("2006-01-02"))
}
