package request

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	requesterrors "go-timekeep/internal/request/errors"
)

type fakeRepo struct {
	withTxFn      func(tx *sql.Tx) Repository
	createFn      func(ctx context.Context, req *Request) error
	findAllFn     func(ctx context.Context, companyID string, kind *Kind, status *string) ([]Request, error)
	findByEmpFn   func(ctx context.Context, companyID, employeeID string) ([]Request, error)
	findByIDFn    func(ctx context.Context, companyID, id string) (*Request, error)
	updateFn      func(ctx context.Context, req *Request) error
	belongsFn     func(ctx context.Context, companyID, employeeID string) (bool, error)
	overlapFn     func(ctx context.Context, companyID, employeeID string, kind Kind, startDate, endDate time.Time, excludeID *string) (bool, error)
	coveringFn    func(ctx context.Context, companyID, employeeID string, kind Kind, date time.Time) (bool, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, req *Request) error {
	return f.createFn(ctx, req)
}
func (f *fakeRepo) FindAllByCompany(ctx context.Context, companyID string, kind *Kind, status *string) ([]Request, error) {
	return f.findAllFn(ctx, companyID, kind, status)
}
func (f *fakeRepo) FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]Request, error) {
	return f.findByEmpFn(ctx, companyID, employeeID)
}
func (f *fakeRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Request, error) {
	return f.findByIDFn(ctx, companyID, id)
}
func (f *fakeRepo) Update(ctx context.Context, req *Request) error {
	return f.updateFn(ctx, req)
}
func (f *fakeRepo) EmployeeBelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error) {
	return f.belongsFn(ctx, companyID, employeeID)
}
func (f *fakeRepo) HasOverlappingPeriod(ctx context.Context, companyID, employeeID string, kind Kind, startDate, endDate time.Time, excludeID *string) (bool, error) {
	return f.overlapFn(ctx, companyID, employeeID, kind, startDate, endDate, excludeID)
}
func (f *fakeRepo) HasApprovedCovering(ctx context.Context, companyID, employeeID string, kind Kind, date time.Time) (bool, error) {
	return f.coveringFn(ctx, companyID, employeeID, kind, date)
}

func newCreateRequest(employeeID string, kind Kind) CreateRequest {
	return CreateRequest{
		EmployeeID: employeeID,
		Kind:       string(kind),
		StartDate:  "2026-02-02",
		EndDate:    "2026-02-04",
		Reason:     "family matters",
	}
}

func TestService_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	companyID := uuid.NewString()
	employeeID := uuid.NewString()
	actorID := uuid.NewString()
	ctx := context.Background()

	var saved Request
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, req *Request) error { saved = *req; return nil }
	repo.belongsFn = func(ctx context.Context, companyID, employeeID string) (bool, error) { return true, nil }
	repo.overlapFn = func(ctx context.Context, companyID, employeeID string, kind Kind, startDate, endDate time.Time, excludeID *string) (bool, error) {
		return false, nil
	}

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Create(ctx, companyID, actorID, newCreateRequest(employeeID, KindLeave))

	assert.NoError(t, err)
	assert.Equal(t, StatusPending, resp.Status)
	assert.Equal(t, 3, resp.TotalDays)
	assert.Equal(t, KindLeave, saved.Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_Overlap(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.belongsFn = func(ctx context.Context, companyID, employeeID string) (bool, error) { return true, nil }
	repo.overlapFn = func(ctx context.Context, companyID, employeeID string, kind Kind, startDate, endDate time.Time, excludeID *string) (bool, error) {
		return true, nil
	}

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), uuid.NewString(), uuid.NewString(), newCreateRequest(uuid.NewString(), KindRemoteWork))
	assert.ErrorIs(t, err, requesterrors.ErrRequestOverlap)
}

func TestService_Create_ShiftChangeNeedsTarget(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), uuid.NewString(), uuid.NewString(), newCreateRequest(uuid.NewString(), KindShiftChange))
	assert.ErrorIs(t, err, requesterrors.ErrTargetShiftRequired)
}

func TestService_Transitions(t *testing.T) {
	companyID := uuid.NewString()
	approverID := uuid.NewString()
	ownerID := uuid.NewString()

	newPending := func() *Request {
		return &Request{
			ID:         uuid.New(),
			CompanyID:  uuid.MustParse(companyID),
			EmployeeID: uuid.MustParse(ownerID),
			Kind:       KindLeave,
			Status:     StatusPending,
			CreatedBy:  uuid.MustParse(ownerID),
		}
	}

	setup := func(t *testing.T, rec *Request) (Service, sqlmock.Sqlmock, func()) {
		t.Helper()
		db, mock, _ := sqlmock.New()

		repo := &fakeRepo{}
		repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
		repo.findByIDFn = func(ctx context.Context, companyID, id string) (*Request, error) { return rec, nil }
		repo.updateFn = func(ctx context.Context, req *Request) error { *rec = *req; return nil }

		return NewService(db, repo), mock, func() { db.Close() }
	}

	t.Run("Approve stamps approver and time", func(t *testing.T) {
		rec := newPending()
		svc, mock, closeFn := setup(t, rec)
		defer closeFn()

		mock.ExpectBegin()
		mock.ExpectCommit()

		resp, err := svc.Approve(context.Background(), companyID, approverID, rec.ID.String())
		assert.NoError(t, err)
		assert.Equal(t, StatusApproved, resp.Status)
		assert.NotNil(t, resp.ApprovedBy)
		assert.NotNil(t, resp.ApprovedAt)
	})

	t.Run("Decided request cannot move again", func(t *testing.T) {
		rec := newPending()
		rec.Status = StatusApproved
		svc, mock, closeFn := setup(t, rec)
		defer closeFn()

		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := svc.Reject(context.Background(), companyID, approverID, rec.ID.String(), "late filing")
		assert.ErrorIs(t, err, requesterrors.ErrInvalidStatusTransition)
	})

	t.Run("Reject requires a reason", func(t *testing.T) {
		rec := newPending()
		svc, mock, closeFn := setup(t, rec)
		defer closeFn()

		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := svc.Reject(context.Background(), companyID, approverID, rec.ID.String(), "")
		assert.ErrorIs(t, err, requesterrors.ErrRejectionReasonRequired)
	})

	t.Run("Only the requester can cancel", func(t *testing.T) {
		rec := newPending()
		svc, mock, closeFn := setup(t, rec)
		defer closeFn()

		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := svc.Cancel(context.Background(), companyID, approverID, rec.ID.String())
		assert.ErrorIs(t, err, requesterrors.ErrNotRequestOwner)
	})

	t.Run("Owner cancel succeeds", func(t *testing.T) {
		rec := newPending()
		svc, mock, closeFn := setup(t, rec)
		defer closeFn()

		mock.ExpectBegin()
		mock.ExpectCommit()

		resp, err := svc.Cancel(context.Background(), companyID, ownerID, rec.ID.String())
		assert.NoError(t, err)
		assert.Equal(t, StatusCanceled, resp.Status)
	})
}
