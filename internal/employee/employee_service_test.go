package employee

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"go-timekeep/internal/domain"
	employeeerrors "go-timekeep/internal/employee/errors"
	"go-timekeep/internal/face"
	faceerrors "go-timekeep/internal/face/errors"
	"go-timekeep/internal/messaging/kafka"
	"go-timekeep/internal/shared/counter"
)

type fakeRepo struct {
	withTxFn   func(tx *sql.Tx) Repository
	createFn   func(ctx context.Context, empl *Employee) error
	findAllFn  func(ctx context.Context, companyID string) ([]Employee, error)
	optionsFn  func(ctx context.Context, companyID string) ([]Employee, error)
	findByIDFn func(ctx context.Context, companyID, id string) (*Employee, error)
	updateFn   func(ctx context.Context, empl *Employee) error
	deleteFn   func(ctx context.Context, companyID, id string) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, empl *Employee) error {
	return f.createFn(ctx, empl)
}
func (f *fakeRepo) FindAllByCompany(ctx context.Context, companyID string) ([]Employee, error) {
	return f.findAllFn(ctx, companyID)
}
func (f *fakeRepo) FindOptionsByCompany(ctx context.Context, companyID string) ([]Employee, error) {
	return f.optionsFn(ctx, companyID)
}
func (f *fakeRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Employee, error) {
	return f.findByIDFn(ctx, companyID, id)
}
func (f *fakeRepo) Update(ctx context.Context, empl *Employee) error {
	return f.updateFn(ctx, empl)
}
func (f *fakeRepo) Delete(ctx context.Context, companyID, id string) error {
	return f.deleteFn(ctx, companyID, id)
}

type fakeCounter struct {
	next int64
}

func (f *fakeCounter) GetNextValue(ctx context.Context, companyID, counterType string) (int64, error) {
	f.next++
	return f.next, nil
}

var _ counter.Repository = (*fakeCounter)(nil)

type fakeOutbox struct {
	kafka.OutboxRepository
	created []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}

type fakeVerifier struct {
	descriptor face.Descriptor
	err        error
}

func (f *fakeVerifier) ExtractDescriptor(ctx context.Context, image []byte) (face.Descriptor, error) {
	return f.descriptor, f.err
}

func newCreateReq(empType string) CreateEmployeeRequest {
	return CreateEmployeeRequest{
		FullName:     "Dina Pratiwi",
		Email:        "dina@example.com",
		EmployeeType: empType,
		HireDate:     "2025-03-01",
		BaseSalary:   5280000,
		Allowance:    500000,
	}
}

func TestService_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	companyID := uuid.NewString()
	ctx := context.Background()

	var saved Employee
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, empl *Employee) error { saved = *empl; return nil }

	outbox := &fakeOutbox{}
	svc := NewService(db, repo, &fakeCounter{}, outbox, nil, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Create(ctx, companyID, newCreateReq("official"))

	assert.NoError(t, err)
	assert.Equal(t, "EMP-000001", resp.EmployeeCode)
	assert.Equal(t, "official", resp.EmployeeType)
	assert.Equal(t, 5280000.0, saved.BaseSalary)
	assert.Len(t, outbox.created, 1)
	assert.Equal(t, "employee_created", outbox.created[0].EventType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_InternBaseSalaryPinnedToZero(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	var saved Employee
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, empl *Employee) error { saved = *empl; return nil }

	svc := NewService(db, repo, &fakeCounter{}, nil, nil, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Create(context.Background(), uuid.NewString(), newCreateReq("intern"))

	assert.NoError(t, err)
	assert.Equal(t, 0.0, saved.BaseSalary)
	assert.Equal(t, 0.0, resp.BaseSalary)
	// Allowance survives; only base pay is pinned.
	assert.Equal(t, 500000.0, saved.Allowance)
}

func TestService_Update_TypeTransitionToIntern(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	companyID := uuid.NewString()
	existing := &Employee{
		ID:           uuid.New(),
		CompanyID:    uuid.MustParse(companyID),
		EmployeeCode: "EMP-000007",
		FullName:     "Dina Pratiwi",
		Email:        "dina@example.com",
		EmployeeType: domain.EmployeeTypeContract,
		BaseSalary:   4000000,
	}

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByIDFn = func(ctx context.Context, companyID, id string) (*Employee, error) { return existing, nil }
	repo.updateFn = func(ctx context.Context, empl *Employee) error { *existing = *empl; return nil }

	svc := NewService(db, repo, &fakeCounter{}, nil, nil, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()

	req := UpdateEmployeeRequest{
		FullName:     existing.FullName,
		Email:        existing.Email,
		EmployeeType: "intern",
		HireDate:     "2025-03-01",
		BaseSalary:   4000000,
	}
	resp, err := svc.Update(context.Background(), companyID, existing.ID.String(), req)

	assert.NoError(t, err)
	assert.Equal(t, "intern", resp.EmployeeType)
	assert.Equal(t, 0.0, existing.BaseSalary)
}

func TestService_EnrollFace(t *testing.T) {
	companyID := uuid.NewString()

	newExisting := func() *Employee {
		return &Employee{
			ID:        uuid.New(),
			CompanyID: uuid.MustParse(companyID),
		}
	}

	t.Run("Appends descriptor", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()

		existing := newExisting()
		repo := &fakeRepo{}
		repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
		repo.findByIDFn = func(ctx context.Context, companyID, id string) (*Employee, error) { return existing, nil }
		repo.updateFn = func(ctx context.Context, empl *Employee) error { *existing = *empl; return nil }

		verifier := &fakeVerifier{descriptor: face.Descriptor{0.1, 0.2, 0.3}}
		svc := NewService(db, repo, &fakeCounter{}, nil, nil, verifier)

		mock.ExpectBegin()
		mock.ExpectCommit()

		count, err := svc.EnrollFace(context.Background(), companyID, existing.ID.String(), []byte("img"))
		assert.NoError(t, err)
		assert.Equal(t, 1, count)
		assert.Len(t, existing.FaceDescriptors, 1)
	})

	t.Run("Detection failure propagates", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()

		verifier := &fakeVerifier{err: faceerrors.ErrNoFaceDetected}
		svc := NewService(db, &fakeRepo{}, &fakeCounter{}, nil, nil, verifier)

		_, err := svc.EnrollFace(context.Background(), companyID, uuid.NewString(), []byte("img"))
		assert.ErrorIs(t, err, faceerrors.ErrNoFaceDetected)
	})

	t.Run("Empty image rejected before calling verifier", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()

		svc := NewService(db, &fakeRepo{}, &fakeCounter{}, nil, nil, &fakeVerifier{})
		_, err := svc.EnrollFace(context.Background(), companyID, uuid.NewString(), nil)
		assert.ErrorIs(t, err, employeeerrors.ErrImageRequired)
	})
}
