package request

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=request_repo.go -destination=mock/request_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, req *Request) error
	FindAllByCompany(ctx context.Context, companyID string, kind *Kind, status *string) ([]Request, error)
	FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]Request, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Request, error)
	Update(ctx context.Context, req *Request) error
	EmployeeBelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error)
	HasOverlappingPeriod(ctx context.Context, companyID, employeeID string, kind Kind, startDate, endDate time.Time, excludeID *string) (bool, error)
	HasApprovedCovering(ctx context.Context, companyID, employeeID string, kind Kind, date time.Time) (bool, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, req *Request) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, kind *Kind, status *string) ([]Request, error) {
	db := r.db.WithContext(ctx).
		Where("company_id = ?", companyID)
	if kind != nil {
		db = db.Where("kind = ?", *kind)
	}
	if status != nil {
		db = db.Where("status = ?", *status)
	}

	var requests []Request
	err := db.Order("start_date DESC").Find(&requests).Error
	return requests, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]Request, error) {
	var requests []Request
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("employee_id = ?", employeeID).
		Order("start_date DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Request, error) {
	var req Request
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		First(&req, "id = ?", id).Error
	return &req, err
}

func (r *repository) Update(ctx context.Context, req *Request) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *repository) EmployeeBelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Where("company_id = ?", companyID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}

func (r *repository) HasOverlappingPeriod(ctx context.Context, companyID, employeeID string, kind Kind, startDate, endDate time.Time, excludeID *string) (bool, error) {
	db := r.db.WithContext(ctx).
		Model(&Request{}).
		Where("company_id = ?", companyID).
		Where("employee_id = ?", employeeID).
		Where("kind = ?", kind).
		Where("status NOT IN ?", []string{StatusRejected, StatusCanceled}).
		Where("NOT (end_date < ? OR start_date > ?)", startDate, endDate)

	if excludeID != nil && *excludeID != "" {
		db = db.Where("id <> ?", *excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}

// HasApprovedCovering reports whether an approved request of the given kind
// spans date. The attendance gate uses this for leave blocks and remote-work
// network exemptions.
func (r *repository) HasApprovedCovering(ctx context.Context, companyID, employeeID string, kind Kind, date time.Time) (bool, error) {
	day := date.Format("2006-01-02")
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Request{}).
		Where("company_id = ?", companyID).
		Where("employee_id = ?", employeeID).
		Where("kind = ?", kind).
		Where("status = ?", StatusApproved).
		Where("start_date <= ? AND end_date >= ?", day, day).
		Count(&count).Error
	return count > 0, err
}
