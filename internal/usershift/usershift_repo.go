package usershift

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"

	"go-timekeep/internal/tenant"
)

//go:generate mockgen -source=usershift_repo.go -destination=mock/usershift_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *ShiftAssignment) error
	FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*ShiftAssignment, error)
	FindAllByCompany(ctx context.Context, companyID string, from, to time.Time) ([]ShiftAssignment, error)
	ExpireBefore(ctx context.Context, cutoff time.Time) (int64, error)
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

func (r *repository) Create(ctx context.Context, a *ShiftAssignment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*ShiftAssignment, error) {
	var a ShiftAssignment
	err := r.db.WithContext(ctx).
		Preload("Shift").
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ? AND date = ?", employeeID, date.Format("2006-01-02")).
		First(&a).Error
	return &a, err
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, from, to time.Time) ([]ShiftAssignment, error) {
	var assignments []ShiftAssignment
	err := r.db.WithContext(ctx).
		Preload("Shift").
		Scopes(tenant.Scope(companyID)).
		Where("date BETWEEN ? AND ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("date ASC").
		Find(&assignments).Error
	return assignments, err
}

// ExpireBefore marks assignments older than cutoff inactive. Used by the
// nightly worker sweep.
func (r *repository) ExpireBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&ShiftAssignment{}).
		Where("date < ? AND status = ?", cutoff.Format("2006-01-02"), StatusActive).
		Update("status", StatusInactive)
	return res.RowsAffected, res.Error
}
