package salary

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"go-timekeep/internal/tenant"
)

//go:generate mockgen -source=salary_repo.go -destination=mock/salary_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, s *Salary) error
	FindByEmployeeAndPeriod(ctx context.Context, companyID, employeeID string, month, year int) (*Salary, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Salary, error)
	FindAllByCompany(ctx context.Context, companyID string, q ListQuery) ([]Salary, int64, error)
	Update(ctx context.Context, s *Salary) error
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

func (r *repository) Create(ctx context.Context, s *Salary) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) FindByEmployeeAndPeriod(ctx context.Context, companyID, employeeID string, month, year int) (*Salary, error) {
	var s Salary
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ? AND month = ? AND year = ?", employeeID, month, year).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Salary, error) {
	var s Salary
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&s, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, q ListQuery) ([]Salary, int64, error) {
	db := r.db.WithContext(ctx).
		Model(&Salary{}).
		Select("salaries.*, employees.full_name AS employee_name, employees.employee_code AS employee_code").
		Joins("JOIN employees ON employees.id = salaries.employee_id").
		Where("salaries.company_id = ?", companyID)

	if q.Month != nil {
		db = db.Where("salaries.month = ?", *q.Month)
	}
	if q.Year != nil {
		db = db.Where("salaries.year = ?", *q.Year)
	}
	if q.EmployeeCode != "" {
		db = db.Where("employees.employee_code = ?", q.EmployeeCode)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if q.Page > 0 && q.PageSize > 0 {
		db = db.Offset((q.Page - 1) * q.PageSize).Limit(q.PageSize)
	}

	var records []Salary
	err := db.Order("salaries.year DESC, salaries.month DESC, employees.employee_code ASC").
		Find(&records).Error
	return records, total, err
}

func (r *repository) Update(ctx context.Context, s *Salary) error {
	return r.db.WithContext(ctx).Save(s).Error
}
