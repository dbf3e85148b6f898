package attendance

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"

	"go-timekeep/internal/tenant"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error)
	FindByEmployee(ctx context.Context, companyID, employeeID string, q ListQuery) ([]Attendance, int64, error)
	FindAllByCompany(ctx context.Context, companyID string, q ListQuery) ([]Attendance, int64, error)
	FindByEmployeeAndMonth(ctx context.Context, companyID, employeeID string, year int, month time.Month) ([]Attendance, error)
	Update(ctx context.Context, a *Attendance) error
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

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ? AND attendance_date = ?", employeeID, date.Format("2006-01-02")).
		First(&a).Error
	return &a, err
}

func (r *repository) FindByEmployee(ctx context.Context, companyID, employeeID string, q ListQuery) ([]Attendance, int64, error) {
	db := r.db.WithContext(ctx).
		Model(&Attendance{}).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID)
	return r.list(db, q)
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, q ListQuery) ([]Attendance, int64, error) {
	db := r.db.WithContext(ctx).
		Model(&Attendance{}).
		Select("attendances.*, employees.full_name AS employee_name").
		Joins("JOIN employees ON employees.id = attendances.employee_id").
		Where("attendances.company_id = ?", companyID)
	return r.list(db, q)
}

func (r *repository) list(db *gorm.DB, q ListQuery) ([]Attendance, int64, error) {
	if q.From != nil {
		db = db.Where("attendance_date >= ?", q.From.Format("2006-01-02"))
	}
	if q.To != nil {
		db = db.Where("attendance_date <= ?", q.To.Format("2006-01-02"))
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortCol := "attendance_date"
	switch q.SortBy {
	case "status":
		sortCol = "status"
	case "check_in":
		sortCol = "check_in_time"
	}
	dir := "ASC"
	if q.SortDesc {
		dir = "DESC"
	}
	db = db.Order(sortCol + " " + dir)

	if q.PageSize > 0 {
		page := q.Page
		if page < 1 {
			page = 1
		}
		db = db.Offset((page - 1) * q.PageSize).Limit(q.PageSize)
	}

	var records []Attendance
	err := db.Find(&records).Error
	return records, total, err
}

// FindByEmployeeAndMonth returns every record whose day falls inside the
// month. The payroll engine tallies statuses and overtime from these rows.
func (r *repository) FindByEmployeeAndMonth(ctx context.Context, companyID, employeeID string, year int, month time.Month) ([]Attendance, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	var records []Attendance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("attendance_date BETWEEN ? AND ?", first.Format("2006-01-02"), last.Format("2006-01-02")).
		Order("attendance_date ASC").
		Find(&records).Error
	return records, err
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Save(a).Error
}
