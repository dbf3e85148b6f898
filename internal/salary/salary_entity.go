package salary

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Salary struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_company_employee_period;index:idx_company_salary_status"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_company_employee_period"`

	Month int `gorm:"not null;uniqueIndex:idx_company_employee_period"`
	Year  int `gorm:"not null;uniqueIndex:idx_company_employee_period"`

	BaseSalary  float64 `gorm:"not null;default:0"`
	OvertimePay float64 `gorm:"not null;default:0"`
	Allowance   float64 `gorm:"not null;default:0"`
	Bonus       float64 `gorm:"not null;default:0"`
	Deduction   float64 `gorm:"not null;default:0"`
	TotalSalary float64 `gorm:"not null;default:0"`

	Status string `gorm:"size:16;not null;default:'pending';index:idx_company_salary_status"`

	WorkingDays int    `gorm:"not null;default:0"`
	TotalDays   int    `gorm:"not null;default:0"`
	Note        string `gorm:"type:text"`

	ApprovedBy *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt *time.Time
	PaidAt     *time.Time

	PayslipRef         string `gorm:"size:255"`
	PayslipGeneratedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	EmployeeName string `gorm:"-"`
	EmployeeCode string `gorm:"-"`
}
