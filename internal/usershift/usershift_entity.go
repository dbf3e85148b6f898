package usershift

import (
	"time"

	"go-timekeep/internal/shift"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// ShiftAssignment binds an employee to a shift on a single calendar day.
// The (company, employee, date) unique index is the backstop against two
// concurrent resolutions provisioning the same day twice.
type ShiftAssignment struct {
	ID         string       `gorm:"type:uuid;primaryKey"`
	CompanyID  string       `gorm:"type:uuid;not null;uniqueIndex:idx_company_employee_date"`
	EmployeeID string       `gorm:"type:uuid;not null;uniqueIndex:idx_company_employee_date"`
	ShiftID    string       `gorm:"type:uuid;not null"`
	Shift      *shift.Shift `gorm:"foreignKey:ShiftID;references:ID"`
	Date       time.Time    `gorm:"type:date;not null;uniqueIndex:idx_company_employee_date"`
	Status     string       `gorm:"size:16;not null;default:active"`
	CreatedAt  time.Time    `gorm:"autoCreateTime"`
	UpdatedAt  time.Time    `gorm:"autoUpdateTime"`
}

func (ShiftAssignment) TableName() string {
	return "shift_assignments"
}
