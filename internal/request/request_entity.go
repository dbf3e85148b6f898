package request

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Kind distinguishes the workflows that share one approval pipeline.
type Kind string

const (
	KindLeave       Kind = "LEAVE"
	KindRemoteWork  Kind = "REMOTE_WORK"
	KindOvertime    Kind = "OVERTIME"
	KindShiftChange Kind = "SHIFT_CHANGE"
)

func (k Kind) Valid() bool {
	switch k {
	case KindLeave, KindRemoteWork, KindOvertime, KindShiftChange:
		return true
	}
	return false
}

type Request struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index:idx_requests_company_status"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_requests_employee_dates"`

	Kind      Kind      `gorm:"type:varchar(20);not null"`
	StartDate time.Time `gorm:"type:date;not null;index:idx_requests_employee_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_requests_employee_dates"`
	TotalDays int       `gorm:"type:int;not null;default:1"`
	Reason    string    `gorm:"type:text"`

	// TargetShiftID is only set for SHIFT_CHANGE requests.
	TargetShiftID *uuid.UUID `gorm:"type:uuid"`

	Status          string     `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_requests_company_status"`
	CreatedBy       uuid.UUID  `gorm:"type:uuid;not null"`
	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	RejectionReason *string    `gorm:"type:text"`

	CreatedAt  time.Time
	UpdatedAt  time.Time
	ApprovedAt *time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index:idx_requests_deleted_at"`
}
