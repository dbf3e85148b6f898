package attendance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Attendance struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_company_employee_day"`
	EmployeeID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_company_employee_day"`
	AssignmentID *uuid.UUID `gorm:"type:uuid"`

	AttendanceDate time.Time  `gorm:"type:date;not null;uniqueIndex:idx_company_employee_day"`
	CheckInTime    time.Time  `gorm:"not null"`
	CheckOutTime   *time.Time `gorm:""`

	Status        string  `gorm:"size:16;not null"`
	LateMinutes   int     `gorm:"not null;default:0"`
	EarlyMinutes  int     `gorm:"not null;default:0"`
	TotalHours    float64 `gorm:"not null;default:0"`
	OvertimeHours float64 `gorm:"not null;default:0"`

	CheckInLat  *float64
	CheckInLng  *float64
	CheckOutLat *float64
	CheckOutLng *float64
	IPAddress   string `gorm:"size:45"`

	CheckInImageRef  string `gorm:"size:255"`
	CheckOutImageRef string `gorm:"size:255"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	EmployeeName string `gorm:"-"`
}
