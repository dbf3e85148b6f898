package shift

import (
	"time"

	"gorm.io/gorm"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Shift stores its boundaries as wall-clock strings ("08:30") so a shift
// definition is independent of any particular calendar day.
type Shift struct {
	ID        string         `gorm:"type:uuid;primaryKey"`
	CompanyID string         `gorm:"type:uuid;not null;uniqueIndex:idx_company_shift_name"`
	Name      string         `gorm:"size:120;not null;uniqueIndex:idx_company_shift_name"`
	StartTime string         `gorm:"size:5;not null"`
	EndTime   string         `gorm:"size:5;not null"`
	Status    string         `gorm:"size:16;not null;default:active"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
