package company

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Company struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name    string    `gorm:"type:varchar(150);not null;uniqueIndex"`
	Address *string   `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Subnets []Subnet `gorm:"foreignKey:CompanyID"`
}

// Subnet is one registered office network range. Check-in from outside every
// registered range is rejected unless a remote-work request covers the day.
type Subnet struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index:idx_company_subnet,unique"`
	CIDR      string    `gorm:"type:varchar(50);not null;index:idx_company_subnet,unique"`
	Label     *string   `gorm:"type:varchar(100)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Subnet) TableName() string {
	return "company_subnets"
}
