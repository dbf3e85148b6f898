package employee

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-timekeep/internal/domain"
)

// DescriptorList stores the employee's enrolled face embeddings as JSONB.
type DescriptorList [][]float64

func (d DescriptorList) Value() (driver.Value, error) {
	if d == nil {
		return "[]", nil
	}
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (d *DescriptorList) Scan(value interface{}) error {
	if value == nil {
		*d = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	}
	return errors.New("unsupported descriptor list source")
}

type Employee struct {
	ID           uuid.UUID           `gorm:"type:uuid;primaryKey"`
	CompanyID    uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_company_employee_email;uniqueIndex:idx_company_employee_code"`
	EmployeeCode string              `gorm:"size:20;not null;uniqueIndex:idx_company_employee_code"`
	FullName     string              `gorm:"size:255;not null"`
	Email        string              `gorm:"size:255;not null;uniqueIndex:idx_company_employee_email"`
	Phone        string              `gorm:"size:32"`
	Department   string              `gorm:"size:120"`
	EmployeeType domain.EmployeeType `gorm:"type:varchar(16);not null;default:'official'"`
	HireDate     time.Time           `gorm:"type:date;not null"`

	BaseSalary float64 `gorm:"not null;default:0"`
	Allowance  float64 `gorm:"not null;default:0"`
	Bonus      float64 `gorm:"not null;default:0"`

	FaceDescriptors DescriptorList `gorm:"type:jsonb;default:'[]'"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
