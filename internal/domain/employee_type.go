package domain

// EmployeeType drives shift scheduling and payroll strategy.
type EmployeeType string

const (
	EmployeeTypeOfficial EmployeeType = "official"
	EmployeeTypeContract EmployeeType = "contract"
	EmployeeTypeIntern   EmployeeType = "intern"
)

func (t EmployeeType) Valid() bool {
	switch t {
	case EmployeeTypeOfficial, EmployeeTypeContract, EmployeeTypeIntern:
		return true
	}
	return false
}
