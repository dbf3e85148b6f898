package employee

type CreateEmployeeRequest struct {
	FullName     string  `json:"full_name" binding:"required"`
	Email        string  `json:"email" binding:"required,email"`
	Phone        string  `json:"phone"`
	Department   string  `json:"department"`
	EmployeeType string  `json:"employee_type" binding:"required,oneof=official contract intern"`
	HireDate     string  `json:"hire_date" binding:"required,datetime=2006-01-02"`
	EmployeeCode string  `json:"employee_code"`
	BaseSalary   float64 `json:"base_salary" binding:"gte=0"`
	Allowance    float64 `json:"allowance" binding:"gte=0"`
	Bonus        float64 `json:"bonus" binding:"gte=0"`
}

type UpdateEmployeeRequest struct {
	FullName     string  `json:"full_name" binding:"required"`
	Email        string  `json:"email" binding:"required,email"`
	Phone        string  `json:"phone"`
	Department   string  `json:"department"`
	EmployeeType string  `json:"employee_type" binding:"required,oneof=official contract intern"`
	HireDate     string  `json:"hire_date" binding:"required,datetime=2006-01-02"`
	BaseSalary   float64 `json:"base_salary" binding:"gte=0"`
	Allowance    float64 `json:"allowance" binding:"gte=0"`
	Bonus        float64 `json:"bonus" binding:"gte=0"`
}

type EmployeeResponse struct {
	ID            string  `json:"id"`
	CompanyID     string  `json:"company_id"`
	EmployeeCode  string  `json:"employee_code"`
	FullName      string  `json:"full_name"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone,omitempty"`
	Department    string  `json:"department,omitempty"`
	EmployeeType  string  `json:"employee_type"`
	HireDate      string  `json:"hire_date"`
	BaseSalary    float64 `json:"base_salary"`
	Allowance     float64 `json:"allowance"`
	Bonus         float64 `json:"bonus"`
	FacesEnrolled int     `json:"faces_enrolled"`
}
