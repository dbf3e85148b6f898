package salary

import "time"

type ComputeSalaryRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Month      int    `json:"month" binding:"required,min=1,max=12"`
	Year       int    `json:"year" binding:"required,min=2000,max=2100"`
}

type ComputeCompanyRequest struct {
	Month int `json:"month" binding:"required,min=1,max=12"`
	Year  int `json:"year" binding:"required,min=2000,max=2100"`
}

type UpdateSalaryRequest struct {
	Bonus     *float64 `json:"bonus" binding:"omitempty,gte=0"`
	Deduction *float64 `json:"deduction" binding:"omitempty,gte=0"`
	Note      *string  `json:"note"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected paid"`
}

type ListQuery struct {
	Month        *int
	Year         *int
	EmployeeCode string
	Page         int
	PageSize     int
}

type SalaryResponse struct {
	ID           string  `json:"id"`
	CompanyID    string  `json:"company_id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty"`
	EmployeeCode string  `json:"employee_code,omitempty"`
	Month        int     `json:"month"`
	Year         int     `json:"year"`
	BaseSalary   float64 `json:"base_salary"`
	OvertimePay  float64 `json:"overtime_pay"`
	Allowance    float64 `json:"allowance"`
	Bonus        float64 `json:"bonus"`
	Deduction    float64 `json:"deduction"`
	TotalSalary  float64 `json:"total_salary"`
	Status       string  `json:"status"`
	WorkingDays  int     `json:"working_days"`
	TotalDays    int     `json:"total_days"`
	Note         string  `json:"note,omitempty"`
	ApprovedBy   *string `json:"approved_by,omitempty"`
	ApprovedAt   *string `json:"approved_at,omitempty"`
	PaidAt       *string `json:"paid_at,omitempty"`
	PayslipRef   string  `json:"payslip_ref,omitempty"`
}

type BulkComputeResult struct {
	SuccessCount int    `json:"success_count"`
	FailCount    int    `json:"fail_count"`
	Message      string `json:"message"`
}

func mapToResponse(s Salary) SalaryResponse {
	resp := SalaryResponse{
		ID:           s.ID.String(),
		CompanyID:    s.CompanyID.String(),
		EmployeeID:   s.EmployeeID.String(),
		EmployeeName: s.EmployeeName,
		EmployeeCode: s.EmployeeCode,
		Month:        s.Month,
		Year:         s.Year,
		BaseSalary:   s.BaseSalary,
		OvertimePay:  s.OvertimePay,
		Allowance:    s.Allowance,
		Bonus:        s.Bonus,
		Deduction:    s.Deduction,
		TotalSalary:  s.TotalSalary,
		Status:       s.Status,
		WorkingDays:  s.WorkingDays,
		TotalDays:    s.TotalDays,
		Note:         s.Note,
		PayslipRef:   s.PayslipRef,
	}

	if s.ApprovedBy != nil {
		v := s.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if s.ApprovedAt != nil {
		v := s.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	if s.PaidAt != nil {
		v := s.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &v
	}
	return resp
}

func mapToListResponse(records []Salary) []SalaryResponse {
	resp := make([]SalaryResponse, len(records))
	for i, s := range records {
		resp[i] = mapToResponse(s)
	}
	return resp
}
