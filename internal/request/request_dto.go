package request

type CreateRequest struct {
	EmployeeID    string  `json:"employee_id" binding:"required,uuid"`
	Kind          string  `json:"kind" binding:"required,oneof=LEAVE REMOTE_WORK OVERTIME SHIFT_CHANGE"`
	StartDate     string  `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate       string  `json:"end_date" binding:"required,datetime=2006-01-02"`
	Reason        string  `json:"reason" binding:"max=2000"`
	TargetShiftID *string `json:"target_shift_id" binding:"omitempty,uuid"`
}

type RejectRequest struct {
	Reason string `json:"reason" binding:"required,max=2000"`
}

type RequestResponse struct {
	ID              string  `json:"id"`
	CompanyID       string  `json:"company_id"`
	EmployeeID      string  `json:"employee_id"`
	Kind            string  `json:"kind"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	TotalDays       int     `json:"total_days"`
	Reason          string  `json:"reason,omitempty"`
	TargetShiftID   *string `json:"target_shift_id,omitempty"`
	Status          string  `json:"status"`
	CreatedBy       string  `json:"created_by"`
	ApprovedBy      *string `json:"approved_by,omitempty"`
	ApprovedAt      *string `json:"approved_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}
