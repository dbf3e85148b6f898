package usershift

import "time"

type AssignShiftRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	ShiftID    string `json:"shift_id" binding:"required,uuid"`
	Date       string `json:"date" binding:"required,datetime=2006-01-02"`
}

type AssignmentResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	ShiftID    string `json:"shift_id"`
	ShiftName  string `json:"shift_name,omitempty"`
	StartTime  string `json:"start_time,omitempty"`
	EndTime    string `json:"end_time,omitempty"`
	Date       string `json:"date"`
	Status     string `json:"status"`
}

func mapToResponse(a ShiftAssignment) AssignmentResponse {
	resp := AssignmentResponse{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		ShiftID:    a.ShiftID,
		Date:       a.Date.Format("2006-01-02"),
		Status:     a.Status,
	}
	if a.Shift != nil {
		resp.ShiftName = a.Shift.Name
		resp.StartTime = a.Shift.StartTime
		resp.EndTime = a.Shift.EndTime
	}
	return resp
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
