package attendance

import "time"

// CheckInput carries the fields shared by check-in and check-out, parsed
// from the multipart form by the handler.
type CheckInput struct {
	Latitude  *float64
	Longitude *float64
	Image     []byte
	IP        string
}

type ListQuery struct {
	From     *time.Time
	To       *time.Time
	SortBy   string
	SortDesc bool
	Page     int
	PageSize int
}

type AttendanceResponse struct {
	ID             string   `json:"id"`
	CompanyID      string   `json:"company_id"`
	EmployeeID     string   `json:"employee_id"`
	EmployeeName   string   `json:"employee_name,omitempty"`
	AttendanceDate string   `json:"attendance_date"`
	CheckInTime    string   `json:"check_in_time"`
	CheckOutTime   *string  `json:"check_out_time,omitempty"`
	Status         string   `json:"status"`
	LateMinutes    int      `json:"late_minutes"`
	EarlyMinutes   int      `json:"early_minutes"`
	TotalHours     float64  `json:"total_hours"`
	OvertimeHours  float64  `json:"overtime_hours"`
	CheckInLat     *float64 `json:"check_in_lat,omitempty"`
	CheckInLng     *float64 `json:"check_in_lng,omitempty"`
	IPAddress      string   `json:"ip_address,omitempty"`
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:             a.ID.String(),
		CompanyID:      a.CompanyID.String(),
		EmployeeID:     a.EmployeeID.String(),
		EmployeeName:   a.EmployeeName,
		AttendanceDate: a.AttendanceDate.Format("2006-01-02"),
		CheckInTime:    a.CheckInTime.Format(time.RFC3339),
		Status:         a.Status,
		LateMinutes:    a.LateMinutes,
		EarlyMinutes:   a.EarlyMinutes,
		TotalHours:     a.TotalHours,
		OvertimeHours:  a.OvertimeHours,
		CheckInLat:     a.CheckInLat,
		CheckInLng:     a.CheckInLng,
		IPAddress:      a.IPAddress,
	}
	if a.CheckOutTime != nil {
		v := a.CheckOutTime.Format(time.RFC3339)
		resp.CheckOutTime = &v
	}
	return resp
}

func mapToListResponse(records []Attendance) []AttendanceResponse {
	resp := make([]AttendanceResponse, len(records))
	for i, a := range records {
		resp[i] = mapToResponse(a)
	}
	return resp
}
