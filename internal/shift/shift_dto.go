package shift

type CreateShiftRequest struct {
	Name      string `json:"name" binding:"required,min=2,max=120"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type UpdateShiftRequest struct {
	Name      string `json:"name" binding:"required,min=2,max=120"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Status    string `json:"status" binding:"required,oneof=active inactive"`
}

type ShiftResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`
}

func mapToResponse(s Shift) ShiftResponse {
	return ShiftResponse{
		ID:        s.ID,
		Name:      s.Name,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Status:    s.Status,
	}
}

func mapToListResponse(shifts []Shift) []ShiftResponse {
	resp := make([]ShiftResponse, 0, len(shifts))
	for _, s := range shifts {
		resp = append(resp, mapToResponse(s))
	}
	return resp
}
