package events

import "time"

const SalaryGeneratedTopic = "timekeep.salary.generated.v1"

type SalaryGeneratedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	SalaryID   string    `json:"salary_id"`
	EmployeeID string    `json:"employee_id"`
	CompanyID  string    `json:"company_id"`
	Month      int       `json:"month"`
	Year       int       `json:"year"`
	OccurredAt time.Time `json:"occurred_at"`
}
