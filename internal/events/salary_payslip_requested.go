package events

import "time"

const SalaryPayslipRequestedTopic = "timekeep.salary.payslip.requested.v1"

type SalaryPayslipRequestedEvent struct {
	EventType   string    `json:"event_type"`
	SalaryID    string    `json:"salary_id"`
	CompanyID   string    `json:"company_id"`
	RequestedBy string    `json:"requested_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}
