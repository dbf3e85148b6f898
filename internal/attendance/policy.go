package attendance

import (
	"math"
	"time"
)

const (
	StatusOnTime = "on-time"
	StatusLate   = "late"
	StatusEarly  = "early"
	StatusAbsent = "absent"
)

// Policy evaluates check events against the shift boundaries of the day the
// record belongs to. All boundaries are rebuilt from the record's own
// calendar day, so a check-out after midnight is still judged against the
// day it opened.
type Policy struct {
	WorkStart string // "08:30"
	WorkEnd   string // "17:30"
}

// BoundaryOn combines a wall-clock string with the given day.
func BoundaryOn(day time.Time, wallClock string) time.Time {
	t, err := time.Parse("15:04", wallClock)
	if err != nil {
		return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location())
}

type CheckInResult struct {
	Status      string
	LateMinutes int
}

// ClassifyCheckIn is late only when now is strictly after the work start.
// Arriving on the boundary second is on time.
func (p Policy) ClassifyCheckIn(day, now time.Time) CheckInResult {
	workStart := BoundaryOn(day, p.WorkStart)
	if !now.After(workStart) {
		return CheckInResult{Status: StatusOnTime}
	}
	lateMinutes := int(now.Sub(workStart) / time.Minute)
	return CheckInResult{Status: StatusLate, LateMinutes: lateMinutes}
}

type CheckOutResult struct {
	Status        string
	TotalHours    float64
	OvertimeHours float64
	EarlyMinutes  int
}

// ClassifyCheckOut computes worked and overtime hours and flags an early
// departure. Leaving before the work end supersedes whatever status the
// check-in earned.
func (p Policy) ClassifyCheckOut(day, checkIn, now time.Time, checkInStatus string) CheckOutResult {
	workEnd := BoundaryOn(day, p.WorkEnd)

	totalHours := round2(now.Sub(checkIn).Hours())
	overtime := now.Sub(workEnd).Hours()
	if overtime < 0 {
		overtime = 0
	}

	earlyMinutes := 0
	if now.Before(workEnd) {
		earlyMinutes = int(workEnd.Sub(now) / time.Minute)
	}

	status := checkInStatus
	if earlyMinutes > 0 {
		status = StatusEarly
	}

	return CheckOutResult{
		Status:        status,
		TotalHours:    totalHours,
		OvertimeHours: round2(overtime),
		EarlyMinutes:  earlyMinutes,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
