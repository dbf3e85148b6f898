package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testDay = time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 9, hour, minute, 0, 0, time.UTC)
}

func TestPolicy_ClassifyCheckIn(t *testing.T) {
	p := Policy{WorkStart: "08:30", WorkEnd: "17:30"}

	tests := []struct {
		name        string
		now         time.Time
		wantStatus  string
		wantMinutes int
	}{
		{"before start", at(7, 45), StatusOnTime, 0},
		{"exactly on the boundary", at(8, 30), StatusOnTime, 0},
		{"one minute past", at(8, 31), StatusLate, 1},
		{"partial minute floors", at(8, 30).Add(90 * time.Second), StatusLate, 1},
		{"an hour late", at(9, 30), StatusLate, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.ClassifyCheckIn(testDay, tt.now)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantMinutes, got.LateMinutes)
		})
	}
}

func TestPolicy_ClassifyCheckOut(t *testing.T) {
	p := Policy{WorkStart: "08:30", WorkEnd: "17:30"}

	t.Run("exactly at work end", func(t *testing.T) {
		got := p.ClassifyCheckOut(testDay, at(8, 30), at(17, 30), StatusOnTime)
		assert.Equal(t, StatusOnTime, got.Status)
		assert.Equal(t, 9.0, got.TotalHours)
		assert.Equal(t, 0.0, got.OvertimeHours)
		assert.Equal(t, 0, got.EarlyMinutes)
	})

	t.Run("overtime past work end", func(t *testing.T) {
		got := p.ClassifyCheckOut(testDay, at(8, 30), at(19, 0), StatusOnTime)
		assert.Equal(t, 10.5, got.TotalHours)
		assert.Equal(t, 1.5, got.OvertimeHours)
		assert.Equal(t, 0, got.EarlyMinutes)
	})

	t.Run("early departure supersedes a late arrival", func(t *testing.T) {
		got := p.ClassifyCheckOut(testDay, at(9, 0), at(16, 45), StatusLate)
		assert.Equal(t, StatusEarly, got.Status)
		assert.Equal(t, 45, got.EarlyMinutes)
		assert.Equal(t, 7.75, got.TotalHours)
		assert.Equal(t, 0.0, got.OvertimeHours)
	})

	t.Run("hours rounded to two decimals", func(t *testing.T) {
		got := p.ClassifyCheckOut(testDay, at(8, 30), at(17, 30).Add(10*time.Minute), StatusOnTime)
		assert.Equal(t, 9.17, got.TotalHours)
		assert.Equal(t, 0.17, got.OvertimeHours)
	})

	t.Run("after midnight measures against the record's day", func(t *testing.T) {
		nextDay := time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC)
		got := p.ClassifyCheckOut(testDay, at(8, 30), nextDay, StatusOnTime)
		assert.Equal(t, StatusOnTime, got.Status)
		assert.Equal(t, 16.5, got.TotalHours)
		assert.Equal(t, 7.5, got.OvertimeHours)
		assert.Equal(t, 0, got.EarlyMinutes)
	})

	t.Run("sub-minute early departure floors to zero", func(t *testing.T) {
		got := p.ClassifyCheckOut(testDay, at(8, 30), at(17, 29).Add(30*time.Second), StatusOnTime)
		assert.Equal(t, 0, got.EarlyMinutes)
		assert.Equal(t, StatusOnTime, got.Status)
	})
}

func TestBoundaryOn(t *testing.T) {
	b := BoundaryOn(testDay, "08:30")
	assert.Equal(t, at(8, 30), b)

	// Unparseable wall clock falls back to midnight.
	assert.Equal(t, testDay, BoundaryOn(testDay, "bogus"))
}
