package salary

import (
	"go-timekeep/internal/config"
	"go-timekeep/internal/domain"
)

// hoursPerDay x workDaysPerMonth is the divisor turning a monthly base
// salary into an hourly overtime rate.
const (
	hoursPerDay      = 8
	workDaysPerMonth = 22
)

// CompensationPlan carries the per-employee-type knobs of the payroll
// computation. Plans are derived from config, never hardcoded at call sites.
type CompensationPlan struct {
	PaysBase           bool
	PaysOvertime       bool
	OvertimeMultiplier float64

	LatePenalty   float64
	AbsentPenalty float64
	EarlyPenalty  float64
}

// PlanFor returns the compensation plan for an employee type. Unrecognized
// types fall back to the official plan.
func PlanFor(cfg config.PayrollConfig, employeeType domain.EmployeeType) CompensationPlan {
	switch employeeType {
	case domain.EmployeeTypeContract:
		return CompensationPlan{
			PaysBase:           true,
			PaysOvertime:       true,
			OvertimeMultiplier: cfg.ContractOvertimeMultiplier,
			LatePenalty:        cfg.LatePenalty,
			AbsentPenalty:      cfg.AbsentPenalty,
			EarlyPenalty:       cfg.EarlyPenalty,
		}
	case domain.EmployeeTypeIntern:
		return CompensationPlan{
			PaysBase:      false,
			PaysOvertime:  false,
			LatePenalty:   cfg.InternLatePenalty,
			AbsentPenalty: cfg.InternAbsentPenalty,
			EarlyPenalty:  cfg.InternEarlyPenalty,
		}
	default:
		return CompensationPlan{
			PaysBase:           true,
			PaysOvertime:       true,
			OvertimeMultiplier: cfg.OfficialOvertimeMultiplier,
			LatePenalty:        cfg.LatePenalty,
			AbsentPenalty:      cfg.AbsentPenalty,
			EarlyPenalty:       cfg.EarlyPenalty,
		}
	}
}

// HourlyRate converts a monthly base salary into the overtime hourly rate.
func HourlyRate(baseSalary float64) float64 {
	return baseSalary / (hoursPerDay * workDaysPerMonth)
}
