package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollStatus enum. Transitions only move forward:
// draft -> processed -> paid.
type PayrollStatus string

const (
	PayrollStatusDraft     PayrollStatus = "draft"
	PayrollStatusProcessed PayrollStatus = "processed"
	PayrollStatusPaid      PayrollStatus = "paid"
)

// PayrollRecord - Generated payroll result for one employee and pay period
type PayrollRecord struct {
	ID              string
	EmployeeID      string
	PeriodStart     time.Time
	PeriodEnd       time.Time
	BasicSalary     decimal.Decimal
	OvertimePay     decimal.Decimal
	Allowances      decimal.Decimal
	GrossPay        decimal.Decimal
	TaxDeduction    decimal.Decimal
	OtherDeductions decimal.Decimal
	TotalDeductions decimal.Decimal
	NetPay          decimal.Decimal
	Status          PayrollStatus
	ProcessedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined fields
	EmployeeName *string
	Department   *string
}

// PayrollSettings - Persisted calculation policy, single row.
// Absent row means DefaultPolicy applies.
type PayrollSettings struct {
	ID                 string
	MonthlyWorkingDays int
	DailyWorkingHours  int
	OvertimeMultiplier decimal.Decimal
	AllowanceRate      decimal.Decimal
	TaxThreshold       decimal.Decimal
	HighTaxRate        decimal.Decimal
	LowTaxRate         decimal.Decimal
	BenefitsRate       decimal.Decimal
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (s PayrollSettings) ToPolicy() Policy {
	return Policy{
		MonthlyWorkingDays: s.MonthlyWorkingDays,
		DailyWorkingHours:  s.DailyWorkingHours,
		OvertimeMultiplier: s.OvertimeMultiplier,
		AllowanceRate:      s.AllowanceRate,
		TaxThreshold:       s.TaxThreshold,
		HighTaxRate:        s.HighTaxRate,
		LowTaxRate:         s.LowTaxRate,
		BenefitsRate:       s.BenefitsRate,
	}
}
