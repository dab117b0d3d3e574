package payroll

import "github.com/shopspring/decimal"

// Policy holds every rate the payroll calculation depends on. Callers
// build one from PayrollSettings or fall back to DefaultPolicy.
type Policy struct {
	MonthlyWorkingDays int
	DailyWorkingHours  int
	OvertimeMultiplier decimal.Decimal
	AllowanceRate      decimal.Decimal
	TaxThreshold       decimal.Decimal
	HighTaxRate        decimal.Decimal
	LowTaxRate         decimal.Decimal
	BenefitsRate       decimal.Decimal
}

func DefaultPolicy() Policy {
	return Policy{
		MonthlyWorkingDays: 30,
		DailyWorkingHours:  8,
		OvertimeMultiplier: decimal.RequireFromString("1.5"),
		AllowanceRate:      decimal.RequireFromString("0.10"),
		TaxThreshold:       decimal.NewFromInt(5000),
		HighTaxRate:        decimal.RequireFromString("0.20"),
		LowTaxRate:         decimal.RequireFromString("0.15"),
		BenefitsRate:       decimal.RequireFromString("0.02"),
	}
}

// Breakdown is the full result of one payroll calculation.
// GrossPay = BasicSalary + OvertimePay + Allowances and
// NetPay = GrossPay - TotalDeductions always hold.
type Breakdown struct {
	BasicSalary     decimal.Decimal
	OvertimePay     decimal.Decimal
	Allowances      decimal.Decimal
	GrossPay        decimal.Decimal
	TaxDeduction    decimal.Decimal
	OtherDeductions decimal.Decimal
	TotalDeductions decimal.Decimal
	NetPay          decimal.Decimal
}

// HourlyRate derives the hourly wage from the monthly basic salary
// using the standard working month (days x daily hours).
func (p Policy) HourlyRate(basic decimal.Decimal) decimal.Decimal {
	monthlyHours := decimal.NewFromInt(int64(p.MonthlyWorkingDays * p.DailyWorkingHours))
	return basic.Div(monthlyHours)
}

// Compute runs the payroll calculation for one employee. It is pure:
// same inputs always give the same Breakdown. Overtime is paid at the
// hourly rate times the policy multiplier, allowances are a flat share
// of basic salary, and income tax is tiered on gross pay. When
// includeTax is false the tax step is skipped entirely.
func Compute(basic, overtimeHours decimal.Decimal, p Policy, includeTax bool) Breakdown {
	overtimePay := overtimeHours.Mul(p.HourlyRate(basic)).Mul(p.OvertimeMultiplier).Round(2)
	allowances := basic.Mul(p.AllowanceRate).Round(2)
	grossPay := basic.Add(overtimePay).Add(allowances)

	taxDeduction := decimal.Zero
	if includeTax {
		rate := p.LowTaxRate
		if grossPay.GreaterThan(p.TaxThreshold) {
			rate = p.HighTaxRate
		}
		taxDeduction = grossPay.Mul(rate).Round(2)
	}

	otherDeductions := grossPay.Mul(p.BenefitsRate).Round(2)
	totalDeductions := taxDeduction.Add(otherDeductions)

	return Breakdown{
		BasicSalary:     basic,
		OvertimePay:     overtimePay,
		Allowances:      allowances,
		GrossPay:        grossPay,
		TaxDeduction:    taxDeduction,
		OtherDeductions: otherDeductions,
		TotalDeductions: totalDeductions,
		NetPay:          grossPay.Sub(totalDeductions),
	}
}
