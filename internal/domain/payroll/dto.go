package payroll

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/staffsync/staffsync-backend-go/internal/pkg/validator"
)

const dateLayout = "2006-01-02"

// ========== SETTINGS DTOs ==========

type PayrollSettingsResponse struct {
	ID                 string          `json:"id"`
	MonthlyWorkingDays int             `json:"monthly_working_days"`
	DailyWorkingHours  int             `json:"daily_working_hours"`
	OvertimeMultiplier decimal.Decimal `json:"overtime_multiplier"`
	AllowanceRate      decimal.Decimal `json:"allowance_rate"`
	TaxThreshold       decimal.Decimal `json:"tax_threshold"`
	HighTaxRate        decimal.Decimal `json:"high_tax_rate"`
	LowTaxRate         decimal.Decimal `json:"low_tax_rate"`
	BenefitsRate       decimal.Decimal `json:"benefits_rate"`
}

type UpdatePayrollSettingsRequest struct {
	MonthlyWorkingDays *int             `json:"monthly_working_days,omitempty"`
	DailyWorkingHours  *int             `json:"daily_working_hours,omitempty"`
	OvertimeMultiplier *decimal.Decimal `json:"overtime_multiplier,omitempty"`
	AllowanceRate      *decimal.Decimal `json:"allowance_rate,omitempty"`
	TaxThreshold       *decimal.Decimal `json:"tax_threshold,omitempty"`
	HighTaxRate        *decimal.Decimal `json:"high_tax_rate,omitempty"`
	LowTaxRate         *decimal.Decimal `json:"low_tax_rate,omitempty"`
	BenefitsRate       *decimal.Decimal `json:"benefits_rate,omitempty"`
}

func (r *UpdatePayrollSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.MonthlyWorkingDays != nil && *r.MonthlyWorkingDays <= 0 {
		errs = append(errs, validator.ValidationError{Field: "monthly_working_days", Message: "must be positive"})
	}
	if r.DailyWorkingHours != nil && *r.DailyWorkingHours <= 0 {
		errs = append(errs, validator.ValidationError{Field: "daily_working_hours", Message: "must be positive"})
	}
	if r.OvertimeMultiplier != nil && r.OvertimeMultiplier.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "overtime_multiplier", Message: "must be non-negative"})
	}
	for field, rate := range map[string]*decimal.Decimal{
		"allowance_rate": r.AllowanceRate,
		"high_tax_rate":  r.HighTaxRate,
		"low_tax_rate":   r.LowTaxRate,
		"benefits_rate":  r.BenefitsRate,
	} {
		if rate != nil && (rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1))) {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be between 0 and 1"})
		}
	}
	if r.TaxThreshold != nil && r.TaxThreshold.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "tax_threshold", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== GENERATION DTOs ==========

// SelectionMode picks which employees a payroll run covers.
type SelectionMode string

const (
	SelectionAll        SelectionMode = "all"
	SelectionDepartment SelectionMode = "department"
)

type GeneratePayrollRequest struct {
	PeriodStart     string        `json:"period_start"`
	PeriodEnd       string        `json:"period_end"`
	Selection       SelectionMode `json:"selection,omitempty"` // defaults to "all"
	Department      *string       `json:"department,omitempty"`
	IncludeOvertime *bool         `json:"include_overtime,omitempty"` // defaults to true
	IncludeTax      *bool         `json:"include_tax,omitempty"`      // defaults to true
}

func (r *GeneratePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	start, err := time.Parse(dateLayout, r.PeriodStart)
	if err != nil {
		errs = append(errs, validator.ValidationError{Field: "period_start", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	end, err := time.Parse(dateLayout, r.PeriodEnd)
	if err != nil {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if len(errs) == 0 && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must not be before period_start"})
	}

	switch r.Selection {
	case "", SelectionAll:
	case SelectionDepartment:
		if r.Department == nil || *r.Department == "" {
			errs = append(errs, validator.ValidationError{Field: "department", Message: "is required when selection is 'department'"})
		}
	default:
		errs = append(errs, validator.ValidationError{Field: "selection", Message: "must be 'all' or 'department'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type GenerationFailure struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	Reason       string `json:"reason"`
}

type GeneratePayrollResponse struct {
	Created  int                 `json:"created"`
	Skipped  int                 `json:"skipped"`
	Failures []GenerationFailure `json:"failures"`
}

// ========== PAYROLL RECORD DTOs ==========

type PayrollRecordResponse struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employee_id"`
	EmployeeName    string          `json:"employee_name,omitempty"`
	Department      *string         `json:"department,omitempty"`
	PeriodStart     string          `json:"period_start"`
	PeriodEnd       string          `json:"period_end"`
	BasicSalary     decimal.Decimal `json:"basic_salary"`
	OvertimePay     decimal.Decimal `json:"overtime_pay"`
	Allowances      decimal.Decimal `json:"allowances"`
	GrossPay        decimal.Decimal `json:"gross_pay"`
	TaxDeduction    decimal.Decimal `json:"tax_deduction"`
	OtherDeductions decimal.Decimal `json:"other_deductions"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetPay          decimal.Decimal `json:"net_pay"`
	Status          string          `json:"status"`
	ProcessedAt     *string         `json:"processed_at,omitempty"`
}

type PayrollFilter struct {
	PeriodStart *string `json:"period_start,omitempty"`
	PeriodEnd   *string `json:"period_end,omitempty"`
	Status      *string `json:"status,omitempty"`
	EmployeeID  *string `json:"employee_id,omitempty"`
	Page        int     `json:"page"`
	Limit       int     `json:"limit"`
}

type ListPayrollRecordResponse struct {
	Data       []PayrollRecordResponse `json:"data"`
	TotalCount int64                   `json:"total_count"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
}
