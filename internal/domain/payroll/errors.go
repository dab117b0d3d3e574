package payroll

import "errors"

var (
	ErrPayrollSettingsNotFound    = errors.New("payroll settings not found")
	ErrPayrollRecordNotFound      = errors.New("payroll record not found")
	ErrPayrollRecordAlreadyExists = errors.New("payroll record already exists for this period")
	ErrPayrollRecordNotDraft      = errors.New("payroll record is not in draft status")
	ErrPayrollRecordNotProcessed  = errors.New("payroll record is not in processed status")
	ErrInvalidPeriod              = errors.New("invalid payroll period")
	ErrEmployeeNotFound           = errors.New("employee not found")
)
