package employee

import "errors"

var (
	ErrEmployeeNotFound          = errors.New("employee not found")
	ErrEmailExists               = errors.New("email already registered")
	ErrNegativeSalary            = errors.New("base salary must be non-negative")
	ErrEmployeeAlreadyTerminated = errors.New("employee is already terminated")
	ErrEmployeeHasRecords        = errors.New("employee has payroll or attendance records and cannot be deleted")
)
