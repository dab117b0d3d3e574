package payroll

import (
	"context"
)

// PayrollService defines business logic for payroll operations
type PayrollService interface {
	// Settings
	GetSettings(ctx context.Context) (PayrollSettingsResponse, error)
	UpdateSettings(ctx context.Context, req UpdatePayrollSettingsRequest) (PayrollSettingsResponse, error)

	// Generate runs payroll for the selected employees over one period.
	// A rerun for the same period skips employees who already have a
	// record, and one employee's failure never aborts the batch.
	Generate(ctx context.Context, req GeneratePayrollRequest) (GeneratePayrollResponse, error)

	// Lifecycle. Records only move forward: draft -> processed -> paid.
	ProcessPayroll(ctx context.Context, id string) (PayrollRecordResponse, error)
	MarkPaid(ctx context.Context, id string) (PayrollRecordResponse, error)

	GetPayrollRecord(ctx context.Context, id string) (PayrollRecordResponse, error)
	ListPayrollRecords(ctx context.Context, filter PayrollFilter) (ListPayrollRecordResponse, error)
}
