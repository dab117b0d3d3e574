package payroll

import "context"

// PayrollRepository defines data access methods for payroll records and
// settings. Uniqueness per (employee, period) is enforced by the storage
// layer; Create returns ErrPayrollRecordAlreadyExists on violation.
type PayrollRepository interface {
	// Settings
	GetSettings(ctx context.Context) (PayrollSettings, error)
	UpsertSettings(ctx context.Context, settings PayrollSettings) (PayrollSettings, error)

	// Payroll Records
	CreatePayrollRecord(ctx context.Context, record PayrollRecord) (PayrollRecord, error)
	GetPayrollRecordByID(ctx context.Context, id string) (PayrollRecord, error)
	ListPayrollRecords(ctx context.Context, filter PayrollFilter) ([]PayrollRecord, int64, error)

	// Lifecycle. Both are guarded updates: they succeed only when the
	// record currently holds the expected status and report zero rows
	// otherwise.
	MarkProcessed(ctx context.Context, id string) (bool, error)
	MarkPaid(ctx context.Context, id string) (bool, error)
}
