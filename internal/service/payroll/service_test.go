package payroll

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/staffsync/staffsync-backend-go/internal/domain/payroll"
	"github.com/staffsync/staffsync-backend-go/internal/pkg/database"
	"github.com/staffsync/staffsync-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	payrollTestDB   *database.DB
	payrollTestOnce sync.Once
)

func requirePayrollTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	payrollTestOnce.Do(func() {
		db, err := database.NewPostgreSQLDB(dsn)
		if err != nil {
			panic("Failed to connect to test database: " + err.Error())
		}
		if err := database.Migrate(db); err != nil {
			panic("Failed to migrate test database: " + err.Error())
		}
		payrollTestDB = db
	})

	return payrollTestDB
}

func truncatePayrollTables(t *testing.T, ctx context.Context) {
	t.Helper()

	tables := []string{"leave_requests", "payroll_records", "payroll_settings", "attendance_records", "users", "employees"}
	for _, table := range tables {
		_, err := payrollTestDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

func createPayrollTestEmployee(t *testing.T, ctx context.Context, email, department string, baseSalary decimal.Decimal) string {
	t.Helper()

	var employeeID string
	err := payrollTestDB.QueryRow(ctx, `
		INSERT INTO employees (first_name, last_name, email, department, base_salary, status)
		VALUES ('Test', 'Employee', $1, $2, $3, 'active')
		RETURNING id
	`, email, department, baseSalary).Scan(&employeeID)
	require.NoError(t, err)
	return employeeID
}

func seedOvertime(t *testing.T, ctx context.Context, employeeID string, date time.Time, overtimeHours decimal.Decimal) {
	t.Helper()

	_, err := payrollTestDB.Exec(ctx, `
		INSERT INTO attendance_records (employee_id, date, check_in_time, check_out_time, total_hours, overtime_hours, status)
		VALUES ($1, $2, '09:00', '19:00', $3, $4, 'present')
	`, employeeID, date, decimal.NewFromInt(8).Add(overtimeHours), overtimeHours)
	require.NoError(t, err)
}

func newPayrollTestService() payroll.PayrollService {
	return NewPayrollService(
		payrollTestDB,
		postgresql.NewPayrollRepository(payrollTestDB),
		postgresql.NewEmployeeRepository(payrollTestDB),
		postgresql.NewAttendanceRepository(payrollTestDB),
	)
}

func TestPayrollService_Generate_DraftAmounts(t *testing.T) {
	requirePayrollTestDB(t)
	ctx := context.Background()
	truncatePayrollTables(t, ctx)

	employeeID := createPayrollTestEmployee(t, ctx, "gen-amounts@example.com", "Engineering", decimal.NewFromInt(6250))
	svc := newPayrollTestService()

	result, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{
		PeriodStart: "2026-03-01",
		PeriodEnd:   "2026-03-31",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 0, result.Skipped)
	assert.Empty(t, result.Failures)

	list, err := svc.ListPayrollRecords(ctx, payroll.PayrollFilter{EmployeeID: &employeeID})
	require.NoError(t, err)
	require.Len(t, list.Data, 1)

	record := list.Data[0]
	assert.Equal(t, "draft", record.Status)
	assert.Equal(t, "2026-03-01", record.PeriodStart)
	assert.Equal(t, "2026-03-31", record.PeriodEnd)
	assert.True(t, record.OvertimePay.IsZero())
	assert.True(t, record.Allowances.Equal(decimal.NewFromInt(625)), "allowances %s", record.Allowances)
	assert.True(t, record.GrossPay.Equal(decimal.NewFromInt(6875)), "gross %s", record.GrossPay)
	assert.True(t, record.TaxDeduction.Equal(decimal.NewFromInt(1375)), "tax %s", record.TaxDeduction)
	assert.True(t, record.OtherDeductions.Equal(decimal.NewFromFloat(137.5)), "other %s", record.OtherDeductions)
	assert.True(t, record.NetPay.Equal(decimal.NewFromFloat(5362.5)), "net %s", record.NetPay)
}

func TestPayrollService_Generate_CountsOvertime(t *testing.T) {
	requirePayrollTestDB(t)
	ctx := context.Background()
	truncatePayrollTables(t, ctx)

	employeeID := createPayrollTestEmployee(t, ctx, "gen-overtime@example.com", "Engineering", decimal.NewFromInt(6250))
	seedOvertime(t, ctx, employeeID, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(6))
	seedOvertime(t, ctx, employeeID, time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(4))
	// Outside the period, must not count
	seedOvertime(t, ctx, employeeID, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(8))

	svc := newPayrollTestService()
	result, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{
		PeriodStart: "2026-03-01",
		PeriodEnd:   "2026-03-31",
	})
	require.NoError(t, err)
	require.Equal(t, 1, result.Created)

	list, err := svc.ListPayrollRecords(ctx, payroll.PayrollFilter{EmployeeID: &employeeID})
	require.NoError(t, err)
	require.Len(t, list.Data, 1)

	// 10 overtime hours at 6250/240 per hour with the 1.5 multiplier
	record := list.Data[0]
	assert.True(t, record.OvertimePay.Equal(decimal.RequireFromString("390.63")), "overtime pay %s", record.OvertimePay)
	assert.True(t, record.GrossPay.Equal(record.BasicSalary.Add(record.OvertimePay).Add(record.Allowances)))
	assert.True(t, record.NetPay.Equal(record.GrossPay.Sub(record.TotalDeductions)))
}

func TestPayrollService_Generate_RerunSkipsExisting(t *testing.T) {
	requirePayrollTestDB(t)
	ctx := context.Background()
	truncatePayrollTables(t, ctx)

	createPayrollTestEmployee(t, ctx, "gen-rerun-1@example.com", "Engineering", decimal.NewFromInt(3000))
	createPayrollTestEmployee(t, ctx, "gen-rerun-2@example.com", "Sales", decimal.NewFromInt(2500))

	svc := newPayrollTestService()
	req := payroll.GeneratePayrollRequest{
		PeriodStart: "2026-03-01",
		PeriodEnd:   "2026-03-31",
	}

	result, err := svc.Generate(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 0, result.Skipped)

	result, err = svc.Generate(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 2, result.Skipped)
	assert.Empty(t, result.Failures)
}

func TestPayrollService_Generate_DepartmentSelection(t *testing.T) {
	requirePayrollTestDB(t)
	ctx := context.Background()
	truncatePayrollTables(t, ctx)

	engineeringID := createPayrollTestEmployee(t, ctx, "gen-dept-1@example.com", "Engineering", decimal.NewFromInt(3000))
	createPayrollTestEmployee(t, ctx, "gen-dept-2@example.com", "Sales", decimal.NewFromInt(2500))

	department := "Engineering"
	svc := newPayrollTestService()
	result, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{
		PeriodStart: "2026-03-01",
		PeriodEnd:   "2026-03-31",
		Selection:   payroll.SelectionDepartment,
		Department:  &department,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)

	list, err := svc.ListPayrollRecords(ctx, payroll.PayrollFilter{})
	require.NoError(t, err)
	require.Len(t, list.Data, 1)
	assert.Equal(t, engineeringID, list.Data[0].EmployeeID)
}

func TestPayrollService_Generate_SkipsTerminated(t *testing.T) {
	requirePayrollTestDB(t)
	ctx := context.Background()
	truncatePayrollTables(t, ctx)

	createPayrollTestEmployee(t, ctx, "gen-active@example.com", "Engineering", decimal.NewFromInt(3000))
	_, err := payrollTestDB.Exec(ctx, `
		INSERT INTO employees (first_name, last_name, email, base_salary, status)
		VALUES ('Gone', 'Employee', 'gen-terminated@example.com', 3000, 'terminated')
	`)
	require.NoError(t, err)

	svc := newPayrollTestService()
	result, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{
		PeriodStart: "2026-03-01",
		PeriodEnd:   "2026-03-31",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
}

func TestPayrollService_Generate_WithoutTax(t *testing.T) {
	requirePayrollTestDB(t)
	ctx := context.Background()
	truncatePayrollTables(t, ctx)

	employeeID := createPayrollTestEmployee(t, ctx, "gen-notax@example.com", "Engineering", decimal.NewFromInt(6250))

	includeTax := false
	svc := newPayrollTestService()
	result, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{
		PeriodStart: "2026-03-01",
		PeriodEnd:   "2026-03-31",
		IncludeTax:  &includeTax,
	})
	require.NoError(t, err)
	require.Equal(t, 1, result.Created)

	list, err := svc.ListPayrollRecords(ctx, payroll.PayrollFilter{EmployeeID: &employeeID})
	require.NoError(t, err)
	require.Len(t, list.Data, 1)

	record := list.Data[0]
	assert.True(t, record.TaxDeduction.IsZero())
	assert.True(t, record.TotalDeductions.Equal(record.OtherDeductions))
}

func TestPayrollService_Generate_InvalidPeriod(t *testing.T) {
	requirePayrollTestDB(t)
	ctx := context.Background()
	truncatePayrollTables(t, ctx)

	svc := newPayrollTestService()
	_, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{
		PeriodStart: "2026-03-31",
		PeriodEnd:   "2026-03-01",
	})

	assert.Error(t, err)
}

func TestPayrollService_Lifecycle(t *testing.T) {
	requirePayrollTestDB(t)
	ctx := context.Background()
	truncatePayrollTables(t, ctx)

	employeeID := createPayrollTestEmployee(t, ctx, "lifecycle@example.com", "Engineering", decimal.NewFromInt(3000))
	svc := newPayrollTestService()

	result, err := svc.Generate(ctx, payroll.GeneratePayrollRequest{
		PeriodStart: "2026-03-01",
		PeriodEnd:   "2026-03-31",
	})
	require.NoError(t, err)
	require.Equal(t, 1, result.Created)

	list, err := svc.ListPayrollRecords(ctx, payroll.PayrollFilter{EmployeeID: &employeeID})
	require.NoError(t, err)
	require.Len(t, list.Data, 1)
	recordID := list.Data[0].ID

	// Paying a draft is rejected
	_, err = svc.MarkPaid(ctx, recordID)
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotProcessed)

	processed, err := svc.ProcessPayroll(ctx, recordID)
	require.NoError(t, err)
	assert.Equal(t, "processed", processed.Status)
	assert.NotNil(t, processed.ProcessedAt)

	// Processing twice is rejected
	_, err = svc.ProcessPayroll(ctx, recordID)
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotDraft)

	paid, err := svc.MarkPaid(ctx, recordID)
	require.NoError(t, err)
	assert.Equal(t, "paid", paid.Status)

	// Paid is terminal
	_, err = svc.MarkPaid(ctx, recordID)
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotProcessed)
	_, err = svc.ProcessPayroll(ctx, recordID)
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotDraft)
}

func TestPayrollService_Lifecycle_NotFound(t *testing.T) {
	requirePayrollTestDB(t)
	ctx := context.Background()
	truncatePayrollTables(t, ctx)

	svc := newPayrollTestService()

	_, err := svc.ProcessPayroll(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotFound)

	_, err = svc.MarkPaid(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotFound)
}

func TestPayrollService_Settings_Defaults(t *testing.T) {
	requirePayrollTestDB(t)
	ctx := context.Background()
	truncatePayrollTables(t, ctx)

	svc := newPayrollTestService()

	settings, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 30, settings.MonthlyWorkingDays)
	assert.Equal(t, 8, settings.DailyWorkingHours)
	assert.True(t, settings.TaxThreshold.Equal(decimal.NewFromInt(5000)))

	days := 26
	updated, err := svc.UpdateSettings(ctx, payroll.UpdatePayrollSettingsRequest{
		MonthlyWorkingDays: &days,
	})
	require.NoError(t, err)
	assert.Equal(t, 26, updated.MonthlyWorkingDays)
	// Untouched fields keep their defaults
	assert.Equal(t, 8, updated.DailyWorkingHours)

	reloaded, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 26, reloaded.MonthlyWorkingDays)
}
