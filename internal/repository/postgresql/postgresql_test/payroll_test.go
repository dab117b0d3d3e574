package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/staffsync/staffsync-backend-go/internal/domain/payroll"
	"github.com/staffsync/staffsync-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDraftRecord(employeeID string) payroll.PayrollRecord {
	basic := decimal.NewFromInt(6250)
	allowances := decimal.NewFromInt(625)
	gross := decimal.NewFromInt(6875)
	tax := decimal.NewFromInt(1375)
	other := decimal.NewFromFloat(137.5)

	return payroll.PayrollRecord{
		EmployeeID:      employeeID,
		PeriodStart:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:       time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		BasicSalary:     basic,
		OvertimePay:     decimal.Zero,
		Allowances:      allowances,
		GrossPay:        gross,
		TaxDeduction:    tax,
		OtherDeductions: other,
		TotalDeductions: tax.Add(other),
		NetPay:          gross.Sub(tax.Add(other)),
		Status:          payroll.PayrollStatusDraft,
	}
}

func TestPayrollRepository_CreateRecord_Success(t *testing.T) {
	requireTestDB(t)
	ctx := context.Background()
	truncateTables(t, ctx)

	employeeID := createTestEmployee(t, ctx, "pay-create@example.com", "Engineering", decimal.NewFromInt(6250))
	repo := postgresql.NewPayrollRepository(testDB)

	created, err := repo.CreatePayrollRecord(ctx, newDraftRecord(employeeID))

	assert.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, payroll.PayrollStatusDraft, created.Status)
	assert.True(t, created.NetPay.Equal(decimal.NewFromFloat(5362.5)), "got %s", created.NetPay)
	assert.Nil(t, created.ProcessedAt)
}

func TestPayrollRepository_CreateRecord_DuplicatePeriod(t *testing.T) {
	requireTestDB(t)
	ctx := context.Background()
	truncateTables(t, ctx)

	employeeID := createTestEmployee(t, ctx, "pay-dup@example.com", "Engineering", decimal.NewFromInt(6250))
	repo := postgresql.NewPayrollRepository(testDB)

	_, err := repo.CreatePayrollRecord(ctx, newDraftRecord(employeeID))
	require.NoError(t, err)

	_, err = repo.CreatePayrollRecord(ctx, newDraftRecord(employeeID))
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordAlreadyExists)
}

func TestPayrollRepository_MarkProcessed_Lifecycle(t *testing.T) {
	requireTestDB(t)
	ctx := context.Background()
	truncateTables(t, ctx)

	employeeID := createTestEmployee(t, ctx, "pay-process@example.com", "Engineering", decimal.NewFromInt(6250))
	repo := postgresql.NewPayrollRepository(testDB)

	created, err := repo.CreatePayrollRecord(ctx, newDraftRecord(employeeID))
	require.NoError(t, err)

	moved, err := repo.MarkProcessed(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, moved)

	processed, err := repo.GetPayrollRecordByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, payroll.PayrollStatusProcessed, processed.Status)
	assert.NotNil(t, processed.ProcessedAt)

	// Draft guard rejects a second transition
	moved, err = repo.MarkProcessed(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, moved)
}

func TestPayrollRepository_MarkPaid_RequiresProcessed(t *testing.T) {
	requireTestDB(t)
	ctx := context.Background()
	truncateTables(t, ctx)

	employeeID := createTestEmployee(t, ctx, "pay-paid@example.com", "Engineering", decimal.NewFromInt(6250))
	repo := postgresql.NewPayrollRepository(testDB)

	created, err := repo.CreatePayrollRecord(ctx, newDraftRecord(employeeID))
	require.NoError(t, err)

	// Draft records cannot be paid directly
	moved, err := repo.MarkPaid(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, moved)

	moved, err = repo.MarkProcessed(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, moved)

	moved, err = repo.MarkPaid(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, moved)

	paid, err := repo.GetPayrollRecordByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, payroll.PayrollStatusPaid, paid.Status)
}

func TestPayrollRepository_GetRecord_NotFound(t *testing.T) {
	requireTestDB(t)
	ctx := context.Background()
	truncateTables(t, ctx)

	repo := postgresql.NewPayrollRepository(testDB)
	_, err := repo.GetPayrollRecordByID(ctx, "00000000-0000-0000-0000-000000000000")

	assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotFound)
}

func TestPayrollRepository_ListRecords_Filters(t *testing.T) {
	requireTestDB(t)
	ctx := context.Background()
	truncateTables(t, ctx)

	firstID := createTestEmployee(t, ctx, "pay-list-1@example.com", "Engineering", decimal.NewFromInt(6250))
	secondID := createTestEmployee(t, ctx, "pay-list-2@example.com", "Sales", decimal.NewFromInt(3000))
	repo := postgresql.NewPayrollRepository(testDB)

	first, err := repo.CreatePayrollRecord(ctx, newDraftRecord(firstID))
	require.NoError(t, err)
	_, err = repo.CreatePayrollRecord(ctx, newDraftRecord(secondID))
	require.NoError(t, err)

	moved, err := repo.MarkProcessed(ctx, first.ID)
	require.NoError(t, err)
	require.True(t, moved)

	records, total, err := repo.ListPayrollRecords(ctx, payroll.PayrollFilter{Status: strPtr("processed")})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, records, 1)
	assert.Equal(t, firstID, records[0].EmployeeID)
	require.NotNil(t, records[0].EmployeeName)
	assert.Equal(t, "Test Employee", *records[0].EmployeeName)

	records, total, err = repo.ListPayrollRecords(ctx, payroll.PayrollFilter{EmployeeID: &secondID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, records, 1)
	assert.Equal(t, secondID, records[0].EmployeeID)
}

func TestPayrollRepository_Settings_DefaultsAbsent(t *testing.T) {
	requireTestDB(t)
	ctx := context.Background()
	truncateTables(t, ctx)

	repo := postgresql.NewPayrollRepository(testDB)
	_, err := repo.GetSettings(ctx)

	assert.ErrorIs(t, err, payroll.ErrPayrollSettingsNotFound)
}

func TestPayrollRepository_Settings_UpsertRoundTrip(t *testing.T) {
	requireTestDB(t)
	ctx := context.Background()
	truncateTables(t, ctx)

	repo := postgresql.NewPayrollRepository(testDB)

	saved, err := repo.UpsertSettings(ctx, payroll.PayrollSettings{
		MonthlyWorkingDays: 26,
		DailyWorkingHours:  8,
		OvertimeMultiplier: decimal.NewFromFloat(2.0),
		AllowanceRate:      decimal.NewFromFloat(0.12),
		TaxThreshold:       decimal.NewFromInt(6000),
		HighTaxRate:        decimal.NewFromFloat(0.25),
		LowTaxRate:         decimal.NewFromFloat(0.10),
		BenefitsRate:       decimal.NewFromFloat(0.03),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, 26, saved.MonthlyWorkingDays)

	// A second upsert overwrites the single row
	again, err := repo.UpsertSettings(ctx, payroll.PayrollSettings{
		MonthlyWorkingDays: 30,
		DailyWorkingHours:  8,
		OvertimeMultiplier: decimal.NewFromFloat(1.5),
		AllowanceRate:      decimal.NewFromFloat(0.10),
		TaxThreshold:       decimal.NewFromInt(5000),
		HighTaxRate:        decimal.NewFromFloat(0.20),
		LowTaxRate:         decimal.NewFromFloat(0.15),
		BenefitsRate:       decimal.NewFromFloat(0.02),
	})
	require.NoError(t, err)
	assert.Equal(t, saved.ID, again.ID)

	loaded, err := repo.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 30, loaded.MonthlyWorkingDays)
	assert.True(t, loaded.TaxThreshold.Equal(decimal.NewFromInt(5000)))
}
