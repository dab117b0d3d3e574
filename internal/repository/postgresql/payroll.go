package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/staffsync/staffsync-backend-go/internal/domain/payroll"
	"github.com/staffsync/staffsync-backend-go/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// ========== SETTINGS ==========

func (r *payrollRepository) GetSettings(ctx context.Context) (payroll.PayrollSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, monthly_working_days, daily_working_hours, overtime_multiplier,
			   allowance_rate, tax_threshold, high_tax_rate, low_tax_rate, benefits_rate,
			   created_at, updated_at
		FROM payroll_settings
		LIMIT 1
	`

	var s payroll.PayrollSettings
	err := q.QueryRow(ctx, query).Scan(
		&s.ID, &s.MonthlyWorkingDays, &s.DailyWorkingHours, &s.OvertimeMultiplier,
		&s.AllowanceRate, &s.TaxThreshold, &s.HighTaxRate, &s.LowTaxRate, &s.BenefitsRate,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollSettings{}, payroll.ErrPayrollSettingsNotFound
		}
		return payroll.PayrollSettings{}, fmt.Errorf("failed to get payroll settings: %w", err)
	}

	return s, nil
}

func (r *payrollRepository) UpsertSettings(ctx context.Context, settings payroll.PayrollSettings) (payroll.PayrollSettings, error) {
	q := GetQuerier(ctx, r.db)

	// Single settings row, keyed by the singleton constraint.
	query := `
		INSERT INTO payroll_settings (
			monthly_working_days, daily_working_hours, overtime_multiplier,
			allowance_rate, tax_threshold, high_tax_rate, low_tax_rate, benefits_rate
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT ON CONSTRAINT uk_payroll_settings_singleton DO UPDATE SET
			monthly_working_days = EXCLUDED.monthly_working_days,
			daily_working_hours = EXCLUDED.daily_working_hours,
			overtime_multiplier = EXCLUDED.overtime_multiplier,
			allowance_rate = EXCLUDED.allowance_rate,
			tax_threshold = EXCLUDED.tax_threshold,
			high_tax_rate = EXCLUDED.high_tax_rate,
			low_tax_rate = EXCLUDED.low_tax_rate,
			benefits_rate = EXCLUDED.benefits_rate,
			updated_at = NOW()
		RETURNING id, monthly_working_days, daily_working_hours, overtime_multiplier,
			allowance_rate, tax_threshold, high_tax_rate, low_tax_rate, benefits_rate,
			created_at, updated_at
	`

	var s payroll.PayrollSettings
	err := q.QueryRow(ctx, query,
		settings.MonthlyWorkingDays, settings.DailyWorkingHours, settings.OvertimeMultiplier,
		settings.AllowanceRate, settings.TaxThreshold, settings.HighTaxRate, settings.LowTaxRate, settings.BenefitsRate,
	).Scan(
		&s.ID, &s.MonthlyWorkingDays, &s.DailyWorkingHours, &s.OvertimeMultiplier,
		&s.AllowanceRate, &s.TaxThreshold, &s.HighTaxRate, &s.LowTaxRate, &s.BenefitsRate,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return payroll.PayrollSettings{}, fmt.Errorf("failed to upsert payroll settings: %w", err)
	}

	return s, nil
}

// ========== PAYROLL RECORDS ==========

const payrollColumns = `
	p.id, p.employee_id, p.period_start, p.period_end,
	p.basic_salary, p.overtime_pay, p.allowances, p.gross_pay,
	p.tax_deduction, p.other_deductions, p.total_deductions, p.net_pay,
	p.status, p.processed_at, p.created_at, p.updated_at`

func scanPayrollRecord(row pgx.Row, joined bool) (payroll.PayrollRecord, error) {
	var rec payroll.PayrollRecord
	dest := []interface{}{
		&rec.ID, &rec.EmployeeID, &rec.PeriodStart, &rec.PeriodEnd,
		&rec.BasicSalary, &rec.OvertimePay, &rec.Allowances, &rec.GrossPay,
		&rec.TaxDeduction, &rec.OtherDeductions, &rec.TotalDeductions, &rec.NetPay,
		&rec.Status, &rec.ProcessedAt, &rec.CreatedAt, &rec.UpdatedAt,
	}
	if joined {
		dest = append(dest, &rec.EmployeeName, &rec.Department)
	}
	return rec, row.Scan(dest...)
}

func (r *payrollRepository) CreatePayrollRecord(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_records (
			employee_id, period_start, period_end,
			basic_salary, overtime_pay, allowances, gross_pay,
			tax_deduction, other_deductions, total_deductions, net_pay,
			status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.EmployeeID, record.PeriodStart, record.PeriodEnd,
		record.BasicSalary, record.OvertimePay, record.Allowances, record.GrossPay,
		record.TaxDeduction, record.OtherDeductions, record.TotalDeductions, record.NetPay,
		record.Status,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "uk_payroll_employee_period") {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordAlreadyExists
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	return record, nil
}

func (r *payrollRepository) GetPayrollRecordByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollColumns + `,
			e.first_name || ' ' || e.last_name AS employee_name,
			e.department
		FROM payroll_records p
		LEFT JOIN employees e ON e.id = p.employee_id
		WHERE p.id = $1
	`

	rec, err := scanPayrollRecord(q.QueryRow(ctx, query, id), true)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return rec, nil
}

func (r *payrollRepository) ListPayrollRecords(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND p.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND p.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.PeriodStart != nil && *filter.PeriodStart != "" {
		baseWhere += fmt.Sprintf(" AND p.period_start = $%d", argIdx)
		args = append(args, *filter.PeriodStart)
		argIdx++
	}
	if filter.PeriodEnd != nil && *filter.PeriodEnd != "" {
		baseWhere += fmt.Sprintf(" AND p.period_end = $%d", argIdx)
		args = append(args, *filter.PeriodEnd)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM payroll_records p WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll records: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT `+payrollColumns+`,
			e.first_name || ' ' || e.last_name AS employee_name,
			e.department
		FROM payroll_records p
		LEFT JOIN employees e ON e.id = p.employee_id
		WHERE %s
		ORDER BY p.period_start DESC, employee_name ASC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := filter.Page
	if page == 0 {
		page = 1
	}
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.PayrollRecord
	for rows.Next() {
		rec, err := scanPayrollRecord(rows, true)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, rec)
	}

	return records, total, nil
}

// MarkProcessed moves a draft record to processed. The status guard in
// the WHERE clause makes the transition atomic: zero affected rows
// means the record was not in draft.
func (r *payrollRepository) MarkProcessed(ctx context.Context, id string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_records
		SET status = 'processed', processed_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = 'draft'
	`

	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to mark payroll record processed: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// MarkPaid moves a processed record to paid, same guarded pattern.
func (r *payrollRepository) MarkPaid(ctx context.Context, id string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_records
		SET status = 'paid', updated_at = NOW()
		WHERE id = $1 AND status = 'processed'
	`

	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to mark payroll record paid: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
