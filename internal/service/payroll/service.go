package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/staffsync/staffsync-backend-go/internal/domain/attendance"
	"github.com/staffsync/staffsync-backend-go/internal/domain/employee"
	"github.com/staffsync/staffsync-backend-go/internal/domain/payroll"
	"github.com/staffsync/staffsync-backend-go/internal/pkg/database"
)

const dateLayout = "2006-01-02"

type PayrollServiceImpl struct {
	db             *database.DB
	payrollRepo    payroll.PayrollRepository
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
}

func NewPayrollService(
	db *database.DB,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		db:             db,
		payrollRepo:    payrollRepo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
	}
}

// ========== SETTINGS ==========

func (s *PayrollServiceImpl) GetSettings(ctx context.Context) (payroll.PayrollSettingsResponse, error) {
	settings, err := s.payrollRepo.GetSettings(ctx)
	if err != nil {
		if errors.Is(err, payroll.ErrPayrollSettingsNotFound) {
			// No stored row yet, report the defaults.
			return mapSettingsToResponse(defaultSettings()), nil
		}
		return payroll.PayrollSettingsResponse{}, err
	}

	return mapSettingsToResponse(settings), nil
}

func (s *PayrollServiceImpl) UpdateSettings(ctx context.Context, req payroll.UpdatePayrollSettingsRequest) (payroll.PayrollSettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollSettingsResponse{}, err
	}

	current, err := s.payrollRepo.GetSettings(ctx)
	if err != nil {
		if !errors.Is(err, payroll.ErrPayrollSettingsNotFound) {
			return payroll.PayrollSettingsResponse{}, err
		}
		current = defaultSettings()
	}

	if req.MonthlyWorkingDays != nil {
		current.MonthlyWorkingDays = *req.MonthlyWorkingDays
	}
	if req.DailyWorkingHours != nil {
		current.DailyWorkingHours = *req.DailyWorkingHours
	}
	if req.OvertimeMultiplier != nil {
		current.OvertimeMultiplier = *req.OvertimeMultiplier
	}
	if req.AllowanceRate != nil {
		current.AllowanceRate = *req.AllowanceRate
	}
	if req.TaxThreshold != nil {
		current.TaxThreshold = *req.TaxThreshold
	}
	if req.HighTaxRate != nil {
		current.HighTaxRate = *req.HighTaxRate
	}
	if req.LowTaxRate != nil {
		current.LowTaxRate = *req.LowTaxRate
	}
	if req.BenefitsRate != nil {
		current.BenefitsRate = *req.BenefitsRate
	}

	updated, err := s.payrollRepo.UpsertSettings(ctx, current)
	if err != nil {
		return payroll.PayrollSettingsResponse{}, fmt.Errorf("failed to save payroll settings: %w", err)
	}

	return mapSettingsToResponse(updated), nil
}

// ========== GENERATION ==========

// Generate implements payroll.PayrollService.
func (s *PayrollServiceImpl) Generate(ctx context.Context, req payroll.GeneratePayrollRequest) (payroll.GeneratePayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.GeneratePayrollResponse{}, err
	}

	periodStart, err := time.Parse(dateLayout, req.PeriodStart)
	if err != nil {
		return payroll.GeneratePayrollResponse{}, payroll.ErrInvalidPeriod
	}
	periodEnd, err := time.Parse(dateLayout, req.PeriodEnd)
	if err != nil {
		return payroll.GeneratePayrollResponse{}, payroll.ErrInvalidPeriod
	}

	policy, err := s.loadPolicy(ctx)
	if err != nil {
		return payroll.GeneratePayrollResponse{}, err
	}

	employees, err := s.selectEmployees(ctx, req)
	if err != nil {
		return payroll.GeneratePayrollResponse{}, err
	}

	includeOvertime := req.IncludeOvertime == nil || *req.IncludeOvertime
	includeTax := req.IncludeTax == nil || *req.IncludeTax

	result := payroll.GeneratePayrollResponse{Failures: []payroll.GenerationFailure{}}

	for _, emp := range employees {
		overtimeHours := decimal.Zero
		if includeOvertime {
			overtimeHours, err = s.attendanceRepo.SumOvertimeHours(ctx, emp.ID, periodStart, periodEnd)
			if err != nil {
				result.Failures = append(result.Failures, payroll.GenerationFailure{
					EmployeeID:   emp.ID,
					EmployeeName: emp.FullName(),
					Reason:       fmt.Sprintf("failed to sum overtime hours: %v", err),
				})
				continue
			}
		}

		breakdown := payroll.Compute(emp.BaseSalary, overtimeHours, policy, includeTax)

		record := payroll.PayrollRecord{
			EmployeeID:      emp.ID,
			PeriodStart:     periodStart,
			PeriodEnd:       periodEnd,
			BasicSalary:     breakdown.BasicSalary,
			OvertimePay:     breakdown.OvertimePay,
			Allowances:      breakdown.Allowances,
			GrossPay:        breakdown.GrossPay,
			TaxDeduction:    breakdown.TaxDeduction,
			OtherDeductions: breakdown.OtherDeductions,
			TotalDeductions: breakdown.TotalDeductions,
			NetPay:          breakdown.NetPay,
			Status:          payroll.PayrollStatusDraft,
		}

		if _, err := s.payrollRepo.CreatePayrollRecord(ctx, record); err != nil {
			if errors.Is(err, payroll.ErrPayrollRecordAlreadyExists) {
				result.Skipped++
				continue
			}
			result.Failures = append(result.Failures, payroll.GenerationFailure{
				EmployeeID:   emp.ID,
				EmployeeName: emp.FullName(),
				Reason:       fmt.Sprintf("failed to create payroll record: %v", err),
			})
			continue
		}

		result.Created++
	}

	return result, nil
}

func (s *PayrollServiceImpl) loadPolicy(ctx context.Context) (payroll.Policy, error) {
	settings, err := s.payrollRepo.GetSettings(ctx)
	if err != nil {
		if errors.Is(err, payroll.ErrPayrollSettingsNotFound) {
			return payroll.DefaultPolicy(), nil
		}
		return payroll.Policy{}, fmt.Errorf("failed to load payroll settings: %w", err)
	}
	return settings.ToPolicy(), nil
}

func (s *PayrollServiceImpl) selectEmployees(ctx context.Context, req payroll.GeneratePayrollRequest) ([]employee.Employee, error) {
	if req.Selection == payroll.SelectionDepartment {
		employees, err := s.employeeRepo.GetActiveByDepartment(ctx, *req.Department)
		if err != nil {
			return nil, fmt.Errorf("failed to get active employees by department: %w", err)
		}
		return employees, nil
	}

	employees, err := s.employeeRepo.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get active employees: %w", err)
	}
	return employees, nil
}

// ========== LIFECYCLE ==========

// ProcessPayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) ProcessPayroll(ctx context.Context, id string) (payroll.PayrollRecordResponse, error) {
	moved, err := s.payrollRepo.MarkProcessed(ctx, id)
	if err != nil {
		return payroll.PayrollRecordResponse{}, fmt.Errorf("failed to process payroll record: %w", err)
	}
	if !moved {
		// Zero rows changed: either the record is missing or it is not
		// a draft anymore. Look it up to tell the two apart.
		if _, err := s.payrollRepo.GetPayrollRecordByID(ctx, id); err != nil {
			return payroll.PayrollRecordResponse{}, err
		}
		return payroll.PayrollRecordResponse{}, payroll.ErrPayrollRecordNotDraft
	}

	record, err := s.payrollRepo.GetPayrollRecordByID(ctx, id)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	return mapRecordToResponse(record), nil
}

// MarkPaid implements payroll.PayrollService.
func (s *PayrollServiceImpl) MarkPaid(ctx context.Context, id string) (payroll.PayrollRecordResponse, error) {
	moved, err := s.payrollRepo.MarkPaid(ctx, id)
	if err != nil {
		return payroll.PayrollRecordResponse{}, fmt.Errorf("failed to mark payroll record paid: %w", err)
	}
	if !moved {
		if _, err := s.payrollRepo.GetPayrollRecordByID(ctx, id); err != nil {
			return payroll.PayrollRecordResponse{}, err
		}
		return payroll.PayrollRecordResponse{}, payroll.ErrPayrollRecordNotProcessed
	}

	record, err := s.payrollRepo.GetPayrollRecordByID(ctx, id)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	return mapRecordToResponse(record), nil
}

// ========== QUERIES ==========

// GetPayrollRecord implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetPayrollRecord(ctx context.Context, id string) (payroll.PayrollRecordResponse, error) {
	record, err := s.payrollRepo.GetPayrollRecordByID(ctx, id)
	if err != nil {
		if errors.Is(err, payroll.ErrPayrollRecordNotFound) {
			return payroll.PayrollRecordResponse{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecordResponse{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return mapRecordToResponse(record), nil
}

// ListPayrollRecords implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListPayrollRecords(ctx context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollRecordResponse, error) {
	records, total, err := s.payrollRepo.ListPayrollRecords(ctx, filter)
	if err != nil {
		return payroll.ListPayrollRecordResponse{}, fmt.Errorf("failed to list payroll records: %w", err)
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := filter.Page
	if page == 0 {
		page = 1
	}

	data := make([]payroll.PayrollRecordResponse, 0, len(records))
	for _, record := range records {
		data = append(data, mapRecordToResponse(record))
	}

	return payroll.ListPayrollRecordResponse{
		Data:       data,
		TotalCount: total,
		Page:       page,
		Limit:      limit,
	}, nil
}

// ========== MAPPERS ==========

func defaultSettings() payroll.PayrollSettings {
	policy := payroll.DefaultPolicy()
	return payroll.PayrollSettings{
		MonthlyWorkingDays: policy.MonthlyWorkingDays,
		DailyWorkingHours:  policy.DailyWorkingHours,
		OvertimeMultiplier: policy.OvertimeMultiplier,
		AllowanceRate:      policy.AllowanceRate,
		TaxThreshold:       policy.TaxThreshold,
		HighTaxRate:        policy.HighTaxRate,
		LowTaxRate:         policy.LowTaxRate,
		BenefitsRate:       policy.BenefitsRate,
	}
}

func mapSettingsToResponse(settings payroll.PayrollSettings) payroll.PayrollSettingsResponse {
	return payroll.PayrollSettingsResponse{
		ID:                 settings.ID,
		MonthlyWorkingDays: settings.MonthlyWorkingDays,
		DailyWorkingHours:  settings.DailyWorkingHours,
		OvertimeMultiplier: settings.OvertimeMultiplier,
		AllowanceRate:      settings.AllowanceRate,
		TaxThreshold:       settings.TaxThreshold,
		HighTaxRate:        settings.HighTaxRate,
		LowTaxRate:         settings.LowTaxRate,
		BenefitsRate:       settings.BenefitsRate,
	}
}

func mapRecordToResponse(record payroll.PayrollRecord) payroll.PayrollRecordResponse {
	resp := payroll.PayrollRecordResponse{
		ID:              record.ID,
		EmployeeID:      record.EmployeeID,
		Department:      record.Department,
		PeriodStart:     record.PeriodStart.Format(dateLayout),
		PeriodEnd:       record.PeriodEnd.Format(dateLayout),
		BasicSalary:     record.BasicSalary,
		OvertimePay:     record.OvertimePay,
		Allowances:      record.Allowances,
		GrossPay:        record.GrossPay,
		TaxDeduction:    record.TaxDeduction,
		OtherDeductions: record.OtherDeductions,
		TotalDeductions: record.TotalDeductions,
		NetPay:          record.NetPay,
		Status:          string(record.Status),
	}
	if record.EmployeeName != nil {
		resp.EmployeeName = *record.EmployeeName
	}
	if record.ProcessedAt != nil {
		processedAt := record.ProcessedAt.Format(time.RFC3339)
		resp.ProcessedAt = &processedAt
	}
	return resp
}
