package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/staffsync/staffsync-backend-go/internal/domain/dashboard"
	"github.com/staffsync/staffsync-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// GetEmployeeSummary returns total, active, terminated and department
// counts in a single query.
func (r *dashboardRepositoryImpl) GetEmployeeSummary(ctx context.Context) (*dashboard.EmployeeSummaryStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) as total,
			COALESCE(SUM(CASE WHEN status = 'active' THEN 1 ELSE 0 END), 0) as active_count,
			COALESCE(SUM(CASE WHEN status = 'terminated' THEN 1 ELSE 0 END), 0) as terminated_count,
			COUNT(DISTINCT department) as department_count
		FROM employees
	`

	var stats dashboard.EmployeeSummaryStats
	err := q.QueryRow(ctx, query).Scan(
		&stats.Total, &stats.Active, &stats.Terminated, &stats.Departments,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee summary: %w", err)
	}
	return &stats, nil
}

// GetAttendanceStatsByDay returns per-status counts plus the day's
// records. Uses 2 queries but they run in the same DB call context.
func (r *dashboardRepositoryImpl) GetAttendanceStatsByDay(ctx context.Context, date time.Time, limit int) (*dashboard.AttendanceDayStats, error) {
	q := GetQuerier(ctx, r.db)

	countQuery := `
		SELECT
			COALESCE(SUM(CASE WHEN status = 'present' THEN 1 ELSE 0 END), 0) as present,
			COALESCE(SUM(CASE WHEN status = 'late' THEN 1 ELSE 0 END), 0) as late,
			COALESCE(SUM(CASE WHEN status = 'absent' THEN 1 ELSE 0 END), 0) as absent
		FROM attendance_records
		WHERE date = $1
	`

	var stats dashboard.AttendanceDayStats
	err := q.QueryRow(ctx, countQuery, date).Scan(
		&stats.Present, &stats.Late, &stats.Absent,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance stats by day: %w", err)
	}

	recordsQuery := `
		SELECT e.first_name || ' ' || e.last_name, a.status, a.check_in_time
		FROM attendance_records a
		JOIN employees e ON a.employee_id = e.id
		WHERE a.date = $1
		ORDER BY a.created_at DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, recordsQuery, date, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest attendance records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var record dashboard.AttendanceRecordItem
		if err := rows.Scan(&record.EmployeeName, &record.Status, &record.CheckIn); err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		stats.Records = append(stats.Records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return &stats, nil
}

// CountPendingLeaves returns the number of undecided leave requests.
func (r *dashboardRepositoryImpl) CountPendingLeaves(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT COUNT(*) FROM leave_requests WHERE status = 'pending'`

	var count int64
	if err := q.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pending leaves: %w", err)
	}
	return count, nil
}

// GetRecentEmployees returns the most recently hired employees.
func (r *dashboardRepositoryImpl) GetRecentEmployees(ctx context.Context, limit int) ([]dashboard.RecentEmployeeItem, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, first_name || ' ' || last_name, department, hire_date
		FROM employees
		WHERE status = 'active'
		ORDER BY hire_date DESC NULLS LAST, created_at DESC
		LIMIT $1
	`

	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent employees: %w", err)
	}
	defer rows.Close()

	var items []dashboard.RecentEmployeeItem
	for rows.Next() {
		var item dashboard.RecentEmployeeItem
		var hireDate *time.Time
		if err := rows.Scan(&item.ID, &item.Name, &item.Department, &hireDate); err != nil {
			return nil, fmt.Errorf("failed to scan recent employee: %w", err)
		}
		if hireDate != nil {
			formatted := hireDate.Format("2006-01-02")
			item.HireDate = &formatted
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// GetPayrollStatusStats counts payroll records per lifecycle status.
func (r *dashboardRepositoryImpl) GetPayrollStatusStats(ctx context.Context) (*dashboard.PayrollStatusStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COALESCE(SUM(CASE WHEN status = 'draft' THEN 1 ELSE 0 END), 0) as draft,
			COALESCE(SUM(CASE WHEN status = 'processed' THEN 1 ELSE 0 END), 0) as processed,
			COALESCE(SUM(CASE WHEN status = 'paid' THEN 1 ELSE 0 END), 0) as paid
		FROM payroll_records
	`

	var stats dashboard.PayrollStatusStats
	err := q.QueryRow(ctx, query).Scan(
		&stats.Draft, &stats.Processed, &stats.Paid,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get payroll status stats: %w", err)
	}
	return &stats, nil
}
