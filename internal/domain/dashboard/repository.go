package dashboard

import (
	"context"
	"time"
)

// EmployeeSummaryStats combines all employee counts in a single query
type EmployeeSummaryStats struct {
	Total       int64
	Active      int64
	Terminated  int64
	Departments int64
}

// AttendanceDayStats combines per-status counts for one day
type AttendanceDayStats struct {
	Present int64
	Late    int64
	Absent  int64
	Records []AttendanceRecordItem
}

// PayrollStatusStats counts payroll records per lifecycle status
type PayrollStatusStats struct {
	Draft     int64
	Processed int64
	Paid      int64
}

// DashboardRepository defines the interface for dashboard data access
type DashboardRepository interface {
	// GetEmployeeSummary returns total, active, terminated and
	// department counts in a single query
	GetEmployeeSummary(ctx context.Context) (*EmployeeSummaryStats, error)

	// GetAttendanceStatsByDay returns per-status counts plus the day's
	// records
	GetAttendanceStatsByDay(ctx context.Context, date time.Time, limit int) (*AttendanceDayStats, error)

	// CountPendingLeaves returns the number of undecided leave requests
	CountPendingLeaves(ctx context.Context) (int64, error)

	// GetRecentEmployees returns the most recently hired employees
	GetRecentEmployees(ctx context.Context, limit int) ([]RecentEmployeeItem, error)

	// GetPayrollStatusStats counts payroll records per status
	GetPayrollStatusStats(ctx context.Context) (*PayrollStatusStats, error)
}
