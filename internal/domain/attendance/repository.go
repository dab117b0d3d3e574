package attendance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// AttendanceRepository defines data access methods for attendance
// records. One record per (employee, date) is enforced by the storage
// layer; Create returns ErrAlreadyCheckedIn on violation.
type AttendanceRepository interface {
	// Create creates a new attendance record
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByID retrieves attendance by ID
	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByEmployeeAndDate retrieves attendance for a specific employee
	// on a specific date. Used to distinguish double check-in from a
	// missing check-in.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// Update overwrites clock times, hours, status and notes of an
	// existing record
	Update(ctx context.Context, attendance Attendance) error

	// Upsert inserts or overwrites the record keyed (employee, date)
	Upsert(ctx context.Context, attendance Attendance) (Attendance, error)

	// List retrieves attendance records with filters and pagination
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)

	// GetMyAttendance retrieves attendance records for a specific employee
	GetMyAttendance(ctx context.Context, employeeID string, filter MyAttendanceFilter) ([]Attendance, int64, error)

	// SumOvertimeHours totals stored overtime within a period, check-in
	// date inclusive on both ends
	SumOvertimeHours(ctx context.Context, employeeID string, periodStart, periodEnd time.Time) (decimal.Decimal, error)
}
