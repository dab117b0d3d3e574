package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// AttendanceStatus enum
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusLate    AttendanceStatus = "late"
	StatusAbsent  AttendanceStatus = "absent"
	StatusHalfDay AttendanceStatus = "half_day"
)

// Attendance is one employee's record for one day. Clock times are
// zone-naive wall-clock strings in "HH:MM" form; a checkout earlier
// than the checkin means the shift ran past midnight.
type Attendance struct {
	ID            string
	EmployeeID    string
	Date          time.Time
	CheckInTime   *string
	CheckOutTime  *string
	TotalHours    decimal.Decimal
	OvertimeHours decimal.Decimal
	Status        AttendanceStatus
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined fields
	EmployeeName *string
	Department   *string
}
