package leave

import (
	"time"
)

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected LeaveRequestStatus = "rejected"
)

type LeaveType string

const (
	LeaveTypeAnnual    LeaveType = "annual"
	LeaveTypeSick      LeaveType = "sick"
	LeaveTypePersonal  LeaveType = "personal"
	LeaveTypeUnpaid    LeaveType = "unpaid"
	LeaveTypeMaternity LeaveType = "maternity"
)

// LeaveRequest entity. DaysCount is the inclusive span between start
// and end date, so a single-day leave counts as 1.
type LeaveRequest struct {
	ID         string
	EmployeeID string
	LeaveType  LeaveType
	StartDate  time.Time
	EndDate    time.Time
	DaysCount  int
	Reason     *string
	Status     LeaveRequestStatus
	AppliedAt  time.Time
	ApprovedBy *string
	ApprovedAt *time.Time

	// Joined fields
	EmployeeName *string
}

// InclusiveDays counts calendar days between two dates, both ends
// included.
func InclusiveDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}
