package leave

import (
	"context"
)

// LeaveRequestRepository - interface for the leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, int64, error)

	// UpdateStatus is a guarded update: it only moves a request out of
	// pending and reports whether a row changed.
	UpdateStatus(ctx context.Context, id string, status LeaveRequestStatus, approvedBy string) (bool, error)

	// ApprovedDaysInYear sums days_count of approved requests whose
	// start date falls in the given year
	ApprovedDaysInYear(ctx context.Context, employeeID string, year int) (int, error)
}
