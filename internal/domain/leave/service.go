package leave

import (
	"context"
)

type LeaveService interface {
	// Apply submits a leave request for the authenticated employee
	Apply(ctx context.Context, req ApplyLeaveRequest) (LeaveRequestResponse, error)

	// Approve / Reject decide a pending request (admin)
	Approve(ctx context.Context, requestID string) error
	Reject(ctx context.Context, req RejectLeaveRequest) error

	// ListMyRequests lists the authenticated employee's requests
	ListMyRequests(ctx context.Context, filter LeaveRequestFilter) (ListLeaveRequestResponse, error)

	// ListRequests lists all requests with filters (admin)
	ListRequests(ctx context.Context, filter LeaveRequestFilter) (ListLeaveRequestResponse, error)

	// MyBalance reports the authenticated employee's remaining annual
	// quota for the current year
	MyBalance(ctx context.Context) (LeaveBalanceResponse, error)
}
