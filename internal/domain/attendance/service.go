package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn records today's check-in for the authenticated employee
	CheckIn(ctx context.Context) (AttendanceResponse, error)

	// CheckOut completes today's open record and computes worked hours
	CheckOut(ctx context.Context) (AttendanceResponse, error)

	// UpsertEntry creates or overwrites a record for any employee and
	// date (admin)
	UpsertEntry(ctx context.Context, req UpsertEntryRequest) (AttendanceResponse, error)

	// GetMyAttendance retrieves attendance records for the authenticated employee
	GetMyAttendance(ctx context.Context, filter MyAttendanceFilter) (ListAttendanceResponse, error)

	// ListAttendance retrieves attendance records with filters (admin)
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// GetAttendance retrieves a single attendance record by ID
	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)
}
