package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in / check-out errors
	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")
	ErrNoCheckInFound    = errors.New("no check-in found for today")
	ErrAlreadyCheckedOut = errors.New("you have already checked out")

	// Time parsing
	ErrInvalidClockTime = errors.New("invalid clock time, expected HH:MM")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrEmployeeNotFound   = errors.New("employee not found")
)
