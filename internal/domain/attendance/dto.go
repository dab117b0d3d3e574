package attendance

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/staffsync/staffsync-backend-go/internal/pkg/validator"
)

const dateLayout = "2006-01-02"

// ========================================
// ATTENDANCE DTOs
// ========================================

type AttendanceResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	EmployeeName  string          `json:"employee_name,omitempty"`
	Department    *string         `json:"department,omitempty"`
	Date          string          `json:"date"`
	CheckInTime   *string         `json:"check_in_time,omitempty"`
	CheckOutTime  *string         `json:"check_out_time,omitempty"`
	TotalHours    decimal.Decimal `json:"total_hours"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	Status        string          `json:"status"`
	Notes         *string         `json:"notes,omitempty"`
}

// UpsertEntryRequest is the admin create-or-update form keyed by
// (employee, date). An existing row for the same key is overwritten.
type UpsertEntryRequest struct {
	EmployeeID   string  `json:"employee_id"`
	Date         string  `json:"date"`
	CheckInTime  *string `json:"check_in_time,omitempty"`
	CheckOutTime *string `json:"check_out_time,omitempty"`
	Status       *string `json:"status,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

func (r *UpsertEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, err := time.Parse(dateLayout, r.Date); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be a valid date (YYYY-MM-DD)",
		})
	}

	if r.Status != nil {
		switch AttendanceStatus(*r.Status) {
		case StatusPresent, StatusLate, StatusAbsent, StatusHalfDay:
		default:
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be 'present', 'late', 'absent' or 'half_day'",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Date       *string `json:"date,omitempty"`
	DateFrom   *string `json:"date_from,omitempty"`
	DateTo     *string `json:"date_to,omitempty"`
	Status     *string `json:"status,omitempty"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
}

type MyAttendanceFilter struct {
	DateFrom *string `json:"date_from,omitempty"`
	DateTo   *string `json:"date_to,omitempty"`
	Page     int     `json:"page"`
	Limit    int     `json:"limit"`
}

type ListAttendanceResponse struct {
	Data       []AttendanceResponse `json:"data"`
	TotalCount int64                `json:"total_count"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
}
