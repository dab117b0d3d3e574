package leave

import (
	"time"

	"github.com/staffsync/staffsync-backend-go/internal/pkg/validator"
)

const dateLayout = "2006-01-02"

type ApplyLeaveRequest struct {
	LeaveType string  `json:"leave_type"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Reason    *string `json:"reason,omitempty"`
}

func (r *ApplyLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	switch LeaveType(r.LeaveType) {
	case LeaveTypeAnnual, LeaveTypeSick, LeaveTypePersonal, LeaveTypeUnpaid, LeaveTypeMaternity:
	default:
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of 'annual', 'sick', 'personal', 'unpaid', 'maternity'",
		})
	}

	start, startErr := time.Parse(dateLayout, r.StartDate)
	if startErr != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a valid date (YYYY-MM-DD)",
		})
	}
	end, endErr := time.Parse(dateLayout, r.EndDate)
	if endErr != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a valid date (YYYY-MM-DD)",
		})
	}
	if startErr == nil && endErr == nil && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RejectLeaveRequest struct {
	ID     string  `json:"-"`
	Reason *string `json:"reason,omitempty"`
}

type LeaveRequestResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty"`
	LeaveType    string  `json:"leave_type"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	DaysCount    int     `json:"days_count"`
	Reason       *string `json:"reason,omitempty"`
	Status       string  `json:"status"`
	AppliedAt    string  `json:"applied_at"`
	ApprovedAt   *string `json:"approved_at,omitempty"`
}

type LeaveBalanceResponse struct {
	EmployeeID   string `json:"employee_id"`
	Year         int    `json:"year"`
	AnnualQuota  int    `json:"annual_quota"`
	DaysUsed     int    `json:"days_used"`
	DaysRemained int    `json:"days_remaining"`
}

type LeaveRequestFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Status     *string `json:"status,omitempty"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
}

type ListLeaveRequestResponse struct {
	Data       []LeaveRequestResponse `json:"data"`
	TotalCount int64                  `json:"total_count"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
}
