package dashboard

// ========== COMBINED DASHBOARD ==========

// DashboardResponse is the combined response for the admin dashboard endpoint
type DashboardResponse struct {
	EmployeeSummary EmployeeSummaryResponse `json:"employee_summary"`
	AttendanceToday AttendanceTodayResponse `json:"attendance_today"`
	PendingLeaves   int64                   `json:"pending_leaves"`
	RecentEmployees []RecentEmployeeItem    `json:"recent_employees"`
	PayrollSummary  PayrollSummaryResponse  `json:"payroll_summary"`
}

// ========== EMPLOYEE SUMMARY ==========

type EmployeeSummaryResponse struct {
	TotalEmployee      int64 `json:"total_employee"`
	ActiveEmployee     int64 `json:"active_employee"`
	TerminatedEmployee int64 `json:"terminated_employee"`
	Departments        int64 `json:"departments"`
}

type RecentEmployeeItem struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Department *string `json:"department,omitempty"`
	HireDate   *string `json:"hire_date,omitempty"`
}

// ========== TODAY'S ATTENDANCE ==========

type AttendanceTodayResponse struct {
	Present        int64                  `json:"present"`
	Late           int64                  `json:"late"`
	Absent         int64                  `json:"absent"`
	NotCheckedIn   int64                  `json:"not_checked_in"`
	Records        []AttendanceRecordItem `json:"records"`
	Date           string                 `json:"date"` // Format: "YYYY-MM-DD"
	PresentPercent float64                `json:"present_percent"`
}

// AttendanceRecordItem represents a single attendance record in the list
type AttendanceRecordItem struct {
	EmployeeName string  `json:"employee_name"`
	Status       string  `json:"status"`
	CheckIn      *string `json:"check_in,omitempty"` // Format: "HH:MM"
}

// ========== PAYROLL SUMMARY ==========

type PayrollSummaryResponse struct {
	DraftCount     int64 `json:"draft_count"`
	ProcessedCount int64 `json:"processed_count"`
	PaidCount      int64 `json:"paid_count"`
}
