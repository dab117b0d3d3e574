package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/staffsync/staffsync-backend-go/internal/config"
	"github.com/staffsync/staffsync-backend-go/internal/domain/attendance"
	"github.com/staffsync/staffsync-backend-go/internal/domain/employee"
	"github.com/staffsync/staffsync-backend-go/internal/pkg/database"
)

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.AttendanceRepository
	employee.EmployeeRepository
	standardShiftHours int
	lateAfter          string
	timezone           *time.Location
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	cfg *config.Config,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:                   db,
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		standardShiftHours:   cfg.Attendance.StandardShiftHours,
		lateAfter:            cfg.Attendance.LateAfter,
		timezone:             cfg.App.Timezone,
	}
}

func employeeIDFromClaims(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", fmt.Errorf("employee_id claim is missing or invalid")
	}

	return employeeID, nil
}

// workedHours derives total and overtime hours from a clock pair. A
// pair that cannot be read yields zero hours rather than an error, so
// a malformed entry never blocks the attendance write.
func (a *AttendanceServiceImpl) workedHours(checkIn, checkOut *string) (decimal.Decimal, decimal.Decimal) {
	if checkIn == nil || checkOut == nil {
		return decimal.Zero, decimal.Zero
	}

	worked, err := attendance.WorkedDuration(*checkIn, *checkOut)
	if err != nil {
		return decimal.Zero, decimal.Zero
	}

	total := attendance.Hours(worked)
	return total, attendance.OvertimeHours(total, a.standardShiftHours)
}

// checkInStatus marks a check-in late when it comes after the
// configured threshold.
func (a *AttendanceServiceImpl) checkInStatus(checkIn string) attendance.AttendanceStatus {
	in, err := attendance.ParseClock(checkIn)
	if err != nil {
		return attendance.StatusPresent
	}
	threshold, err := attendance.ParseClock(a.lateAfter)
	if err != nil {
		return attendance.StatusPresent
	}
	if in.After(threshold) {
		return attendance.StatusLate
	}
	return attendance.StatusPresent
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context) (attendance.AttendanceResponse, error) {
	employeeID, err := employeeIDFromClaims(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	nowLocal := time.Now().In(a.timezone)
	today := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, time.UTC)
	clockIn := nowLocal.Format(attendance.ClockLayout)

	data := attendance.Attendance{
		EmployeeID:    employeeID,
		Date:          today,
		CheckInTime:   &clockIn,
		TotalHours:    decimal.Zero,
		OvertimeHours: decimal.Zero,
		Status:        a.checkInStatus(clockIn),
	}

	created, err := a.AttendanceRepository.Create(ctx, data)
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
			return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return mapAttendanceToResponse(created), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context) (attendance.AttendanceResponse, error) {
	employeeID, err := employeeIDFromClaims(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	nowLocal := time.Now().In(a.timezone)
	today := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, time.UTC)

	record, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if record == nil || record.CheckInTime == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNoCheckInFound
	}
	if record.CheckOutTime != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	clockOut := nowLocal.Format(attendance.ClockLayout)
	record.CheckOutTime = &clockOut
	record.TotalHours, record.OvertimeHours = a.workedHours(record.CheckInTime, record.CheckOutTime)

	if err := a.AttendanceRepository.Update(ctx, *record); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return mapAttendanceToResponse(*record), nil
}

// UpsertEntry implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) UpsertEntry(ctx context.Context, req attendance.UpsertEntryRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if _, err := a.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrEmployeeNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return attendance.AttendanceResponse{}, attendance.ErrInvalidClockTime
	}

	total, overtime := a.workedHours(req.CheckInTime, req.CheckOutTime)

	status := attendance.StatusPresent
	if req.CheckInTime != nil {
		status = a.checkInStatus(*req.CheckInTime)
	}
	if req.Status != nil {
		status = attendance.AttendanceStatus(*req.Status)
	}

	data := attendance.Attendance{
		EmployeeID:    req.EmployeeID,
		Date:          date,
		CheckInTime:   req.CheckInTime,
		CheckOutTime:  req.CheckOutTime,
		TotalHours:    total,
		OvertimeHours: overtime,
		Status:        status,
		Notes:         req.Notes,
	}

	saved, err := a.AttendanceRepository.Upsert(ctx, data)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to upsert attendance record: %w", err)
	}

	return mapAttendanceToResponse(saved), nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, filter attendance.MyAttendanceFilter) (attendance.ListAttendanceResponse, error) {
	employeeID, err := employeeIDFromClaims(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := a.AttendanceRepository.GetMyAttendance(ctx, employeeID, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to get attendance records: %w", err)
	}

	return buildListResponse(records, total, filter.Page, filter.Limit), nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	records, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	return buildListResponse(records, total, filter.Page, filter.Limit), nil
}

// GetAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	record, err := a.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return mapAttendanceToResponse(record), nil
}

func buildListResponse(records []attendance.Attendance, total int64, page, limit int) attendance.ListAttendanceResponse {
	if limit == 0 {
		limit = 20
	}
	if page == 0 {
		page = 1
	}

	data := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		data = append(data, mapAttendanceToResponse(record))
	}

	return attendance.ListAttendanceResponse{
		Data:       data,
		TotalCount: total,
		Page:       page,
		Limit:      limit,
	}
}

func mapAttendanceToResponse(record attendance.Attendance) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:            record.ID,
		EmployeeID:    record.EmployeeID,
		Department:    record.Department,
		Date:          record.Date.Format("2006-01-02"),
		CheckInTime:   record.CheckInTime,
		CheckOutTime:  record.CheckOutTime,
		TotalHours:    record.TotalHours,
		OvertimeHours: record.OvertimeHours,
		Status:        string(record.Status),
		Notes:         record.Notes,
	}
	if record.EmployeeName != nil {
		resp.EmployeeName = *record.EmployeeName
	}
	return resp
}
