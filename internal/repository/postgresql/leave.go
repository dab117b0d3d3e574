package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/staffsync/staffsync-backend-go/internal/domain/leave"
	"github.com/staffsync/staffsync-backend-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `
	lr.id, lr.employee_id, lr.leave_type, lr.start_date, lr.end_date,
	lr.days_count, lr.reason, lr.status, lr.applied_at, lr.approved_by, lr.approved_at`

func scanLeaveRequest(row pgx.Row, joined bool) (leave.LeaveRequest, error) {
	var req leave.LeaveRequest
	dest := []interface{}{
		&req.ID, &req.EmployeeID, &req.LeaveType, &req.StartDate, &req.EndDate,
		&req.DaysCount, &req.Reason, &req.Status, &req.AppliedAt, &req.ApprovedBy, &req.ApprovedAt,
	}
	if joined {
		dest = append(dest, &req.EmployeeName)
	}
	return req, row.Scan(dest...)
}

// Create implements leave.LeaveRequestRepository.
func (l *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		INSERT INTO leave_requests AS lr (
			employee_id, leave_type, start_date, end_date, days_count, reason, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + leaveRequestColumns

	created, err := scanLeaveRequest(q.QueryRow(ctx, query,
		request.EmployeeID,
		request.LeaveType,
		request.StartDate,
		request.EndDate,
		request.DaysCount,
		request.Reason,
		request.Status,
	), false)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return created, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (l *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT ` + leaveRequestColumns + `,
			e.first_name || ' ' || e.last_name AS employee_name
		FROM leave_requests lr
		JOIN employees e ON e.id = lr.employee_id
		WHERE lr.id = $1
	`

	req, err := scanLeaveRequest(q.QueryRow(ctx, query, id), true)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	return req, nil
}

// List implements leave.LeaveRequestRepository.
func (l *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, l.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND lr.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND lr.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM leave_requests lr WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT `+leaveRequestColumns+`,
			e.first_name || ' ' || e.last_name AS employee_name
		FROM leave_requests lr
		JOIN employees e ON e.id = lr.employee_id
		WHERE %s
		ORDER BY lr.applied_at DESC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := filter.Page
	if page == 0 {
		page = 1
	}
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		req, err := scanLeaveRequest(rows, true)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, total, nil
}

// UpdateStatus implements leave.LeaveRequestRepository. The WHERE
// clause pins the current status to pending, so a request that was
// already decided is left untouched and reported via the bool.
func (l *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, status leave.LeaveRequestStatus, approvedBy string) (bool, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		UPDATE leave_requests
		SET status = $1, approved_by = $2, approved_at = NOW()
		WHERE id = $3 AND status = 'pending'
	`

	tag, err := q.Exec(ctx, query, status, approvedBy, id)
	if err != nil {
		return false, fmt.Errorf("failed to update leave request status: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// ApprovedDaysInYear implements leave.LeaveRequestRepository.
func (l *leaveRequestRepositoryImpl) ApprovedDaysInYear(ctx context.Context, employeeID string, year int) (int, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT COALESCE(SUM(days_count), 0)
		FROM leave_requests
		WHERE employee_id = $1
			AND status = 'approved'
			AND leave_type = 'annual'
			AND EXTRACT(YEAR FROM start_date) = $2
	`

	var days int
	if err := q.QueryRow(ctx, query, employeeID, year).Scan(&days); err != nil {
		return 0, fmt.Errorf("failed to sum approved leave days: %w", err)
	}

	return days, nil
}
