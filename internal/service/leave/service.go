package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/staffsync/staffsync-backend-go/internal/config"
	"github.com/staffsync/staffsync-backend-go/internal/domain/leave"
	"github.com/staffsync/staffsync-backend-go/internal/pkg/database"
)

const dateLayout = "2006-01-02"

type LeaveServiceImpl struct {
	db              *database.DB
	leaveRepo       leave.LeaveRequestRepository
	annualQuotaDays int
	timezone        *time.Location
}

func NewLeaveService(
	db *database.DB,
	leaveRepo leave.LeaveRequestRepository,
	cfg *config.Config,
) leave.LeaveService {
	return &LeaveServiceImpl{
		db:              db,
		leaveRepo:       leaveRepo,
		annualQuotaDays: cfg.Leave.AnnualQuotaDays,
		timezone:        cfg.App.Timezone,
	}
}

func claimFromContext(ctx context.Context, key string) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	value, ok := claims[key].(string)
	if !ok || value == "" {
		return "", fmt.Errorf("%s claim is missing or invalid", key)
	}

	return value, nil
}

// Apply implements leave.LeaveService.
func (s *LeaveServiceImpl) Apply(ctx context.Context, req leave.ApplyLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	employeeID, err := claimFromContext(ctx, "employee_id")
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	startDate, _ := time.Parse(dateLayout, req.StartDate)
	endDate, _ := time.Parse(dateLayout, req.EndDate)
	daysCount := leave.InclusiveDays(startDate, endDate)

	if leave.LeaveType(req.LeaveType) == leave.LeaveTypeAnnual {
		used, err := s.leaveRepo.ApprovedDaysInYear(ctx, employeeID, startDate.Year())
		if err != nil {
			return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get used leave days: %w", err)
		}
		if used+daysCount > s.annualQuotaDays {
			return leave.LeaveRequestResponse{}, leave.ErrInsufficientQuota
		}
	}

	data := leave.LeaveRequest{
		EmployeeID: employeeID,
		LeaveType:  leave.LeaveType(req.LeaveType),
		StartDate:  startDate,
		EndDate:    endDate,
		DaysCount:  daysCount,
		Reason:     req.Reason,
		Status:     leave.LeaveRequestStatusPending,
	}

	created, err := s.leaveRepo.Create(ctx, data)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return mapLeaveRequestToResponse(created), nil
}

// Approve implements leave.LeaveService.
func (s *LeaveServiceImpl) Approve(ctx context.Context, requestID string) error {
	return s.decide(ctx, requestID, leave.LeaveRequestStatusApproved)
}

// Reject implements leave.LeaveService.
func (s *LeaveServiceImpl) Reject(ctx context.Context, req leave.RejectLeaveRequest) error {
	return s.decide(ctx, req.ID, leave.LeaveRequestStatusRejected)
}

func (s *LeaveServiceImpl) decide(ctx context.Context, requestID string, status leave.LeaveRequestStatus) error {
	userID, err := claimFromContext(ctx, "user_id")
	if err != nil {
		return err
	}

	moved, err := s.leaveRepo.UpdateStatus(ctx, requestID, status, userID)
	if err != nil {
		return fmt.Errorf("failed to update leave request status: %w", err)
	}
	if !moved {
		// Zero rows changed: either the request is missing or it was
		// already decided. Look it up to tell the two apart.
		if _, err := s.leaveRepo.GetByID(ctx, requestID); err != nil {
			if errors.Is(err, leave.ErrLeaveRequestNotFound) {
				return leave.ErrLeaveRequestNotFound
			}
			return fmt.Errorf("failed to get leave request: %w", err)
		}
		return leave.ErrLeaveRequestAlreadyProcessed
	}

	return nil
}

// ListMyRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) ListMyRequests(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	employeeID, err := claimFromContext(ctx, "employee_id")
	if err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	filter.EmployeeID = &employeeID
	return s.ListRequests(ctx, filter)
}

// ListRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) ListRequests(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	requests, total, err := s.leaveRepo.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := filter.Page
	if page == 0 {
		page = 1
	}

	data := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, request := range requests {
		data = append(data, mapLeaveRequestToResponse(request))
	}

	return leave.ListLeaveRequestResponse{
		Data:       data,
		TotalCount: total,
		Page:       page,
		Limit:      limit,
	}, nil
}

// MyBalance implements leave.LeaveService.
func (s *LeaveServiceImpl) MyBalance(ctx context.Context) (leave.LeaveBalanceResponse, error) {
	employeeID, err := claimFromContext(ctx, "employee_id")
	if err != nil {
		return leave.LeaveBalanceResponse{}, err
	}

	year := time.Now().In(s.timezone).Year()
	used, err := s.leaveRepo.ApprovedDaysInYear(ctx, employeeID, year)
	if err != nil {
		return leave.LeaveBalanceResponse{}, fmt.Errorf("failed to get used leave days: %w", err)
	}

	return leave.LeaveBalanceResponse{
		EmployeeID:   employeeID,
		Year:         year,
		AnnualQuota:  s.annualQuotaDays,
		DaysUsed:     used,
		DaysRemained: s.annualQuotaDays - used,
	}, nil
}

func mapLeaveRequestToResponse(request leave.LeaveRequest) leave.LeaveRequestResponse {
	resp := leave.LeaveRequestResponse{
		ID:         request.ID,
		EmployeeID: request.EmployeeID,
		LeaveType:  string(request.LeaveType),
		StartDate:  request.StartDate.Format(dateLayout),
		EndDate:    request.EndDate.Format(dateLayout),
		DaysCount:  request.DaysCount,
		Reason:     request.Reason,
		Status:     string(request.Status),
		AppliedAt:  request.AppliedAt.Format(time.RFC3339),
	}
	if request.EmployeeName != nil {
		resp.EmployeeName = *request.EmployeeName
	}
	if request.ApprovedAt != nil {
		approvedAt := request.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &approvedAt
	}
	return resp
}
