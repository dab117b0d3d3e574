package employee

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/staffsync/staffsync-backend-go/internal/domain/employee"
	"github.com/staffsync/staffsync-backend-go/internal/pkg/database"
)

const dateLayout = "2006-01-02"

type EmployeeServiceImpl struct {
	db           *database.DB
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(
	db *database.DB,
	employeeRepo employee.EmployeeRepository,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		db:           db,
		employeeRepo: employeeRepo,
	}
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return mapEmployeeToResponse(emp), nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	baseSalary := decimal.Zero
	if req.BaseSalary != nil {
		baseSalary = *req.BaseSalary
	}

	var hireDate *time.Time
	if req.HireDate != nil {
		parsed, err := time.Parse(dateLayout, *req.HireDate)
		if err != nil {
			return employee.EmployeeResponse{}, fmt.Errorf("failed to parse hire date: %w", err)
		}
		hireDate = &parsed
	}

	data := employee.Employee{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		Position:   req.Position,
		Department: req.Department,
		BaseSalary: baseSalary,
		HireDate:   hireDate,
		Status:     employee.EmploymentStatusActive,
	}

	created, err := s.employeeRepo.Create(ctx, data)
	if err != nil {
		if errors.Is(err, employee.ErrEmailExists) {
			return employee.EmployeeResponse{}, employee.ErrEmailExists
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return mapEmployeeToResponse(created), nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := s.employeeRepo.Update(ctx, id, req); err != nil {
		switch {
		case errors.Is(err, employee.ErrEmployeeNotFound):
			return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
		case errors.Is(err, employee.ErrEmailExists):
			return employee.EmployeeResponse{}, employee.ErrEmailExists
		default:
			return employee.EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
		}
	}

	updated, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get updated employee: %w", err)
	}

	return mapEmployeeToResponse(updated), nil
}

// TerminateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) TerminateEmployee(ctx context.Context, id string) error {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to get employee: %w", err)
	}

	if emp.Status == employee.EmploymentStatusTerminated {
		return employee.ErrEmployeeAlreadyTerminated
	}

	if err := s.employeeRepo.SetStatus(ctx, id, employee.EmploymentStatusTerminated); err != nil {
		return fmt.Errorf("failed to terminate employee: %w", err)
	}

	return nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	employees, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := filter.Page
	if page == 0 {
		page = 1
	}

	data := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		data = append(data, mapEmployeeToResponse(emp))
	}

	return employee.ListEmployeeResponse{
		Data:       data,
		TotalCount: total,
		Page:       page,
		Limit:      limit,
	}, nil
}

func mapEmployeeToResponse(emp employee.Employee) employee.EmployeeResponse {
	resp := employee.EmployeeResponse{
		ID:         emp.ID,
		FirstName:  emp.FirstName,
		LastName:   emp.LastName,
		Email:      emp.Email,
		Phone:      emp.Phone,
		Position:   emp.Position,
		Department: emp.Department,
		BaseSalary: emp.BaseSalary,
		Status:     string(emp.Status),
	}
	if emp.HireDate != nil {
		hireDate := emp.HireDate.Format(dateLayout)
		resp.HireDate = &hireDate
	}
	return resp
}
