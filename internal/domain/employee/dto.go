package employee

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/staffsync/staffsync-backend-go/internal/pkg/validator"
)

const dateLayout = "2006-01-02"

type CreateEmployeeRequest struct {
	FirstName  string           `json:"first_name"`
	LastName   string           `json:"last_name"`
	Email      string           `json:"email"`
	Phone      *string          `json:"phone,omitempty"`
	Position   *string          `json:"position,omitempty"`
	Department *string          `json:"department,omitempty"`
	BaseSalary *decimal.Decimal `json:"base_salary,omitempty"`
	HireDate   *string          `json:"hire_date,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "first_name is required"})
	}
	if validator.IsEmpty(r.LastName) {
		errs = append(errs, validator.ValidationError{Field: "last_name", Message: "last_name is required"})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email must be a valid email address"})
	}
	if r.BaseSalary != nil && r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "base_salary must be non-negative"})
	}
	if r.HireDate != nil {
		if _, err := time.Parse(dateLayout, *r.HireDate); err != nil {
			errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "hire_date must be a valid date (YYYY-MM-DD)"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	FirstName  *string          `json:"first_name,omitempty"`
	LastName   *string          `json:"last_name,omitempty"`
	Email      *string          `json:"email,omitempty"`
	Phone      *string          `json:"phone,omitempty"`
	Position   *string          `json:"position,omitempty"`
	Department *string          `json:"department,omitempty"`
	BaseSalary *decimal.Decimal `json:"base_salary,omitempty"`
	HireDate   *string          `json:"hire_date,omitempty"`
	Status     *string          `json:"status,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email must be a valid email address"})
	}
	if r.BaseSalary != nil && r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "base_salary must be non-negative"})
	}
	if r.HireDate != nil {
		if _, err := time.Parse(dateLayout, *r.HireDate); err != nil {
			errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "hire_date must be a valid date (YYYY-MM-DD)"})
		}
	}
	if r.Status != nil {
		switch EmploymentStatus(*r.Status) {
		case EmploymentStatusActive, EmploymentStatusTerminated:
		default:
			errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be 'active' or 'terminated'"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID         string          `json:"id"`
	FirstName  string          `json:"first_name"`
	LastName   string          `json:"last_name"`
	Email      string          `json:"email"`
	Phone      *string         `json:"phone,omitempty"`
	Position   *string         `json:"position,omitempty"`
	Department *string         `json:"department,omitempty"`
	BaseSalary decimal.Decimal `json:"base_salary"`
	HireDate   *string         `json:"hire_date,omitempty"`
	Status     string          `json:"status"`
}

type EmployeeFilter struct {
	Department *string `json:"department,omitempty"`
	Status     *string `json:"status,omitempty"`
	Search     *string `json:"search,omitempty"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
}

type ListEmployeeResponse struct {
	Data       []EmployeeResponse `json:"data"`
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
}
