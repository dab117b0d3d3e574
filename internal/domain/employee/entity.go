package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID         string
	FirstName  string
	LastName   string
	Email      string
	Phone      *string
	Position   *string
	Department *string
	BaseSalary decimal.Decimal
	HireDate   *time.Time
	Status     EmploymentStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)
