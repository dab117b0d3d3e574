package user

import "time"

type Role string

const (
	RoleAdmin Role = "admin" // Manages employees, attendance and payroll
	RoleStaff Role = "staff" // Regular employee account
)

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	EmployeeID   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
