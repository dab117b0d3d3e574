package user

import (
	"context"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	Create(ctx context.Context, newUser User) (User, error)
	Count(ctx context.Context) (int64, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	LinkEmployee(ctx context.Context, userID, employeeID string) error
}
