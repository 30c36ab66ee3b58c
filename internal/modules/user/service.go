package user

import "context"

// Service defines the interface for user-related business logic.
type Service interface {
	RegisterUser(ctx context.Context, email, password, displayName string, role Role) (*User, error)
	GetUser(ctx context.Context, id string) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)
	UpdateRole(ctx context.Context, id string, role Role) (*User, error)
	Deactivate(ctx context.Context, id string) error
}
