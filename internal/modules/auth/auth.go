package auth

import "context"

// Service authenticates dashboard users.
type Service interface {
	// Login verifies the email/password pair against the user store and
	// returns a signed session token for the dashboard.
	Login(ctx context.Context, email, password string) (string, error)
}
