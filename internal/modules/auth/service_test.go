package auth

import (
	"context"
	"fmt"
	"testing"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Vileyy/admin-halora-sub001/internal/modules/user"
)

type fakeUserRepo struct {
	users map[string]*user.User // by email
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, u *user.User) error {
	f.users[u.Email] = u
	return nil
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, fmt.Errorf("user %s not found", email)
	}
	return u, nil
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id string) (*user.User, error) {
	return nil, fmt.Errorf("not implemented")
}

func (f *fakeUserRepo) ListUsers(ctx context.Context) ([]*user.User, error) { return nil, nil }

func (f *fakeUserRepo) UpdateUser(ctx context.Context, u *user.User) error { return nil }

var testKey = []byte("test-signing-key")

func seedUser(t *testing.T, repo *fakeUserRepo, email, password string, active bool) *user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         user.RoleAdmin,
		IsActive:     active,
	}
	repo.users[email] = u
	return u
}

func TestLoginIssuesSignedToken(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]*user.User{}}
	u := seedUser(t, repo, "admin@halora.vn", "s3cretpass", true)
	svc := NewService(repo, testKey)

	tokenString, err := svc.Login(context.Background(), "admin@halora.vn", "s3cretpass")
	require.NoError(t, err)

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(tok *jwt.Token) (interface{}, error) {
		return testKey, nil
	})
	require.NoError(t, err)
	assert.True(t, token.Valid)
	assert.Equal(t, u.ID.String(), claims.Subject)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.Greater(t, claims.ExpiresAt, claims.IssuedAt)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]*user.User{}}
	seedUser(t, repo, "admin@halora.vn", "s3cretpass", true)
	svc := NewService(repo, testKey)

	_, err := svc.Login(context.Background(), "admin@halora.vn", "wrong")
	require.Error(t, err)
	assert.EqualError(t, err, "invalid credentials")
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := NewService(&fakeUserRepo{users: map[string]*user.User{}}, testKey)

	_, err := svc.Login(context.Background(), "nobody@halora.vn", "whatever")
	require.Error(t, err)
	// unknown account and wrong password are indistinguishable to the caller
	assert.EqualError(t, err, "invalid credentials")
}

func TestLoginDisabledAccount(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]*user.User{}}
	seedUser(t, repo, "former@halora.vn", "s3cretpass", false)
	svc := NewService(repo, testKey)

	_, err := svc.Login(context.Background(), "former@halora.vn", "s3cretpass")
	require.Error(t, err)
	assert.EqualError(t, err, "account is disabled")
}
