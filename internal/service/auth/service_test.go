package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/chronohr/attendance-backend-go/internal/domain/auth"
	"github.com/chronohr/attendance-backend-go/internal/domain/user"
	"github.com/chronohr/attendance-backend-go/internal/pkg/jwt"
)

type fakeEmployeeRepo struct {
	employees map[string]user.Employee // keyed by email
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (user.Employee, error) {
	for _, emp := range f.employees {
		if emp.ID == id {
			return emp, nil
		}
	}
	return user.Employee{}, user.ErrNotFound
}

func (f *fakeEmployeeRepo) GetByEmail(_ context.Context, email string) (user.Employee, error) {
	emp, ok := f.employees[email]
	if !ok {
		return user.Employee{}, user.ErrNotFound
	}
	return emp, nil
}

func newLoginService(t *testing.T) auth.AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	deletedAt := time.Now()

	repo := &fakeEmployeeRepo{employees: map[string]user.Employee{
		"ana@example.com": {
			ID:           "emp-1",
			Name:         "Ana",
			Email:        "ana@example.com",
			PasswordHash: string(hash),
			Role:         user.RoleEmployee,
			IsActive:     true,
		},
		"cai@example.com": {
			ID:           "emp-3",
			Name:         "Cai",
			Email:        "cai@example.com",
			PasswordHash: string(hash),
			Role:         user.RoleEmployee,
			IsActive:     true,
			DeletedAt:    &deletedAt,
		},
		"ben@example.com": {
			ID:           "emp-2",
			Name:         "Ben",
			Email:        "ben@example.com",
			PasswordHash: string(hash),
			Role:         user.RoleEmployee,
			IsActive:     false,
		},
	}}

	return NewAuthService(repo, jwt.NewJWTService("test-secret-key-for-jwt", "1h"))
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		svc := newLoginService(t)

		resp, err := svc.Login(ctx, auth.LoginRequest{Email: "ana@example.com", Password: "password123"})
		require.NoError(t, err)

		assert.NotEmpty(t, resp.AccessToken)
		assert.Greater(t, resp.AccessTokenExpiresAt, int64(0))
		assert.Equal(t, "emp-1", resp.Employee.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc := newLoginService(t)

		_, err := svc.Login(ctx, auth.LoginRequest{Email: "ana@example.com", Password: "wrong-password"})
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})

	t.Run("unknown email reports the same error", func(t *testing.T) {
		svc := newLoginService(t)

		_, err := svc.Login(ctx, auth.LoginRequest{Email: "nobody@example.com", Password: "password123"})
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})

	t.Run("inactive account cannot log in", func(t *testing.T) {
		svc := newLoginService(t)

		_, err := svc.Login(ctx, auth.LoginRequest{Email: "ben@example.com", Password: "password123"})
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})

	t.Run("deleted account cannot log in", func(t *testing.T) {
		svc := newLoginService(t)

		_, err := svc.Login(ctx, auth.LoginRequest{Email: "cai@example.com", Password: "password123"})
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})

	t.Run("malformed payload", func(t *testing.T) {
		svc := newLoginService(t)

		_, err := svc.Login(ctx, auth.LoginRequest{Email: "not-an-email", Password: "password123"})
		assert.Error(t, err)
	})
}
