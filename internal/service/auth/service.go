package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/chronohr/attendance-backend-go/internal/domain/auth"
	"github.com/chronohr/attendance-backend-go/internal/domain/user"
	"github.com/chronohr/attendance-backend-go/internal/pkg/jwt"
)

type AuthServiceImpl struct {
	employeeRepo user.Repository
	jwtService   jwt.Service
}

func NewAuthService(employeeRepo user.Repository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		employeeRepo: employeeRepo,
		jwtService:   jwtService,
	}
}

// Login implements auth.AuthService. An unknown email and a wrong password
// report the same credential error.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	employee, err := a.employeeRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return auth.TokenResponse{}, user.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get employee by email: %w", err)
	}

	if !employee.Eligible() {
		return auth.TokenResponse{}, user.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, user.ErrInvalidCredentials
	}

	token, expiresAt, err := a.jwtService.GenerateAccessToken(employee)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken:          token,
		AccessTokenExpiresAt: expiresAt,
		Employee:             employee.ToProfile(),
	}, nil
}
