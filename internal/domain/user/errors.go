package user

import (
	"github.com/chronohr/attendance-backend-go/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.NotFound("employee not found")
	ErrInvalidCredentials = apperror.New(apperror.KindUnauthorized, "invalid email or password")
	ErrApproverRequired   = apperror.Forbidden("manager or admin role required")
)
