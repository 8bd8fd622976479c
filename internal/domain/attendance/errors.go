package attendance

import (
	"github.com/chronohr/attendance-backend-go/internal/pkg/apperror"
)

// Attendance domain errors
var (
	ErrNotFound        = apperror.NotFound("attendance record not found")
	ErrCheckInRequired = apperror.BadInput("an attendance record cannot be created without a check-in")
)
