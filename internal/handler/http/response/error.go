package response

import (
	"errors"
	"net/http"

	"github.com/chronohr/attendance-backend-go/internal/pkg/apperror"
	"github.com/chronohr/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps classified errors to HTTP responses. Unclassified errors
// become a 500 with a generic message so internals never reach clients.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch apperror.KindOf(err) {
	case apperror.KindBadInput:
		BadRequest(w, apperror.MessageOf(err), nil)
	case apperror.KindUnauthorized:
		Unauthorized(w, apperror.MessageOf(err))
	case apperror.KindForbidden:
		Forbidden(w, apperror.MessageOf(err))
	case apperror.KindNotFound:
		NotFound(w, apperror.MessageOf(err))
	case apperror.KindConflict:
		Conflict(w, apperror.MessageOf(err))
	default:
		InternalServerError(w, apperror.MessageOf(err))
	}
}
