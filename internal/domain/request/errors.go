package request

import (
	"github.com/chronohr/attendance-backend-go/internal/pkg/apperror"
)

// Request domain errors, classified for the transport layer.
var (
	// Creation
	ErrInvalidType          = apperror.BadInput("unknown request type")
	ErrCheckOutBeforeIn     = apperror.BadInput("check-out must be after check-in")
	ErrCheckInDateMismatch  = apperror.BadInput("check-in must fall on the request date")
	ErrCheckInInFuture      = apperror.BadInput("check-in cannot be in the future")
	ErrNonWorkingDay        = apperror.BadInput("date falls on a weekend or holiday")
	ErrNoAnchorTime         = apperror.BadInput("no check-in available for this date; cannot adjust check-out only")
	ErrSubmissionTooLate    = apperror.BadInput("submission window for this date has passed")
	ErrSessionTooLong       = apperror.BadInput("session exceeds the maximum allowed length")
	ErrInconsistentCheckout = apperror.BadInput("requested time conflicts with the recorded session")

	ErrDuplicatePendingAdjust = apperror.Conflict("a pending adjustment already exists for this date")
	ErrLeaveOverlap           = apperror.Conflict("an existing leave request overlaps this range")
	ErrLeaveCoversAttendance  = apperror.Conflict("attendance already recorded in this range; use a time adjustment instead")

	ErrLeaveRangeInverted = apperror.BadInput("leave start date must not be after end date")
	ErrLeaveRangeTooLong  = apperror.BadInput("leave range cannot exceed 30 days")
	ErrInvalidCategory    = apperror.BadInput("invalid leave category")

	ErrOTDateInPast        = apperror.BadInput("overtime date must be today or later")
	ErrOTEndNotAfterNow    = apperror.BadInput("estimated end must be in the future")
	ErrOTEndCrossMidnight  = apperror.BadInput("overtime cannot cross midnight; submit one request per day")
	ErrOTEndBeforeDayStart = apperror.BadInput("estimated end is before the overtime day start")
	ErrOTTooShort          = apperror.BadInput("overtime is shorter than the minimum duration")
	ErrOTAfterCheckout     = apperror.Conflict("attendance for this date is already checked out")
	ErrOTMonthlyCap        = apperror.Conflict("too many pending overtime requests this month")
	ErrDuplicatePendingOT  = apperror.Conflict("a pending overtime request already exists for this date")

	// Decision
	ErrNotFound          = apperror.NotFound("request not found")
	ErrOwnerIneligible   = apperror.Forbidden("request owner is inactive or no longer employed")
	ErrApproverNoTeam    = apperror.Forbidden("manager has no team assigned")
	ErrTeamMismatch      = apperror.Forbidden("request belongs to another team")
	ErrAlreadyApproved   = apperror.Conflict("request is already approved")
	ErrAlreadyRejected   = apperror.Conflict("request is already rejected")
	ErrAttendanceRemoved = apperror.Conflict("attendance check-in disappeared since submission")
)
