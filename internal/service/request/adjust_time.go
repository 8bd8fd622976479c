package request

import (
	"context"
	"fmt"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/attendance"
	"github.com/chronohr/attendance-backend-go/internal/domain/request"
	"github.com/chronohr/attendance-backend-go/internal/pkg/datetime"
	"github.com/chronohr/attendance-backend-go/internal/pkg/validator"
)

// createAdjustTime validates and stores an ADJUST_TIME request. The date
// field is the check-in day; a cross-midnight session is expressed by the
// checkout landing on the next day, never by shifting the date.
func (s *RequestServiceImpl) createAdjustTime(ctx context.Context, employeeID string, input request.CreateRequestInput) (request.Request, error) {
	now := s.now()
	anchorDate := input.Date

	var checkInAt, checkOutAt *time.Time
	if !validator.IsEmpty(input.CheckInAt) {
		t, _ := validator.IsValidRFC3339(input.CheckInAt)
		checkInAt = &t
	}
	if !validator.IsEmpty(input.CheckOutAt) {
		t, _ := validator.IsValidRFC3339(input.CheckOutAt)
		checkOutAt = &t
	}

	if checkInAt != nil && checkOutAt != nil && !checkOutAt.After(*checkInAt) {
		return request.Request{}, request.ErrCheckOutBeforeIn
	}

	if checkInAt != nil {
		if datetime.DateKey(*checkInAt) != anchorDate {
			return request.Request{}, request.ErrCheckInDateMismatch
		}
		if checkInAt.After(now.Add(clockSkewTolerance)) {
			return request.Request{}, request.ErrCheckInInFuture
		}
	}

	working, err := s.isWorkingDay(ctx, anchorDate)
	if err != nil {
		return request.Request{}, err
	}
	if !working {
		return request.Request{}, request.ErrNonWorkingDay
	}

	att, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, anchorDate)
	if err != nil {
		return request.Request{}, fmt.Errorf("failed to load attendance: %w", err)
	}

	anchor, err := resolveAnchor(checkInAt, att)
	if err != nil {
		return request.Request{}, err
	}

	if err := s.checkAdjustWindows(now, anchor, checkOutAt); err != nil {
		return request.Request{}, err
	}

	if err := checkExistingSessionConsistency(checkInAt, checkOutAt, att); err != nil {
		return request.Request{}, err
	}

	existing, err := s.requestRepo.FindPendingAdjustTime(ctx, employeeID, anchorDate)
	if err != nil {
		return request.Request{}, fmt.Errorf("failed to check pending adjustments: %w", err)
	}
	if existing != nil {
		return request.Request{}, request.ErrDuplicatePendingAdjust
	}

	req := request.Request{
		Type:        request.TypeAdjustTime,
		EmployeeID:  employeeID,
		Reason:      input.TrimmedReason(),
		Status:      request.StatusPending,
		CheckInAt:   checkInAt,
		CheckOutAt:  checkOutAt,
		CheckInDate: &anchorDate,
	}
	if checkOutAt != nil {
		outDate, err := checkOutDateFor(anchorDate, *checkOutAt)
		if err != nil {
			return request.Request{}, err
		}
		req.CheckOutDate = &outDate
	}

	created, err := s.requestRepo.Create(ctx, req)
	if err != nil {
		return request.Request{}, err
	}

	return created, nil
}

// resolveAnchor picks the reference instant for the window checks: the
// requested check-in when present, otherwise the day's recorded check-in.
// With neither there is nothing to anchor an attendance row on.
func resolveAnchor(checkInAt *time.Time, att *attendance.Attendance) (time.Time, error) {
	if checkInAt != nil {
		return *checkInAt, nil
	}
	if att != nil {
		return att.CheckInAt, nil
	}
	return time.Time{}, request.ErrNoAnchorTime
}

// checkAdjustWindows applies the submission-window and session-length
// thresholds. Both run again at approval time with a freshly derived anchor.
func (s *RequestServiceImpl) checkAdjustWindows(now, anchor time.Time, checkOutAt *time.Time) error {
	if now.Sub(anchor) > s.grace.MaxSubmissionDelay {
		return request.ErrSubmissionTooLate
	}

	if checkOutAt != nil {
		if !checkOutAt.After(anchor) {
			return request.ErrCheckOutBeforeIn
		}
		if checkOutAt.Sub(anchor) > s.grace.MaxSession {
			return request.ErrSessionTooLong
		}
	}

	return nil
}

// checkExistingSessionConsistency keeps a partial edit chronologically
// consistent with the instants already recorded on the attendance row.
func checkExistingSessionConsistency(checkInAt, checkOutAt *time.Time, att *attendance.Attendance) error {
	if att == nil {
		return nil
	}

	// Checkout-only edit must stay after the recorded check-in.
	if checkInAt == nil && checkOutAt != nil && !checkOutAt.After(att.CheckInAt) {
		return request.ErrInconsistentCheckout
	}

	// Check-in-only edit must stay before the recorded checkout.
	if checkOutAt == nil && checkInAt != nil && att.CheckOutAt != nil && !checkInAt.Before(*att.CheckOutAt) {
		return request.ErrInconsistentCheckout
	}

	return nil
}

// checkOutDateFor derives the checkout day: the anchor day itself, or the
// next day for a cross-midnight session. The session-length cap keeps
// anything further out of reach.
func checkOutDateFor(anchorDate string, checkOutAt time.Time) (string, error) {
	outKey := datetime.DateKey(checkOutAt)
	if outKey == anchorDate {
		return anchorDate, nil
	}
	return datetime.AddDays(anchorDate, 1)
}
