package request

import (
	"context"
	"fmt"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/request"
	"github.com/chronohr/attendance-backend-go/internal/pkg/datetime"
	"github.com/chronohr/attendance-backend-go/internal/pkg/validator"
)

// createOT validates and stores an OT_REQUEST, or extends the day's
// existing pending one in place. Overtime never crosses midnight; the next
// morning is a separate request.
func (s *RequestServiceImpl) createOT(ctx context.Context, employeeID string, input request.CreateRequestInput) (request.Request, error) {
	now := s.now()
	date := input.Date
	today := datetime.DateKey(now)

	// Date keys compare lexically.
	if date < today {
		return request.Request{}, request.ErrOTDateInPast
	}

	estimatedEnd, _ := validator.IsValidRFC3339(input.EstimatedEndAt)

	if datetime.DateKey(estimatedEnd) != date {
		return request.Request{}, request.ErrOTEndCrossMidnight
	}

	if date == today && !estimatedEnd.After(now) {
		return request.Request{}, request.ErrOTEndNotAfterNow
	}

	dayStart, err := s.otDayStart(date)
	if err != nil {
		return request.Request{}, err
	}
	if !estimatedEnd.After(dayStart) {
		return request.Request{}, request.ErrOTEndBeforeDayStart
	}
	if estimatedEnd.Sub(dayStart) < s.grace.MinOTDuration {
		return request.Request{}, request.ErrOTTooShort
	}

	att, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return request.Request{}, fmt.Errorf("failed to load attendance: %w", err)
	}
	if att != nil && att.CheckOutAt != nil {
		return request.Request{}, request.ErrOTAfterCheckout
	}

	// Auto-extend: one conditional update, so a second submission for the
	// same day never produces a second document.
	extended, err := s.requestRepo.ExtendPendingOT(ctx, employeeID, date, estimatedEnd, input.TrimmedReason())
	if err != nil {
		return request.Request{}, fmt.Errorf("failed to extend pending overtime: %w", err)
	}
	if extended != nil {
		return *extended, nil
	}

	pendingCount, err := s.requestRepo.CountPendingOTInMonth(ctx, employeeID, datetime.MonthKeyOf(date))
	if err != nil {
		return request.Request{}, fmt.Errorf("failed to count pending overtime: %w", err)
	}
	if pendingCount >= s.grace.MaxPendingOTPerMonth {
		return request.Request{}, request.ErrOTMonthlyCap
	}

	req := request.Request{
		Type:           request.TypeOTRequest,
		EmployeeID:     employeeID,
		Reason:         input.TrimmedReason(),
		Status:         request.StatusPending,
		Date:           &date,
		EstimatedEndAt: &estimatedEnd,
	}

	created, err := s.requestRepo.Create(ctx, req)
	if err != nil {
		return request.Request{}, err
	}

	return created, nil
}

// otDayStart is the configured boundary where overtime begins on the given
// day, in company time.
func (s *RequestServiceImpl) otDayStart(dateKey string) (time.Time, error) {
	day, err := datetime.ParseDateKey(dateKey)
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(time.Duration(s.grace.OTDayStartHour)*time.Hour +
		time.Duration(s.grace.OTDayStartMinute)*time.Minute), nil
}
