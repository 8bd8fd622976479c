package request

import (
	"context"
	"fmt"

	"github.com/chronohr/attendance-backend-go/internal/domain/request"
	"github.com/chronohr/attendance-backend-go/internal/pkg/datetime"
	"github.com/chronohr/attendance-backend-go/internal/pkg/validator"
)

// maxLeaveDays caps one leave request at 30 inclusive calendar days.
const maxLeaveDays = 30

// createLeave validates and stores a LEAVE request.
//
// Two overlapping submissions racing each other can both pass the overlap
// query before either commits; a range has no equality key a unique index
// could guard. Accepted: the window is one round-trip wide and an approver
// sees both requests.
func (s *RequestServiceImpl) createLeave(ctx context.Context, employeeID string, input request.CreateRequestInput) (request.Request, error) {
	startDate, endDate := input.StartDate, input.EndDate

	if startDate > endDate {
		return request.Request{}, request.ErrLeaveRangeInverted
	}

	days, err := datetime.InclusiveDays(startDate, endDate)
	if err != nil {
		return request.Request{}, request.ErrLeaveRangeInverted
	}
	if days > maxLeaveDays {
		return request.Request{}, request.ErrLeaveRangeTooLong
	}

	var category *request.LeaveCategory
	if !validator.IsEmpty(input.Category) {
		c := request.LeaveCategory(input.Category)
		if !c.Valid() {
			return request.Request{}, request.ErrInvalidCategory
		}
		category = &c
	}

	// Days already carrying attendance cannot be covered by leave; the
	// caller is pointed at a time adjustment instead.
	hasAttendance, err := s.attendanceRepo.ExistsInRange(ctx, employeeID, startDate, endDate)
	if err != nil {
		return request.Request{}, fmt.Errorf("failed to check attendance in range: %w", err)
	}
	if hasAttendance {
		return request.Request{}, request.ErrLeaveCoversAttendance
	}

	overlap, err := s.requestRepo.HasLeaveOverlap(ctx, employeeID, startDate, endDate)
	if err != nil {
		return request.Request{}, fmt.Errorf("failed to check leave overlap: %w", err)
	}
	if overlap {
		return request.Request{}, request.ErrLeaveOverlap
	}

	holidays, err := s.holidaysIn(ctx, startDate, endDate)
	if err != nil {
		return request.Request{}, err
	}
	workdays, err := datetime.CountWorkdays(startDate, endDate, holidays)
	if err != nil {
		return request.Request{}, err
	}

	req := request.Request{
		Type:         request.TypeLeave,
		EmployeeID:   employeeID,
		Reason:       input.TrimmedReason(),
		Status:       request.StatusPending,
		StartDate:    &startDate,
		EndDate:      &endDate,
		Category:     category,
		WorkdayCount: &workdays,
	}

	created, err := s.requestRepo.Create(ctx, req)
	if err != nil {
		return request.Request{}, err
	}

	return created, nil
}
