package request

import (
	"context"
	"fmt"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/config"
	"github.com/chronohr/attendance-backend-go/internal/domain/attendance"
	"github.com/chronohr/attendance-backend-go/internal/domain/holiday"
	"github.com/chronohr/attendance-backend-go/internal/domain/request"
	"github.com/chronohr/attendance-backend-go/internal/domain/user"
	"github.com/chronohr/attendance-backend-go/internal/pkg/datetime"
	"github.com/chronohr/attendance-backend-go/internal/pkg/uow"
)

// clockSkewTolerance absorbs client/server clock drift on the
// check-in-not-in-future rule.
const clockSkewTolerance = 60 * time.Second

type RequestServiceImpl struct {
	grace  config.GraceConfig
	runner uow.Runner

	requestRepo     request.Repository
	attendanceRepo  attendance.Repository
	employeeRepo    user.Repository
	holidayProvider holiday.Provider

	// now is swapped out in tests.
	now func() time.Time
}

func NewRequestService(
	grace config.GraceConfig,
	runner uow.Runner,
	requestRepo request.Repository,
	attendanceRepo attendance.Repository,
	employeeRepo user.Repository,
	holidayProvider holiday.Provider,
) *RequestServiceImpl {
	return &RequestServiceImpl{
		grace:           grace,
		runner:          runner,
		requestRepo:     requestRepo,
		attendanceRepo:  attendanceRepo,
		employeeRepo:    employeeRepo,
		holidayProvider: holidayProvider,
		now:             time.Now,
	}
}

var _ request.Service = (*RequestServiceImpl)(nil)

// Create implements request.Service. This is one of the two dispatch points
// on the request type; the other is the approval reconciler.
func (s *RequestServiceImpl) Create(ctx context.Context, employeeID string, input request.CreateRequestInput) (request.RequestResponse, error) {
	if err := input.Validate(); err != nil {
		return request.RequestResponse{}, err
	}

	// Tokens outlive deactivation, so the submitter is re-checked against
	// the directory.
	owner, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return request.RequestResponse{}, err
	}
	if !owner.Eligible() {
		return request.RequestResponse{}, request.ErrOwnerIneligible
	}

	var created request.Request
	switch request.Type(input.Type) {
	case request.TypeAdjustTime:
		created, err = s.createAdjustTime(ctx, employeeID, input)
	case request.TypeLeave:
		created, err = s.createLeave(ctx, employeeID, input)
	case request.TypeOTRequest:
		created, err = s.createOT(ctx, employeeID, input)
	default:
		return request.RequestResponse{}, request.ErrInvalidType
	}
	if err != nil {
		return request.RequestResponse{}, err
	}

	return request.ToResponse(created), nil
}

// CancelOT implements request.Service. The conditional delete covers owner,
// type and status in one predicate, so a foreign, decided or missing request
// all report the same not-found.
func (s *RequestServiceImpl) CancelOT(ctx context.Context, employeeID, requestID string) error {
	deleted, err := s.requestRepo.DeletePendingOT(ctx, requestID, employeeID)
	if err != nil {
		return fmt.Errorf("failed to cancel overtime request: %w", err)
	}
	if !deleted {
		return request.ErrNotFound
	}
	return nil
}

// ListMine implements request.Service.
func (s *RequestServiceImpl) ListMine(ctx context.Context, employeeID string, filter request.ListFilter) (request.ListRequestsResponse, error) {
	filter.Normalize()

	requests, total, err := s.requestRepo.ListByEmployee(ctx, employeeID, filter)
	if err != nil {
		return request.ListRequestsResponse{}, fmt.Errorf("failed to list requests: %w", err)
	}

	return buildListResponse(requests, total, filter), nil
}

// ListPending implements request.Service. Managers see their own team,
// admins see everything.
func (s *RequestServiceImpl) ListPending(ctx context.Context, approverID string, filter request.ListFilter) (request.ListRequestsResponse, error) {
	approver, err := s.employeeRepo.GetByID(ctx, approverID)
	if err != nil {
		return request.ListRequestsResponse{}, fmt.Errorf("failed to load approver: %w", err)
	}
	if !approver.Role.CanDecide() {
		return request.ListRequestsResponse{}, user.ErrApproverRequired
	}

	filter.Normalize()
	filter.Status = string(request.StatusPending)
	if approver.Role == user.RoleManager {
		if approver.Team == nil || *approver.Team == "" {
			return request.ListRequestsResponse{}, request.ErrApproverNoTeam
		}
		filter.Team = *approver.Team
	}

	requests, total, err := s.requestRepo.ListPending(ctx, filter)
	if err != nil {
		return request.ListRequestsResponse{}, fmt.Errorf("failed to list pending requests: %w", err)
	}

	return buildListResponse(requests, total, filter), nil
}

func buildListResponse(requests []request.Request, total int64, filter request.ListFilter) request.ListRequestsResponse {
	responses := make([]request.RequestResponse, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, request.ToResponse(req))
	}

	return request.ListRequestsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Requests:   responses,
	}
}

// holidaysIn merges the holiday sets of every month touched by the range.
func (s *RequestServiceImpl) holidaysIn(ctx context.Context, startKey, endKey string) (map[string]bool, error) {
	months, err := datetime.MonthKeysIn(startKey, endKey)
	if err != nil {
		return nil, err
	}

	holidays := make(map[string]bool)
	for _, month := range months {
		monthHolidays, err := s.holidayProvider.ForMonth(ctx, month)
		if err != nil {
			return nil, fmt.Errorf("failed to load holidays: %w", err)
		}
		for date := range monthHolidays {
			holidays[date] = true
		}
	}
	return holidays, nil
}

// isWorkingDay reports whether the date is neither weekend nor holiday.
func (s *RequestServiceImpl) isWorkingDay(ctx context.Context, dateKey string) (bool, error) {
	if datetime.IsWeekend(dateKey) {
		return false, nil
	}

	holidays, err := s.holidayProvider.ForMonth(ctx, datetime.MonthKeyOf(dateKey))
	if err != nil {
		return false, fmt.Errorf("failed to load holidays: %w", err)
	}
	return !holidays[dateKey], nil
}
