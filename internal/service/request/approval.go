package request

import (
	"context"
	"fmt"

	"github.com/chronohr/attendance-backend-go/internal/domain/attendance"
	"github.com/chronohr/attendance-backend-go/internal/domain/request"
	"github.com/chronohr/attendance-backend-go/internal/domain/user"
	"github.com/chronohr/attendance-backend-go/internal/pkg/apperror"
)

// Approve implements request.Service. The whole decision (scope check,
// re-validation, status flip, attendance effect) runs as one unit of work;
// under the transactional runner an error anywhere leaves both the request
// and the attendance row untouched.
func (s *RequestServiceImpl) Approve(ctx context.Context, requestID string, approverID string) (request.RequestResponse, error) {
	return s.decide(ctx, requestID, approverID, request.StatusApproved)
}

// Reject implements request.Service. Same path as Approve minus the
// re-validation and the attendance effect.
func (s *RequestServiceImpl) Reject(ctx context.Context, requestID string, approverID string) (request.RequestResponse, error) {
	return s.decide(ctx, requestID, approverID, request.StatusRejected)
}

func (s *RequestServiceImpl) decide(ctx context.Context, requestID, approverID string, status request.Status) (request.RequestResponse, error) {
	approver, err := s.employeeRepo.GetByID(ctx, approverID)
	if err != nil {
		return request.RequestResponse{}, fmt.Errorf("failed to load approver: %w", err)
	}
	if !approver.Role.CanDecide() {
		return request.RequestResponse{}, user.ErrApproverRequired
	}

	var decided request.Request
	err = s.runner.Run(ctx, func(ctx context.Context) error {
		req, err := s.requestRepo.GetByIDWithOwner(ctx, requestID)
		if err != nil {
			return err
		}

		if err := checkOwnerEligible(req); err != nil {
			return err
		}
		if err := checkApproverScope(approver, req); err != nil {
			return err
		}

		// Attendance may have changed since submission; an ADJUST_TIME
		// approval re-derives the anchor and re-runs the window checks.
		if status == request.StatusApproved && req.Type == request.TypeAdjustTime {
			if err := s.revalidateAdjustTime(ctx, req); err != nil {
				return err
			}
		}

		decidedAt := s.now()
		flipped, err := s.requestRepo.DecideIfPending(ctx, requestID, status, approver.ID, decidedAt)
		if err != nil {
			return err
		}
		if !flipped {
			// Lost the race to another decision. Report what actually
			// happened, never a silent success.
			return s.staleDecisionError(ctx, requestID)
		}

		req.Status = status
		req.ApproverID = &approver.ID
		req.DecidedAt = &decidedAt

		if status == request.StatusApproved {
			if err := s.reconcile(ctx, req); err != nil {
				return err
			}
		}

		decided = req
		return nil
	})
	if err != nil {
		return request.RequestResponse{}, err
	}

	return request.ToResponse(decided), nil
}

func checkOwnerEligible(req request.Request) error {
	if req.OwnerActive == nil || !*req.OwnerActive {
		return request.ErrOwnerIneligible
	}
	if req.OwnerDeleted != nil && *req.OwnerDeleted {
		return request.ErrOwnerIneligible
	}
	return nil
}

// checkApproverScope enforces team scope for managers. Admins decide for
// anyone.
func checkApproverScope(approver user.Employee, req request.Request) error {
	if approver.Role == user.RoleAdmin {
		return nil
	}

	if approver.Team == nil || *approver.Team == "" {
		return request.ErrApproverNoTeam
	}
	if req.OwnerTeam == nil || *req.OwnerTeam != *approver.Team {
		return request.ErrTeamMismatch
	}
	return nil
}

// staleDecisionError re-reads the request after a zero-row CAS and maps its
// current status to a conflict.
func (s *RequestServiceImpl) staleDecisionError(ctx context.Context, requestID string) error {
	current, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}

	switch current.Status {
	case request.StatusApproved:
		return request.ErrAlreadyApproved
	case request.StatusRejected:
		return request.ErrAlreadyRejected
	default:
		return apperror.Conflictf("request %s was decided concurrently", requestID)
	}
}

// revalidateAdjustTime re-runs the submission-window and session-length
// checks with an anchor derived from the current attendance state.
func (s *RequestServiceImpl) revalidateAdjustTime(ctx context.Context, req request.Request) error {
	if req.CheckInDate == nil {
		return request.ErrCheckInDateMismatch
	}

	att, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, *req.CheckInDate)
	if err != nil {
		return fmt.Errorf("failed to load attendance: %w", err)
	}

	anchor, err := resolveAnchor(req.CheckInAt, att)
	if err != nil {
		// The check-in this request relied on is gone.
		return request.ErrAttendanceRemoved
	}

	return s.checkAdjustWindows(s.now(), anchor, req.CheckOutAt)
}

// reconcile projects an approved request onto the attendance record. The
// second dispatch point on the request type.
func (s *RequestServiceImpl) reconcile(ctx context.Context, req request.Request) error {
	switch req.Type {
	case request.TypeOTRequest:
		return s.reconcileOT(ctx, req)
	case request.TypeAdjustTime:
		return s.reconcileAdjustTime(ctx, req)
	case request.TypeLeave:
		// No attendance mutation; reporting derives on-leave days from
		// the approved leave set.
		return nil
	default:
		return request.ErrInvalidType
	}
}

// reconcileOT flags the day's attendance. The row may not exist yet when the
// overtime is approved before the employee checks in; in that case the
// ADJUST_TIME reconciler back-fills the flag when the row appears.
func (s *RequestServiceImpl) reconcileOT(ctx context.Context, req request.Request) error {
	if req.Date == nil {
		return request.ErrInvalidType
	}

	if _, err := s.attendanceRepo.SetOTApproved(ctx, req.EmployeeID, *req.Date); err != nil {
		return err
	}
	return nil
}

// reconcileAdjustTime upserts the attendance row from the requested
// instants. Only fields present on the request are written, so re-applying
// the same approval is a no-op.
func (s *RequestServiceImpl) reconcileAdjustTime(ctx context.Context, req request.Request) error {
	date := *req.CheckInDate

	// Approval-time mirror of the creation-time working-day check.
	working, err := s.isWorkingDay(ctx, date)
	if err != nil {
		return err
	}
	if !working {
		return request.ErrNonWorkingDay
	}

	att, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	if err != nil {
		return fmt.Errorf("failed to load attendance: %w", err)
	}

	if att == nil {
		if req.CheckInAt == nil {
			return request.ErrAttendanceRemoved
		}
		newAtt := attendance.Attendance{
			EmployeeID: req.EmployeeID,
			Date:       date,
			CheckInAt:  *req.CheckInAt,
			CheckOutAt: req.CheckOutAt,
		}
		if _, err := s.attendanceRepo.Create(ctx, newAtt); err != nil {
			return err
		}
	} else {
		if err := s.attendanceRepo.UpdateTimes(ctx, req.EmployeeID, date, req.CheckInAt, req.CheckOutAt); err != nil {
			return err
		}
	}

	// An OT approval may have preceded this row's existence; settle the
	// flag now that the row is here.
	otApproved, err := s.requestRepo.HasApprovedOT(ctx, req.EmployeeID, date)
	if err != nil {
		return err
	}
	if otApproved {
		if _, err := s.attendanceRepo.SetOTApproved(ctx, req.EmployeeID, date); err != nil {
			return err
		}
	}

	return nil
}
