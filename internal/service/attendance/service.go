package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/attendance"
	"github.com/chronohr/attendance-backend-go/internal/pkg/apperror"
	"github.com/chronohr/attendance-backend-go/internal/pkg/datetime"
)

// leaveLookup is the slice of the request store this service reads.
type leaveLookup interface {
	HasApprovedLeaveCovering(ctx context.Context, employeeID, date string) (bool, error)
}

type AttendanceServiceImpl struct {
	attendanceRepo attendance.Repository
	leaves         leaveLookup
}

func NewAttendanceService(attendanceRepo attendance.Repository, leaves leaveLookup) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		leaves:         leaves,
	}
}

var _ attendance.Service = (*AttendanceServiceImpl)(nil)

// DayStatus implements attendance.Service. An attendance row wins over an
// approved leave covering the same day.
func (s *AttendanceServiceImpl) DayStatus(ctx context.Context, employeeID, date string) (attendance.DayStatusResponse, error) {
	if !datetime.IsValidDateKey(date) {
		return attendance.DayStatusResponse{}, apperror.BadInputf("invalid date %q, want YYYY-MM-DD", date)
	}

	att, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return attendance.DayStatusResponse{}, fmt.Errorf("failed to load attendance: %w", err)
	}
	if att != nil {
		return attendance.DayStatusResponse{
			Date:       date,
			Status:     string(attendance.DayStatusPresent),
			CheckInAt:  formatInstant(&att.CheckInAt),
			CheckOutAt: formatInstant(att.CheckOutAt),
			OTApproved: att.OTApproved,
		}, nil
	}

	onLeave, err := s.leaves.HasApprovedLeaveCovering(ctx, employeeID, date)
	if err != nil {
		return attendance.DayStatusResponse{}, fmt.Errorf("failed to check leave: %w", err)
	}
	if onLeave {
		return attendance.DayStatusResponse{
			Date:   date,
			Status: string(attendance.DayStatusOnLeave),
		}, nil
	}

	return attendance.DayStatusResponse{
		Date:   date,
		Status: string(attendance.DayStatusAbsent),
	}, nil
}

func formatInstant(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
