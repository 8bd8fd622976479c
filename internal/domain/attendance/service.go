package attendance

import (
	"context"
)

// Service exposes the derived attendance reads.
type Service interface {
	// DayStatus reports the employee's state for one business day:
	// present when an attendance row exists, on leave when approved leave
	// covers the day, absent otherwise.
	DayStatus(ctx context.Context, employeeID, date string) (DayStatusResponse, error)
}
