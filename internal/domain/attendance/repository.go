package attendance

import (
	"context"
	"time"
)

// Repository defines data access for attendance rows, keyed by
// (employee, business-day).
type Repository interface {
	// GetByEmployeeAndDate returns the row for the day, or nil when the
	// employee has no attendance yet.
	GetByEmployeeAndDate(ctx context.Context, employeeID, date string) (*Attendance, error)

	// ExistsInRange reports whether any row exists for the employee in
	// [startDate, endDate].
	ExistsInRange(ctx context.Context, employeeID, startDate, endDate string) (bool, error)

	// Create inserts a new row. CheckInAt must be set.
	Create(ctx context.Context, att Attendance) (Attendance, error)

	// UpdateTimes overwrites only the non-nil instants on the existing
	// row, leaving every other column untouched. Re-applying the same
	// update is a no-op.
	UpdateTimes(ctx context.Context, employeeID, date string, checkInAt, checkOutAt *time.Time) error

	// SetOTApproved flags the row for the day. Returns false when no row
	// exists yet, which callers treat as a no-op.
	SetOTApproved(ctx context.Context, employeeID, date string) (bool, error)
}
