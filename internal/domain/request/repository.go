package request

import (
	"context"
	"time"
)

// Repository defines data access for requests. Creation-time uniqueness for
// ADJUST_TIME and OT_REQUEST is authoritatively a partial unique index; the
// lookup methods here exist so validators can report conflicts before
// hitting it.
type Repository interface {
	// Create inserts a PENDING request. Duplicate-key violations surface
	// as the same Conflict errors the pre-checks produce.
	Create(ctx context.Context, req Request) (Request, error)

	GetByID(ctx context.Context, id string) (Request, error)

	// GetByIDWithOwner loads the request joined with the owner's name,
	// team, active and soft-delete flags for the approval path.
	GetByIDWithOwner(ctx context.Context, id string) (Request, error)

	// DecideIfPending flips PENDING to status, stamping the approver and
	// decision time, in one conditional update. Returns false when the
	// request was no longer PENDING.
	DecideIfPending(ctx context.Context, id string, status Status, approverID string, decidedAt time.Time) (bool, error)

	// FindPendingAdjustTime returns the PENDING ADJUST_TIME request for
	// (employee, check-in date), or nil.
	FindPendingAdjustTime(ctx context.Context, employeeID, checkInDate string) (*Request, error)

	// HasLeaveOverlap reports whether any PENDING or APPROVED leave for
	// the employee overlaps [startDate, endDate] inclusively.
	HasLeaveOverlap(ctx context.Context, employeeID, startDate, endDate string) (bool, error)

	// HasApprovedLeaveCovering reports whether an APPROVED leave covers
	// the single date.
	HasApprovedLeaveCovering(ctx context.Context, employeeID, date string) (bool, error)

	// ExtendPendingOT updates the estimated end and reason of the PENDING
	// OT_REQUEST for (employee, date) in place. Returns nil when no such
	// request exists.
	ExtendPendingOT(ctx context.Context, employeeID, date string, estimatedEndAt time.Time, reason string) (*Request, error)

	// CountPendingOTInMonth counts PENDING OT requests whose date falls in
	// the month key.
	CountPendingOTInMonth(ctx context.Context, employeeID, monthKey string) (int, error)

	// HasApprovedOT reports whether an APPROVED OT_REQUEST exists for
	// (employee, date).
	HasApprovedOT(ctx context.Context, employeeID, date string) (bool, error)

	// DeletePendingOT removes the request only if it is the owner's own
	// PENDING OT_REQUEST. Returns false otherwise, indistinguishable from
	// a missing id.
	DeletePendingOT(ctx context.Context, id, employeeID string) (bool, error)

	ListByEmployee(ctx context.Context, employeeID string, filter ListFilter) ([]Request, int64, error)

	// ListPending lists PENDING requests, scoped to filter.Team when set.
	ListPending(ctx context.Context, filter ListFilter) ([]Request, int64, error)
}
