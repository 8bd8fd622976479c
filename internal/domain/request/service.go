package request

import (
	"context"
)

// Service is the request lifecycle: per-type creation validators, the
// approve/reject orchestrator, owner-initiated OT cancellation and the
// listing reads.
type Service interface {
	// Create validates and stores a PENDING request of the payload's type.
	// A second OT_REQUEST for the same day extends the existing one
	// instead of failing.
	Create(ctx context.Context, employeeID string, input CreateRequestInput) (RequestResponse, error)

	// Approve flips a PENDING request to APPROVED and applies its
	// attendance effect. Approver scope: managers decide for their own
	// team, admins for anyone.
	Approve(ctx context.Context, requestID string, approverID string) (RequestResponse, error)

	// Reject flips a PENDING request to REJECTED. No attendance effect.
	Reject(ctx context.Context, requestID string, approverID string) (RequestResponse, error)

	// CancelOT deletes the owner's own PENDING OT_REQUEST. Anything else
	// reports not-found.
	CancelOT(ctx context.Context, employeeID, requestID string) error

	ListMine(ctx context.Context, employeeID string, filter ListFilter) (ListRequestsResponse, error)

	// ListPending lists requests awaiting the approver's decision.
	ListPending(ctx context.Context, approverID string, filter ListFilter) (ListRequestsResponse, error)
}
