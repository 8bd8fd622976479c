package request

import (
	"strings"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// REQUEST DTOs
// ========================================

// CreateRequestInput is the union creation payload. Type selects the variant;
// only that variant's fields are read. Instants are RFC3339 strings, dates
// are "YYYY-MM-DD" keys.
type CreateRequestInput struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`

	// ADJUST_TIME
	Date       string `json:"date,omitempty"`
	CheckInAt  string `json:"check_in_at,omitempty"`
	CheckOutAt string `json:"check_out_at,omitempty"`

	// LEAVE
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	Category  string `json:"category,omitempty"`

	// OT_REQUEST
	EstimatedEndAt string `json:"estimated_end_at,omitempty"`
}

// Validate covers shape only: presence, formats, enum membership. Ordering
// rules, windows and uniqueness live in the service validators.
func (r *CreateRequestInput) Validate() error {
	var errs validator.ValidationErrors

	if !Type(r.Type).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of ADJUST_TIME, LEAVE, OT_REQUEST",
		})
		return errs
	}

	if !validator.ValidReason(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required and must be at most 1000 characters",
		})
	}

	switch Type(r.Type) {
	case TypeAdjustTime:
		if _, ok := validator.IsValidDate(r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be a valid YYYY-MM-DD date",
			})
		}
		if validator.IsEmpty(r.CheckInAt) && validator.IsEmpty(r.CheckOutAt) {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in_at",
				Message: "at least one of check_in_at or check_out_at is required",
			})
		}
		if !validator.IsEmpty(r.CheckInAt) {
			if _, ok := validator.IsValidRFC3339(r.CheckInAt); !ok {
				errs = append(errs, validator.ValidationError{
					Field:   "check_in_at",
					Message: "check_in_at must be a valid RFC3339 timestamp",
				})
			}
		}
		if !validator.IsEmpty(r.CheckOutAt) {
			if _, ok := validator.IsValidRFC3339(r.CheckOutAt); !ok {
				errs = append(errs, validator.ValidationError{
					Field:   "check_out_at",
					Message: "check_out_at must be a valid RFC3339 timestamp",
				})
			}
		}

	case TypeLeave:
		if _, ok := validator.IsValidDate(r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be a valid YYYY-MM-DD date",
			})
		}
		if _, ok := validator.IsValidDate(r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be a valid YYYY-MM-DD date",
			})
		}
		if !validator.IsEmpty(r.Category) && !LeaveCategory(r.Category).Valid() {
			errs = append(errs, validator.ValidationError{
				Field:   "category",
				Message: "category must be one of ANNUAL, SICK, UNPAID",
			})
		}

	case TypeOTRequest:
		if _, ok := validator.IsValidDate(r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be a valid YYYY-MM-DD date",
			})
		}
		if _, ok := validator.IsValidRFC3339(r.EstimatedEndAt); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "estimated_end_at",
				Message: "estimated_end_at must be a valid RFC3339 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// TrimmedReason returns the reason as stored.
func (r *CreateRequestInput) TrimmedReason() string {
	return strings.TrimSpace(r.Reason)
}

// ListFilter narrows the listing endpoints.
type ListFilter struct {
	Type   string `json:"type,omitempty"`
	Status string `json:"status,omitempty"`
	Month  string `json:"month,omitempty"` // "YYYY-MM"
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`

	// Team scopes ListPending for managers; empty means unscoped (admin).
	Team string `json:"-"`
}

func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
}

// RequestResponse is the external shape of a Request. The legacy storage
// date column is deliberately absent; check_in_date is the canonical field.
type RequestResponse struct {
	ID         string  `json:"id"`
	Type       string  `json:"type"`
	EmployeeID string  `json:"employee_id"`
	OwnerName  *string `json:"employee_name,omitempty"`
	Reason     string  `json:"reason"`
	Status     string  `json:"status"`
	ApproverID *string `json:"approver_id,omitempty"`
	DecidedAt  *string `json:"decided_at,omitempty"`

	CheckInAt    *string `json:"check_in_at,omitempty"`
	CheckOutAt   *string `json:"check_out_at,omitempty"`
	CheckInDate  *string `json:"check_in_date,omitempty"`
	CheckOutDate *string `json:"check_out_date,omitempty"`

	StartDate    *string `json:"start_date,omitempty"`
	EndDate      *string `json:"end_date,omitempty"`
	Category     *string `json:"category,omitempty"`
	WorkdayCount *int    `json:"workday_count,omitempty"`

	Date            *string `json:"ot_date,omitempty"`
	EstimatedEndAt  *string `json:"estimated_end_at,omitempty"`
	ActualOTMinutes *int    `json:"actual_ot_minutes,omitempty"`

	CreatedAt string `json:"created_at"`
}

type ListRequestsResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	Requests   []RequestResponse `json:"requests"`
}

func formatInstant(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

// ToResponse converts a Request entity to its external shape.
func ToResponse(req Request) RequestResponse {
	resp := RequestResponse{
		ID:         req.ID,
		Type:       string(req.Type),
		EmployeeID: req.EmployeeID,
		OwnerName:  req.OwnerName,
		Reason:     req.Reason,
		Status:     string(req.Status),
		ApproverID: req.ApproverID,
		DecidedAt:  formatInstant(req.DecidedAt),
		CreatedAt:  req.CreatedAt.Format(time.RFC3339),
	}

	switch req.Type {
	case TypeAdjustTime:
		resp.CheckInAt = formatInstant(req.CheckInAt)
		resp.CheckOutAt = formatInstant(req.CheckOutAt)
		resp.CheckInDate = req.CheckInDate
		resp.CheckOutDate = req.CheckOutDate
	case TypeLeave:
		resp.StartDate = req.StartDate
		resp.EndDate = req.EndDate
		if req.Category != nil {
			category := string(*req.Category)
			resp.Category = &category
		}
		resp.WorkdayCount = req.WorkdayCount
	case TypeOTRequest:
		resp.Date = req.Date
		resp.EstimatedEndAt = formatInstant(req.EstimatedEndAt)
		resp.ActualOTMinutes = req.ActualOTMinutes
	}

	return resp
}
