package request

import (
	"time"
)

// Type discriminates the request union. Creation and approval each dispatch
// on it exactly once, through an exhaustive switch; adding a variant without
// extending both switches fails loudly at runtime and is caught by the
// dispatch tests.
type Type string

const (
	TypeAdjustTime Type = "ADJUST_TIME"
	TypeLeave      Type = "LEAVE"
	TypeOTRequest  Type = "OT_REQUEST"
)

func (t Type) Valid() bool {
	switch t {
	case TypeAdjustTime, TypeLeave, TypeOTRequest:
		return true
	}
	return false
}

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

type LeaveCategory string

const (
	LeaveCategoryAnnual LeaveCategory = "ANNUAL"
	LeaveCategorySick   LeaveCategory = "SICK"
	LeaveCategoryUnpaid LeaveCategory = "UNPAID"
)

func (c LeaveCategory) Valid() bool {
	switch c {
	case LeaveCategoryAnnual, LeaveCategorySick, LeaveCategoryUnpaid:
		return true
	}
	return false
}

// Request is the stored form of the tagged union: common columns plus the
// variant fields of exactly one type. Variant fields of the other types stay
// nil.
type Request struct {
	ID         string
	Type       Type
	EmployeeID string
	Reason     string

	Status     Status
	ApproverID *string
	DecidedAt  *time.Time

	// ADJUST_TIME: anchor day plus the requested instants. CheckInDate is
	// canonical; the storage layer also writes the legacy date column with
	// the same value. CheckOutDate lands on the next day for a
	// cross-midnight session.
	CheckInAt    *time.Time
	CheckOutAt   *time.Time
	CheckInDate  *string
	CheckOutDate *string

	// LEAVE: inclusive date range, optional category, workdays in range
	// excluding weekends and holidays.
	StartDate    *string
	EndDate      *string
	Category     *LeaveCategory
	WorkdayCount *int

	// OT_REQUEST: the overtime day and the requested end of day. Actual
	// minutes are written later by the checkout flow, not here.
	Date            *string
	EstimatedEndAt  *time.Time
	ActualOTMinutes *int

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined owner columns, populated by reads that need them.
	OwnerName    *string
	OwnerTeam    *string
	OwnerActive  *bool
	OwnerDeleted *bool
}
