package attendance

import (
	"time"
)

// Attendance is one employee-day. A row never exists without a check-in;
// check-out and the overtime flag arrive later, via checkout or an approved
// request.
type Attendance struct {
	ID         string
	EmployeeID string
	Date       string // business-day key, unique per employee
	CheckInAt  time.Time
	CheckOutAt *time.Time
	OTApproved bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DayStatus is the derived per-day state used by reporting.
type DayStatus string

const (
	DayStatusPresent DayStatus = "PRESENT"
	DayStatusOnLeave DayStatus = "ON_LEAVE"
	DayStatusAbsent  DayStatus = "ABSENT"
)

type DayStatusResponse struct {
	Date       string  `json:"date"`
	Status     string  `json:"status"`
	CheckInAt  *string `json:"check_in_at,omitempty"`
	CheckOutAt *string `json:"check_out_at,omitempty"`
	OTApproved bool    `json:"ot_approved"`
}
