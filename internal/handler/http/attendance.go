package http

import (
	"net/http"

	"github.com/chronohr/attendance-backend-go/internal/domain/attendance"
	"github.com/chronohr/attendance-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	DayStatus(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.Service
}

func NewAttendanceHandler(attendanceService attendance.Service) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// DayStatus implements AttendanceHandler.
func (h *AttendanceHandlerImpl) DayStatus(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIDFromClaims(w, r)
	if !ok {
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		response.BadRequest(w, "date query parameter is required", nil)
		return
	}

	status, err := h.attendanceService.DayStatus(r.Context(), employeeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, status)
}
