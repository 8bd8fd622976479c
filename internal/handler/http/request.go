package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"

	"github.com/chronohr/attendance-backend-go/internal/domain/request"
	"github.com/chronohr/attendance-backend-go/internal/handler/http/response"
)

type RequestHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	CancelOT(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
}

type RequestHandlerImpl struct {
	requestService request.Service
}

func NewRequestHandler(requestService request.Service) RequestHandler {
	return &RequestHandlerImpl{requestService: requestService}
}

func employeeIDFromClaims(w http.ResponseWriter, r *http.Request) (string, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Failed to extract claims from context")
		return "", false
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		response.Unauthorized(w, "employee_id claim is missing or invalid")
		return "", false
	}
	return employeeID, true
}

// Create implements RequestHandler. The owner is always the caller; the
// payload carries no employee_id.
func (h *RequestHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIDFromClaims(w, r)
	if !ok {
		return
	}

	var input request.CreateRequestInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		slog.Error("Create request decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.requestService.Create(r.Context(), employeeID, input)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Request submitted successfully", created)
}

// Approve implements RequestHandler.
func (h *RequestHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.requestService.Approve, "Request approved successfully")
}

// Reject implements RequestHandler.
func (h *RequestHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.requestService.Reject, "Request rejected successfully")
}

func (h *RequestHandlerImpl) decide(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, requestID, approverID string) (request.RequestResponse, error),
	message string,
) {
	approverID, ok := employeeIDFromClaims(w, r)
	if !ok {
		return
	}

	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	decided, err := op(r.Context(), requestID, approverID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, decided)
}

// CancelOT implements RequestHandler.
func (h *RequestHandlerImpl) CancelOT(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIDFromClaims(w, r)
	if !ok {
		return
	}

	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	if err := h.requestService.CancelOT(r.Context(), employeeID, requestID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime request cancelled successfully", nil)
}

// ListMine implements RequestHandler.
func (h *RequestHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIDFromClaims(w, r)
	if !ok {
		return
	}

	list, err := h.requestService.ListMine(r.Context(), employeeID, listFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writeList(w, list)
}

// ListPending implements RequestHandler.
func (h *RequestHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	approverID, ok := employeeIDFromClaims(w, r)
	if !ok {
		return
	}

	list, err := h.requestService.ListPending(r.Context(), approverID, listFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writeList(w, list)
}

func listFilterFromQuery(r *http.Request) request.ListFilter {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	return request.ListFilter{
		Type:   q.Get("type"),
		Status: q.Get("status"),
		Month:  q.Get("month"),
		Page:   page,
		Limit:  limit,
	}
}

func writeList(w http.ResponseWriter, list request.ListRequestsResponse) {
	response.SuccessWithMeta(w, list.Requests, response.PageMeta(list.Page, list.Limit, list.TotalCount))
}
