package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronohr/attendance-backend-go/internal/config"
	"github.com/chronohr/attendance-backend-go/internal/domain/attendance"
	"github.com/chronohr/attendance-backend-go/internal/domain/auth"
	"github.com/chronohr/attendance-backend-go/internal/domain/request"
	"github.com/chronohr/attendance-backend-go/internal/domain/user"
	"github.com/chronohr/attendance-backend-go/internal/pkg/jwt"
	"github.com/chronohr/attendance-backend-go/internal/pkg/validator"
)

const testSecret = "test-secret-key-for-jwt"

type stubRequestService struct {
	createFn  func(ctx context.Context, employeeID string, input request.CreateRequestInput) (request.RequestResponse, error)
	approveFn func(ctx context.Context, requestID, approverID string) (request.RequestResponse, error)
}

func (s *stubRequestService) Create(ctx context.Context, employeeID string, input request.CreateRequestInput) (request.RequestResponse, error) {
	if s.createFn != nil {
		return s.createFn(ctx, employeeID, input)
	}
	return request.RequestResponse{}, nil
}

func (s *stubRequestService) Approve(ctx context.Context, requestID, approverID string) (request.RequestResponse, error) {
	if s.approveFn != nil {
		return s.approveFn(ctx, requestID, approverID)
	}
	return request.RequestResponse{}, nil
}

func (s *stubRequestService) Reject(context.Context, string, string) (request.RequestResponse, error) {
	return request.RequestResponse{}, nil
}

func (s *stubRequestService) CancelOT(context.Context, string, string) error { return nil }

func (s *stubRequestService) ListMine(context.Context, string, request.ListFilter) (request.ListRequestsResponse, error) {
	return request.ListRequestsResponse{Page: 1, Limit: 20}, nil
}

func (s *stubRequestService) ListPending(context.Context, string, request.ListFilter) (request.ListRequestsResponse, error) {
	return request.ListRequestsResponse{Page: 1, Limit: 20}, nil
}

type stubAuthService struct{}

func (s *stubAuthService) Login(context.Context, auth.LoginRequest) (auth.TokenResponse, error) {
	return auth.TokenResponse{}, nil
}

type stubAttendanceService struct{}

func (s *stubAttendanceService) DayStatus(context.Context, string, string) (attendance.DayStatusResponse, error) {
	return attendance.DayStatusResponse{Status: string(attendance.DayStatusAbsent)}, nil
}

func newTestRouter(requestSvc request.Service) (http.Handler, jwt.Service) {
	cfg := &config.Config{}
	jwtService := jwt.NewJWTService(testSecret, "1h")

	return NewRouter(
		cfg,
		jwtService,
		NewAuthHandler(&stubAuthService{}),
		NewRequestHandler(requestSvc),
		NewAttendanceHandler(&stubAttendanceService{}),
	), jwtService
}

func bearerToken(t *testing.T, jwtService jwt.Service, emp user.Employee) string {
	t.Helper()
	token, _, err := jwtService.GenerateAccessToken(emp)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestCreateRequestEndpoint(t *testing.T) {
	body := []byte(`{"type":"OT_REQUEST","reason":"release","date":"2026-01-29","estimated_end_at":"2026-01-29T19:00:00+07:00"}`)

	t.Run("requires a token", func(t *testing.T) {
		router, _ := newTestRouter(&stubRequestService{})

		req := httptest.NewRequest(http.MethodPost, "/api/v1/requests", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("owner comes from the token", func(t *testing.T) {
		var gotEmployeeID string
		svc := &stubRequestService{
			createFn: func(_ context.Context, employeeID string, _ request.CreateRequestInput) (request.RequestResponse, error) {
				gotEmployeeID = employeeID
				return request.RequestResponse{ID: "req-1", Status: string(request.StatusPending)}, nil
			},
		}
		router, jwtService := newTestRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/requests", bytes.NewReader(body))
		req.Header.Set("Authorization", bearerToken(t, jwtService, user.Employee{ID: "emp-1", Role: user.RoleEmployee}))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "emp-1", gotEmployeeID)
	})

	t.Run("validation failures map to 422", func(t *testing.T) {
		svc := &stubRequestService{
			createFn: func(context.Context, string, request.CreateRequestInput) (request.RequestResponse, error) {
				return request.RequestResponse{}, validator.ValidationErrors{
					{Field: "type", Message: "type must be ADJUST_TIME, LEAVE, or OT_REQUEST"},
				}
			},
		}
		router, jwtService := newTestRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/requests", bytes.NewReader([]byte(`{"type":"BAD"}`)))
		req.Header.Set("Authorization", bearerToken(t, jwtService, user.Employee{ID: "emp-1", Role: user.RoleEmployee}))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var resp struct {
			Success bool `json:"success"`
			Error   struct {
				Details map[string]string `json:"details"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Contains(t, resp.Error.Details, "type")
	})
}

func TestApproveEndpoint(t *testing.T) {
	t.Run("employee role is refused before the service runs", func(t *testing.T) {
		called := false
		svc := &stubRequestService{
			approveFn: func(context.Context, string, string) (request.RequestResponse, error) {
				called = true
				return request.RequestResponse{}, nil
			},
		}
		router, jwtService := newTestRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/requests/req-1/approve", nil)
		req.Header.Set("Authorization", bearerToken(t, jwtService, user.Employee{ID: "emp-1", Role: user.RoleEmployee}))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.False(t, called)
	})

	t.Run("manager approval succeeds", func(t *testing.T) {
		svc := &stubRequestService{
			approveFn: func(_ context.Context, requestID, approverID string) (request.RequestResponse, error) {
				return request.RequestResponse{ID: requestID, Status: string(request.StatusApproved), ApproverID: &approverID}, nil
			},
		}
		router, jwtService := newTestRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/requests/req-1/approve", nil)
		req.Header.Set("Authorization", bearerToken(t, jwtService, user.Employee{ID: "mgr-1", Role: user.RoleManager}))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("conflicts map to 409", func(t *testing.T) {
		svc := &stubRequestService{
			approveFn: func(context.Context, string, string) (request.RequestResponse, error) {
				return request.RequestResponse{}, request.ErrAlreadyApproved
			},
		}
		router, jwtService := newTestRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/requests/req-1/approve", nil)
		req.Header.Set("Authorization", bearerToken(t, jwtService, user.Employee{ID: "adm-1", Role: user.RoleAdmin}))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}
