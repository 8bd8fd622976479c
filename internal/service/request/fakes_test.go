package request

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chronohr/attendance-backend-go/internal/config"
	"github.com/chronohr/attendance-backend-go/internal/domain/attendance"
	"github.com/chronohr/attendance-backend-go/internal/domain/request"
	"github.com/chronohr/attendance-backend-go/internal/domain/user"
	"github.com/chronohr/attendance-backend-go/internal/pkg/datetime"
	"github.com/chronohr/attendance-backend-go/internal/pkg/uow"
)

// The fakes mirror the storage semantics the services rely on: the partial
// unique indexes, the conditional update and delete predicates, and the
// owner join.

type fakeRequestRepo struct {
	requests  map[string]*request.Request
	employees map[string]user.Employee
}

func newFakeRequestRepo(employees map[string]user.Employee) *fakeRequestRepo {
	return &fakeRequestRepo{
		requests:  make(map[string]*request.Request),
		employees: employees,
	}
}

func (f *fakeRequestRepo) Create(_ context.Context, req request.Request) (request.Request, error) {
	for _, existing := range f.requests {
		if existing.EmployeeID != req.EmployeeID || existing.Status != request.StatusPending {
			continue
		}
		if req.Type == request.TypeAdjustTime && existing.Type == request.TypeAdjustTime &&
			existing.CheckInDate != nil && req.CheckInDate != nil && *existing.CheckInDate == *req.CheckInDate {
			return request.Request{}, request.ErrDuplicatePendingAdjust
		}
		if req.Type == request.TypeOTRequest && existing.Type == request.TypeOTRequest &&
			existing.Date != nil && req.Date != nil && *existing.Date == *req.Date {
			return request.Request{}, request.ErrDuplicatePendingOT
		}
	}

	req.ID = uuid.NewString()
	req.CreatedAt = time.Now()
	req.UpdatedAt = req.CreatedAt
	stored := req
	f.requests[req.ID] = &stored
	return req, nil
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id string) (request.Request, error) {
	req, ok := f.requests[id]
	if !ok {
		return request.Request{}, request.ErrNotFound
	}
	return *req, nil
}

func (f *fakeRequestRepo) GetByIDWithOwner(ctx context.Context, id string) (request.Request, error) {
	req, err := f.GetByID(ctx, id)
	if err != nil {
		return request.Request{}, err
	}

	owner, ok := f.employees[req.EmployeeID]
	if !ok {
		return request.Request{}, request.ErrNotFound
	}
	deleted := owner.DeletedAt != nil
	req.OwnerName = &owner.Name
	req.OwnerTeam = owner.Team
	req.OwnerActive = &owner.IsActive
	req.OwnerDeleted = &deleted
	return req, nil
}

func (f *fakeRequestRepo) DecideIfPending(_ context.Context, id string, status request.Status, approverID string, decidedAt time.Time) (bool, error) {
	req, ok := f.requests[id]
	if !ok || req.Status != request.StatusPending {
		return false, nil
	}
	req.Status = status
	req.ApproverID = &approverID
	req.DecidedAt = &decidedAt
	return true, nil
}

func (f *fakeRequestRepo) FindPendingAdjustTime(_ context.Context, employeeID, checkInDate string) (*request.Request, error) {
	for _, req := range f.requests {
		if req.EmployeeID == employeeID && req.Type == request.TypeAdjustTime &&
			req.Status == request.StatusPending && req.CheckInDate != nil && *req.CheckInDate == checkInDate {
			found := *req
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeRequestRepo) HasLeaveOverlap(_ context.Context, employeeID, startDate, endDate string) (bool, error) {
	for _, req := range f.requests {
		if req.EmployeeID != employeeID || req.Type != request.TypeLeave {
			continue
		}
		if req.Status != request.StatusPending && req.Status != request.StatusApproved {
			continue
		}
		if *req.StartDate <= endDate && *req.EndDate >= startDate {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRequestRepo) HasApprovedLeaveCovering(_ context.Context, employeeID, date string) (bool, error) {
	for _, req := range f.requests {
		if req.EmployeeID == employeeID && req.Type == request.TypeLeave &&
			req.Status == request.StatusApproved && *req.StartDate <= date && *req.EndDate >= date {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRequestRepo) ExtendPendingOT(_ context.Context, employeeID, date string, estimatedEndAt time.Time, reason string) (*request.Request, error) {
	for _, req := range f.requests {
		if req.EmployeeID == employeeID && req.Type == request.TypeOTRequest &&
			req.Status == request.StatusPending && req.Date != nil && *req.Date == date {
			req.EstimatedEndAt = &estimatedEndAt
			req.Reason = reason
			req.UpdatedAt = time.Now()
			found := *req
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeRequestRepo) CountPendingOTInMonth(_ context.Context, employeeID, monthKey string) (int, error) {
	count := 0
	for _, req := range f.requests {
		if req.EmployeeID == employeeID && req.Type == request.TypeOTRequest &&
			req.Status == request.StatusPending && req.Date != nil && strings.HasPrefix(*req.Date, monthKey) {
			count++
		}
	}
	return count, nil
}

func (f *fakeRequestRepo) HasApprovedOT(_ context.Context, employeeID, date string) (bool, error) {
	for _, req := range f.requests {
		if req.EmployeeID == employeeID && req.Type == request.TypeOTRequest &&
			req.Status == request.StatusApproved && req.Date != nil && *req.Date == date {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRequestRepo) DeletePendingOT(_ context.Context, id, employeeID string) (bool, error) {
	req, ok := f.requests[id]
	if !ok || req.EmployeeID != employeeID || req.Type != request.TypeOTRequest || req.Status != request.StatusPending {
		return false, nil
	}
	delete(f.requests, id)
	return true, nil
}

func (f *fakeRequestRepo) ListByEmployee(_ context.Context, employeeID string, filter request.ListFilter) ([]request.Request, int64, error) {
	var out []request.Request
	for _, req := range f.requests {
		if req.EmployeeID != employeeID {
			continue
		}
		if filter.Type != "" && string(req.Type) != filter.Type {
			continue
		}
		if filter.Status != "" && string(req.Status) != filter.Status {
			continue
		}
		out = append(out, *req)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRequestRepo) ListPending(_ context.Context, filter request.ListFilter) ([]request.Request, int64, error) {
	var out []request.Request
	for _, req := range f.requests {
		if req.Status != request.StatusPending {
			continue
		}
		if filter.Type != "" && string(req.Type) != filter.Type {
			continue
		}
		if filter.Team != "" {
			owner, ok := f.employees[req.EmployeeID]
			if !ok || owner.Team == nil || *owner.Team != filter.Team {
				continue
			}
		}
		out = append(out, *req)
	}
	return out, int64(len(out)), nil
}

type fakeAttendanceRepo struct {
	rows map[string]*attendance.Attendance
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{rows: make(map[string]*attendance.Attendance)}
}

func attKey(employeeID, date string) string { return employeeID + "|" + date }

func (f *fakeAttendanceRepo) put(att attendance.Attendance) {
	if att.ID == "" {
		att.ID = uuid.NewString()
	}
	stored := att
	f.rows[attKey(att.EmployeeID, att.Date)] = &stored
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID, date string) (*attendance.Attendance, error) {
	att, ok := f.rows[attKey(employeeID, date)]
	if !ok {
		return nil, nil
	}
	found := *att
	return &found, nil
}

func (f *fakeAttendanceRepo) ExistsInRange(_ context.Context, employeeID, startDate, endDate string) (bool, error) {
	for _, att := range f.rows {
		if att.EmployeeID == employeeID && att.Date >= startDate && att.Date <= endDate {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAttendanceRepo) Create(_ context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	if att.CheckInAt.IsZero() {
		return attendance.Attendance{}, attendance.ErrCheckInRequired
	}
	att.ID = uuid.NewString()
	stored := att
	f.rows[attKey(att.EmployeeID, att.Date)] = &stored
	return att, nil
}

func (f *fakeAttendanceRepo) UpdateTimes(_ context.Context, employeeID, date string, checkInAt, checkOutAt *time.Time) error {
	att, ok := f.rows[attKey(employeeID, date)]
	if !ok {
		return attendance.ErrNotFound
	}
	if checkInAt != nil {
		att.CheckInAt = *checkInAt
	}
	if checkOutAt != nil {
		att.CheckOutAt = checkOutAt
	}
	return nil
}

func (f *fakeAttendanceRepo) SetOTApproved(_ context.Context, employeeID, date string) (bool, error) {
	att, ok := f.rows[attKey(employeeID, date)]
	if !ok {
		return false, nil
	}
	att.OTApproved = true
	return true, nil
}

type fakeEmployeeRepo struct {
	employees map[string]user.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (user.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return user.Employee{}, user.ErrNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByEmail(_ context.Context, email string) (user.Employee, error) {
	for _, emp := range f.employees {
		if emp.Email == email && emp.DeletedAt == nil {
			return emp, nil
		}
	}
	return user.Employee{}, user.ErrNotFound
}

type fakeHolidayProvider struct {
	holidays map[string]bool // date key set
}

func (f *fakeHolidayProvider) ForMonth(_ context.Context, monthKey string) (map[string]bool, error) {
	out := make(map[string]bool)
	for date := range f.holidays {
		if strings.HasPrefix(date, monthKey) {
			out[date] = true
		}
	}
	return out, nil
}

// Fixed test clock: Wednesday evening company time.
var testNow = time.Date(2026, 1, 28, 18, 0, 0, 0, datetime.Location)

type testEnv struct {
	svc         *RequestServiceImpl
	requests    *fakeRequestRepo
	attendances *fakeAttendanceRepo
	holidays    *fakeHolidayProvider
	employees   map[string]user.Employee
}

func team(name string) *string { return &name }

func newTestEnv() *testEnv {
	employees := map[string]user.Employee{
		"emp-1": {ID: "emp-1", Name: "Ana", Email: "ana@example.com", Role: user.RoleEmployee, Team: team("engineering"), IsActive: true},
		"emp-2": {ID: "emp-2", Name: "Ben", Email: "ben@example.com", Role: user.RoleEmployee, Team: team("operations"), IsActive: true},
		"mgr-1": {ID: "mgr-1", Name: "Mia", Email: "mia@example.com", Role: user.RoleManager, Team: team("engineering"), IsActive: true},
		"mgr-2": {ID: "mgr-2", Name: "Omar", Email: "omar@example.com", Role: user.RoleManager, Team: team("operations"), IsActive: true},
		"mgr-3": {ID: "mgr-3", Name: "Pat", Email: "pat@example.com", Role: user.RoleManager, IsActive: true},
		"adm-1": {ID: "adm-1", Name: "Ada", Email: "ada@example.com", Role: user.RoleAdmin, IsActive: true},
	}

	requests := newFakeRequestRepo(employees)
	attendances := newFakeAttendanceRepo()
	holidays := &fakeHolidayProvider{holidays: make(map[string]bool)}

	grace := config.GraceConfig{
		MaxSession:           16 * time.Hour,
		MaxSubmissionDelay:   72 * time.Hour,
		MinOTDuration:        30 * time.Minute,
		OTDayStartHour:       17,
		OTDayStartMinute:     0,
		MaxPendingOTPerMonth: 10,
	}

	svc := NewRequestService(
		grace,
		uow.NewSequentialRunner(),
		requests,
		attendances,
		&fakeEmployeeRepo{employees: employees},
		holidays,
	)
	svc.now = func() time.Time { return testNow }

	return &testEnv{
		svc:         svc,
		requests:    requests,
		attendances: attendances,
		holidays:    holidays,
		employees:   employees,
	}
}

func instant(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}
