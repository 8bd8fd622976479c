package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/request"
	"github.com/chronohr/attendance-backend-go/internal/pkg/database"
	"github.com/chronohr/attendance-backend-go/internal/pkg/uow"
	"github.com/jackc/pgx/v5"
)

type requestRepository struct {
	db *database.DB
}

func NewRequestRepository(db *database.DB) request.Repository {
	return &requestRepository{db: db}
}

// Names of the partial unique indexes guarding creation races: one live
// ADJUST_TIME per (employee, check_in_date), one live OT_REQUEST per
// (employee, date).
const (
	pendingAdjustConstraint = "requests_pending_adjust_unique"
	pendingOTConstraint     = "requests_pending_ot_unique"
)

const requestColumns = `
		r.id, r.type, r.employee_id, r.reason, r.status, r.approver_id, r.decided_at,
		r.check_in_at, r.check_out_at, r.check_in_date::text, r.check_out_date::text,
		r.start_date::text, r.end_date::text, r.category, r.workday_count,
		r.date::text, r.estimated_end_at, r.actual_ot_minutes,
		r.created_at, r.updated_at`

func scanRequest(row pgx.Row) (request.Request, error) {
	var req request.Request
	err := row.Scan(
		&req.ID, &req.Type, &req.EmployeeID, &req.Reason, &req.Status, &req.ApproverID, &req.DecidedAt,
		&req.CheckInAt, &req.CheckOutAt, &req.CheckInDate, &req.CheckOutDate,
		&req.StartDate, &req.EndDate, &req.Category, &req.WorkdayCount,
		&req.Date, &req.EstimatedEndAt, &req.ActualOTMinutes,
		&req.CreatedAt, &req.UpdatedAt,
	)
	return req, err
}

// legacyDate keeps the historical date column populated: the check-in day
// for ADJUST_TIME, the overtime day for OT_REQUEST.
func legacyDate(req request.Request) *string {
	switch req.Type {
	case request.TypeAdjustTime:
		return req.CheckInDate
	case request.TypeOTRequest:
		return req.Date
	default:
		return nil
	}
}

// Create implements request.Repository.
func (r *requestRepository) Create(ctx context.Context, req request.Request) (request.Request, error) {
	q := uow.QuerierFrom(ctx, r.db)

	query := `
		INSERT INTO requests (
			id, type, employee_id, reason, status,
			check_in_at, check_out_at, check_in_date, check_out_date,
			start_date, end_date, category, workday_count,
			date, estimated_end_at,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4,
			$5, $6, $7, $8,
			$9, $10, $11, $12,
			$13, $14,
			NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.Type,
		req.EmployeeID,
		req.Reason,
		req.Status,
		req.CheckInAt,
		req.CheckOutAt,
		req.CheckInDate,
		req.CheckOutDate,
		req.StartDate,
		req.EndDate,
		req.Category,
		req.WorkdayCount,
		legacyDate(req),
		req.EstimatedEndAt,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)

	if err != nil {
		switch {
		case isUniqueViolation(err, pendingAdjustConstraint):
			return request.Request{}, request.ErrDuplicatePendingAdjust
		case isUniqueViolation(err, pendingOTConstraint):
			return request.Request{}, request.ErrDuplicatePendingOT
		}
		return request.Request{}, fmt.Errorf("failed to create request: %w", err)
	}

	return req, nil
}

// GetByID implements request.Repository.
func (r *requestRepository) GetByID(ctx context.Context, id string) (request.Request, error) {
	q := uow.QuerierFrom(ctx, r.db)

	query := `SELECT` + requestColumns + `
		FROM requests r
		WHERE r.id = $1`

	req, err := scanRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return request.Request{}, request.ErrNotFound
		}
		return request.Request{}, fmt.Errorf("failed to get request by id: %w", err)
	}

	return req, nil
}

// GetByIDWithOwner implements request.Repository.
func (r *requestRepository) GetByIDWithOwner(ctx context.Context, id string) (request.Request, error) {
	q := uow.QuerierFrom(ctx, r.db)

	query := `SELECT` + requestColumns + `,
		e.name, e.team, e.is_active, (e.deleted_at IS NOT NULL)
		FROM requests r
		INNER JOIN employees e ON r.employee_id = e.id
		WHERE r.id = $1`

	var req request.Request
	err := q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.Type, &req.EmployeeID, &req.Reason, &req.Status, &req.ApproverID, &req.DecidedAt,
		&req.CheckInAt, &req.CheckOutAt, &req.CheckInDate, &req.CheckOutDate,
		&req.StartDate, &req.EndDate, &req.Category, &req.WorkdayCount,
		&req.Date, &req.EstimatedEndAt, &req.ActualOTMinutes,
		&req.CreatedAt, &req.UpdatedAt,
		&req.OwnerName, &req.OwnerTeam, &req.OwnerActive, &req.OwnerDeleted,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return request.Request{}, request.ErrNotFound
		}
		return request.Request{}, fmt.Errorf("failed to get request with owner: %w", err)
	}

	return req, nil
}

// DecideIfPending implements request.Repository.
func (r *requestRepository) DecideIfPending(ctx context.Context, id string, status request.Status, approverID string, decidedAt time.Time) (bool, error) {
	q := uow.QuerierFrom(ctx, r.db)

	query := `
		UPDATE requests
		SET status = $2, approver_id = $3, decided_at = $4, updated_at = NOW()
		WHERE id = $1 AND status = 'PENDING'
	`

	tag, err := q.Exec(ctx, query, id, status, approverID, decidedAt)
	if err != nil {
		return false, fmt.Errorf("failed to decide request: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// FindPendingAdjustTime implements request.Repository.
func (r *requestRepository) FindPendingAdjustTime(ctx context.Context, employeeID, checkInDate string) (*request.Request, error) {
	q := uow.QuerierFrom(ctx, r.db)

	query := `SELECT` + requestColumns + `
		FROM requests r
		WHERE r.employee_id = $1
		  AND r.check_in_date = $2
		  AND r.type = 'ADJUST_TIME'
		  AND r.status = 'PENDING'
		LIMIT 1`

	req, err := scanRequest(q.QueryRow(ctx, query, employeeID, checkInDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find pending adjustment: %w", err)
	}

	return &req, nil
}

// HasLeaveOverlap implements request.Repository. The interval test is
// inclusive on both ends, so containment in either direction counts.
func (r *requestRepository) HasLeaveOverlap(ctx context.Context, employeeID, startDate, endDate string) (bool, error) {
	q := uow.QuerierFrom(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM requests
			WHERE employee_id = $1
			  AND type = 'LEAVE'
			  AND status IN ('PENDING', 'APPROVED')
			  AND start_date <= $3::date
			  AND end_date >= $2::date
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, startDate, endDate).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check leave overlap: %w", err)
	}

	return exists, nil
}

// HasApprovedLeaveCovering implements request.Repository.
func (r *requestRepository) HasApprovedLeaveCovering(ctx context.Context, employeeID, date string) (bool, error) {
	q := uow.QuerierFrom(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM requests
			WHERE employee_id = $1
			  AND type = 'LEAVE'
			  AND status = 'APPROVED'
			  AND start_date <= $2::date
			  AND end_date >= $2::date
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check approved leave: %w", err)
	}

	return exists, nil
}

// ExtendPendingOT implements request.Repository. One conditional update,
// so two racing submissions cannot both insert.
func (r *requestRepository) ExtendPendingOT(ctx context.Context, employeeID, date string, estimatedEndAt time.Time, reason string) (*request.Request, error) {
	q := uow.QuerierFrom(ctx, r.db)

	query := `
		UPDATE requests r
		SET estimated_end_at = $3, reason = $4, updated_at = NOW()
		WHERE r.employee_id = $1
		  AND r.date = $2::date
		  AND r.type = 'OT_REQUEST'
		  AND r.status = 'PENDING'
		RETURNING` + requestColumns

	req, err := scanRequest(q.QueryRow(ctx, query, employeeID, date, estimatedEndAt, reason))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to extend pending overtime: %w", err)
	}

	return &req, nil
}

// CountPendingOTInMonth implements request.Repository.
func (r *requestRepository) CountPendingOTInMonth(ctx context.Context, employeeID, monthKey string) (int, error) {
	q := uow.QuerierFrom(ctx, r.db)

	query := `
		SELECT COUNT(*) FROM requests
		WHERE employee_id = $1
		  AND type = 'OT_REQUEST'
		  AND status = 'PENDING'
		  AND to_char(date, 'YYYY-MM') = $2
	`

	var count int
	if err := q.QueryRow(ctx, query, employeeID, monthKey).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pending overtime: %w", err)
	}

	return count, nil
}

// HasApprovedOT implements request.Repository.
func (r *requestRepository) HasApprovedOT(ctx context.Context, employeeID, date string) (bool, error) {
	q := uow.QuerierFrom(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM requests
			WHERE employee_id = $1
			  AND type = 'OT_REQUEST'
			  AND status = 'APPROVED'
			  AND date = $2::date
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check approved overtime: %w", err)
	}

	return exists, nil
}

// DeletePendingOT implements request.Repository. The predicate carries the
// whole cancellation policy; zero rows means the caller may not observe the
// request as existing.
func (r *requestRepository) DeletePendingOT(ctx context.Context, id, employeeID string) (bool, error) {
	q := uow.QuerierFrom(ctx, r.db)

	query := `
		DELETE FROM requests
		WHERE id = $1
		  AND employee_id = $2
		  AND type = 'OT_REQUEST'
		  AND status = 'PENDING'
	`

	tag, err := q.Exec(ctx, query, id, employeeID)
	if err != nil {
		return false, fmt.Errorf("failed to delete pending overtime: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// ListByEmployee implements request.Repository.
func (r *requestRepository) ListByEmployee(ctx context.Context, employeeID string, filter request.ListFilter) ([]request.Request, int64, error) {
	where := []string{"r.employee_id = $1"}
	args := []interface{}{employeeID}
	where, args = applyListFilter(where, args, filter)

	return r.list(ctx, where, args, filter)
}

// ListPending implements request.Repository.
func (r *requestRepository) ListPending(ctx context.Context, filter request.ListFilter) ([]request.Request, int64, error) {
	where := []string{"r.status = 'PENDING'"}
	args := []interface{}{}

	if filter.Team != "" {
		args = append(args, filter.Team)
		where = append(where, fmt.Sprintf("e.team = $%d", len(args)))
	}
	where, args = applyListFilter(where, args, filter)

	return r.list(ctx, where, args, filter)
}

func applyListFilter(where []string, args []interface{}, filter request.ListFilter) ([]string, []interface{}) {
	if filter.Type != "" {
		args = append(args, filter.Type)
		where = append(where, fmt.Sprintf("r.type = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf("r.status = $%d", len(args)))
	}
	if filter.Month != "" {
		args = append(args, filter.Month)
		where = append(where, fmt.Sprintf(
			"to_char(COALESCE(r.check_in_date, r.start_date, r.date), 'YYYY-MM') = $%d", len(args)))
	}
	return where, args
}

func (r *requestRepository) list(ctx context.Context, where []string, args []interface{}, filter request.ListFilter) ([]request.Request, int64, error) {
	q := uow.QuerierFrom(ctx, r.db)
	cond := strings.Join(where, " AND ")

	countQuery := `
		SELECT COUNT(*)
		FROM requests r
		INNER JOIN employees e ON r.employee_id = e.id
		WHERE ` + cond

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count requests: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := `SELECT` + requestColumns + `, e.name
		FROM requests r
		INNER JOIN employees e ON r.employee_id = e.id
		WHERE ` + cond + `
		ORDER BY r.created_at DESC
		LIMIT $` + fmt.Sprint(len(args)-1) + ` OFFSET $` + fmt.Sprint(len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list requests: %w", err)
	}
	defer rows.Close()

	var requests []request.Request
	for rows.Next() {
		var req request.Request
		err := rows.Scan(
			&req.ID, &req.Type, &req.EmployeeID, &req.Reason, &req.Status, &req.ApproverID, &req.DecidedAt,
			&req.CheckInAt, &req.CheckOutAt, &req.CheckInDate, &req.CheckOutDate,
			&req.StartDate, &req.EndDate, &req.Category, &req.WorkdayCount,
			&req.Date, &req.EstimatedEndAt, &req.ActualOTMinutes,
			&req.CreatedAt, &req.UpdatedAt,
			&req.OwnerName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan request: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, total, rows.Err()
}
