package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/attendance"
	"github.com/chronohr/attendance-backend-go/internal/pkg/database"
	"github.com/chronohr/attendance-backend-go/internal/pkg/uow"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

// GetByEmployeeAndDate implements attendance.Repository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID, date string) (*attendance.Attendance, error) {
	q := uow.QuerierFrom(ctx, a.db)

	query := `
		SELECT id, employee_id, date::text, check_in_at, check_out_at, ot_approved,
			   created_at, updated_at
		FROM attendances
		WHERE employee_id = $1
		  AND date = $2::date
		LIMIT 1
	`

	var att attendance.Attendance
	err := q.QueryRow(ctx, query, employeeID, date).Scan(
		&att.ID, &att.EmployeeID, &att.Date, &att.CheckInAt, &att.CheckOutAt, &att.OTApproved,
		&att.CreatedAt, &att.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &att, nil
}

// ExistsInRange implements attendance.Repository.
func (a *attendanceRepository) ExistsInRange(ctx context.Context, employeeID, startDate, endDate string) (bool, error) {
	q := uow.QuerierFrom(ctx, a.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM attendances
			WHERE employee_id = $1
			  AND date BETWEEN $2::date AND $3::date
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, startDate, endDate).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check attendance range: %w", err)
	}

	return exists, nil
}

// Create implements attendance.Repository.
func (a *attendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := uow.QuerierFrom(ctx, a.db)

	if att.CheckInAt.IsZero() {
		return attendance.Attendance{}, attendance.ErrCheckInRequired
	}

	query := `
		INSERT INTO attendances (
			id, employee_id, date, check_in_at, check_out_at, ot_approved,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2::date, $3, $4, $5, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.EmployeeID,
		att.Date,
		att.CheckInAt,
		att.CheckOutAt,
		att.OTApproved,
	).Scan(&att.ID, &att.CreatedAt, &att.UpdatedAt)

	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return att, nil
}

// UpdateTimes implements attendance.Repository. COALESCE keeps untouched
// columns untouched, which is what makes reconciliation re-runnable.
func (a *attendanceRepository) UpdateTimes(ctx context.Context, employeeID, date string, checkInAt, checkOutAt *time.Time) error {
	q := uow.QuerierFrom(ctx, a.db)

	query := `
		UPDATE attendances
		SET check_in_at = COALESCE($3, check_in_at),
		    check_out_at = COALESCE($4, check_out_at),
		    updated_at = NOW()
		WHERE employee_id = $1
		  AND date = $2::date
	`

	tag, err := q.Exec(ctx, query, employeeID, date, checkInAt, checkOutAt)
	if err != nil {
		return fmt.Errorf("failed to update attendance times: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrNotFound
	}

	return nil
}

// SetOTApproved implements attendance.Repository.
func (a *attendanceRepository) SetOTApproved(ctx context.Context, employeeID, date string) (bool, error) {
	q := uow.QuerierFrom(ctx, a.db)

	query := `
		UPDATE attendances
		SET ot_approved = TRUE, updated_at = NOW()
		WHERE employee_id = $1
		  AND date = $2::date
	`

	tag, err := q.Exec(ctx, query, employeeID, date)
	if err != nil {
		return false, fmt.Errorf("failed to set overtime approved: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}
