package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/chronohr/attendance-backend-go/internal/domain/user"
	"github.com/chronohr/attendance-backend-go/internal/pkg/database"
	"github.com/chronohr/attendance-backend-go/internal/pkg/uow"
	"github.com/jackc/pgx/v5"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) user.Repository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
		id, name, email, password_hash, role, team, is_active, deleted_at,
		created_at, updated_at`

func scanEmployee(row pgx.Row) (user.Employee, error) {
	var emp user.Employee
	err := row.Scan(
		&emp.ID, &emp.Name, &emp.Email, &emp.PasswordHash, &emp.Role, &emp.Team,
		&emp.IsActive, &emp.DeletedAt,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

// GetByID implements user.Repository. Soft-deleted rows are returned; the
// caller decides what a deleted owner means.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (user.Employee, error) {
	q := uow.QuerierFrom(ctx, r.db)

	query := `SELECT` + employeeColumns + `
		FROM employees
		WHERE id = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.Employee{}, user.ErrNotFound
		}
		return user.Employee{}, fmt.Errorf("failed to get employee by id: %w", err)
	}

	return emp, nil
}

// GetByEmail implements user.Repository. Login only, so deleted rows are
// filtered here.
func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (user.Employee, error) {
	q := uow.QuerierFrom(ctx, r.db)

	query := `SELECT` + employeeColumns + `
		FROM employees
		WHERE email = $1
		  AND deleted_at IS NULL`

	emp, err := scanEmployee(q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.Employee{}, user.ErrNotFound
		}
		return user.Employee{}, fmt.Errorf("failed to get employee by email: %w", err)
	}

	return emp, nil
}
