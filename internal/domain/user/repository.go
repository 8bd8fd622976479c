package user

import (
	"context"
)

// Repository is the employee directory. Reads include soft-deleted rows so
// the approval path can report ineligibility instead of a bare not-found.
type Repository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByEmail(ctx context.Context, email string) (Employee, error)
}
