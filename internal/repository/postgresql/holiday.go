package postgresql

import (
	"context"
	"fmt"

	"github.com/chronohr/attendance-backend-go/internal/domain/holiday"
	"github.com/chronohr/attendance-backend-go/internal/pkg/database"
	"github.com/chronohr/attendance-backend-go/internal/pkg/uow"
)

type holidayRepository struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.Provider {
	return &holidayRepository{db: db}
}

// ForMonth implements holiday.Provider.
func (r *holidayRepository) ForMonth(ctx context.Context, monthKey string) (map[string]bool, error) {
	q := uow.QuerierFrom(ctx, r.db)

	query := `
		SELECT date::text
		FROM holidays
		WHERE to_char(date, 'YYYY-MM') = $1
	`

	rows, err := q.Query(ctx, query, monthKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load holidays for %s: %w", monthKey, err)
	}
	defer rows.Close()

	holidays := make(map[string]bool)
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays[date] = true
	}

	return holidays, rows.Err()
}
