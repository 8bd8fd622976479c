package holiday

import (
	"context"
)

// Provider supplies the holiday calendar consumed by workday counting and
// the working-day checks. Holiday maintenance itself lives elsewhere.
type Provider interface {
	// ForMonth returns the set of holiday date keys in the month key.
	ForMonth(ctx context.Context, monthKey string) (map[string]bool, error)
}
