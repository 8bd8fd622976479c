package datetime

import (
	"fmt"
	"time"
)

// Company time is fixed at UTC+7 regardless of server or client timezone.
// Every date key is derived in this zone so that a check-in at 23:30+07:00
// and one at 16:30Z land on the same business day.
var Location = time.FixedZone("UTC+7", 7*60*60)

const dateKeyLayout = "2006-01-02"

// DateKey converts an instant to its business-day key "YYYY-MM-DD".
func DateKey(t time.Time) string {
	return t.In(Location).Format(dateKeyLayout)
}

// MonthKey converts an instant to its business-month key "YYYY-MM".
func MonthKey(t time.Time) string {
	return t.In(Location).Format("2006-01")
}

// MonthKeyOf returns the month key portion of a date key.
func MonthKeyOf(dateKey string) string {
	if len(dateKey) < 7 {
		return dateKey
	}
	return dateKey[:7]
}

// ParseDateKey parses "YYYY-MM-DD" into midnight of that day in company time.
func ParseDateKey(dateKey string) (time.Time, error) {
	t, err := time.ParseInLocation(dateKeyLayout, dateKey, Location)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", dateKey, err)
	}
	return t, nil
}

// IsValidDateKey reports whether s is a well-formed date key.
func IsValidDateKey(s string) bool {
	_, err := ParseDateKey(s)
	return err == nil
}

// StartOfDay returns midnight of t's business day in company time.
func StartOfDay(t time.Time) time.Time {
	local := t.In(Location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, Location)
}

// AddDays shifts a date key by n calendar days.
func AddDays(dateKey string, n int) (string, error) {
	t, err := ParseDateKey(dateKey)
	if err != nil {
		return "", err
	}
	return DateKey(t.AddDate(0, 0, n)), nil
}

// IsWeekend reports whether the date key falls on Saturday or Sunday.
func IsWeekend(dateKey string) bool {
	t, err := ParseDateKey(dateKey)
	if err != nil {
		return false
	}
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// DateRange expands [startKey, endKey] into an ordered slice of date keys,
// both endpoints included. An inverted range yields an empty slice.
func DateRange(startKey, endKey string) ([]string, error) {
	start, err := ParseDateKey(startKey)
	if err != nil {
		return nil, err
	}
	end, err := ParseDateKey(endKey)
	if err != nil {
		return nil, err
	}

	var keys []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		keys = append(keys, DateKey(d))
	}
	return keys, nil
}

// InclusiveDays counts calendar days in [startKey, endKey], both included.
func InclusiveDays(startKey, endKey string) (int, error) {
	keys, err := DateRange(startKey, endKey)
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}

// CountWorkdays counts days in [startKey, endKey] that are neither weekend
// nor present in holidays.
func CountWorkdays(startKey, endKey string, holidays map[string]bool) (int, error) {
	keys, err := DateRange(startKey, endKey)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, key := range keys {
		if IsWeekend(key) || holidays[key] {
			continue
		}
		count++
	}
	return count, nil
}

// MonthKeysIn returns the distinct month keys covered by [startKey, endKey],
// in order. Used to batch holiday lookups per month.
func MonthKeysIn(startKey, endKey string) ([]string, error) {
	keys, err := DateRange(startKey, endKey)
	if err != nil {
		return nil, err
	}

	var months []string
	seen := make(map[string]bool)
	for _, key := range keys {
		m := MonthKeyOf(key)
		if !seen[m] {
			seen[m] = true
			months = append(months, m)
		}
	}
	return months, nil
}
