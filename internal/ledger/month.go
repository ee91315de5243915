package ledger

import (
	"time"

	"spendtrack-backend/internal/apperr"
)

const monthLayout = "2006-01"

// MonthRange resolves a "YYYY-MM" month to [first day, first day of the next
// month) in UTC. All month arithmetic in the service uses UTC.
func MonthRange(month string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(monthLayout, month, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, apperr.Validation("month must be in YYYY-MM format")
	}
	return start, start.AddDate(0, 1, 0), nil
}

// CurrentMonth returns the current UTC month as "YYYY-MM".
func CurrentMonth() string {
	return time.Now().UTC().Format(monthLayout)
}
