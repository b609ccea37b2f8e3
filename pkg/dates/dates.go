package dates

import (
	"fmt"
	"time"

	custom_error "github.com/codeamanwal/brysk/pkg/errors"
)

const layout = "2006-01-02"

// Parse reads an ISO calendar date (YYYY-MM-DD) from a query parameter.
func Parse(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, custom_error.NewValidationError("Date parameter is required")
	}
	day, err := time.Parse(layout, value)
	if err != nil {
		return time.Time{}, custom_error.NewValidationError(fmt.Sprintf("Invalid date: %s", value))
	}
	return day, nil
}

// ParseRange reads the start_date/end_date pair shared by every windowed
// endpoint. Both bounds are required and inclusive.
func ParseRange(start, end string) (time.Time, time.Time, error) {
	if start == "" || end == "" {
		return time.Time{}, time.Time{}, custom_error.NewValidationError("Start date and end date are required")
	}
	startDay, err := time.Parse(layout, start)
	if err != nil {
		return time.Time{}, time.Time{}, custom_error.NewValidationError(fmt.Sprintf("Invalid start date: %s", start))
	}
	endDay, err := time.Parse(layout, end)
	if err != nil {
		return time.Time{}, time.Time{}, custom_error.NewValidationError(fmt.Sprintf("Invalid end date: %s", end))
	}
	if endDay.Before(startDay) {
		return time.Time{}, time.Time{}, custom_error.NewValidationError("End date must not precede start date")
	}
	return startDay, endDay, nil
}
