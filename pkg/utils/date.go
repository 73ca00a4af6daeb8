package utils

import "time"

// ParseDate parses an ISO calendar date. An empty string yields the zero
// time without error, so optional query parameters fall through cleanly.
func ParseDate(dateStr string) (*time.Time, error) {
	var date time.Time

	if dateStr != "" {
		incomingDate, err := time.Parse(time.DateOnly, dateStr)
		if err != nil {
			return nil, err
		}

		date = incomingDate
	}

	return &date, nil
}

// TruncateToDay normalizes a timestamp to UTC midnight. Every calendar-date
// comparison in the service goes through this.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
