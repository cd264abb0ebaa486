package main

import (
	"fmt"
	"time"

	"github.com/ersonp/campaign-memory/internal/domain/entities"
)

// DateLayout is the date format accepted by every --date flag.
const DateLayout = "2006-01-02"

// parseDate parses a --date flag value as a UTC calendar date.
func parseDate(value string) (time.Time, error) {
	parsed, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected %s", value, DateLayout)
	}
	return parsed, nil
}

// today returns the current UTC calendar date.
func today() time.Time {
	return entities.DateOnly(time.Now())
}
