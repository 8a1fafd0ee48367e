// Package calendar provides trading-day distance between ISO dates.
package calendar

import (
	"time"
)

const dateLayout = "2006-01-02"

// DaysBetweenTradingDates counts the trading days (weekdays) strictly after a
// up to and including b. Same-day, reversed or unparseable inputs yield 0.
// Exchange holidays are not modelled.
func DaysBetweenTradingDates(a, b string) int {
	start, err := time.Parse(dateLayout, a)
	if err != nil {
		return 0
	}
	end, err := time.Parse(dateLayout, b)
	if err != nil {
		return 0
	}
	if !end.After(start) {
		return 0
	}

	days := 0
	for d := start.AddDate(0, 0, 1); !d.After(end); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
			continue
		default:
			days++
		}
	}
	return days
}
