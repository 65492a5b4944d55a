// Package dateutils provides the date handling shared by the aggregator,
// the insight rules and the voice executor.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Layouts used throughout the application
const (
	DateLayoutISO      = "2006-01-02"
	DateLayoutEuropean = "02.01.2006"
	DateLayoutUS       = "01/02/2006"
	DateLayoutFull     = "2006-01-02 15:04:05"
	MonthKeyLayout     = "January 2006"
	ShortDayLayout     = "Jan 02"
)

// CommonFormats lists the layouts ParseDate tries, in order. Stored dates are
// normally ISO days or RFC 3339 timestamps coming from the API.
var CommonFormats = []string{
	DateLayoutISO,
	time.RFC3339Nano,
	time.RFC3339,
	DateLayoutFull,
	"2006-01-02T15:04:05",
	DateLayoutEuropean,
	DateLayoutUS,
	"Jan 2, 2006",
	"January 2, 2006",
}

var whitespace = regexp.MustCompile(`\s+`)

// ParseDate parses a date string using CommonFormats.
func ParseDate(dateStr string) (time.Time, error) {
	cleaned := CleanDateString(dateStr)
	if cleaned == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	for _, layout := range CommonFormats {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// CleanDateString trims and collapses whitespace.
func CleanDateString(dateStr string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// ToISODate formats t as YYYY-MM-DD.
func ToISODate(t time.Time) string {
	return t.Format(DateLayoutISO)
}

// StartOfMonth returns midnight of the first day of t's month, in t's location.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// MonthKey returns the "Month Year" bucket key for t, e.g. "March 2024".
// Month names come from the time package and do not depend on locale.
func MonthKey(t time.Time) string {
	return t.Format(MonthKeyLayout)
}

// DaysBetween returns the number of whole days from b to a, truncated toward
// zero. It is negative when a is before b.
func DaysBetween(a, b time.Time) int {
	return int(a.Sub(b).Hours() / 24)
}

// ShortDay formats t as "Jan 02" for display in insight payloads.
func ShortDay(t time.Time) string {
	return t.Format(ShortDayLayout)
}
