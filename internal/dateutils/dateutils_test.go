package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
		wantErr  bool
	}{
		{name: "iso day", input: "2024-03-15", expected: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{name: "rfc3339", input: "2024-03-15T10:30:00Z", expected: time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)},
		{name: "european", input: "15.03.2024", expected: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{name: "surrounding whitespace", input: "  2024-03-15 ", expected: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{name: "impossible month", input: "2024-13-01", wantErr: true},
		{name: "garbage", input: "yesterday-ish", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(got), "got %s", got)
		})
	}
}

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "March 2024", MonthKey(time.Date(2024, 3, 31, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, "December 1999", MonthKey(time.Date(1999, 12, 1, 0, 0, 0, 0, time.UTC)))
}

func TestStartOfMonth(t *testing.T) {
	got := StartOfMonth(time.Date(2024, 2, 29, 15, 4, 5, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestDaysBetween(t *testing.T) {
	d1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 2, DaysBetween(d1.AddDate(0, 0, 2), d1))
	assert.Equal(t, -4, DaysBetween(d1, d1.AddDate(0, 0, 4)))
	assert.Equal(t, 0, DaysBetween(d1.Add(23*time.Hour), d1))
}

func TestShortDayAndISO(t *testing.T) {
	d := time.Date(2024, 7, 4, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Jul 04", ShortDay(d))
	assert.Equal(t, "2024-07-04", ToISODate(d))
}
