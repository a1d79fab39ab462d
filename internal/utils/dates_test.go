package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	t.Run("Valid date", func(t *testing.T) {
		date, err := ParseDate("2024-01-15")
		assert.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), date)
	})

	t.Run("Invalid format", func(t *testing.T) {
		_, err := ParseDate("2024/01/15")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid date format")
	})

	t.Run("Invalid month", func(t *testing.T) {
		_, err := ParseDate("2024-13-15")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "month must be between 1 and 12")
	})

	t.Run("Invalid day", func(t *testing.T) {
		_, err := ParseDate("2023-02-29")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "day must be between 1 and 28")
	})
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year     int
		month    int
		expected int
	}{
		{2024, 1, 31},  // January
		{2024, 2, 29},  // February (leap year)
		{2023, 2, 28},  // February (non-leap year)
		{2024, 4, 30},  // April
		{2024, 11, 30}, // November
		{2024, 12, 31}, // December
		{2000, 2, 29},  // Leap year (divisible by 400)
		{1900, 2, 28},  // Not a leap year (divisible by 100 but not 400)
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			assert.Equal(t, tt.expected, DaysInMonth(tt.year, tt.month))
		})
	}
}

func TestRentalDays(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

	t.Run("Same day", func(t *testing.T) {
		n, err := RentalDays(day(2026, 7, 1), day(2026, 7, 1))
		assert.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("Both ends included", func(t *testing.T) {
		n, err := RentalDays(day(2026, 7, 1), day(2026, 7, 3))
		assert.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("Across a DST change and time of day", func(t *testing.T) {
		loc, err := time.LoadLocation("America/New_York")
		if err != nil {
			t.Skip("tzdata not available")
		}
		n, err := RentalDays(time.Date(2026, 3, 7, 18, 0, 0, 0, loc), time.Date(2026, 3, 9, 9, 0, 0, 0, loc))
		assert.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("End before start", func(t *testing.T) {
		_, err := RentalDays(day(2026, 7, 3), day(2026, 7, 1))
		assert.Error(t, err)
	})
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "$0.05", FormatCents(5))
	assert.Equal(t, "$100.00", FormatCents(10000))
	assert.Equal(t, "$8,355.00", FormatCents(835500))
	assert.Equal(t, "$1,234,567.89", FormatCents(123456789))
	assert.Equal(t, "-$12.50", FormatCents(-1250))
}
