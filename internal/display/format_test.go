package display_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Team-SMDRS/customer-dashboard/internal/display"
)

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		amount string
		want   string
	}{
		{"1234.5", "LKR 1,234.50"},
		{"0", "LKR 0.00"},
		{"1000000", "LKR 1,000,000.00"},
		{"99.999", "LKR 100.00"},
		{"-1234.5", "-LKR 1,234.50"},
		{"0.4", "LKR 0.40"},
	}

	for _, tc := range cases {
		d, err := decimal.NewFromString(tc.amount)
		assert.NoError(t, err)
		assert.Equal(t, tc.want, display.FormatCurrency(d), "amount %s", tc.amount)
	}
}

func TestFormatCurrency_LargeBalancesKeepEveryDigit(t *testing.T) {
	// Past float64's ~15 significant digits; a float round trip would
	// corrupt the low digits.
	cases := []struct {
		amount string
		want   string
	}{
		{"12345678901234567.89", "LKR 12,345,678,901,234,567.89"},
		{"-98765432109876543.21", "-LKR 98,765,432,109,876,543.21"},
		// Past int64 cents as well.
		{"123456789012345678901.23", "LKR 123,456,789,012,345,678,901.23"},
	}

	for _, tc := range cases {
		d, err := decimal.NewFromString(tc.amount)
		assert.NoError(t, err)
		assert.Equal(t, tc.want, display.FormatCurrency(d), "amount %s", tc.amount)
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "1/2/2006", display.FormatDate("2006-01-02"))
	assert.Equal(t, "12/31/2024", display.FormatDate("2024-12-31T18:30:00"))
	assert.Equal(t, "3/5/2024", display.FormatDate("2024-03-05T10:00:00Z"))
	// Unparseable input passes through untouched.
	assert.Equal(t, "not-a-date", display.FormatDate("not-a-date"))
}

func TestFormatDateLong(t *testing.T) {
	assert.Equal(t, "Jan 2, 2006", display.FormatDateLong("2006-01-02"))
	assert.Equal(t, "Dec 31, 2024", display.FormatDateLong("2024-12-31T18:30:00"))
}

func TestMaturityProgress(t *testing.T) {
	now := time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)

	// Halfway through a ten-day term.
	assert.Equal(t, 50, display.MaturityProgress("2024-01-01", "2024-01-11", now))

	// Before opening and after maturity clamp to the bounds.
	assert.Equal(t, 0, display.MaturityProgress("2024-02-01", "2024-03-01", now))
	assert.Equal(t, 100, display.MaturityProgress("2023-01-01", "2023-06-01", now))

	// Degenerate term: maturity not after opening is treated as elapsed.
	assert.Equal(t, 100, display.MaturityProgress("2024-01-06", "2024-01-06", now))
	assert.Equal(t, 100, display.MaturityProgress("2024-01-10", "2024-01-05", now))

	// Garbage dates never divide by zero.
	assert.Equal(t, 0, display.MaturityProgress("junk", "2024-01-11", now))

	// Floored, not rounded: 1/3 of the way through.
	assert.Equal(t, 33, display.MaturityProgress("2024-01-03", "2024-01-06", time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)))
}
