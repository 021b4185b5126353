// Package display holds the pure presentation computations: currency and
// date formatting plus fixed-deposit maturity progress. Everything here
// is deterministic and side-effect free.
package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Amounts are presented in the bank's currency with en-US conventions.
const currencyCode = "LKR"

var printer = message.NewPrinter(language.AmericanEnglish)

// dateLayouts are the timestamp shapes the bank API serves.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// FormatCurrency renders an amount as e.g. "LKR 1,234.50". Negative
// amounts carry a leading sign: "-LKR 1,234.50".
func FormatCurrency(amount decimal.Decimal) string {
	s := groupedAbs(amount)
	if amount.IsNegative() {
		return "-" + currencyCode + " " + s
	}
	return currencyCode + " " + s
}

// groupedAbs renders |amount| with two fraction digits and en-US digit
// grouping. The amount stays in exact decimal form throughout — no
// float64 round trip — so large balances keep every digit.
func groupedAbs(amount decimal.Decimal) string {
	cents := amount.Abs().Round(2).Shift(2)
	if cents.BigInt().IsInt64() {
		n := cents.BigInt().Int64()
		return printer.Sprintf("%v", number.Decimal(n/100)) + fmt.Sprintf(".%02d", n%100)
	}

	// Balances past int64 cents: group the exact digit string directly.
	fixed := amount.Abs().StringFixed(2)
	units, frac := fixed[:len(fixed)-3], fixed[len(fixed)-2:]
	var b strings.Builder
	for i := 0; i < len(units); i++ {
		if i > 0 && (len(units)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(units[i])
	}
	return b.String() + "." + frac
}

// FormatDate renders an ISO date string as a short locale date, e.g.
// "1/2/2006". Unparseable input is returned unchanged rather than
// replaced with a zero date.
func FormatDate(iso string) string {
	t, ok := parseISO(iso)
	if !ok {
		return iso
	}
	return fmt.Sprintf("%d/%d/%d", int(t.Month()), t.Day(), t.Year())
}

// FormatDateLong renders an ISO date string as e.g. "Jan 2, 2006", the
// style used on transaction rows.
func FormatDateLong(iso string) string {
	t, ok := parseISO(iso)
	if !ok {
		return iso
	}
	return t.Format("Jan 2, 2006")
}

func parseISO(iso string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, iso); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
