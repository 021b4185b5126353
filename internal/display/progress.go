package display

import (
	"math"
	"time"
)

// MaturityProgress computes how much of a fixed deposit's term has
// elapsed at now, as an integer percentage clamped to [0,100] and
// floored. A term that is not strictly positive (maturity on or before
// opening) is treated as fully elapsed and returns 100; unparseable
// dates return 0.
func MaturityProgress(openedDate, maturityDate string, now time.Time) int {
	opened, okO := parseISO(openedDate)
	maturity, okM := parseISO(maturityDate)
	if !okO || !okM {
		return 0
	}

	total := maturity.Sub(opened)
	if total <= 0 {
		return 100
	}

	elapsed := now.Sub(opened)
	pct := int(math.Floor(float64(elapsed) / float64(total) * 100))

	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
