package timefmt

import (
	"fmt"
	"math"
)

// Clock formats a playback position in seconds as M:SS.
// Unknown (NaN, infinite) and negative positions render as 0:00.
func Clock(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return "0:00"
	}

	total := int64(math.Floor(seconds))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
