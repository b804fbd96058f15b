package timeline

import (
	"math"

	"github.com/genricoloni/courtside/internal/domain"
)

// ActiveEvents returns every event whose timestamp lies within tolerance of currentTime.
// The result follows input order. It is recomputed on every call since the playback
// position moves continuously.
func ActiveEvents(events []domain.DomainEvent, currentTime, tolerance float64) []domain.DomainEvent {
	var active []domain.DomainEvent
	for _, i := range ActiveIndices(events, currentTime, tolerance) {
		active = append(active, events[i])
	}
	return active
}

// ActiveIndices is like ActiveEvents but returns positions in the input slice,
// so duplicated events can be highlighted separately.
func ActiveIndices(events []domain.DomainEvent, currentTime, tolerance float64) []int {
	if math.IsNaN(currentTime) {
		return nil
	}

	var idx []int
	for i, ev := range events {
		if math.Abs(ev.Timestamp-currentTime) <= tolerance {
			idx = append(idx, i)
		}
	}
	return idx
}
