package timeline

import (
	"fmt"
	"math"

	"github.com/genricoloni/courtside/internal/domain"
	"github.com/genricoloni/courtside/internal/timefmt"
)

// DefaultTolerance is the distance, in seconds, within which an event counts as active
const DefaultTolerance = 2.0

// Marker is one event placed on the timeline
type Marker struct {
	Event           domain.DomainEvent `json:"event"`
	PositionPercent float64            `json:"positionPercent"`
	Category        Category           `json:"category"`
	Label           string             `json:"label"`
}

// Build places every event on a timeline of the given duration using the default classifier.
// It returns nil while the duration is unknown or not positive; callers must retry once
// the media reports its duration.
func Build(events []domain.DomainEvent, duration float64) []Marker {
	return NewClassifier().Build(events, duration)
}

// Build places every event on a timeline of the given duration.
// Input order and duplicates are preserved.
func (c *Classifier) Build(events []domain.DomainEvent, duration float64) []Marker {
	if !KnownDuration(duration) {
		return nil
	}

	markers := make([]Marker, 0, len(events))
	for _, ev := range events {
		markers = append(markers, Marker{
			Event:           ev,
			PositionPercent: Position(ev.Timestamp, duration),
			Category:        c.Classify(ev.Type),
			Label:           MarkerLabel(ev),
		})
	}
	return markers
}

// KnownDuration reports whether a media duration can be used for positioning
func KnownDuration(duration float64) bool {
	return !math.IsNaN(duration) && !math.IsInf(duration, 0) && duration > 0
}

// Position converts a timestamp to a percentage of the duration, clamped to [0,100].
// It returns 0 when the duration is unknown.
func Position(timestamp, duration float64) float64 {
	if !KnownDuration(duration) || math.IsNaN(timestamp) {
		return 0
	}
	return clamp(timestamp/duration*100, 0, 100)
}

// MarkerLabel renders the tooltip text of a marker, e.g. "wicket: bowled at 0:30"
func MarkerLabel(ev domain.DomainEvent) string {
	return fmt.Sprintf("%s: %s at %s", ev.Type, ev.Subtype, timefmt.Clock(ev.Timestamp))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
