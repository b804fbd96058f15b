package timeline

import (
	"fmt"
	"unicode/utf8"

	"github.com/genricoloni/courtside/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ListingStatus tells how the event list should be presented
type ListingStatus string

const (
	ListingReady       ListingStatus = "ready"
	ListingEmpty       ListingStatus = "empty"
	ListingUnavailable ListingStatus = "unavailable"
)

const (
	msgNoEvents    = "No events detected in this video."
	msgUnavailable = "Could not load events. Please try again later."
)

// Group is the set of events sharing one type
type Group struct {
	Type   string               `json:"type"`
	Title  string               `json:"title"`
	Events []domain.DomainEvent `json:"events"`
}

// Listing is the event list shown next to the player
type Listing struct {
	Status  ListingStatus `json:"status"`
	Message string        `json:"message,omitempty"`
	Groups  []Group       `json:"groups,omitempty"`
}

// GroupByType groups events by type. Groups appear in the order their type was
// first seen; events keep their input order within a group.
func GroupByType(events []domain.DomainEvent) []Group {
	var groups []Group
	index := make(map[string]int)
	for _, ev := range events {
		i, ok := index[ev.Type]
		if !ok {
			i = len(groups)
			index[ev.Type] = i
			groups = append(groups, Group{Type: ev.Type})
		}
		groups[i].Events = append(groups[i].Events, ev)
	}

	for i := range groups {
		groups[i].Title = fmt.Sprintf("%s Events (%d)", capitalize(groups[i].Type), len(groups[i].Events))
	}
	return groups
}

// capitalize uppercases the first letter and keeps the rest as sent ("LBW" stays "LBW")
func capitalize(s string) string {
	_, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return cases.Upper(language.English).String(s[:size]) + s[size:]
}

// Describe builds the event listing from a fetch result. A fetch error or an empty
// list yields an explicit message instead of an empty timeline.
func Describe(events []domain.DomainEvent, err error) Listing {
	if err != nil {
		return Listing{Status: ListingUnavailable, Message: msgUnavailable}
	}
	if len(events) == 0 {
		return Listing{Status: ListingEmpty, Message: msgNoEvents}
	}
	return Listing{Status: ListingReady, Groups: GroupByType(events)}
}
