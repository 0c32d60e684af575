// Package route models a turn-by-turn driving route as returned by the
// routing provider, reduced to the fields the risk annotator and the
// rendering frontend need.
package route

import (
	"regexp"
	"strings"

	"github.com/couchcryptid/flood-route-advisor/internal/geo"
)

// htmlTagRe strips provider markup from instruction text.
var htmlTagRe = regexp.MustCompile(`<[^>]*>`)

// Step is one turn-by-turn instruction anchored to its start coordinate.
// Distance and Duration are the provider's display strings ("0.3 mi", "2 mins");
// the service never does arithmetic on them.
type Step struct {
	Start       geo.Coordinate `json:"start_location"`
	Instruction string         `json:"instruction"`
	Distance    string         `json:"distance"`
	Duration    string         `json:"duration"`
	Index       int            `json:"index"`
}

// Leg is an ordered sequence of steps between two addresses.
type Leg struct {
	Steps        []Step `json:"steps"`
	StartAddress string `json:"start_address"`
	EndAddress   string `json:"end_address"`
	Distance     string `json:"distance"`
	Duration     string `json:"duration"`
}

// Route is an ordered sequence of legs.
type Route struct {
	Legs []Leg `json:"legs"`
}

// Empty reports whether the route has no steps at all. Providers signal
// "no route found" with an empty or missing legs array.
func (r Route) Empty() bool {
	for _, leg := range r.Legs {
		if len(leg.Steps) > 0 {
			return false
		}
	}
	return true
}

// Steps flattens all legs into a single ordered slice, renumbering Index
// sequentially across leg boundaries.
func (r Route) Steps() []Step {
	var out []Step
	for _, leg := range r.Legs {
		for _, step := range leg.Steps {
			step.Index = len(out)
			out = append(out, step)
		}
	}
	return out
}

// SanitizeInstruction strips HTML markup from a provider instruction string.
// Falls back to "Continue" when nothing remains.
func SanitizeInstruction(s string) string {
	s = strings.TrimSpace(htmlTagRe.ReplaceAllString(s, ""))
	if s == "" {
		return "Continue"
	}
	return s
}

// IconClass maps an instruction to the frontend's direction icon class.
// Matches are case-insensitive substring checks, first hit wins.
func IconClass(instruction string) string {
	lower := strings.ToLower(instruction)
	switch {
	case strings.Contains(lower, "left"):
		return "fas fa-arrow-left"
	case strings.Contains(lower, "right"):
		return "fas fa-arrow-right"
	case strings.Contains(lower, "straight"), strings.Contains(lower, "continue"):
		return "fas fa-arrow-up"
	case strings.Contains(lower, "merge"):
		return "fas fa-code-merge"
	case strings.Contains(lower, "exit"), strings.Contains(lower, "ramp"):
		return "fas fa-sign-out-alt"
	case strings.Contains(lower, "roundabout"):
		return "fas fa-circle-notch"
	case strings.Contains(lower, "destination"), strings.Contains(lower, "arrive"):
		return "fas fa-flag-checkered"
	default:
		return "fas fa-arrow-up"
	}
}
