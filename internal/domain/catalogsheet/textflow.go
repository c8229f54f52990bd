package catalogsheet

import (
	"errors"
	"fmt"
	"math"
)

const (
	// BadgePadding is the horizontal padding added to a label's text width
	BadgePadding = 5.0
	// BadgeGap separates adjacent badges on a row
	BadgeGap = 3.0
)

// ErrMalformedMeasurement is returned when a measure function yields a
// width that cannot be laid out.
var ErrMalformedMeasurement = errors.New("malformed text measurement")

// MeasureFunc returns the rendered width of a label in the caller's units
type MeasureFunc func(label string) float64

// PlacedBadge is one placed label. Width includes BadgePadding.
type PlacedBadge struct {
	Label string
	Width float64
}

// Row is a line of badges
type Row struct {
	Badges []PlacedBadge
}

// Width is the extent of the row including gaps
func (r Row) Width() float64 {
	w := 0.0
	for i, b := range r.Badges {
		if i > 0 {
			w += BadgeGap
		}
		w += b.Width
	}
	return w
}

// Plan is the wrapped arrangement of an item's variant labels.
// It is computed once and shared by height calculation and drawing.
type Plan struct {
	MaxWidth float64
	Rows     []Row
}

// RowCount returns the number of rows, zero when there are no labels
func (p Plan) RowCount() int {
	return len(p.Rows)
}

// Labels flattens the plan back to its labels in input order
func (p Plan) Labels() []string {
	var out []string
	for _, r := range p.Rows {
		for _, b := range r.Badges {
			out = append(out, b.Label)
		}
	}
	return out
}

// Pack wraps labels greedily into rows no wider than maxWidth. A badge wider
// than maxWidth still gets a row of its own, so every label is placed.
func Pack(labels []string, maxWidth float64, measure MeasureFunc) (Plan, error) {
	plan := Plan{MaxWidth: maxWidth}
	if len(labels) == 0 {
		return plan, nil
	}
	if measure == nil {
		return plan, fmt.Errorf("%w: nil measure function", ErrMalformedMeasurement)
	}

	var current Row
	used := 0.0
	for _, label := range labels {
		tw := measure(label)
		if math.IsNaN(tw) || math.IsInf(tw, 0) || tw < 0 {
			return Plan{MaxWidth: maxWidth}, fmt.Errorf("%w: %q measured %v", ErrMalformedMeasurement, label, tw)
		}
		w := tw + BadgePadding

		if len(current.Badges) > 0 && used+BadgeGap+w > maxWidth {
			plan.Rows = append(plan.Rows, current)
			current = Row{}
			used = 0
		}
		if len(current.Badges) > 0 {
			used += BadgeGap
		}
		current.Badges = append(current.Badges, PlacedBadge{Label: label, Width: w})
		used += w
	}
	plan.Rows = append(plan.Rows, current)
	return plan, nil
}
