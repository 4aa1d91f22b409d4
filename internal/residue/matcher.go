package residue

import (
	"strings"

	"nmrbench/internal/numeric"
)

// DefaultDeviation is the tolerance the presentation layer fills in the
// first time a chemical shift is entered with no deviation set.
const DefaultDeviation = "0.1"

// Filter is the ephemeral specification the presentation layer hands to
// Match. Numeric fields are raw text: in-progress input like a trailing
// "." is valid transient state and simply parses to "no filter".
type Filter struct {
	Name         string
	Shift        string
	Deviation    string
	Multiplicity Multiplicity
	Solvent      Solvent
}

// Active reports whether any filter field is set, driving the
// "clear filters" affordance.
func (f Filter) Active() bool {
	return f.Name != "" || f.Shift != "" || f.Deviation != "" || f.Multiplicity != ""
}

// Hit reports whether a single signal matches the shift window of the
// filter at the active solvent column. This is the per-cell predicate the
// presentation layer uses to flag the values that made a row match; it is
// the single-signal half of the Match rule, not a separate algorithm.
func (f Filter) Hit(sig Signal) bool {
	if f.Name != "" {
		// Name filtering takes precedence; no cell is shift-matched.
		return false
	}
	target, ok := numeric.ParseDecimal(f.Shift)
	if !ok {
		return false
	}
	if f.Multiplicity != "" && sig.Multiplicity != f.Multiplicity {
		return false
	}
	dev, ok := numeric.ParseDecimal(f.Deviation)
	if !ok || dev < 0 {
		dev = 0
	}
	return sig.ShiftIn(f.Solvent).Within(target-dev, target+dev)
}

// HitIn reports whether the value displayed in the given solvent column
// is one of the values that made its row match. Only the active solvent
// column can carry hits.
func (f Filter) HitIn(sig Signal, col Solvent) bool {
	return col == f.Solvent && f.Hit(sig)
}

// Match returns the dataset rows to display for the filter, in dataset
// order, with the sentinel solvent-peak row always pinned first.
//
// A non-empty name substring wins over every other field: the original
// behavior keeps name and shift filtering mutually exclusive rather than
// combining them. A shift that fails to parse means "no filter", never
// "no matches".
func (l *Library) Match(f Filter) []Compound {
	result := []Compound{l.Sentinel()}

	if f.Name != "" {
		needle := strings.ToLower(f.Name)
		for _, c := range l.Selectable() {
			haystack := strings.ToLower(c.Name + " " + c.AlternateNames)
			if strings.Contains(haystack, needle) {
				result = append(result, c)
			}
		}
		return result
	}

	if _, ok := numeric.ParseDecimal(f.Shift); !ok {
		return append(result, l.Selectable()...)
	}

	for _, c := range l.Selectable() {
		for _, sig := range c.Signals {
			if f.Hit(sig) {
				result = append(result, c)
				break
			}
		}
	}
	return result
}
