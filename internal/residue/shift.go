package residue

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"nmrbench/internal/numeric"
)

// ShiftKind discriminates the three shapes a literature chemical-shift
// value can take.
type ShiftKind int

const (
	ShiftAbsent ShiftKind = iota
	ShiftScalar
	ShiftRange
)

// Shift is a tagged variant: no reported value, a single ppm value, or a
// reported {low, high} ppm range. The zero value is absent.
type Shift struct {
	Kind ShiftKind
	// Value is set for ShiftScalar.
	Value float64
	// Low and High are set for ShiftRange, Low <= High.
	Low  float64
	High float64
}

// ScalarShift returns a single-value shift.
func ScalarShift(v float64) Shift {
	return Shift{Kind: ShiftScalar, Value: v}
}

// RangeShift returns a range shift.
func RangeShift(low, high float64) Shift {
	if low > high {
		low, high = high, low
	}
	return Shift{Kind: ShiftRange, Low: low, High: high}
}

// Present reports whether the literature reports any value.
func (s Shift) Present() bool {
	return s.Kind != ShiftAbsent
}

// Within reports whether the stored shift falls inside the closed window
// [lo, hi]. A scalar matches by membership, a range by overlap; an absent
// shift never matches. This is the single hit test shared by the matcher
// and the per-cell predicate.
func (s Shift) Within(lo, hi float64) bool {
	switch s.Kind {
	case ShiftScalar:
		return s.Value >= lo && s.Value <= hi
	case ShiftRange:
		return s.High >= lo && s.Low <= hi
	}
	return false
}

// String renders the shift for display, two decimals, "" when absent.
func (s Shift) String() string {
	switch s.Kind {
	case ShiftScalar:
		return fmt.Sprintf("%.2f", s.Value)
	case ShiftRange:
		return fmt.Sprintf("%.2f - %.2f", s.Low, s.High)
	}
	return ""
}

// shiftRange mirrors the YAML mapping form of a range value.
type shiftRange struct {
	Low  float64 `yaml:"low"`
	High float64 `yaml:"high"`
}

// UnmarshalYAML decodes either a bare scalar ppm value or a {low, high}
// mapping into the variant.
func (s *Shift) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*s = Shift{}
			return nil
		}
		v, ok := numeric.ParseDecimal(node.Value)
		if !ok {
			return fmt.Errorf("residue: invalid shift value %q", node.Value)
		}
		*s = ScalarShift(v)
		return nil
	case yaml.MappingNode:
		var r shiftRange
		if err := node.Decode(&r); err != nil {
			return fmt.Errorf("residue: invalid shift range: %w", err)
		}
		*s = RangeShift(r.Low, r.High)
		return nil
	}
	return fmt.Errorf("residue: unsupported shift node kind %d", node.Kind)
}
