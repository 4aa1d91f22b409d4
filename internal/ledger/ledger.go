// Package ledger maintains the working list of residues for the product
// being characterized and computes molar and weight purities from
// user-entered integrals. All operations are synchronous and leave the
// ledger fully recomputed; the state is session-scoped and never
// persisted.
package ledger

import (
	"math"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"nmrbench/internal/numeric"
	"nmrbench/internal/residue"
)

// Amount is a user-editable numeric field kept as the raw text the user
// typed, so in-progress input ("" or a trailing ".") is preserved across
// renders. The derived value is undefined, never zero, for such input.
type Amount string

// Value parses the field. The second return is false while the field is
// empty or mid-edit.
func (a Amount) Value() (float64, bool) {
	return numeric.ParseDecimal(string(a))
}

func amountFromFloat(v float64) Amount {
	return Amount(strconv.FormatFloat(v, 'f', -1, 64))
}

// Purity holds computed molar and weight percentages. Undefined figures
// are NaN and render as "-".
type Purity struct {
	Mol float64
	Wt  float64
}

// Defined reports whether the purity was computable.
func (p Purity) Defined() bool {
	return !math.IsNaN(p.Mol) && !math.IsNaN(p.Wt)
}

func undefinedPurity() Purity {
	return Purity{Mol: math.NaN(), Wt: math.NaN()}
}

// Entry is one residue row of the calculator.
type Entry struct {
	ID string
	// ReferenceID points at the reference compound the row was selected
	// from; empty for an unknown residue.
	ReferenceID string
	MolarMass   Amount
	Protons     Amount
	Integral    Amount
	Purity      Purity
}

// protonRatio returns integral divided by proton count, or NaN while
// either field is undefined or the proton count is below one. The NaN
// deliberately poisons the totals so every purity renders as "-" until
// the row is fixed.
func (e Entry) protonRatio() float64 {
	x, ok := e.Integral.Value()
	if !ok {
		return math.NaN()
	}
	p, ok := numeric.ParseInt(string(e.Protons))
	if !ok || p < 1 {
		return math.NaN()
	}
	return x / float64(p)
}

// Product is the compound whose purity is being determined.
type Product struct {
	MolarMass Amount
	Purity    Purity
}

// EntryField names the editable numeric fields of an entry.
type EntryField int

const (
	FieldMolarMass EntryField = iota
	FieldProtons
	FieldIntegral
)

// Ledger owns the product state and the residue entries. It is not safe
// for concurrent use; the single event loop of the presentation layer is
// its only caller.
type Ledger struct {
	log     *zap.Logger
	product Product
	entries []Entry
}

// New returns an empty ledger. A nil logger disables logging.
func New(log *zap.Logger) *Ledger {
	if log == nil {
		log = zap.NewNop()
	}
	l := &Ledger{
		log:     log,
		product: Product{MolarMass: ""},
	}
	l.recompute()
	return l
}

// Product returns the current product state.
func (l *Ledger) Product() Product {
	return l.product
}

// Entries returns a snapshot of the residue rows in display order.
func (l *Ledger) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Entry returns the row with the given ID.
func (l *Ledger) Entry(id string) (Entry, bool) {
	if i := l.index(id); i >= 0 {
		return l.entries[i], true
	}
	return Entry{}, false
}

// SetProductMolarMass replaces the product molar mass from raw keystroke
// text. Invalid text is rejected and the prior value kept; the return
// value reports acceptance.
func (l *Ledger) SetProductMolarMass(raw string) bool {
	s, ok := numeric.NormalizeDecimal(raw)
	if !ok {
		return false
	}
	l.product.MolarMass = Amount(s)
	l.recompute()
	return true
}

// AddEntry appends a blank "unknown residue" row: no reference compound,
// molar mass 0, one proton, integral 0.
func (l *Ledger) AddEntry() Entry {
	e := Entry{
		ID:        uuid.NewString(),
		MolarMass: "0",
		Protons:   "1",
		Integral:  "0",
	}
	l.entries = append(l.entries, e)
	l.recompute()
	l.log.Debug("ledger: entry added", zap.String("entry_id", e.ID))
	return l.entries[len(l.entries)-1]
}

// AddCompound appends a row pre-populated from a reference compound and
// one of its signals. Callers resolve which signal to use before calling;
// multi-signal disambiguation is a presentation concern.
func (l *Ledger) AddCompound(c residue.Compound, sig residue.Signal) Entry {
	e := Entry{
		ID:          uuid.NewString(),
		ReferenceID: c.ID,
		MolarMass:   amountFromFloat(c.MolarMass),
		Protons:     Amount(strconv.Itoa(sig.Protons)),
		Integral:    "0",
	}
	l.entries = append(l.entries, e)
	l.recompute()
	l.log.Debug("ledger: compound added",
		zap.String("entry_id", e.ID),
		zap.String("compound", c.Name))
	return l.entries[len(l.entries)-1]
}

// UpdateEntry sets one numeric field on a row from raw keystroke text.
// Rejected text keeps the prior value. An unknown ID is a caller bug and
// is logged as a no-op rather than corrupting other rows.
func (l *Ledger) UpdateEntry(id string, field EntryField, raw string) bool {
	i := l.index(id)
	if i < 0 {
		l.log.Warn("ledger: update for unknown entry", zap.String("entry_id", id))
		return false
	}

	var s string
	var ok bool
	if field == FieldProtons {
		s, ok = numeric.NormalizeInteger(raw)
	} else {
		s, ok = numeric.NormalizeDecimal(raw)
	}
	if !ok {
		return false
	}

	switch field {
	case FieldMolarMass:
		l.entries[i].MolarMass = Amount(s)
	case FieldProtons:
		l.entries[i].Protons = Amount(s)
	case FieldIntegral:
		l.entries[i].Integral = Amount(s)
	}
	l.recompute()
	return true
}

// SelectCompound overwrites a row's reference compound, molar mass and
// proton count from the chosen compound's first signal, or resets the row
// to the unknown-residue defaults when c is nil.
func (l *Ledger) SelectCompound(id string, c *residue.Compound) bool {
	i := l.index(id)
	if i < 0 {
		l.log.Warn("ledger: select for unknown entry", zap.String("entry_id", id))
		return false
	}
	if c == nil {
		l.entries[i].ReferenceID = ""
		l.entries[i].MolarMass = "0"
		l.entries[i].Protons = "1"
	} else {
		l.entries[i].ReferenceID = c.ID
		l.entries[i].MolarMass = amountFromFloat(c.MolarMass)
		l.entries[i].Protons = Amount(strconv.Itoa(c.Signals[0].Protons))
	}
	l.recompute()
	return true
}

// DeleteEntry removes a row.
func (l *Ledger) DeleteEntry(id string) bool {
	i := l.index(id)
	if i < 0 {
		l.log.Warn("ledger: delete for unknown entry", zap.String("entry_id", id))
		return false
	}
	l.entries = append(l.entries[:i], l.entries[i+1:]...)
	l.recompute()
	return true
}

func (l *Ledger) index(id string) int {
	for i := range l.entries {
		if l.entries[i].ID == id {
			return i
		}
	}
	return -1
}

// recompute derives every purity figure from the current inputs.
//
// With product molar mass M and entries (w_i, p_i, x_i):
//
//	totalIntegral   = 1 + sum(x_i / p_i)   (the 1 is the product's own
//	                                        normalized integral unit)
//	totalMassPerMole = M + sum((x_i / p_i) * w_i)
//
// Product purity is (1/totalIntegral)*100 mol% and
// (M/totalMassPerMole)*100 wt%; each entry takes its proportional share.
// A missing or zero M is checked up front: every figure becomes
// undefined, not zero. totalMassPerMole would still divide "validly"
// when entries contribute mass, so this cannot be left to fall out of
// the arithmetic.
func (l *Ledger) recompute() {
	m, ok := l.product.MolarMass.Value()
	if !ok || m == 0 {
		l.product.Purity = undefinedPurity()
		for i := range l.entries {
			l.entries[i].Purity = undefinedPurity()
		}
		return
	}

	totalIntegral := 1.0
	totalMass := m
	ratios := make([]float64, len(l.entries))
	masses := make([]float64, len(l.entries))
	for i := range l.entries {
		ratio := l.entries[i].protonRatio()
		w, wok := l.entries[i].MolarMass.Value()
		if !wok {
			w = math.NaN()
		}
		ratios[i] = ratio
		masses[i] = w
		totalIntegral += ratio
		totalMass += ratio * w
	}

	l.product.Purity = Purity{
		Mol: 1 / totalIntegral * 100,
		Wt:  m / totalMass * 100,
	}
	for i := range l.entries {
		l.entries[i].Purity = Purity{
			Mol: ratios[i] / totalIntegral * 100,
			Wt:  ratios[i] * masses[i] / totalMass * 100,
		}
	}
}
