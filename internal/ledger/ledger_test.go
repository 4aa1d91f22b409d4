package ledger

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nmrbench/internal/residue"
)

func aceticAcid() residue.Compound {
	return residue.Compound{
		ID:        "ref-acetic-acid",
		Name:      "Acetic acid",
		MolarMass: 60.052,
		Signals: []residue.Signal{{
			Formula:      "CH3",
			Multiplicity: residue.Singlet,
			Protons:      3,
			Shifts: map[residue.Solvent]residue.Shift{
				residue.ChloroformD: residue.ScalarShift(2.10),
			},
		}},
	}
}

func TestProductPurityWithSingleResidue(t *testing.T) {
	l := New(nil)
	require.True(t, l.SetProductMolarMass("200"))

	c := aceticAcid()
	e := l.AddCompound(c, c.Signals[0])
	require.True(t, l.UpdateEntry(e.ID, FieldIntegral, "3"))

	// totalIntegral = 1 + 3/3 = 2, totalMass = 200 + 60.052.
	product := l.Product()
	assert.InDelta(t, 50.00, product.Purity.Mol, 0.005)
	assert.InDelta(t, 76.91, product.Purity.Wt, 0.005)

	entry, ok := l.Entry(e.ID)
	require.True(t, ok)
	assert.InDelta(t, 50.00, entry.Purity.Mol, 0.005)
	assert.InDelta(t, 23.09, entry.Purity.Wt, 0.005)
}

// Product and entry mol percentages always total 100 while the product
// molar mass is valid and nonzero.
func TestMolPercentagesSumToHundred(t *testing.T) {
	l := New(nil)
	require.True(t, l.SetProductMolarMass("181.5"))

	specs := []struct{ mw, protons, integral string }{
		{"60.052", "3", "3"},
		{"18.015", "2", "0.37"},
		{"92.141", "3", "1.2"},
		{"78.13", "6", "0"},
	}
	for _, s := range specs {
		e := l.AddEntry()
		require.True(t, l.UpdateEntry(e.ID, FieldMolarMass, s.mw))
		require.True(t, l.UpdateEntry(e.ID, FieldProtons, s.protons))
		require.True(t, l.UpdateEntry(e.ID, FieldIntegral, s.integral))
	}

	sumMol := l.Product().Purity.Mol
	sumWt := l.Product().Purity.Wt
	for _, e := range l.Entries() {
		sumMol += e.Purity.Mol
		sumWt += e.Purity.Wt
	}
	assert.InDelta(t, 100.0, sumMol, 1e-9)
	assert.InDelta(t, 100.0, sumWt, 1e-9)
}

// A zero, empty or unparseable product molar mass makes every figure
// undefined, regardless of entry contents.
func TestUndefinedWithoutProductMolarMass(t *testing.T) {
	for _, raw := range []string{"0", "", "."} {
		l := New(nil)
		l.SetProductMolarMass(raw)

		e := l.AddEntry()
		require.True(t, l.UpdateEntry(e.ID, FieldMolarMass, "60.052"))
		require.True(t, l.UpdateEntry(e.ID, FieldIntegral, "3"))
		require.True(t, l.UpdateEntry(e.ID, FieldProtons, "3"))

		product := l.Product()
		assert.False(t, product.Purity.Defined(), "product mol mass %q", raw)
		for _, entry := range l.Entries() {
			assert.False(t, entry.Purity.Defined(), "product mol mass %q", raw)
		}
	}
}

// A zero integral yields 0%, never an undefined figure: only the product
// molar mass triggers the undefined state.
func TestZeroIntegralIsZeroPercent(t *testing.T) {
	l := New(nil)
	require.True(t, l.SetProductMolarMass("100"))

	e := l.AddEntry()
	require.True(t, l.UpdateEntry(e.ID, FieldMolarMass, "50"))

	entry, ok := l.Entry(e.ID)
	require.True(t, ok)
	assert.Equal(t, 0.0, entry.Purity.Mol)
	assert.Equal(t, 0.0, entry.Purity.Wt)
	assert.InDelta(t, 100.0, l.Product().Purity.Mol, 1e-9)
	assert.InDelta(t, 100.0, l.Product().Purity.Wt, 1e-9)
}

func TestSelectCompoundRoundTrip(t *testing.T) {
	l := New(nil)
	l.SetProductMolarMass("200")
	e := l.AddEntry()

	c := aceticAcid()
	require.True(t, l.SelectCompound(e.ID, &c))

	entry, ok := l.Entry(e.ID)
	require.True(t, ok)
	assert.Equal(t, c.ID, entry.ReferenceID)
	mw, defined := entry.MolarMass.Value()
	require.True(t, defined)
	assert.Equal(t, c.MolarMass, mw)
	assert.Equal(t, Amount("3"), entry.Protons)

	// Clearing the selection resets to the unknown-residue defaults.
	require.True(t, l.SelectCompound(e.ID, nil))
	entry, _ = l.Entry(e.ID)
	assert.Empty(t, entry.ReferenceID)
	assert.Equal(t, Amount("0"), entry.MolarMass)
	assert.Equal(t, Amount("1"), entry.Protons)
}

func TestUpdateRejectsInvalidInput(t *testing.T) {
	l := New(nil)
	l.SetProductMolarMass("100")
	e := l.AddEntry()
	require.True(t, l.UpdateEntry(e.ID, FieldIntegral, "2.5"))

	// Rejected keystrokes leave the prior value untouched.
	assert.False(t, l.UpdateEntry(e.ID, FieldIntegral, "2.5x"))
	assert.False(t, l.UpdateEntry(e.ID, FieldIntegral, "2.5.1"))
	assert.False(t, l.UpdateEntry(e.ID, FieldProtons, "1.5"))
	entry, _ := l.Entry(e.ID)
	assert.Equal(t, Amount("2.5"), entry.Integral)
	assert.Equal(t, Amount("1"), entry.Protons)

	// Decimal commas are normalized before validation.
	require.True(t, l.UpdateEntry(e.ID, FieldIntegral, "2,75"))
	entry, _ = l.Entry(e.ID)
	assert.Equal(t, Amount("2.75"), entry.Integral)

	assert.False(t, l.SetProductMolarMass("abc"))
	mw, _ := l.Product().MolarMass.Value()
	assert.Equal(t, 100.0, mw)
}

// An entry mid-edit (empty integral) poisons every figure to "-" rather
// than silently computing with zero.
func TestInProgressEntryUndefines(t *testing.T) {
	l := New(nil)
	l.SetProductMolarMass("100")
	e := l.AddEntry()
	require.True(t, l.UpdateEntry(e.ID, FieldIntegral, ""))

	assert.False(t, l.Product().Purity.Defined())
	entry, _ := l.Entry(e.ID)
	assert.True(t, math.IsNaN(entry.Purity.Mol))
}

func TestUnknownEntryIsNoOp(t *testing.T) {
	l := New(nil)
	l.SetProductMolarMass("100")
	e := l.AddEntry()
	require.True(t, l.UpdateEntry(e.ID, FieldIntegral, "1"))
	before := l.Entries()

	assert.False(t, l.UpdateEntry("missing", FieldIntegral, "9"))
	assert.False(t, l.DeleteEntry("missing"))
	assert.False(t, l.SelectCompound("missing", nil))
	assert.Equal(t, before, l.Entries())
}

func TestDeleteEntryRecomputes(t *testing.T) {
	l := New(nil)
	l.SetProductMolarMass("200")

	c := aceticAcid()
	e := l.AddCompound(c, c.Signals[0])
	require.True(t, l.UpdateEntry(e.ID, FieldIntegral, "3"))
	assert.InDelta(t, 50.0, l.Product().Purity.Mol, 1e-9)

	require.True(t, l.DeleteEntry(e.ID))
	assert.Empty(t, l.Entries())
	assert.InDelta(t, 100.0, l.Product().Purity.Mol, 1e-9)
}

func TestAddEntryDefaults(t *testing.T) {
	l := New(nil)
	e := l.AddEntry()
	assert.Empty(t, e.ReferenceID)
	assert.Equal(t, Amount("0"), e.MolarMass)
	assert.Equal(t, Amount("1"), e.Protons)
	assert.Equal(t, Amount("0"), e.Integral)
}
