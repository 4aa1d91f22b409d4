package residue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	lib, err := Load()
	require.NoError(t, err)

	compounds := lib.Compounds()
	require.NotEmpty(t, compounds)

	t.Run("sentinel row", func(t *testing.T) {
		sentinel := lib.Sentinel()
		assert.Equal(t, "Solvent peaks", sentinel.Name)
		assert.False(t, sentinel.Selectable())
		require.Len(t, sentinel.Signals, 1)
		sig := sentinel.Signals[0]
		assert.Empty(t, sig.Formula)
		assert.Empty(t, sig.Multiplicity)
		assert.Zero(t, sig.Protons)
		for _, solvent := range Solvents() {
			assert.True(t, sig.ShiftIn(solvent).Present(), "sentinel shift missing for %s", solvent)
		}
	})

	t.Run("unique ids", func(t *testing.T) {
		seen := make(map[string]bool)
		for _, c := range compounds {
			require.NotEmpty(t, c.ID)
			assert.False(t, seen[c.ID], "duplicate id on %s", c.Name)
			seen[c.ID] = true
		}
	})

	t.Run("lookup by id", func(t *testing.T) {
		for _, c := range compounds {
			got, ok := lib.ByID(c.ID)
			require.True(t, ok)
			assert.Equal(t, c.Name, got.Name)
		}
		_, ok := lib.ByID("no-such-id")
		assert.False(t, ok)
	})

	t.Run("selectable excludes sentinel", func(t *testing.T) {
		assert.Len(t, lib.Selectable(), len(compounds)-1)
		for _, c := range lib.Selectable() {
			assert.True(t, c.Selectable(), "%s has no molar mass", c.Name)
			assert.NotEmpty(t, c.Signals, "%s has no signals", c.Name)
			for _, sig := range c.Signals {
				assert.GreaterOrEqual(t, sig.Protons, 1, "%s signal %s", c.Name, sig.Formula)
			}
		}
	})

	t.Run("sources present", func(t *testing.T) {
		assert.NotEmpty(t, lib.Sources())
	})
}

func TestLoadValues(t *testing.T) {
	lib, err := Load()
	require.NoError(t, err)

	byName := make(map[string]Compound)
	for _, c := range lib.Compounds() {
		byName[c.Name] = c
	}

	acetone, ok := byName["Acetone"]
	require.True(t, ok)
	assert.InDelta(t, 58.08, acetone.MolarMass, 1e-9)
	require.Len(t, acetone.Signals, 1)
	assert.Equal(t, ScalarShift(2.09), acetone.Signals[0].ShiftIn(AcetoneD6))

	toluene, ok := byName["Toluene"]
	require.True(t, ok)
	require.Len(t, toluene.Signals, 3)
	assert.Equal(t, RangeShift(7.10, 7.20), toluene.Signals[1].ShiftIn(AcetoneD6))
	assert.Equal(t, RangeShift(7.10, 7.30), toluene.Signals[2].ShiftIn(AcetonitrileD3))

	water, ok := byName["Water"]
	require.True(t, ok)
	assert.False(t, water.Signals[0].ShiftIn(WaterD2).Present())
}
