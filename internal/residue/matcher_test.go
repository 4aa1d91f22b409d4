package residue

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func names(compounds []Compound) []string {
	out := make([]string, len(compounds))
	for i, c := range compounds {
		out[i] = c.Name
	}
	return out
}

func TestMatchNoFilter(t *testing.T) {
	lib, err := Load()
	require.NoError(t, err)

	got := lib.Match(Filter{Solvent: ChloroformD})
	if diff := cmp.Diff(names(lib.Compounds()), names(got)); diff != "" {
		t.Errorf("unfiltered result mismatch (-want +got):\n%s", diff)
	}
}

func TestMatchByName(t *testing.T) {
	lib, err := Load()
	require.NoError(t, err)

	got := lib.Match(Filter{Name: "acet", Solvent: ChloroformD})
	want := []string{"Solvent peaks", "Acetic acid", "Acetone", "Acetonitrile", "Ethyl acetate"}
	if diff := cmp.Diff(want, names(got)); diff != "" {
		t.Errorf("name match mismatch (-want +got):\n%s", diff)
	}

	// Alternate names are searched too.
	got = lib.Match(Filter{Name: "mtbe", Solvent: ChloroformD})
	want = []string{"Solvent peaks", "tert-Butyl methyl ether"}
	if diff := cmp.Diff(want, names(got)); diff != "" {
		t.Errorf("alternate-name match mismatch (-want +got):\n%s", diff)
	}
}

// A present name filter wins outright; the shift fields are ignored even
// when they would exclude everything.
func TestMatchNamePrecedence(t *testing.T) {
	lib, err := Load()
	require.NoError(t, err)

	got := lib.Match(Filter{
		Name:      "acetone",
		Shift:     "99",
		Deviation: "0",
		Solvent:   AcetoneD6,
	})
	want := []string{"Solvent peaks", "Acetone"}
	if diff := cmp.Diff(want, names(got)); diff != "" {
		t.Errorf("precedence mismatch (-want +got):\n%s", diff)
	}
}

func TestMatchByShift(t *testing.T) {
	lib, err := Load()
	require.NoError(t, err)

	got := lib.Match(Filter{Shift: "2.09", Deviation: "0.05", Solvent: AcetoneD6})
	gotNames := names(got)

	require.Equal(t, "Solvent peaks", gotNames[0], "sentinel must stay pinned first")
	require.Contains(t, gotNames, "Acetone", "acetone has a 2.09 signal in acetone d6")
	require.NotContains(t, gotNames, "Benzene", "no benzene signal in [2.04, 2.14]")
	require.NotContains(t, gotNames, "Water")

	// Only the active solvent column is consulted: water sits at 1.56 in
	// chloroform d but 2.13 in acetonitrile d3.
	got = lib.Match(Filter{Shift: "2.13", Deviation: "0.01", Solvent: AcetonitrileD3})
	require.Contains(t, names(got), "Water")
	got = lib.Match(Filter{Shift: "2.13", Deviation: "0.01", Solvent: ChloroformD})
	require.NotContains(t, names(got), "Water")
}

func TestMatchRangeOverlap(t *testing.T) {
	lib, err := Load()
	require.NoError(t, err)

	// Toluene aromatics are stored as 7.10-7.20 in acetone d6. A window
	// of 7.0 +/- 0.05 stops short of the range; 7.05 +/- 0.1 reaches it.
	got := lib.Match(Filter{Shift: "7.0", Deviation: "0.05", Solvent: AcetoneD6})
	require.NotContains(t, names(got), "Toluene")

	got = lib.Match(Filter{Shift: "7.05", Deviation: "0.1", Solvent: AcetoneD6})
	require.Contains(t, names(got), "Toluene")
}

func TestMatchMultiplicity(t *testing.T) {
	lib, err := Load()
	require.NoError(t, err)

	// Triethylamine's 2.45 signal in acetone d6 is a quartet.
	f := Filter{Shift: "2.45", Deviation: "0.05", Solvent: AcetoneD6}

	f.Multiplicity = Quartet
	require.Contains(t, names(lib.Match(f)), "Triethylamine")

	f.Multiplicity = Triplet
	require.NotContains(t, names(lib.Match(f)), "Triethylamine")
}

// Unparseable shift text means "no filter", never "no matches".
func TestMatchUnparseableShift(t *testing.T) {
	lib, err := Load()
	require.NoError(t, err)

	for _, raw := range []string{".", "", "7..2"} {
		got := lib.Match(Filter{Shift: raw, Solvent: ChloroformD})
		if diff := cmp.Diff(names(lib.Compounds()), names(got)); diff != "" {
			t.Errorf("shift %q: expected full list (-want +got):\n%s", raw, diff)
		}
	}
}

// The sentinel row is pinned first even when nothing matches at all.
func TestMatchSentinelAlwaysFirst(t *testing.T) {
	lib, err := Load()
	require.NoError(t, err)

	got := lib.Match(Filter{Shift: "99", Deviation: "0", Solvent: ChloroformD})
	require.Len(t, got, 1)
	require.Equal(t, "Solvent peaks", got[0].Name)

	got = lib.Match(Filter{Name: "zzz-no-such-residue", Solvent: ChloroformD})
	require.Len(t, got, 1)
	require.Equal(t, "Solvent peaks", got[0].Name)
}

func TestHitPredicate(t *testing.T) {
	lib, err := Load()
	require.NoError(t, err)

	var toluene Compound
	for _, c := range lib.Compounds() {
		if c.Name == "Toluene" {
			toluene = c
		}
	}
	require.NotEmpty(t, toluene.ID)

	f := Filter{Shift: "7.15", Deviation: "0.05", Solvent: AcetoneD6}
	require.False(t, f.Hit(toluene.Signals[0]), "methyl singlet at 2.32 is no hit")
	require.True(t, f.Hit(toluene.Signals[1]), "aromatic range 7.10-7.20 overlaps")

	// In name mode no cell is flagged.
	f.Name = "toluene"
	require.False(t, f.Hit(toluene.Signals[1]))
}

func TestFilterActive(t *testing.T) {
	require.False(t, Filter{Solvent: ChloroformD}.Active())
	require.True(t, Filter{Name: "x"}.Active())
	require.True(t, Filter{Shift: "1"}.Active())
	require.True(t, Filter{Deviation: "0.1"}.Active())
	require.True(t, Filter{Multiplicity: Singlet}.Active())
}
