// Package residue holds the compiled-in reference dataset of proton NMR
// chemical shifts for common residual solvents and impurities, and the
// matcher that filters it. The dataset is decoded once at startup and is
// immutable for the lifetime of the process.
package residue

// Solvent identifies one of the deuterated solvent columns of the
// reference table.
type Solvent string

const (
	ChloroformD    Solvent = "chloroform_d"
	AcetoneD6      Solvent = "acetone_d6"
	DMSOD6         Solvent = "dmso_d6"
	BenzeneD6      Solvent = "benzene_d6"
	AcetonitrileD3 Solvent = "acetonitrile_d3"
	MethanolD4     Solvent = "methanol_d4"
	WaterD2        Solvent = "water_d2"
)

// Solvents returns the solvent columns in display order.
func Solvents() []Solvent {
	return []Solvent{
		ChloroformD,
		AcetoneD6,
		DMSOD6,
		BenzeneD6,
		AcetonitrileD3,
		MethanolD4,
		WaterD2,
	}
}

// Label returns the human-readable column header for the solvent.
func (s Solvent) Label() string {
	switch s {
	case ChloroformD:
		return "Chloroform d"
	case AcetoneD6:
		return "Acetone d6"
	case DMSOD6:
		return "DMSO d6"
	case BenzeneD6:
		return "Benzene d6"
	case AcetonitrileD3:
		return "Acetonitrile d3"
	case MethanolD4:
		return "Methanol d4"
	case WaterD2:
		return "Water d2"
	}
	return string(s)
}

// Valid reports whether s names a known solvent column.
func (s Solvent) Valid() bool {
	for _, known := range Solvents() {
		if s == known {
			return true
		}
	}
	return false
}

// Multiplicity is the splitting pattern label of a signal. Empty for the
// solvent-peak sentinel signal, which carries no proton descriptor.
type Multiplicity string

const (
	Singlet   Multiplicity = "s"
	Doublet   Multiplicity = "d"
	Triplet   Multiplicity = "t"
	Quartet   Multiplicity = "q"
	Multiplet Multiplicity = "m"
)

// Multiplicities returns the multiplicity filter choices in display order.
func Multiplicities() []Multiplicity {
	return []Multiplicity{Singlet, Doublet, Triplet, Quartet, Multiplet}
}

// Signal is one distinguishable resonance of a compound: a proton group
// descriptor plus a chemical shift per solvent.
type Signal struct {
	Formula      string            `yaml:"formula"`
	Multiplicity Multiplicity      `yaml:"multiplicity"`
	Protons      int               `yaml:"protons"`
	Shifts       map[Solvent]Shift `yaml:"shifts"`
}

// ShiftIn returns the stored shift for the solvent column. The zero Shift
// (absent) is returned when the literature reports no value.
func (s Signal) ShiftIn(solvent Solvent) Shift {
	return s.Shifts[solvent]
}

// Compound is one row of the reference dataset.
type Compound struct {
	ID             string   `yaml:"-"`
	Name           string   `yaml:"name"`
	AlternateNames string   `yaml:"aliases"`
	MolarMass      float64  `yaml:"molar_mass"`
	Signals        []Signal `yaml:"signals"`
}

// Selectable reports whether the compound may be added to the residue
// ledger. The "Solvent peaks" sentinel carries no molar mass and is
// displayed only.
func (c Compound) Selectable() bool {
	return c.MolarMass > 0
}
