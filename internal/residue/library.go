package residue

import (
	_ "embed"
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

//go:embed data/residues.yaml
var datasetYAML []byte

// Library is the immutable in-memory reference dataset. It is decoded
// once at startup; no writer exists afterwards, so it is shared freely.
type Library struct {
	sources   []string
	compounds []Compound
	byID      map[string]int
}

type datasetFile struct {
	Sources   []string   `yaml:"sources"`
	Compounds []Compound `yaml:"compounds"`
}

// Load decodes the embedded dataset and assigns session-stable IDs.
func Load() (*Library, error) {
	var file datasetFile
	if err := yaml.Unmarshal(datasetYAML, &file); err != nil {
		return nil, fmt.Errorf("residue: decode dataset: %w", err)
	}
	if len(file.Compounds) == 0 {
		return nil, fmt.Errorf("residue: dataset is empty")
	}
	if file.Compounds[0].Selectable() {
		return nil, fmt.Errorf("residue: first dataset row must be the solvent-peak sentinel")
	}

	lib := &Library{
		sources:   file.Sources,
		compounds: file.Compounds,
		byID:      make(map[string]int, len(file.Compounds)),
	}
	for i := range lib.compounds {
		lib.compounds[i].ID = uuid.NewString()
		lib.byID[lib.compounds[i].ID] = i
	}
	return lib, nil
}

// Sources returns the literature references for the dataset values.
func (l *Library) Sources() []string {
	return l.sources
}

// Compounds returns every dataset row in display order, sentinel first.
// The returned slice is read-only.
func (l *Library) Compounds() []Compound {
	return l.compounds
}

// Sentinel returns the pinned "Solvent peaks" row.
func (l *Library) Sentinel() Compound {
	return l.compounds[0]
}

// Selectable returns the rows that may be added to the ledger, i.e.
// everything but the sentinel.
func (l *Library) Selectable() []Compound {
	return l.compounds[1:]
}

// ByID looks a compound up by its session ID.
func (l *Library) ByID(id string) (Compound, bool) {
	i, ok := l.byID[id]
	if !ok {
		return Compound{}, false
	}
	return l.compounds[i], true
}
