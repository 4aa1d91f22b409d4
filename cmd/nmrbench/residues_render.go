package main

import (
	"strings"

	"nmrbench/cmd/nmrbench/ui"
	"nmrbench/internal/residue"
)

// renderResidueTable renders filtered dataset rows with one line per
// signal in the stacked columns. Shift cells that caused the row to
// match are highlighted; the cursor row, when given, is marked.
func renderResidueTable(compounds []residue.Compound, f residue.Filter, styles ui.Styles, cursor *int) string {
	headers := []string{"", "Residue", "Proton", "Mult."}
	for _, s := range residue.Solvents() {
		label := s.Label()
		if s == f.Solvent {
			label = "* " + label
		}
		headers = append(headers, label)
	}

	table := ui.NewTable("", headers)
	for i, c := range compounds {
		marker := " "
		name := c.Name
		if cursor != nil && *cursor == i {
			marker = ">"
			name = styles.Selected.Render(name)
		}

		formulas := make([]string, 0, len(c.Signals))
		mults := make([]string, 0, len(c.Signals))
		for _, sig := range c.Signals {
			formulas = append(formulas, sig.Formula)
			mults = append(mults, string(sig.Multiplicity))
		}

		row := []string{
			marker,
			name,
			strings.Join(formulas, "\n"),
			strings.Join(mults, "\n"),
		}
		for _, solvent := range residue.Solvents() {
			lines := make([]string, 0, len(c.Signals))
			for _, sig := range c.Signals {
				text := sig.ShiftIn(solvent).String()
				if text != "" && f.HitIn(sig, solvent) {
					text = styles.Highlight.Render(text)
				}
				lines = append(lines, text)
			}
			row = append(row, strings.Join(lines, "\n"))
		}
		table.AddRow(row...)
	}
	return table.View(styles)
}
