package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"nmrbench/cmd/nmrbench/ui"
	"nmrbench/internal/ledger"
	"nmrbench/internal/numeric"
	"nmrbench/internal/residue"
)

// Editable columns of a calculator row.
const (
	calcColName = iota
	calcColMolWeight
	calcColProtons
	calcColIntegral
	calcColCount
)

// calcModel drives the residue calculator page. The ledger is the only
// source of truth; this model holds focus and in-flight input state.
type calcModel struct {
	lib    *residue.Library
	ledger *ledger.Ledger
	styles ui.Styles

	// Focus: row -1 is the product molecular weight field, rows 0..n-1
	// are ledger entries.
	row int
	col int

	input textinput.Model

	// Compound picker overlay for the residue column.
	pickerOpen   bool
	pickerQuery  textinput.Model
	pickerCursor int

	status string
}

func newCalcModel(lib *residue.Library, led *ledger.Ledger, styles ui.Styles) calcModel {
	input := textinput.New()
	input.CharLimit = 10
	input.Width = 12
	input.Focus()

	query := textinput.New()
	query.Placeholder = "Select residue"
	query.CharLimit = 40
	query.Width = 30

	m := calcModel{
		lib:         lib,
		ledger:      led,
		styles:      styles,
		row:         -1,
		col:         calcColMolWeight,
		input:       input,
		pickerQuery: query,
	}
	m.syncInput()
	return m
}

func (m *calcModel) setStyles(styles ui.Styles) {
	m.styles = styles
}

// currentRaw returns the ledger's raw text for the focused cell.
func (m calcModel) currentRaw() string {
	if m.row < 0 {
		return string(m.ledger.Product().MolarMass)
	}
	entries := m.ledger.Entries()
	if m.row >= len(entries) {
		return ""
	}
	e := entries[m.row]
	switch m.col {
	case calcColMolWeight:
		return string(e.MolarMass)
	case calcColProtons:
		return string(e.Protons)
	case calcColIntegral:
		return string(e.Integral)
	}
	return ""
}

func (m *calcModel) syncInput() {
	m.input.SetValue(m.currentRaw())
	m.input.CursorEnd()
}

// commit pushes the in-flight input text into the ledger. Rejected text
// reverts the input to the last accepted value.
func (m *calcModel) commit() {
	raw := m.input.Value()
	accepted := false
	if m.row < 0 {
		accepted = m.ledger.SetProductMolarMass(raw)
	} else {
		entries := m.ledger.Entries()
		if m.row < len(entries) {
			id := entries[m.row].ID
			switch m.col {
			case calcColMolWeight:
				accepted = m.ledger.UpdateEntry(id, ledger.FieldMolarMass, raw)
			case calcColProtons:
				accepted = m.ledger.UpdateEntry(id, ledger.FieldProtons, raw)
			case calcColIntegral:
				accepted = m.ledger.UpdateEntry(id, ledger.FieldIntegral, raw)
			}
		}
	}
	if !accepted {
		m.syncInput()
	} else {
		// Normalization may have rewritten the text (decimal comma).
		m.input.SetValue(m.currentRaw())
		m.input.CursorEnd()
	}
}

func (m calcModel) Update(msg tea.Msg) (calcModel, tea.Cmd) {
	key, isKey := msg.(tea.KeyMsg)
	if !isKey {
		return m, nil
	}

	if m.pickerOpen {
		return m.updatePicker(key)
	}

	m.status = ""
	entries := m.ledger.Entries()

	switch key.String() {
	case "up":
		if m.row > -1 {
			m.row--
			if m.row < 0 {
				m.col = calcColMolWeight
			}
			m.syncInput()
		}
		return m, nil
	case "down":
		if m.row < len(entries)-1 {
			m.row++
			m.syncInput()
		}
		return m, nil
	case "tab":
		if m.row >= 0 {
			m.col = (m.col + 1) % calcColCount
			m.syncInput()
		}
		return m, nil
	case "shift+tab":
		if m.row >= 0 {
			m.col = (m.col + calcColCount - 1) % calcColCount
			m.syncInput()
		}
		return m, nil
	case "ctrl+a":
		m.ledger.AddEntry()
		m.row = len(entries) // the new last row
		m.col = calcColName
		m.syncInput()
		m.status = "Added a residue row."
		return m, nil
	case "ctrl+d":
		if m.row >= 0 && m.row < len(entries) {
			m.ledger.DeleteEntry(entries[m.row].ID)
			if m.row >= len(entries)-1 {
				m.row--
			}
			m.syncInput()
			m.status = "Deleted the residue row."
		}
		return m, nil
	case "enter":
		if m.row >= 0 && m.col == calcColName {
			m.pickerOpen = true
			m.pickerQuery.SetValue("")
			m.pickerQuery.Focus()
			m.pickerCursor = 0
		}
		return m, nil
	case "ctrl+x":
		if m.row >= 0 && m.row < len(entries) && m.col == calcColName {
			m.ledger.SelectCompound(entries[m.row].ID, nil)
			m.status = "Cleared the residue selection."
		}
		return m, nil
	}

	// Anything else edits the focused numeric cell.
	if m.row >= 0 && m.col == calcColName {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	m.commit()
	return m, cmd
}

// pickerMatches filters the selectable compounds by the query, matching
// names and alternate names like the reference-table name filter.
func (m calcModel) pickerMatches() []residue.Compound {
	query := strings.ToLower(m.pickerQuery.Value())
	if query == "" {
		return m.lib.Selectable()
	}
	var out []residue.Compound
	for _, c := range m.lib.Selectable() {
		if strings.Contains(strings.ToLower(c.Name+" "+c.AlternateNames), query) {
			out = append(out, c)
		}
	}
	return out
}

func (m calcModel) updatePicker(key tea.KeyMsg) (calcModel, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.pickerOpen = false
		return m, nil
	case "up":
		if m.pickerCursor > 0 {
			m.pickerCursor--
		}
		return m, nil
	case "down":
		if m.pickerCursor < len(m.pickerMatches())-1 {
			m.pickerCursor++
		}
		return m, nil
	case "enter":
		matches := m.pickerMatches()
		entries := m.ledger.Entries()
		if m.pickerCursor < len(matches) && m.row >= 0 && m.row < len(entries) {
			c := matches[m.pickerCursor]
			m.ledger.SelectCompound(entries[m.row].ID, &c)
			m.status = fmt.Sprintf("Selected %s.", c.Name)
		}
		m.pickerOpen = false
		m.syncInput()
		return m, nil
	}

	var cmd tea.Cmd
	m.pickerQuery, cmd = m.pickerQuery.Update(key)
	m.pickerCursor = 0
	return m, cmd
}

// compoundName resolves an entry's reference compound display name.
func (m calcModel) compoundName(e ledger.Entry) string {
	if e.ReferenceID == "" {
		return ""
	}
	if c, ok := m.lib.ByID(e.ReferenceID); ok {
		return c.Name
	}
	return ""
}

func (m calcModel) View() string {
	if m.pickerOpen {
		return m.pickerView()
	}

	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("NMR residue calculator"))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render(
		"Fill in the molecular weight of your product and add residues to calculate purity.\n" +
			"Make sure the number of protons corresponds with the signal whose integral you use."))
	sb.WriteString("\n\n")

	product := m.ledger.Product()
	productField := string(product.MolarMass)
	if m.row < 0 {
		productField = m.input.View()
	}
	sb.WriteString(fmt.Sprintf("%s %s   %s %s mol%%  %s wt%%\n\n",
		m.styles.Label.Render("Molecular weight (g/mol):"),
		productField,
		m.styles.Label.Render("Purity:"),
		m.styles.Bold.Render(numeric.Percent(product.Purity.Mol)),
		m.styles.Bold.Render(numeric.Percent(product.Purity.Wt))))

	table := ui.NewTable("", []string{"", "Residue", "Mol. weight (g/mol)", "Number of protons", "Integral", "mol%", "wt%"})
	for i, e := range m.ledger.Entries() {
		marker := " "
		if i == m.row {
			marker = ">"
		}

		name := m.compoundName(e)
		if name == "" {
			name = m.styles.Muted.Render("(unknown residue)")
		}
		cells := []string{
			name,
			string(e.MolarMass),
			string(e.Protons),
			string(e.Integral),
			numeric.Percent(e.Purity.Mol),
			numeric.Percent(e.Purity.Wt),
		}
		if i == m.row {
			if m.col == calcColName {
				cells[calcColName] = m.styles.Selected.Render(name)
			} else {
				cells[m.col] = m.input.View()
			}
		}
		table.AddRow(append([]string{marker}, cells...)...)
	}
	sb.WriteString(table.View(m.styles))

	if len(m.ledger.Entries()) == 0 {
		sb.WriteString(m.styles.Muted.Render("No residues yet - press ctrl+a to add one.") + "\n")
	}
	if m.status != "" {
		sb.WriteString("\n" + m.styles.Bold.Render(m.status))
	}
	sb.WriteString("\n" + m.styles.Footer.Render(
		"arrows/tab move - enter pick residue - ctrl+a add - ctrl+d delete - ctrl+x clear residue"))
	return sb.String()
}

func (m calcModel) pickerView() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Select residue"))
	sb.WriteString("\n")
	sb.WriteString(m.pickerQuery.View())
	sb.WriteString("\n\n")

	matches := m.pickerMatches()
	if len(matches) == 0 {
		sb.WriteString(m.styles.Muted.Render("No residues match."))
	}
	for i, c := range matches {
		line := c.Name
		if c.AlternateNames != "" {
			line += m.styles.Muted.Render(" (" + c.AlternateNames + ")")
		}
		if i == m.pickerCursor {
			line = m.styles.Selected.Render("> " + c.Name)
		} else {
			line = "  " + line
		}
		sb.WriteString(line + "\n")
	}
	sb.WriteString("\n" + m.styles.Footer.Render("type to filter - enter select - esc cancel"))
	return sb.String()
}
