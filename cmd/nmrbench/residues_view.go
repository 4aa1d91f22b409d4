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

// Focusable elements of the residue page, in tab order.
const (
	resFocusName = iota
	resFocusShift
	resFocusDeviation
	resFocusTable
	resFocusCount
)

// residuesModel drives the filterable common-residue reference table.
type residuesModel struct {
	lib    *residue.Library
	ledger *ledger.Ledger
	styles ui.Styles

	nameInput      textinput.Model
	shiftInput     textinput.Model
	deviationInput textinput.Model
	multIdx        int // 0 = none, then Multiplicities() order
	solvent        residue.Solvent

	focus  int
	cursor int

	// Signal disambiguation dialog: set while the user picks which
	// signal of a multi-signal compound feeds the calculator.
	dialogCompound *residue.Compound
	dialogCursor   int

	status string
}

func newResiduesModel(lib *residue.Library, led *ledger.Ledger, solvent residue.Solvent, styles ui.Styles) residuesModel {
	name := textinput.New()
	name.Placeholder = "Residue name"
	name.CharLimit = 40
	name.Width = 20

	shift := textinput.New()
	shift.Placeholder = "Chem. shift"
	shift.CharLimit = 10
	shift.Width = 12

	deviation := textinput.New()
	deviation.Placeholder = "Deviation"
	deviation.CharLimit = 10
	deviation.Width = 12

	m := residuesModel{
		lib:            lib,
		ledger:         led,
		styles:         styles,
		nameInput:      name,
		shiftInput:     shift,
		deviationInput: deviation,
		solvent:        solvent,
		focus:          resFocusTable,
	}
	return m
}

func (m *residuesModel) setStyles(styles ui.Styles) {
	m.styles = styles
}

// filter assembles the current FilterSpec from the input fields.
func (m residuesModel) filter() residue.Filter {
	f := residue.Filter{
		Name:      m.nameInput.Value(),
		Shift:     m.shiftInput.Value(),
		Deviation: m.deviationInput.Value(),
		Solvent:   m.solvent,
	}
	if m.multIdx > 0 {
		f.Multiplicity = residue.Multiplicities()[m.multIdx-1]
	}
	return f
}

func (m residuesModel) Update(msg tea.Msg) (residuesModel, tea.Cmd) {
	key, isKey := msg.(tea.KeyMsg)
	if !isKey {
		return m, nil
	}

	if m.dialogCompound != nil {
		return m.updateDialog(key)
	}

	m.status = ""
	switch key.String() {
	case "tab":
		m.setFocus((m.focus + 1) % resFocusCount)
		return m, nil
	case "shift+tab":
		m.setFocus((m.focus + resFocusCount - 1) % resFocusCount)
		return m, nil
	case "ctrl+x":
		// Clear all filters.
		m.nameInput.SetValue("")
		m.shiftInput.SetValue("")
		m.deviationInput.SetValue("")
		m.multIdx = 0
		m.cursor = 0
		return m, nil
	case "ctrl+o":
		m.solvent = cycleSolvent(m.solvent)
		return m, nil
	case "ctrl+u":
		m.multIdx = (m.multIdx + 1) % (len(residue.Multiplicities()) + 1)
		return m, nil
	}

	if m.focus == resFocusTable {
		return m.updateTable(key)
	}
	return m.updateInputs(key)
}

func (m residuesModel) updateInputs(key tea.KeyMsg) (residuesModel, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case resFocusName:
		m.nameInput, cmd = m.nameInput.Update(key)
	case resFocusShift:
		prev := m.shiftInput.Value()
		m.shiftInput, cmd = m.shiftInput.Update(key)
		if s, ok := numeric.NormalizeDecimal(m.shiftInput.Value()); ok {
			m.shiftInput.SetValue(s)
		} else {
			m.shiftInput.SetValue(prev)
		}
		// Auto-fill a reasonable tolerance the first time a shift is
		// entered.
		if m.shiftInput.Value() != "" && m.deviationInput.Value() == "" {
			m.deviationInput.SetValue(residue.DefaultDeviation)
		}
	case resFocusDeviation:
		prev := m.deviationInput.Value()
		m.deviationInput, cmd = m.deviationInput.Update(key)
		if s, ok := numeric.NormalizeDecimal(m.deviationInput.Value()); ok {
			m.deviationInput.SetValue(s)
		} else {
			m.deviationInput.SetValue(prev)
		}
	}
	m.cursor = 0
	return m, cmd
}

func (m residuesModel) updateTable(key tea.KeyMsg) (residuesModel, tea.Cmd) {
	matched := m.lib.Match(m.filter())
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(matched)-1 {
			m.cursor++
		}
	case "enter", "a":
		if m.cursor >= len(matched) {
			break
		}
		c := matched[m.cursor]
		if !c.Selectable() {
			m.status = "The solvent-peak row cannot be added to the calculator."
			break
		}
		if len(c.Signals) > 1 {
			m.dialogCompound = &c
			m.dialogCursor = 0
			break
		}
		m.ledger.AddCompound(c, c.Signals[0])
		m.status = fmt.Sprintf("Added %s to the calculator.", c.Name)
	}
	return m, nil
}

func (m residuesModel) updateDialog(key tea.KeyMsg) (residuesModel, tea.Cmd) {
	c := *m.dialogCompound
	switch key.String() {
	case "esc":
		m.dialogCompound = nil
	case "up", "k":
		if m.dialogCursor > 0 {
			m.dialogCursor--
		}
	case "down", "j":
		if m.dialogCursor < len(c.Signals)-1 {
			m.dialogCursor++
		}
	case "enter":
		m.ledger.AddCompound(c, c.Signals[m.dialogCursor])
		m.status = fmt.Sprintf("Added %s to the calculator.", c.Name)
		m.dialogCompound = nil
	}
	return m, nil
}

func (m *residuesModel) setFocus(focus int) {
	m.focus = focus
	m.nameInput.Blur()
	m.shiftInput.Blur()
	m.deviationInput.Blur()
	switch focus {
	case resFocusName:
		m.nameInput.Focus()
	case resFocusShift:
		m.shiftInput.Focus()
	case resFocusDeviation:
		m.deviationInput.Focus()
	}
}

func cycleSolvent(s residue.Solvent) residue.Solvent {
	solvents := residue.Solvents()
	for i, known := range solvents {
		if known == s {
			return solvents[(i+1)%len(solvents)]
		}
	}
	return solvents[0]
}

func (m residuesModel) View() string {
	if m.dialogCompound != nil {
		return m.dialogView()
	}

	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Residues in common NMR solvents"))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render(
		"Filter the table below and press enter on a row to add it to the calculator."))
	sb.WriteString("\n\n")

	mult := "none"
	if m.multIdx > 0 {
		mult = string(residue.Multiplicities()[m.multIdx-1])
	}
	sb.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s   %s %s   %s %s\n",
		m.styles.Label.Render("Name:"), m.nameInput.View(),
		m.styles.Label.Render("Shift:"), m.shiftInput.View(),
		m.styles.Label.Render("Deviation:"), m.deviationInput.View(),
		m.styles.Label.Render("Solvent:"), m.styles.Bold.Render(m.solvent.Label()),
		m.styles.Label.Render("Mult.:"), m.styles.Bold.Render(mult)))

	if m.filter().Active() {
		sb.WriteString(m.styles.Muted.Render("Filters active - ctrl+x clears them.") + "\n")
	}
	sb.WriteString("\n")

	cursor := m.cursor
	var cursorPtr *int
	if m.focus == resFocusTable {
		cursorPtr = &cursor
	}
	sb.WriteString(renderResidueTable(m.lib.Match(m.filter()), m.filter(), m.styles, cursorPtr))

	if m.status != "" {
		sb.WriteString("\n" + m.styles.Bold.Render(m.status))
	}
	sb.WriteString("\n" + m.styles.Footer.Render(
		"tab focus - enter add - ctrl+o solvent - ctrl+u multiplicity - ctrl+x clear"))
	return sb.String()
}

func (m residuesModel) dialogView() string {
	c := *m.dialogCompound

	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render(c.Name))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render(
		"Select the signal to use in the residue calculator."))
	sb.WriteString("\n\n")

	table := ui.NewTable("", []string{"", "Formula", "Multiplicity", "Protons", "Chem. shift"})
	for i, sig := range c.Signals {
		marker := " "
		if i == m.dialogCursor {
			marker = ">"
		}
		table.AddRow(
			marker,
			sig.Formula,
			string(sig.Multiplicity),
			fmt.Sprintf("%dH", sig.Protons),
			sig.ShiftIn(m.solvent).String(),
		)
	}
	sb.WriteString(table.View(m.styles))
	sb.WriteString("\n" + m.styles.Footer.Render("enter select - esc cancel"))
	return sb.String()
}
