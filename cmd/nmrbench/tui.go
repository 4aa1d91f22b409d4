// This file implements the interactive interface using bubbletea: a
// calculator page, the common-residue reference table, and a sources
// page. The presentation layer owns nothing but view state; every edit
// is dispatched to the ledger or the matcher and the result re-rendered.
package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"nmrbench/cmd/nmrbench/config"
	"nmrbench/cmd/nmrbench/ui"
	"nmrbench/internal/ledger"
	"nmrbench/internal/residue"
)

type page int

const (
	pageCalculator page = iota
	pageResidues
	pageSources
	pageCount
)

func (p page) title() string {
	switch p {
	case pageCalculator:
		return "Calculator"
	case pageResidues:
		return "Common residues"
	case pageSources:
		return "Sources"
	}
	return ""
}

// appModel is the root model of the interactive interface.
type appModel struct {
	lib    *residue.Library
	ledger *ledger.Ledger
	cfg    config.Config
	styles ui.Styles

	page    page
	calc    calcModel
	res     residuesModel
	sources sourcesModel

	width  int
	height int
	ready  bool
}

func newAppModel(lib *residue.Library, led *ledger.Ledger, cfg config.Config) appModel {
	styles := ui.DefaultStyles()
	if cfg.Theme == "dark" {
		styles = ui.NewStyles(ui.DarkTheme())
	}

	solvent := residue.Solvent(cfg.LastSolvent)
	if !solvent.Valid() {
		solvent = residue.ChloroformD
	}

	return appModel{
		lib:     lib,
		ledger:  led,
		cfg:     cfg,
		styles:  styles,
		page:    pageCalculator,
		calc:    newCalcModel(lib, led, styles),
		res:     newResiduesModel(lib, led, solvent, styles),
		sources: newSourcesModel(lib, styles),
	}
}

func (m appModel) Init() tea.Cmd {
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+p":
			m.page = (m.page + 1) % pageCount
			return m, nil
		case "ctrl+t":
			m = m.toggleTheme()
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.page {
	case pageCalculator:
		m.calc, cmd = m.calc.Update(msg)
	case pageResidues:
		m.res, cmd = m.res.Update(msg)
		// Solvent changes on the residue page are the persisted
		// "last solvent" preference.
		if string(m.res.solvent) != m.cfg.LastSolvent {
			m.cfg.LastSolvent = string(m.res.solvent)
			_ = config.Save(m.cfg)
		}
	case pageSources:
		m.sources, cmd = m.sources.Update(msg)
	}
	return m, cmd
}

func (m appModel) toggleTheme() appModel {
	if m.cfg.Theme == "dark" {
		m.cfg.Theme = "light"
		m.styles = ui.NewStyles(ui.LightTheme())
	} else {
		m.cfg.Theme = "dark"
		m.styles = ui.NewStyles(ui.DarkTheme())
	}
	_ = config.Save(m.cfg)

	m.calc.setStyles(m.styles)
	m.res.setStyles(m.styles)
	m.sources.setStyles(m.styles)
	return m
}

func (m appModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := ""
	for p := page(0); p < pageCount; p++ {
		label := " " + p.title() + " "
		if p == m.page {
			header += m.styles.Selected.Render(label)
		} else {
			header += m.styles.Muted.Render(label)
		}
	}
	header = m.styles.Header.Width(m.width).Render(header)

	var body string
	switch m.page {
	case pageCalculator:
		body = m.calc.View()
	case pageResidues:
		body = m.res.View()
	case pageSources:
		body = m.sources.View()
	}

	footer := m.styles.Footer.Render(
		"ctrl+p switch page - ctrl+t toggle theme - ctrl+c quit")

	return fmt.Sprintf("%s\n%s\n%s", header, body, footer)
}

// runInteractive starts the interactive interface.
func runInteractive() error {
	lib, err := residue.Load()
	if err != nil {
		return fmt.Errorf("failed to load residue dataset: %w", err)
	}
	cfg, _ := config.Load()

	// The ledger lives exactly as long as this session.
	led := ledger.New(logger)

	p := tea.NewProgram(newAppModel(lib, led, cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("interactive interface failed: %w", err)
	}
	return nil
}
