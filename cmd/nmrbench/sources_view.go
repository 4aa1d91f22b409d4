package main

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"nmrbench/cmd/nmrbench/ui"
	"nmrbench/internal/residue"
)

// sourcesModel renders the literature references behind the dataset.
type sourcesModel struct {
	styles   ui.Styles
	rendered string
}

func newSourcesModel(lib *residue.Library, styles ui.Styles) sourcesModel {
	return sourcesModel{
		styles:   styles,
		rendered: renderSources(lib.Sources()),
	}
}

func (m *sourcesModel) setStyles(styles ui.Styles) {
	m.styles = styles
}

func renderSources(sources []string) string {
	var md strings.Builder
	md.WriteString("All chemical shift values are taken from the following publications:\n\n")
	for _, s := range sources {
		md.WriteString("- " + s + "\n")
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return md.String()
	}
	out, err := renderer.Render(md.String())
	if err != nil {
		return md.String()
	}
	return out
}

func (m sourcesModel) Update(msg tea.Msg) (sourcesModel, tea.Cmd) {
	return m, nil
}

func (m sourcesModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Sources"))
	sb.WriteString("\n")
	sb.WriteString(m.rendered)
	return sb.String()
}
