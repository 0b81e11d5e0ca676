package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	mutedColor  = lipgloss.Color("#9ca3af")
	errorColor  = lipgloss.Color("#ef4444")
	borderColor = lipgloss.Color("#374151")

	headingStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	cardStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1).
			Width(48)
	nameStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(mutedColor)
	errorStyle = lipgloss.NewStyle().Foreground(errorColor)
)

// RenderTerminal writes the panel as cards, two per row like the web grid
func RenderTerminal(w io.Writer, v PanelView) error {
	var out string

	switch {
	case v.Loading:
		out = mutedStyle.Render("loading...")
	case v.Failed:
		out = errorStyle.Render(v.ErrorMessage)
	default:
		out = renderCards(v)
	}

	_, err := fmt.Fprintln(w, out)
	return err
}

func renderCards(v PanelView) string {
	header := headingStyle.Render(v.Heading) + "  " + mutedStyle.Render(v.ViewAll+": "+v.AllReposURL)

	rows := make([]string, 0, (len(v.Cards)+1)/2)
	for i := 0; i < len(v.Cards); i += 2 {
		row := []string{renderCard(v.Cards[i])}
		if i+1 < len(v.Cards) {
			row = append(row, renderCard(v.Cards[i+1]))
		}

		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, append([]string{header}, rows...)...)
}

func renderCard(c CardView) string {
	var b strings.Builder

	b.WriteString(nameStyle.Render(c.Name))
	b.WriteString("  ")
	b.WriteString(mutedStyle.Render(c.Updated))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(c.Description))
	b.WriteString("\n")

	if c.Language != "" {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(c.ColorHex)).Render("●")
		b.WriteString(dot + " " + mutedStyle.Render(c.Language) + "  ")
	}

	b.WriteString(mutedStyle.Render(fmt.Sprintf("★ %d  ⑂ %d", c.Stars, c.Forks)))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(c.URL))

	return cardStyle.Render(b.String())
}
