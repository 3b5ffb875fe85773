// Package styles turns a deck theme into terminal styles.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/the-rileyj/gen-cyber-front-end/internal/theme"
)

// Styles are the lipgloss styles of the presenter chrome.
type Styles struct {
	Slide  lipgloss.Style
	Status lipgloss.Style
	Author lipgloss.Style
	Date   lipgloss.Style
	Page   lipgloss.Style
	Search lipgloss.Style
}

// New derives the presenter styles from th. Styles are bound to r, so they
// match the color profile of the terminal r writes to. A nil r means the
// default renderer.
func New(r *lipgloss.Renderer, th *theme.Theme) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	accent := lipgloss.Color(th.Hex(theme.Tertiary))
	muted := lipgloss.Color(th.Hex(theme.Quaternary))
	dark := lipgloss.Color(th.Hex(theme.Secondary))

	return Styles{
		Slide:  r.NewStyle().Padding(1),
		Status: r.NewStyle().Padding(0, 1),
		Author: r.NewStyle().Foreground(dark).Background(accent).Padding(0, 1).MarginRight(1),
		Date:   r.NewStyle().Foreground(muted),
		Page:   r.NewStyle().Foreground(muted),
		Search: r.NewStyle().Foreground(accent),
	}
}

// JoinHorizontal joins two strings horizontally and fills the space in-between.
func JoinHorizontal(left, right string, width int) string {
	length := lipgloss.Width(left + right)
	if width < length {
		return left + " " + right
	}
	padding := strings.Repeat(" ", width-length)
	return left + padding + right
}

// JoinVertical joins two strings vertically and fills the space in-between.
func JoinVertical(top, bottom string, height int) string {
	h := lipgloss.Height(top) + lipgloss.Height(bottom)
	if height < h {
		return top + "\n" + bottom
	}
	fill := strings.Repeat("\n", height-h+1)
	return top + fill + bottom
}
