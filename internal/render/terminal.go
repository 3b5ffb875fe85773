package render

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"github.com/the-rileyj/gen-cyber-front-end/internal/code"
	"github.com/the-rileyj/gen-cyber-front-end/internal/theme"
	"github.com/the-rileyj/gen-cyber-front-end/styles"
)

var tabSpaces = strings.Repeat(" ", 4)

// Terminal renders slides as ANSI text with glamour.
type Terminal struct {
	r *glamour.TermRenderer
}

// NewTerminal creates a terminal engine wrapping at width columns. A width
// of zero or less disables wrapping.
func NewTerminal(th *theme.Theme, profile termenv.Profile, width int) (*Terminal, error) {
	if th == nil {
		th = theme.Default()
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.Glamour(th, profile)),
		glamour.WithColorProfile(profile),
		glamour.WithWordWrap(max(width, 0)),
	)
	if err != nil {
		return nil, err
	}
	return &Terminal{r: r}, nil
}

// Body renders text, dropping presenter comments.
func (t *Terminal) Body(text string) (string, error) {
	out, err := t.r.Render(code.HideComments(text))
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(out, "\t", tabSpaces), nil
}
