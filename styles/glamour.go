package styles

import (
	"github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/muesli/termenv"
	"github.com/the-rileyj/gen-cyber-front-end/internal/theme"
)

// Glamour builds a markdown style from th. Terminals without color get the
// plain ASCII style, the theme has nothing to add there.
func Glamour(th *theme.Theme, profile termenv.Profile) ansi.StyleConfig {
	if profile == termenv.Ascii {
		return glamourstyles.ASCIIStyleConfig
	}

	cfg := glamourstyles.DarkStyleConfig

	accent := th.Hex(theme.Tertiary)
	text := th.Hex(theme.Quaternary)
	surface := th.Hex(theme.Secondary)
	light := th.Hex(theme.Primary)

	cfg.Document.Color = &text

	cfg.Heading.Color = &accent
	cfg.H1.Color = &light
	cfg.H1.BackgroundColor = &accent
	cfg.H1.Bold = boolPtr(true)
	cfg.H2.Color = &accent
	cfg.H3.Color = &accent

	cfg.Link.Color = &accent
	cfg.LinkText.Color = &accent
	cfg.ImageText.Color = &accent
	cfg.HorizontalRule.Color = &accent

	cfg.Code.Color = &accent
	cfg.Code.BackgroundColor = &surface
	cfg.CodeBlock.Margin = uintPtr(2)

	return cfg
}

func boolPtr(b bool) *bool { return &b }

func uintPtr(u uint) *uint { return &u }
