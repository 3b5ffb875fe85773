// Package render turns a slide catalog into visual slides.
//
// Rendering is a pure mapping: one slide per catalog record, in catalog
// order, every slide sharing the deck's theme. How a single text block looks
// is left to an Engine.
package render

import (
	"fmt"

	"github.com/the-rileyj/gen-cyber-front-end/internal/deck"
	"github.com/the-rileyj/gen-cyber-front-end/internal/slides"
	"github.com/the-rileyj/gen-cyber-front-end/internal/theme"
)

// Engine renders a single slide's text.
type Engine interface {
	Body(text string) (string, error)
}

// Deck is a rendered presentation.
type Deck struct {
	Theme  *theme.Theme
	Slides []slides.Slide
}

// Render produces one slide per record of c. A nil theme means the default
// theme. Engine failures do not stop rendering, the failing slide shows the
// error instead.
func Render(c deck.Catalog, th *theme.Theme, e Engine) Deck {
	if th == nil {
		th = theme.Default()
	}

	out := Deck{
		Theme:  th,
		Slides: make([]slides.Slide, 0, c.Len()),
	}
	for _, r := range c.Records() {
		body, err := e.Body(r.Text)
		if err != nil {
			body = fmt.Sprintf("Error: could not render markdown! (%v)", err)
		}
		out.Slides = append(out.Slides, slides.Slide{
			Content: r.Text,
			Body:    body,
			Images:  Images(r.Text),
			Theme:   th,
		})
	}
	return out
}

// Len returns the number of slides.
func (d Deck) Len() int { return len(d.Slides) }
