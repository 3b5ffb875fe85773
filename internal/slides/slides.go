package slides

import (
	"image"

	"github.com/the-rileyj/gen-cyber-front-end/internal/theme"
)

// Slide is one rendered slide of a deck.
type Slide struct {
	// Content is the markdown source of the slide.
	Content string
	// Body is Content in its rendered form.
	Body   string
	Images []string
	Theme  *theme.Theme

	Header    image.Image
	HeaderStr string
}
