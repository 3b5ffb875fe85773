package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/the-rileyj/gen-cyber-front-end/internal/deck"
	"github.com/the-rileyj/gen-cyber-front-end/internal/theme"
)

type echoEngine struct{}

func (echoEngine) Body(text string) (string, error) { return "<" + text + ">", nil }

type failingEngine struct{}

func (failingEngine) Body(string) (string, error) { return "", errors.New("boom") }

func catalog(t *testing.T, texts ...string) deck.Catalog {
	t.Helper()
	c, err := deck.FromText(texts...)
	require.NoError(t, err)
	return c
}

func TestRenderCountAndOrder(t *testing.T) {
	for n := 1; n <= 5; n++ {
		texts := make([]string, n)
		for i := range texts {
			texts[i] = strings.Repeat("x", i+1)
		}

		d := Render(catalog(t, texts...), theme.Default(), echoEngine{})

		require.Equal(t, n, d.Len())
		for i, s := range d.Slides {
			assert.Equal(t, texts[i], s.Content)
			assert.Equal(t, "<"+texts[i]+">", s.Body)
		}
	}
}

func TestRenderSharesTheme(t *testing.T) {
	th := theme.Default()
	d := Render(catalog(t, "a", "b", "c"), th, echoEngine{})

	assert.Same(t, th, d.Theme)
	for _, s := range d.Slides {
		assert.Same(t, th, s.Theme)
	}
}

func TestRenderNilTheme(t *testing.T) {
	d := Render(catalog(t, "a", "b"), nil, echoEngine{})

	require.NotNil(t, d.Theme)
	assert.Same(t, d.Theme, d.Slides[0].Theme)
	assert.Same(t, d.Theme, d.Slides[1].Theme)
}

func TestRenderIdempotent(t *testing.T) {
	c := catalog(t, "# Title", "![a](a.png)", "~~~html\n<p>hi</p>\n~~~")
	th := theme.Default()
	e := NewHTML()

	assert.Equal(t, Render(c, th, e), Render(c, th, e))
}

func TestRenderEngineFailure(t *testing.T) {
	d := Render(catalog(t, "a", "b"), nil, failingEngine{})

	require.Equal(t, 2, d.Len())
	for _, s := range d.Slides {
		assert.Equal(t, "Error: could not render markdown! (boom)", s.Body)
	}
}

func TestHTMLTitle(t *testing.T) {
	d := Render(catalog(t, "# Title"), nil, NewHTML())

	require.Equal(t, 1, d.Len())
	assert.Equal(t, "<h1>Title</h1>\n", d.Slides[0].Body)
}

func TestHTMLImage(t *testing.T) {
	d := Render(catalog(t, "Intro\n![Google Homepage](google.png)\n"), nil, NewHTML())

	body := d.Slides[0].Body
	assert.Equal(t, 1, strings.Count(body, "<img"))
	assert.Contains(t, body, `src="google.png"`)
	assert.Equal(t, []string{"google.png"}, d.Slides[0].Images)
}

func TestHTMLPassesRawHTMLAndHighlights(t *testing.T) {
	d := Render(catalog(t, "<div class=\"x\">raw</div>\n\n~~~html\n<ol></ol>\n~~~\n"), nil, NewHTML())

	body := d.Slides[0].Body
	assert.Contains(t, body, `<div class="x">raw</div>`)
	assert.Contains(t, body, "<pre")
	assert.NotContains(t, body, "<ol></ol>")
}

func TestHTMLHidesComments(t *testing.T) {
	d := Render(catalog(t, "text\n/// presenter only\n"), nil, NewHTML())
	assert.NotContains(t, d.Slides[0].Body, "presenter only")
}

func TestImages(t *testing.T) {
	tests := []struct {
		markdown string
		want     []string
	}{
		{"# No images", nil},
		{"![a](one.png)", []string{"one.png"}},
		{"![a](one.png) and ![b](two.jpg)", []string{"one.png", "two.jpg"}},
		{"`![not](code.png)`", nil},
		{"~~~\n![not](fenced.png)\n~~~", nil},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, Images(tc.markdown), tc.markdown)
	}
}

func TestTerminalTitle(t *testing.T) {
	e, err := NewTerminal(theme.Default(), termenv.Ascii, 40)
	require.NoError(t, err)

	d := Render(catalog(t, "# Title", "plain\ttext"), nil, e)

	require.Equal(t, 2, d.Len())
	assert.Contains(t, d.Slides[0].Body, "Title")
	assert.NotContains(t, d.Slides[1].Body, "\t")
}

func TestPage(t *testing.T) {
	d := Render(catalog(t, "# One", "# Two"), theme.Default(), NewHTML())

	page, err := Page(d, "Deck")
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(page, `<section class="slide"`))
	assert.Less(t, strings.Index(page, "<h1>One</h1>"), strings.Index(page, "<h1>Two</h1>"))
	assert.Contains(t, page, "<title>Deck</title>")
	assert.Contains(t, page, "--color-tertiary: #03A9FC;")
	assert.Contains(t, page, "--font-primary: Montserrat;")
}
