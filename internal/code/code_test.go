package code

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/the-rileyj/gen-cyber-front-end/internal/term"
)

func TestParse(t *testing.T) {
	tt := []struct {
		markdown string
		expected []Block
	}{
		{
			markdown: `
~~~html
<html></html>
~~~
`,
			expected: []Block{{Code: "<html></html>", Language: "html"}},
		},
		{
			markdown: "```qr\nhttps://example.com\n```\n\n```go\nfmt.Println(1)\n/// hidden\n```",
			expected: []Block{
				{Code: "https://example.com", Language: "qr"},
				{Code: "fmt.Println(1)\nhidden", Language: "go"},
			},
		},
	}

	for _, tc := range tt {
		b, err := Parse(tc.markdown)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, b)
	}
}

func TestParseNoBlocks(t *testing.T) {
	for _, md := range []string{"# Title", "```\nno language\n```"} {
		_, err := Parse(md)
		assert.ErrorIs(t, err, ErrParse, md)
	}
}

func TestHideComments(t *testing.T) {
	in := "# Slide\ntext\n/// speaker only\nmore"
	assert.Equal(t, "# Slide\ntext\nmore", HideComments(in))

	for _, onlyComment := range []string{"```go\n/// x\n```", "~~~html\n/// x\n~~~"} {
		assert.Equal(t, "", strings.TrimSpace(HideComments(onlyComment)), onlyComment)
	}
}

func TestRemoveComments(t *testing.T) {
	in := "a := 1\n/// a is one\n///tight\nb := a /// inline stays"
	assert.Equal(t, "a := 1\na is one\ntight\nb := a /// inline stays", RemoveComments(in))
}

func TestExecuteQR(t *testing.T) {
	res := Execute(Block{Language: "qr", Code: "https://example.com"}, Options{})
	assert.Equal(t, 0, res.ExitCode)
	assert.Contains(t, res.Out, "https://example.com")
	assert.Greater(t, strings.Count(res.Out, "\n"), 5)
}

func TestExecuteQRAccent(t *testing.T) {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.TrueColor)

	tests := []struct {
		name   string
		accent lipgloss.Color
		want   string
	}{
		{"theme accent", "#FF0000", "38;2;255;0;0m"},
		{"default accent", "", "38;2;3;169;252m"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := Execute(Block{Language: "qr", Code: "https://example.com"}, Options{Accent: tc.accent, Renderer: r})
			assert.Contains(t, res.Out, tc.want)
		})
	}
}

func TestExecuteUnsupported(t *testing.T) {
	res := Execute(Block{Language: "bash", Code: "rm -rf /"}, Options{})
	assert.Equal(t, ExitCodeInternalError, res.ExitCode)
	assert.Equal(t, ErrUnsupportedLanguage.Error(), res.Out)
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 20, 10))
	img.Set(1, 1, color.White)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestExecuteImage(t *testing.T) {
	fsys := fstest.MapFS{"pic.png": {Data: pngBytes(t)}}

	res := Execute(Block{Language: "img", Code: "./pic.png"}, Options{
		Assets:         fsys,
		Protocol:       term.Kitty,
		AvailableCells: 10,
		Width:          80,
	})
	assert.Equal(t, 0, res.ExitCode)
	assert.True(t, strings.HasPrefix(res.Out, "\x1b_G"))

	res = Execute(Block{Language: "img", Code: "missing.png"}, Options{Assets: fsys})
	assert.Equal(t, ExitCodeInternalError, res.ExitCode)
}

func TestRenderImageWithoutProtocol(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 10))
	assert.Empty(t, RenderImage(img, term.None, 10, 80))
	assert.NotEmpty(t, RenderImage(img, term.Iterm, 10, 80))
}

func TestIsPresentationBlock(t *testing.T) {
	assert.True(t, IsPresentationBlock("qr"))
	assert.True(t, IsPresentationBlock("img"))
	assert.False(t, IsPresentationBlock("html"))
}
