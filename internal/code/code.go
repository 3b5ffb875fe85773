package code

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"path"
	"regexp"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	"github.com/charmbracelet/lipgloss"
	"github.com/mdp/qrterminal/v3"
	"github.com/the-rileyj/gen-cyber-front-end/internal/term"
)

// Block represents a code block.
type Block struct {
	Code     string
	Language string
}

// Result represents the output for an executed code block.
type Result struct {
	Out      string
	ExitCode int
}

// ?: means non-capture group
var re = regexp.MustCompile("(?s)(?:```|~~~)(\\w+)\n(.*?)\n(?:```|~~~)\\s?")

// ErrParse is the returned error when we cannot parse the code block (i.e.
// there is no code block on the current slide) or the code block is
// incorrectly written.
var ErrParse = errors.New("Error: could not parse code block")

// ErrUnsupportedLanguage is returned for blocks that are not presentation
// blocks. Slides are content, so only qr and img blocks ever run.
var ErrUnsupportedLanguage = errors.New("Error: unsupported language")

// Parse takes a block of markdown and returns an array of Block's with code
// and associated languages
func Parse(markdown string) ([]Block, error) {
	matches := re.FindAllStringSubmatch(markdown, -1)

	var rv []Block
	for _, match := range matches {
		// There was either no language specified or no code block
		// Either way, we cannot execute the expression
		if len(match) < 3 {
			continue
		}
		rv = append(rv, Block{
			Language: match[1],
			Code:     RemoveComments(match[2]),
		})
	}

	if len(rv) == 0 {
		return nil, ErrParse
	}

	return rv, nil
}

const (
	// ExitCodeInternalError represents the exit code in which the code
	// executing the code didn't work.
	ExitCodeInternalError = -1
)

// Options describe where a block is executed.
type Options struct {
	// Assets resolves img paths.
	Assets         fs.FS
	Protocol       term.TerminalProtocol
	AvailableCells int
	Width          int
	// Accent colors the caption under qr codes.
	Accent lipgloss.Color
	// Renderer styles output for the target terminal, nil means the default
	// renderer.
	Renderer *lipgloss.Renderer
}

// DefaultAccent is the qr caption color when Options sets none.
const DefaultAccent = lipgloss.Color("#03A9FC")

// IsPresentationBlock reports whether language names a block that renders
// on its own when a slide is shown.
func IsPresentationBlock(language string) bool {
	return language == "qr" || language == "img"
}

// RenderImage draws img sized to at most availableCells rows and width
// columns. Terminals without an image protocol get an empty string.
func RenderImage(img image.Image, terminal term.TerminalProtocol, availableCells int, width int) string {
	var buff bytes.Buffer

	// cells are roughly twice as tall as they are wide
	aspectRatio := 2.2 * float64(img.Bounds().Dx()) / float64(img.Bounds().Dy())

	rows := float64(availableCells)
	cols := rows * aspectRatio

	if cols > float64(width) {
		cols = float64(width)
		// recalculate rows
		rows = cols / aspectRatio
	}

	switch terminal {
	case term.Kitty:
		_ = term.KittyWriteImage(&buff, img, term.KittyImgOpts{
			DstRows: uint32(rows),
			DstCols: uint32(cols),
		})
	case term.Iterm:
		_ = term.ItermWriteImageWithOptions(&buff, img, term.ItermImgOpts{
			Height: fmt.Sprint(int(rows)),
			Width:  fmt.Sprint(int(cols)),
		})
	}
	return buff.String()
}

// LoadImage decodes the image at name in fsys.
func LoadImage(fsys fs.FS, name string) (image.Image, error) {
	if fsys == nil {
		return nil, fs.ErrNotExist
	}
	f, err := fsys.Open(path.Clean(strings.TrimPrefix(name, "./")))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return img, nil
}

// Execute takes a code.Block and returns its output.
func Execute(code Block, opts Options) Result {
	switch code.Language {
	case "img":
		img, err := LoadImage(opts.Assets, strings.TrimSpace(code.Code))
		if err != nil {
			return Result{
				Out:      "Error: could not open image: " + err.Error(),
				ExitCode: ExitCodeInternalError,
			}
		}
		return Result{
			Out:      RenderImage(img, opts.Protocol, opts.AvailableCells, opts.Width),
			ExitCode: 0,
		}

	case "qr":
		return Result{
			Out:      renderQR(code.Code, opts),
			ExitCode: 0,
		}
	}

	return Result{
		Out:      ErrUnsupportedLanguage.Error(),
		ExitCode: ExitCodeInternalError,
	}
}

func renderQR(text string, opts Options) string {
	r := opts.Renderer
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	accent := opts.Accent
	if accent == "" {
		accent = DefaultAccent
	}

	var qrCodes []string

	for _, qrCode := range strings.Split(text, "\n") {
		qrCode = strings.TrimSpace(qrCode)
		if qrCode == "" {
			continue
		}

		var buff bytes.Buffer
		config := qrterminal.Config{
			Level:          qrterminal.L,
			Writer:         &buff,
			HalfBlocks:     true,
			BlackChar:      qrterminal.BLACK_BLACK,
			WhiteBlackChar: qrterminal.WHITE_BLACK,
			WhiteChar:      qrterminal.WHITE_WHITE,
			BlackWhiteChar: qrterminal.BLACK_WHITE,
			QuietZone:      1,
		}
		qrterminal.GenerateWithConfig(qrCode, config)

		qrCodes = append(qrCodes, r.
			NewStyle().
			PaddingRight(8).
			Render(
				lipgloss.JoinVertical(
					lipgloss.Left,
					buff.String(),
					r.NewStyle().Foreground(accent).Render(qrCode),
				),
			))
	}

	return lipgloss.JoinHorizontal(lipgloss.Left, qrCodes...)
}
