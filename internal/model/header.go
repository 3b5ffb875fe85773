package model

import (
	"image"
	"image/color"
	"image/draw"
	"strings"
	"unicode/utf8"

	"github.com/golang/freetype"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/the-rileyj/gen-cyber-front-end/internal/theme"
)

const bannerFontSize = 72

// CreateImageFromText takes a string and generates an image.Image of that
// text using the Go Mono font.
func CreateImageFromText(text string, fontSize int, c color.Color) (image.Image, error) {
	f, err := freetype.ParseFont(gomono.TTF)
	if err != nil {
		return nil, err
	}

	width := 2*fontSize*utf8.RuneCountInString(text)/3 + fontSize
	img := image.NewRGBA(image.Rect(0, 0, width, 3*fontSize/2))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: image.Transparent}, image.Point{}, draw.Src)

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(f)
	ctx.SetFontSize(float64(fontSize))
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.NewUniform(c))

	pt := freetype.Pt(fontSize/2, fontSize)
	if _, err := ctx.DrawString(text, pt); err != nil {
		return nil, err
	}

	return img, nil
}

func getFirstHeader(content string) string {
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "# ") {
			return line
		}
	}
	return ""
}

// preprocessHeader replaces the first top-level heading of content with a
// banner image.
func preprocessHeader(content string, th *theme.Theme) (image.Image, string) {
	match := getFirstHeader(content)
	if match == "" {
		return nil, content
	}

	img, err := CreateImageFromText(strings.TrimSpace(match[2:]), bannerFontSize, bannerColor(th))
	if err != nil {
		return nil, content
	}

	return img, strings.Replace(content, match, "", 1)
}

func bannerColor(th *theme.Theme) color.Color {
	c, err := colorful.Hex(th.Hex(theme.Tertiary))
	if err != nil {
		return color.RGBA{R: 255, G: 170, B: 0, A: 255}
	}
	return c
}
