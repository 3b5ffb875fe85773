package deck

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/the-rileyj/gen-cyber-front-end/internal/meta"
	"github.com/the-rileyj/gen-cyber-front-end/internal/theme"
)

// ManifestName is the file listing a deck's metadata and slide order.
const ManifestName = "deck.yaml"

var (
	// ErrManifest is returned when the manifest is missing or invalid.
	ErrManifest = errors.New("deck: invalid manifest")
	// ErrSlideNotFound is returned when the manifest names a missing file.
	ErrSlideNotFound = errors.New("deck: slide not found")
)

//go:embed content
var content embed.FS

// Presentation is a catalog together with everything needed to show it.
type Presentation struct {
	Catalog Catalog
	Theme   *theme.Theme
	Meta    meta.Meta
	// Assets resolves image references found in slide text.
	Assets fs.FS
}

// Builtin loads the deck compiled into the binary.
func Builtin() (Presentation, error) {
	sub, err := fs.Sub(content, "content")
	if err != nil {
		return Presentation{}, err
	}
	return Load(sub)
}

// Load reads the manifest at the root of fsys and the slides it lists.
func Load(fsys fs.FS) (Presentation, error) {
	b, err := fs.ReadFile(fsys, ManifestName)
	if err != nil {
		return Presentation{}, fmt.Errorf("%w: %v", ErrManifest, err)
	}

	m, err := meta.New().Parse(string(b))
	if err != nil {
		return Presentation{}, fmt.Errorf("%w: %v", ErrManifest, err)
	}

	records := make([]Record, 0, len(m.Slides))
	for _, name := range m.Slides {
		text, err := fs.ReadFile(fsys, path.Clean(name))
		if err != nil {
			return Presentation{}, fmt.Errorf("%w: %s", ErrSlideNotFound, name)
		}
		records = append(records, Record{Text: normalize(string(text))})
	}

	c, err := New(records...)
	if err != nil {
		return Presentation{}, err
	}

	return Presentation{
		Catalog: c,
		Theme:   theme.Default().Merge(m.Theme.Colors, m.Theme.Fonts),
		Meta:    m,
		Assets:  fsys,
	}, nil
}

func normalize(text string) string {
	return strings.ReplaceAll(text, "\r", "")
}
