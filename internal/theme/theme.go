// Package theme holds the color and typography settings applied uniformly to
// every slide of a deck.
package theme

import (
	"sort"
	"strings"
)

// Color names used by the renderers.
const (
	Primary    = "primary"
	Secondary  = "secondary"
	Tertiary   = "tertiary"
	Quaternary = "quaternary"
)

// Theme maps named colors to color values and font roles to font families.
// A Theme is never mutated after construction; Merge returns a new one.
type Theme struct {
	colors map[string]string
	fonts  map[string]string
}

// New returns a theme holding copies of colors and fonts.
func New(colors, fonts map[string]string) *Theme {
	return &Theme{colors: clone(colors), fonts: clone(fonts)}
}

// Default is the theme the deck was designed with.
func Default() *Theme {
	return New(
		map[string]string{
			Primary:    "white",
			Secondary:  "#1F2022",
			Tertiary:   "#03A9FC",
			Quaternary: "#CECECE",
		},
		map[string]string{
			Primary:   "Montserrat",
			Secondary: "Helvetica",
		},
	)
}

// Merge returns a copy of t with the given entries replacing its own.
func (t *Theme) Merge(colors, fonts map[string]string) *Theme {
	n := New(t.colors, t.fonts)
	for k, v := range colors {
		n.colors[k] = v
	}
	for k, v := range fonts {
		n.fonts[k] = v
	}
	return n
}

// Color returns the value of the named color, or "" if it is not set.
func (t *Theme) Color(name string) string {
	return t.colors[name]
}

// Font returns the family of the font role, falling back to the primary font.
func (t *Theme) Font(role string) string {
	if f, ok := t.fonts[role]; ok {
		return f
	}
	return t.fonts[Primary]
}

// Hex returns the named color as #RRGGBB. Hex values are upper-cased, with
// the short #RGB form expanded, CSS keywords are looked up and anything else
// is returned as is.
func (t *Theme) Hex(name string) string {
	c := strings.TrimSpace(t.colors[name])
	if strings.HasPrefix(c, "#") {
		c = strings.ToUpper(c)
		if len(c) == 4 {
			c = string([]byte{'#', c[1], c[1], c[2], c[2], c[3], c[3]})
		}
		return c
	}
	if hex, ok := keywords[strings.ToLower(c)]; ok {
		return hex
	}
	return c
}

// Colors returns a copy of the color mapping.
func (t *Theme) Colors() map[string]string { return clone(t.colors) }

// Fonts returns a copy of the font mapping.
func (t *Theme) Fonts() map[string]string { return clone(t.fonts) }

// ColorNames returns the color names in sorted order.
func (t *Theme) ColorNames() []string { return sortedKeys(t.colors) }

// FontRoles returns the font roles in sorted order.
func (t *Theme) FontRoles() []string { return sortedKeys(t.fonts) }

// keywords covers the CSS color names used by presentation themes.
var keywords = map[string]string{
	"white":   "#FFFFFF",
	"black":   "#000000",
	"red":     "#FF0000",
	"green":   "#008000",
	"blue":    "#0000FF",
	"yellow":  "#FFFF00",
	"orange":  "#FFA500",
	"purple":  "#800080",
	"gray":    "#808080",
	"grey":    "#808080",
	"silver":  "#C0C0C0",
	"navy":    "#000080",
	"teal":    "#008080",
	"maroon":  "#800000",
	"olive":   "#808000",
	"lime":    "#00FF00",
	"aqua":    "#00FFFF",
	"fuchsia": "#FF00FF",
}

func clone(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
