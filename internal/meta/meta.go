// Package meta parses the deck manifest: who presents, when, how pages are
// numbered, the theme and the order of the slide files.
package meta

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

// DefaultPaging is used when the manifest does not set one.
const DefaultPaging = "Slide %d / %d"

// ErrNoSlides is returned when a manifest lists no slide files.
var ErrNoSlides = errors.New("manifest lists no slides")

// Theme overrides entries of the default theme.
type Theme struct {
	Colors map[string]string `yaml:"colors"`
	Fonts  map[string]string `yaml:"fonts"`
}

// Meta represents the metadata of a deck.
type Meta struct {
	Title  string   `yaml:"title"`
	Author string   `yaml:"author"`
	Date   string   `yaml:"date"`
	Paging string   `yaml:"paging"`
	Theme  Theme    `yaml:"theme"`
	Slides []string `yaml:"slides"`
}

// New creates a Meta with the defaults filled in.
func New() Meta {
	return Meta{
		Date:   time.Now().Format("2006-01-02"),
		Paging: DefaultPaging,
	}
}

// Parse reads a manifest on top of the defaults of m.
func (m Meta) Parse(text string) (Meta, error) {
	tmp := m
	if err := yaml.Unmarshal([]byte(text), &tmp); err != nil {
		return m, fmt.Errorf("parse manifest: %w", err)
	}

	if strings.TrimSpace(tmp.Date) == "" {
		tmp.Date = m.Date
	}
	if strings.TrimSpace(tmp.Paging) == "" {
		tmp.Paging = m.Paging
	}

	var files []string
	for _, s := range tmp.Slides {
		if s = strings.TrimSpace(s); s != "" {
			files = append(files, s)
		}
	}
	if len(files) == 0 {
		return m, ErrNoSlides
	}
	tmp.Slides = files

	return tmp, nil
}
