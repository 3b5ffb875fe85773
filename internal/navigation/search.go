package navigation

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/the-rileyj/gen-cyber-front-end/internal/slides"
)

// Model is the part of a presentation search needs.
type Model interface {
	CurrentPage() int
	SetPage(page int) tea.Cmd
	Pages() []slides.Slide
}

// Search is the search bar of the presenter.
type Search struct {
	// Active reports whether the search bar has focus.
	Active          bool
	SearchTextInput textinput.Model
}

const ignoreCaseSuffix = "/i"

// NewSearch creates a search bar styled with color through r. A nil r means
// the default renderer.
func NewSearch(r *lipgloss.Renderer, color lipgloss.Color) Search {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	ti := textinput.New()
	ti.Placeholder = "search"
	ti.Prompt = "/"
	ti.PromptStyle = r.NewStyle().Foreground(color)
	ti.TextStyle = r.NewStyle().Foreground(color)
	ti.PlaceholderStyle = r.NewStyle().Foreground(lipgloss.Color("240"))
	ti.Cursor.Style = r.NewStyle().Foreground(color)
	ti.Cursor.TextStyle = r.NewStyle()
	return Search{SearchTextInput: ti}
}

// Query returns the text in the search bar.
func (s *Search) Query() string {
	return s.SearchTextInput.Value()
}

// SetQuery replaces the text in the search bar.
func (s *Search) SetQuery(query string) {
	s.SearchTextInput.SetValue(query)
}

// Begin opens the search bar.
func (s *Search) Begin() {
	s.Active = true
	s.SetQuery("")
}

// Done closes the search bar.
func (s *Search) Done() {
	s.Active = false
}

// Execute moves m to the next slide matching the query, looking after the
// current page first and wrapping around. A /i suffix ignores case.
func (s *Search) Execute(m Model) {
	defer s.Done()

	expr := s.Query()
	if expr == "" {
		return
	}
	if strings.HasSuffix(expr, ignoreCaseSuffix) {
		expr = "(?i)" + strings.TrimSuffix(expr, ignoreCaseSuffix)
	}

	pattern, err := regexp.Compile(expr)
	if err != nil {
		return
	}

	pages := m.Pages()
	if len(pages) == 0 {
		return
	}
	current := m.CurrentPage()

	for i := 1; i <= len(pages); i++ {
		page := (current + i) % len(pages)
		if pattern.MatchString(pages[page].Content) {
			m.SetPage(page)
			return
		}
	}
}
