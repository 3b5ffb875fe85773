package model

import (
	"fmt"
	"image"
	"io/fs"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/the-rileyj/gen-cyber-front-end/internal/code"
	"github.com/the-rileyj/gen-cyber-front-end/internal/deck"
	"github.com/the-rileyj/gen-cyber-front-end/internal/navigation"
	"github.com/the-rileyj/gen-cyber-front-end/internal/render"
	"github.com/the-rileyj/gen-cyber-front-end/internal/slides"
	"github.com/the-rileyj/gen-cyber-front-end/internal/term"
	"github.com/the-rileyj/gen-cyber-front-end/internal/theme"
	"github.com/the-rileyj/gen-cyber-front-end/styles"
)

const (
	headerCells = 3
	statusLines = 1
)

// Model represents the model of this presentation, which contains all the
// state related to the current slides.
type Model struct {
	Slides  []slides.Slide
	Page    int
	Author  string
	Date    string
	Paging  string
	Theme   *theme.Theme
	Catalog deck.Catalog
	// Assets resolves the images referenced by slides.
	Assets   fs.FS
	viewport viewport.Model
	buffer   string
	// VirtualText is used for additional information that is not part of the
	// original slides, it will be displayed on a slide and reset on page change
	VirtualText      string
	Search           navigation.Search
	TerminalProtocol term.TerminalProtocol
	Profile          termenv.Profile
	// Renderer styles output for the terminal the presentation is shown on.
	Renderer *lipgloss.Renderer
	// Banners draws the first heading of each slide as an image when the
	// terminal can show images.
	Banners bool

	styles styles.Styles
	logger *log.Logger
}

// New creates the model of a presentation and renders its slides. Colors
// follow the profile of r, a nil r means the default renderer.
func New(p deck.Presentation, protocol term.TerminalProtocol, r *lipgloss.Renderer) (Model, error) {
	th := p.Theme
	if th == nil {
		th = theme.Default()
	}
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}

	m := Model{
		Author:           p.Meta.Author,
		Date:             p.Meta.Date,
		Paging:           p.Meta.Paging,
		Theme:            th,
		Catalog:          p.Catalog,
		Assets:           p.Assets,
		TerminalProtocol: protocol,
		Profile:          r.ColorProfile(),
		Renderer:         r,
		Banners:          protocol.SupportsImages(),
		Search:           navigation.NewSearch(r, lipgloss.Color(th.Hex(theme.Tertiary))),
		styles:           styles.New(r, th),
		logger:           log.Default().WithPrefix("presenter"),
	}
	if err := m.Load(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return autoExecuteCodeMsg{} }
}

// Load renders every slide of the catalog for the current terminal size.
func (m *Model) Load() error {
	records := m.Catalog.Records()
	texts := make([]string, len(records))
	headers := make([]image.Image, len(records))

	for i, r := range records {
		texts[i] = r.Text
		if m.Banners {
			headers[i], texts[i] = preprocessHeader(r.Text, m.Theme)
		}
	}

	catalog, err := deck.FromText(texts...)
	if err != nil {
		return err
	}

	engine, err := render.NewTerminal(m.Theme, m.Profile, m.viewport.Width)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}

	d := render.Render(catalog, m.Theme, engine)
	for i := range d.Slides {
		d.Slides[i].Content = records[i].Text
		d.Slides[i].Header = headers[i]
		if headers[i] != nil {
			d.Slides[i].HeaderStr = code.RenderImage(headers[i], m.TerminalProtocol, headerCells, m.viewport.Width)
		}
	}
	m.Slides = d.Slides

	if m.Page >= len(m.Slides) {
		m.Page = len(m.Slides) - 1
	}

	m.logger.Debug("slides rendered", "count", len(m.Slides), "width", m.viewport.Width)
	return nil
}

// ExecuteCode runs every block on the current slide and shows the output.
func (m *Model) ExecuteCode() {
	blocks, err := code.Parse(m.Slides[m.Page].Content)
	if err != nil {
		// We couldn't parse the code block on the screen
		m.VirtualText = "\n" + err.Error()
		return
	}
	var outs []string

	for _, block := range blocks {
		res := code.Execute(block, m.codeOptions())
		outs = append(outs, res.Out)
	}
	m.VirtualText = strings.TrimSpace(strings.Join(outs, "\n"))
}

// AutoExecuteCode shows the presentation blocks and images of the current
// slide.
func (m *Model) AutoExecuteCode() {
	var outs []string

	if m.TerminalProtocol.SupportsImages() {
		for _, ref := range m.Slides[m.Page].Images {
			res := code.Execute(code.Block{Language: "img", Code: ref}, m.codeOptions())
			if res.ExitCode != 0 {
				m.logger.Warn("could not show image", "path", ref, "page", m.Page)
			}
			outs = append(outs, res.Out)
		}
	}

	blocks, _ := code.Parse(m.Slides[m.Page].Content)
	for _, block := range blocks {
		if !code.IsPresentationBlock(block.Language) {
			continue
		}
		if block.Language == "img" && !m.TerminalProtocol.SupportsImages() {
			continue
		}
		outs = append(outs, code.Execute(block, m.codeOptions()).Out)
	}

	m.VirtualText = strings.TrimSpace(strings.Join(outs, "\n"))
}

func (m Model) codeOptions() code.Options {
	return code.Options{
		Assets:         m.Assets,
		Protocol:       m.TerminalProtocol,
		AvailableCells: m.GetAvailableCells(),
		Width:          m.viewport.Width,
		Accent:         lipgloss.Color(m.Theme.Hex(theme.Tertiary)),
		Renderer:       m.Renderer,
	}
}

type autoExecuteCodeMsg struct{}

// Update updates the presentation model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height
		m.VirtualText = ""
		if err := m.Load(); err != nil {
			m.logger.Error("could not render slides", "err", err)
		}
		return m, ClearScreen

	case autoExecuteCodeMsg:
		m.AutoExecuteCode()
		return m, nil

	case tea.KeyMsg:
		keyPress := msg.String()

		if m.Search.Active {
			switch msg.Type {
			case tea.KeyEnter:
				// execute current buffer
				if m.Search.Query() == "" {
					m.Search.Done()
					return m, nil
				}
				return m, m.search()
			case tea.KeyCtrlC, tea.KeyEscape:
				// cancel search
				m.Search.SetQuery("")
				m.Search.Done()
				return m, nil
			}

			var cmd tea.Cmd
			m.Search.SearchTextInput, cmd = m.Search.SearchTextInput.Update(msg)
			return m, cmd
		}

		switch keyPress {
		case "/":
			// Begin search
			m.Search.Begin()
			m.Search.SearchTextInput.Focus()
			return m, nil
		case "ctrl+n":
			// Go to next occurrence
			return m, m.search()
		case "ctrl+x":
			m.VirtualText = ""
			return m, ClearScreen
		case "ctrl+e":
			m.ExecuteCode()
			return m, nil
		case "y":
			blocks, err := code.Parse(m.Slides[m.Page].Content)
			if err != nil {
				return m, nil
			}
			for _, b := range blocks {
				if err := clipboard.WriteAll(b.Code); err != nil {
					m.logger.Warn("could not copy code block", "err", err)
				}
			}
			return m, nil
		case "ctrl+c", "q":
			return m, tea.Quit
		default:
			newState := navigation.Navigate(navigation.State{
				Buffer:      m.buffer,
				Page:        m.Page,
				TotalSlides: len(m.Slides),
			}, keyPress)
			m.buffer = newState.Buffer
			return m, m.SetPage(newState.Page)
		}
	}
	return m, nil
}

func (m *Model) search() tea.Cmd {
	page := m.Page
	m.Search.Execute(m)
	if m.Page == page {
		return nil
	}
	return ClearScreen
}

// GetAvailableCells returns the number of rows left under the current slide.
func (m Model) GetAvailableCells() int {
	slide := m.GetSlide()
	return max(m.viewport.Height-lipgloss.Height(slide)-statusLines, 0)
}

// GetSlide returns the current slide with its banner and any virtual text.
func (m Model) GetSlide() string {
	currSlide := m.Slides[m.Page]

	body := currSlide.Body
	if m.VirtualText != "" {
		body += "\n" + m.VirtualText
	}
	return currSlide.HeaderStr + m.styles.Slide.Render(body)
}

// GetStatusLine renders the search bar or the author and date, followed by
// the page number.
func (m Model) GetStatusLine() string {
	var left string
	if m.Search.Active {
		left = m.Search.SearchTextInput.View()
	} else {
		left = m.styles.Author.Render(m.Author) + m.styles.Date.Render(m.Date)
	}

	right := m.styles.Page.Render(m.paging())
	return m.styles.Status.Render(styles.JoinHorizontal(left, right, m.viewport.Width-2))
}

// View renders the current slide in the presentation and the status bar which
// contains the author, date, and pagination information.
func (m Model) View() string {
	return styles.JoinVertical(
		m.GetSlide(),
		m.GetStatusLine(),
		m.viewport.Height,
	)
}

func (m *Model) paging() string {
	switch strings.Count(m.Paging, "%d") {
	case 2:
		return fmt.Sprintf(m.Paging, m.Page+1, len(m.Slides))
	case 1:
		return fmt.Sprintf(m.Paging, m.Page+1)
	default:
		return m.Paging
	}
}

// Size returns the width and height of the terminal the model draws on.
func (m Model) Size() (width, height int) {
	return m.viewport.Width, m.viewport.Height
}

// CurrentPage returns the current page the presentation is on.
func (m *Model) CurrentPage() int {
	return m.Page
}

// ClearScreen clears the terminal and then shows the presentation blocks of
// the new page.
var ClearScreen = tea.Sequence(tea.ClearScreen, func() tea.Msg {
	return autoExecuteCodeMsg{}
})

// SetPage sets which page the presentation should render.
func (m *Model) SetPage(page int) tea.Cmd {
	if m.Page == page {
		return nil
	}

	m.VirtualText = ""
	m.Page = page

	return ClearScreen
}

// Pages returns all the slides in the presentation.
func (m *Model) Pages() []slides.Slide {
	return m.Slides
}
