package render

import (
	"bytes"
	"fmt"
	"html/template"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/the-rileyj/gen-cyber-front-end/internal/code"
	"github.com/the-rileyj/gen-cyber-front-end/internal/theme"
)

// HTML renders slides as HTML fragments with goldmark.
type HTML struct {
	md goldmark.Markdown
}

// NewHTML creates an HTML engine. Raw HTML in slides is passed through, as
// slides are trusted build-time content.
func NewHTML() *HTML {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("monokai"),
				highlighting.WithFormatOptions(
					chromahtml.WithLineNumbers(false),
				),
			),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
	return &HTML{md: md}
}

// Body renders text to an HTML fragment.
func (h *HTML) Body(text string) (string, error) {
	var buf bytes.Buffer
	if err := h.md.Convert([]byte(code.HideComments(text)), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}

type pageData struct {
	Title  string
	Colors []cssVar
	Fonts  []cssVar
	Slides []template.HTML
}

type cssVar struct {
	Name  template.CSS
	Value template.CSS
}

// Page wraps every slide of d in one themed HTML document. Slide bodies must
// come from the HTML engine.
func Page(d Deck, title string) (string, error) {
	th := d.Theme
	if th == nil {
		th = theme.Default()
	}

	data := pageData{Title: title}
	for _, name := range th.ColorNames() {
		data.Colors = append(data.Colors, cssVar{Name: template.CSS(name), Value: template.CSS(th.Color(name))})
	}
	for _, role := range th.FontRoles() {
		data.Fonts = append(data.Fonts, cssVar{Name: template.CSS(role), Value: template.CSS(th.Font(role))})
	}
	for _, s := range d.Slides {
		data.Slides = append(data.Slides, template.HTML(s.Body))
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render page: %w", err)
	}
	return buf.String(), nil
}

var pageTemplate = template.Must(template.New("deck").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
:root {
{{- range .Colors}}
  --color-{{.Name}}: {{.Value}};
{{- end}}
{{- range .Fonts}}
  --font-{{.Name}}: {{.Value}};
{{- end}}
}
html, body { margin: 0; height: 100%; background: var(--color-primary); color: var(--color-secondary); font-family: var(--font-secondary), sans-serif; }
.deck { height: 100%; }
.slide { display: none; box-sizing: border-box; height: 100%; padding: 4rem; text-align: center; }
.slide.active { display: flex; flex-direction: column; justify-content: center; }
.slide h1, .slide h2, .slide h3 { font-family: var(--font-primary), sans-serif; color: var(--color-secondary); }
.slide a { color: var(--color-tertiary); }
.slide hr { border: 0; border-top: 2px solid var(--color-tertiary); width: 30%; }
.slide pre { text-align: left; margin: 0 auto; padding: 1rem; border-radius: 4px; }
.slide code { color: var(--color-tertiary); }
.slide img { max-width: 80%; max-height: 50vh; margin: 1rem auto; }
.progress { position: fixed; bottom: 1rem; right: 1rem; color: var(--color-quaternary); }
</style>
</head>
<body>
<div class="deck">
{{- range $i, $s := .Slides}}
<section class="slide" data-index="{{$i}}">
{{$s}}
</section>
{{- end}}
</div>
<div class="progress"></div>
<script>
(function () {
  var slides = document.querySelectorAll(".slide");
  var progress = document.querySelector(".progress");
  var page = parseInt(location.hash.slice(1), 10) || 0;
  function show(n) {
    page = Math.max(0, Math.min(slides.length - 1, n));
    slides.forEach(function (s, i) { s.classList.toggle("active", i === page); });
    progress.textContent = (page + 1) + " / " + slides.length;
    history.replaceState(null, "", "#" + page);
  }
  document.addEventListener("keydown", function (e) {
    if (["ArrowRight", "ArrowDown", "PageDown", " ", "l", "j"].indexOf(e.key) >= 0) show(page + 1);
    if (["ArrowLeft", "ArrowUp", "PageUp", "h", "k"].indexOf(e.key) >= 0) show(page - 1);
    if (e.key === "Home") show(0);
    if (e.key === "End") show(slides.length - 1);
  });
  show(page);
})();
</script>
</body>
</html>
`))
