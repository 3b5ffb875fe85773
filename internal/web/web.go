// Package web serves a deck as a single HTML page, together with its image
// assets and a small JSON API.
package web

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/the-rileyj/gen-cyber-front-end/internal/deck"
	"github.com/the-rileyj/gen-cyber-front-end/internal/render"
)

// Options configure a Server.
type Options struct {
	// Debug allows cross-origin requests.
	Debug bool
	// Token guards the protected API. An empty token denies every request.
	Token  string
	Logger *log.Logger
}

// Server serves one presentation.
type Server struct {
	presentation deck.Presentation
	rendered     render.Deck
	index        []byte
	opts         Options
	logger       *log.Logger
	router       chi.Router
}

// envelope is the JSON shape of API responses.
type envelope struct {
	Data any    `json:"data"`
	Err  bool   `json:"err"`
	Msg  string `json:"msg"`
}

// New renders p to HTML and sets up the routes.
func New(p deck.Presentation, opts Options) (*Server, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	d := render.Render(p.Catalog, p.Theme, render.NewHTML())
	title := p.Meta.Title
	if title == "" {
		title = p.Meta.Author
	}
	page, err := render.Page(d, title)
	if err != nil {
		return nil, err
	}

	s := &Server{
		presentation: p,
		rendered:     d,
		index:        []byte(page),
		opts:         opts,
		logger:       logger.WithPrefix("http"),
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(Recoverer(s.logger))
	r.Use(Logger(s.logger))
	if s.opts.Debug {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"*"},
		}))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/hello", s.hello)
		r.Post("/hello", s.hello)

		r.With(Authenticate(s.authorized)).Get("/slides", s.slides)
	})

	r.Get("/", s.static)
	r.Get("/*", s.static)

	return r
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on addr until ctx is done.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

// authorized checks the bearer token of r.
func (s *Server) authorized(r *http.Request) bool {
	if s.opts.Token == "" {
		return false
	}
	got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(strings.TrimSpace(got)), []byte(s.opts.Token)) == 1
}

// hello answers GET with "hello" and a POSTed {"name": ...} with
// "hello <name>".
func (s *Server) hello(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		_, _ = w.Write([]byte("hello"))
		return
	}

	name, err := helloName(r)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, envelope{
			Data: struct{}{},
			Err:  true,
			Msg:  fmt.Sprintf("Failed to say hello: %v", err),
		})
		return
	}
	_, _ = w.Write([]byte("hello " + name))
}

func helloName(r *http.Request) (string, error) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode body: %w", err)
	}
	name, ok := body["name"]
	if !ok || name == nil {
		return "", errors.New(`missing "name"`)
	}
	return fmt.Sprint(name), nil
}

type slideJSON struct {
	Index  int      `json:"index"`
	Text   string   `json:"text"`
	Images []string `json:"images"`
}

type deckJSON struct {
	Title  string            `json:"title"`
	Author string            `json:"author"`
	Date   string            `json:"date"`
	Count  int               `json:"count"`
	Slides []slideJSON       `json:"slides"`
	Colors map[string]string `json:"colors"`
	Fonts  map[string]string `json:"fonts"`
}

// slides describes the deck as JSON.
func (s *Server) slides(w http.ResponseWriter, r *http.Request) {
	out := deckJSON{
		Title:  s.presentation.Meta.Title,
		Author: s.presentation.Meta.Author,
		Date:   s.presentation.Meta.Date,
		Count:  s.rendered.Len(),
		Colors: s.rendered.Theme.Colors(),
		Fonts:  s.rendered.Theme.Fonts(),
	}
	for i, sl := range s.rendered.Slides {
		images := sl.Images
		if images == nil {
			images = []string{}
		}
		out.Slides = append(out.Slides, slideJSON{Index: i, Text: sl.Content, Images: images})
	}
	writeJSON(w, http.StatusOK, envelope{Data: out})
}

// static serves an existing asset for any path, and the deck page for other
// GET requests that do not ask for JSON.
func (s *Server) static(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(path.Clean("/"+chi.URLParam(r, "*")), "/")

	if name == "" || name == "index.html" {
		s.writeIndex(w)
		return
	}

	if s.presentation.Assets != nil {
		if info, err := fs.Stat(s.presentation.Assets, name); err == nil && !info.IsDir() {
			http.ServeFileFS(w, r, s.presentation.Assets, name)
			return
		}
	}

	if !strings.EqualFold(r.Header.Get("Content-Type"), "json") {
		s.writeIndex(w)
		return
	}

	http.NotFound(w, r)
}

func (s *Server) writeIndex(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(s.index)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
