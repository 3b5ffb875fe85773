// Package server presents a deck to SSH clients. Every session gets its own
// presenter, sessions never share state.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"slices"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	bm "github.com/charmbracelet/wish/bubbletea"
	lm "github.com/charmbracelet/wish/logging"

	"github.com/the-rileyj/gen-cyber-front-end/internal/deck"
	"github.com/the-rileyj/gen-cyber-front-end/internal/model"
	"github.com/the-rileyj/gen-cyber-front-end/internal/term"
)

// Server hosts a presentation over SSH.
type Server struct {
	host         string
	port         int
	presentation deck.Presentation
	logger       *log.Logger
	ssh          *ssh.Server
	// renderer styles the output of one session for the client's terminal.
	renderer func(ssh.Session) *lipgloss.Renderer
}

// NewServer creates a new server.
func NewServer(keyPath, host string, port int, presentation deck.Presentation, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		host:         host,
		port:         port,
		presentation: presentation,
		logger:       logger.WithPrefix("ssh"),
		renderer:     bm.MakeRenderer,
	}

	sv, err := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(host, strconv.Itoa(port))),
		wish.WithHostKeyPath(keyPath),
		wish.WithMiddleware(
			bm.Middleware(s.handler),
			activeterm.Middleware(),
			lm.MiddlewareWithLogger(s.logger),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create ssh server: %w", err)
	}
	s.ssh = sv
	return s, nil
}

// handler creates the presenter of one session.
func (s *Server) handler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()

	m, err := s.presenter(sess.Environ(), pty, s.renderer(sess))
	if err != nil {
		s.logger.Error("could not create presenter", "err", err, "user", sess.User())
		return nil, nil
	}
	return m, []tea.ProgramOption{tea.WithAltScreen()}
}

// presenter builds a presenter for a client with the given environment and
// pty, drawing through r.
func (s *Server) presenter(environ []string, pty ssh.Pty, r *lipgloss.Renderer) (model.Model, error) {
	env := append(slices.Clip(environ), "TERM="+pty.Term)
	protocol := term.DetectEnv(term.Environ(env))

	m, err := model.New(s.presentation, protocol, r)
	if err != nil {
		return model.Model{}, err
	}

	updated, _ := m.Update(tea.WindowSizeMsg{Width: pty.Window.Width, Height: pty.Window.Height})
	return updated.(model.Model), nil
}

// Addr returns the address the server listens on.
func (s *Server) Addr() string {
	return s.ssh.Addr
}

// Start listens until ctx is done, then shuts the server down.
func (s *Server) Start(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.ssh.Addr)
		errc <- s.ssh.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.logger.Info("shutting down")
	if err := s.ssh.Shutdown(shutdownCtx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return err
	}
	return nil
}
