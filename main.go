package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/coral"
	"github.com/muesli/termenv"
	xterm "golang.org/x/term"

	"github.com/the-rileyj/gen-cyber-front-end/internal/config"
	"github.com/the-rileyj/gen-cyber-front-end/internal/deck"
	"github.com/the-rileyj/gen-cyber-front-end/internal/logging"
	"github.com/the-rileyj/gen-cyber-front-end/internal/model"
	"github.com/the-rileyj/gen-cyber-front-end/internal/render"
	"github.com/the-rileyj/gen-cyber-front-end/internal/server"
	"github.com/the-rileyj/gen-cyber-front-end/internal/term"
	"github.com/the-rileyj/gen-cyber-front-end/internal/theme"
	"github.com/the-rileyj/gen-cyber-front-end/internal/web"
)

var (
	// Version is set at build time.
	Version = "dev"

	cfg        = config.New()
	configFile string
	verbosity  int

	rootCmd = &coral.Command{
		Use:   "deck",
		Short: "Front-End Web Development, in your terminal",
		Long: `deck presents the Front-End Web Development slides.

Run it without a command to present in this terminal, or use serve and http
to share the deck over SSH or the web.`,
		Args:    coral.NoArgs,
		Version: Version,
		PersistentPreRunE: func(cmd *coral.Command, args []string) error {
			if err := config.Load(cfg, configFile); err != nil {
				return err
			}
			logging.SetupLogger(os.Stderr, verbosity, cfg.GetString("log.level"))
			return nil
		},
		RunE:          runPresent,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	serveCmd = &coral.Command{
		Use:   "serve",
		Short: "Serve the presentation over SSH",
		Args:  coral.NoArgs,
		RunE:  runServe,
	}

	httpCmd = &coral.Command{
		Use:   "http",
		Short: "Serve the presentation as a web page",
		Args:  coral.NoArgs,
		RunE:  runHTTP,
	}

	renderCmd = &coral.Command{
		Use:   "render",
		Short: "Print every slide to stdout",
		Args:  coral.NoArgs,
		RunE:  runRender,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $XDG_CONFIG_HOME/deck/config.yaml)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase verbosity (-v info, -vv debug)")

	serveCmd.Flags().String("host", "localhost", "host to listen on")
	serveCmd.Flags().IntP("port", "p", 53531, "port to listen on")
	serveCmd.Flags().String("keyPath", "deck", "path of the SSH host key")
	bind("ssh.host", serveCmd, "host")
	bind("ssh.port", serveCmd, "port")
	bind("ssh.key_path", serveCmd, "keyPath")

	httpCmd.Flags().StringP("addr", "a", ":8080", "address to listen on")
	httpCmd.Flags().BoolP("debug", "d", false, "allow cross-origin requests")
	httpCmd.Flags().String("token", "", "bearer token of the slides API")
	bind("http.addr", httpCmd, "addr")
	bind("http.debug", httpCmd, "debug")
	bind("http.token", httpCmd, "token")

	renderCmd.Flags().StringP("format", "f", "ansi", "output format: ansi or html")
	renderCmd.Flags().IntP("width", "w", 0, "wrap width, 0 uses the terminal width")
	bind("render.format", renderCmd, "format")
	bind("render.width", renderCmd, "width")

	rootCmd.AddCommand(serveCmd, httpCmd, renderCmd)
}

func bind(key string, cmd *coral.Command, flag string) {
	if err := cfg.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
		panic(err)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runPresent(cmd *coral.Command, args []string) error {
	p, err := deck.Builtin()
	if err != nil {
		return err
	}

	// the presenter owns the terminal, logs go to a file
	if f, err := logging.File(); err == nil {
		defer f.Close()
		logging.SetupLogger(f, verbosity, cfg.GetString("log.level"))
	} else {
		logging.SetupLogger(io.Discard, 0, "")
	}

	m, err := model.New(p, term.Detect(), lipgloss.DefaultRenderer())
	if err != nil {
		return err
	}

	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func runServe(cmd *coral.Command, args []string) error {
	p, err := deck.Builtin()
	if err != nil {
		return err
	}

	s, err := server.NewServer(
		cfg.GetString("ssh.key_path"),
		cfg.GetString("ssh.host"),
		cfg.GetInt("ssh.port"),
		p,
		log.Default(),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return s.Start(ctx)
}

func runHTTP(cmd *coral.Command, args []string) error {
	p, err := deck.Builtin()
	if err != nil {
		return err
	}

	s, err := web.New(p, web.Options{
		Debug:  cfg.GetBool("http.debug"),
		Token:  cfg.GetString("http.token"),
		Logger: log.Default(),
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return s.Start(ctx, cfg.GetString("http.addr"))
}

var errUnknownFormat = errors.New("unknown format")

func runRender(cmd *coral.Command, args []string) error {
	p, err := deck.Builtin()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	switch format := strings.ToLower(cfg.GetString("render.format")); format {
	case "html":
		page, err := render.Page(render.Render(p.Catalog, p.Theme, render.NewHTML()), p.Meta.Title)
		if err != nil {
			return err
		}
		_, err = io.WriteString(out, page)
		return err

	case "ansi":
		width, profile := outputSize(cfg.GetInt("render.width"))
		e, err := render.NewTerminal(p.Theme, profile, width)
		if err != nil {
			return err
		}

		r := lipgloss.DefaultRenderer()
		r.SetColorProfile(profile)
		rule := r.NewStyle().
			Foreground(lipgloss.Color(p.Theme.Hex(theme.Tertiary))).
			Render(strings.Repeat("─", max(width, 1)))

		d := render.Render(p.Catalog, p.Theme, e)
		for i, s := range d.Slides {
			if i > 0 {
				fmt.Fprintln(out, rule)
			}
			fmt.Fprint(out, s.Body)
		}
		return nil

	default:
		return fmt.Errorf("%w %q, want ansi or html", errUnknownFormat, format)
	}
}

// outputSize picks the wrap width and color profile of stdout.
func outputSize(width int) (int, termenv.Profile) {
	fd := int(os.Stdout.Fd())
	if !xterm.IsTerminal(fd) {
		if width <= 0 {
			width = 80
		}
		return width, termenv.Ascii
	}

	if width <= 0 {
		width = 80
		if w, _, err := xterm.GetSize(fd); err == nil {
			width = w
		}
	}
	return width, termenv.EnvColorProfile()
}

func contextOf(cmd *coral.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
