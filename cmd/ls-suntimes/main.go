// Command ls-suntimes computes sunrise, sunset, twilight and solar noon for a
// location, serves them over HTTP, or follows the sun live in a terminal UI.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	_ "time/tzdata"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-suntimes/internal/backend"
	"github.com/litescript/ls-suntimes/internal/config"
	"github.com/litescript/ls-suntimes/internal/logging"
	"github.com/litescript/ls-suntimes/internal/server"
	"github.com/litescript/ls-suntimes/internal/state"
	"github.com/litescript/ls-suntimes/internal/ui"
	"github.com/litescript/ls-suntimes/internal/version"
)

const (
	minRefresh = 100 * time.Millisecond
	maxRefresh = 5 * time.Minute
)

// options holds the parsed command line.
type options struct {
	cfg *config.Config

	date      string
	compare   string
	days      int
	at        string
	watch     time.Duration
	jsonOut   bool
	plain     bool
	elevation bool
	serve     bool
	tui       bool
	list      bool
	showVer   bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	if opts.showVer {
		fmt.Fprintf(stdout, "ls-suntimes %s\n", version.Version)
		return 0
	}
	if opts.list {
		for _, b := range backend.All() {
			fmt.Fprintf(stdout, "%-12s %s\n", b.Name, b.Description)
		}
		return 0
	}

	// Set up logging
	logger := logging.New(logging.ParseLevel(opts.cfg.LogLevel))
	logger.SetOutput(stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch {
	case opts.serve:
		if err := runServer(ctx, opts.cfg, logger); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	case opts.tui || (!opts.headless() && isTerminal(stdout)):
		if err := runTUI(opts.cfg, logger); err != nil {
			fmt.Fprintf(stderr, "Error running TUI: %v\n", err)
			return 1
		}
		return 0
	}

	if err := runHeadless(ctx, opts, stdout, logger); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// headless reports whether any output flag asks for a non-interactive run.
func (o options) headless() bool {
	return o.date != "" || o.compare != "" || o.days > 0 || o.at != "" ||
		o.watch > 0 || o.jsonOut || o.plain || o.elevation
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("ls-suntimes", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	configPath := fs.String("config", "", "JSON configuration file")
	lat := fs.Float64("lat", 0, "Latitude in degrees, north positive")
	lon := fs.Float64("lon", 0, "Longitude in degrees, east positive")
	name := fs.String("name", "", "Display name of the location")
	zone := fs.String("zone", "", "Time zone for output (IANA name, Local or UTC)")
	backendName := fs.String("backend", "", "Computation backend (see -backends)")
	refresh := fs.Duration("refresh", 0, "TUI refresh interval (e.g., 1s)")
	listen := fs.String("listen", "", "HTTP listen address for -serve")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")
	tlsHosts := fs.String("tls-hosts", "", "Comma-separated host names to serve over HTTPS with ACME certificates")

	fs.StringVar(&opts.date, "date", "", "Date: YYYY-MM-DD, today, tomorrow, yesterday or a season keyword")
	fs.StringVar(&opts.compare, "compare", "", "Second backend to print side by side")
	fs.IntVar(&opts.days, "days", 0, "Print a table of this many days")
	fs.StringVar(&opts.at, "at", "", "Print the sun's position at this RFC 3339 instant")
	fs.DurationVar(&opts.watch, "watch", 0, "Print position and phase changes at this interval")
	fs.BoolVar(&opts.jsonOut, "json", false, "Write JSON instead of a table")
	fs.BoolVar(&opts.plain, "table", false, "Write a plain text table even on a terminal")
	fs.BoolVar(&opts.elevation, "elevation", false, "Print the sun's current position")
	fs.BoolVar(&opts.serve, "serve", false, "Run the HTTP server")
	fs.BoolVar(&opts.tui, "tui", false, "Run the terminal dashboard")
	fs.BoolVar(&opts.list, "backends", false, "List available backends")
	fs.BoolVar(&opts.showVer, "version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return opts, err
		}
		cfg = loaded
	}

	// Flags override the file, but only when given
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "lat":
			cfg.Latitude = *lat
			cfg.Name = ""
		case "lon":
			cfg.Longitude = *lon
			cfg.Name = ""
		case "zone":
			cfg.Zone = *zone
		case "backend":
			cfg.Backend = *backendName
		case "refresh":
			cfg.RefreshInterval = config.Duration(clampRefresh(*refresh))
		case "listen":
			cfg.Listen = *listen
		case "log-level":
			cfg.LogLevel = *logLevel
		case "tls-hosts":
			cfg.TLSHosts = nil
			for _, h := range strings.Split(*tlsHosts, ",") {
				if h = strings.TrimSpace(h); h != "" {
					cfg.TLSHosts = append(cfg.TLSHosts, h)
				}
			}
		}
	})
	if *name != "" {
		cfg.Name = *name
	}
	if err := cfg.Validate(); err != nil {
		return opts, err
	}
	if opts.compare != "" {
		if _, err := backend.Lookup(opts.compare); err != nil {
			return opts, err
		}
	}
	if opts.days < 0 || opts.days > server.MaxDays {
		return opts, server.ErrTooManyDays
	}

	opts.cfg = cfg
	return opts, nil
}

func clampRefresh(d time.Duration) time.Duration {
	if d < minRefresh {
		return minRefresh
	}
	if d > maxRefresh {
		return maxRefresh
	}
	return d
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func runServer(ctx context.Context, cfg *config.Config, logger *logging.Logger) error {
	srv, err := server.New(cfg, logger)
	if err != nil {
		return err
	}
	return srv.ListenAndServe(ctx)
}

func runTUI(cfg *config.Config, logger *logging.Logger) error {
	zone, err := cfg.Location()
	if err != nil {
		return err
	}
	b, err := backend.Lookup(cfg.Backend)
	if err != nil {
		return err
	}

	// Log lines would tear the alternate screen
	logger.SetOutput(io.Discard)

	tracker := state.NewTracker(state.Config{
		Latitude:      cfg.Latitude,
		Longitude:     cfg.Longitude,
		Times:         b.Times,
		MaxHistoryLen: cfg.HistoryLength,
		MaxEvents:     cfg.MaxEvents,
		Logger:        logger.Named("tracker"),
	})
	tracker.Update(time.Now())

	model := ui.New(tracker, ui.Options{
		Name:            cfg.Name,
		Latitude:        cfg.Latitude,
		Longitude:       cfg.Longitude,
		Zone:            zone,
		Backend:         b.Name,
		RefreshInterval: time.Duration(cfg.RefreshInterval),
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
