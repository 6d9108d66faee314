package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"aievents/internal/config"
	"aievents/internal/filter"
	"aievents/internal/logger"
	"aievents/internal/metrics"
	"aievents/internal/render"
	"aievents/internal/scrape"
	"aievents/internal/server"
)

var (
	flagConfig  string
	flagListen  string
	flagVerbose bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aievents-server",
		Short: "Serve AI-related events scraped from the Microsoft events page",
		Long: `An HTTP service that renders the Microsoft events listing in a headless
browser, expands paginated content, extracts event cards, filters them to
AI-related events by keyword, and serves the result from an authenticated
endpoint.

The shared secret must be provided via the API_KEY environment variable
(a .env file in the working directory is honored); the server refuses to
start without it.`,
		SilenceUsage: true,
		RunE:         runServe,
	}

	cmd.Flags().StringVar(&flagConfig, "config", "", "Config file (default: ./aievents.yaml if present)")
	cmd.Flags().StringVar(&flagListen, "listen", "", "Listen address (overrides config)")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	return cmd
}

// runServe wires configuration into the pipeline and serves until
// interrupted.
func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if flagListen != "" {
		cfg.ListenAddr = flagListen
	}
	if flagVerbose {
		cfg.Verbose = true
	}

	level := logger.LevelInfo
	if cfg.Verbose {
		level = logger.LevelDebug
	}
	log := logger.New(level, os.Stdout)
	logger.SetDefault(log)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	renderer, err := buildRenderer(cfg, log)
	if err != nil {
		return err
	}

	keywords := filter.NewKeywordSet(cfg.Keywords)
	pipeline := scrape.New(renderer, keywords, cfg.EventsURL, log, m)

	srv := server.New(server.Config{
		APIKey:     cfg.APIKey,
		ListenAddr: cfg.ListenAddr,
	}, pipeline, log, m, registry)

	log.Info("starting aievents server", logger.Fields{
		"listen":   cfg.ListenAddr,
		"url":      cfg.EventsURL,
		"mode":     cfg.Scrape.Mode,
		"keywords": len(cfg.Keywords),
	})

	return srv.Run(server.SignalContext())
}

// buildRenderer constructs the renderer selected by scrape.mode.
func buildRenderer(cfg *config.Config, log *logger.Logger) (render.Renderer, error) {
	switch cfg.Scrape.Mode {
	case config.ModeStatic:
		return render.NewStatic(cfg.Scrape.UserAgent, cfg.Scrape.NavTimeout), nil
	case config.ModeBrowser:
		opts := render.BrowserOptions{
			LoadMoreAttempts: cfg.Scrape.LoadMoreAttempts,
			LoadMoreSettle:   cfg.Scrape.LoadMoreSettle,
			IdleQuiet:        cfg.Scrape.IdleQuiet,
			ScrollPasses:     cfg.Scrape.ScrollPasses,
			ScrollSettle:     cfg.Scrape.ScrollSettle,
			NavTimeout:       cfg.Scrape.NavTimeout,
			UserAgent:        cfg.Scrape.UserAgent,
			Gate:             render.NewGate(cfg.Scrape.MaxSessions, cfg.Scrape.LaunchRate),
		}
		if cfg.Scrape.RespectRobots {
			opts.Robots = render.NewRobotsChecker(cfg.Scrape.UserAgent, 10*time.Second)
		}
		return render.NewBrowser(opts, log), nil
	default:
		return nil, fmt.Errorf("unknown scrape mode: %q", cfg.Scrape.Mode)
	}
}
