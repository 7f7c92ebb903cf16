package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/bamsammich/covidspark/internal/chart"
	"github.com/bamsammich/covidspark/internal/config"
	"github.com/bamsammich/covidspark/internal/event"
	"github.com/bamsammich/covidspark/internal/fetch"
	"github.com/bamsammich/covidspark/internal/series"
	"github.com/bamsammich/covidspark/internal/stats"
	"github.com/bamsammich/covidspark/internal/ui"
	"github.com/bamsammich/covidspark/internal/ui/tui"
)

var version = "dev"

func main() {
	os.Exit(run())
}

// options holds the resolved command-line settings.
type options struct {
	metric     series.Metric
	scale      series.TimeScale
	state      string
	tui        bool
	quiet      bool
	verbose    bool
	logFile    string
	baseURL    string
	timeout    time.Duration
	retries    int
	width      int
	locale     string
	legacyDate bool
}

//nolint:gocyclo,revive // cyclomatic,cognitive-complexity: main CLI entry point orchestrates flag parsing and mode selection
func run() int {
	var (
		opts        options
		showVersion bool
	)

	rootCmd := &cobra.Command{
		Use:           "covidspark [flags]",
		Short:         "COVID-19 daily increases as a scrubbable terminal sparkline",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if showVersion {
				fmt.Fprintf(os.Stdout, "covidspark %s\n", version)
				return nil
			}

			// Load optional config file.
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			// Apply config defaults for flags not explicitly set on CLI.
			if err := applyConfigDefaults(cmd, cfg, &opts); err != nil {
				return fmt.Errorf("config: %w", err)
			}

			tag, err := language.Parse(opts.locale)
			if err != nil {
				return fmt.Errorf("invalid --locale %q: %w", opts.locale, err)
			}
			layout := chart.DateCorrected
			if opts.legacyDate {
				layout = chart.DateLegacy
			}
			formatter := chart.NewFormatter(tag, layout)

			isTTY := ui.IsTTY(os.Stdout.Fd())
			useTUI := opts.tui && isTTY && !opts.quiet

			// Configure logging. The TUI owns the terminal, so stderr
			// logging is off while it runs; --log still records everything.
			var logOut io.Writer = os.Stderr
			if useTUI {
				logOut = io.Discard
			}
			logLevel := slog.LevelWarn
			if opts.verbose {
				logLevel = slog.LevelDebug
			} else if !opts.quiet {
				logLevel = slog.LevelInfo
			}
			textHandler := slog.NewTextHandler(logOut, &slog.HandlerOptions{
				Level: logLevel,
			})
			var logHandler slog.Handler = textHandler
			if opts.logFile != "" {
				lf, lfErr := os.Create(opts.logFile)
				if lfErr != nil {
					return fmt.Errorf("open log file: %w", lfErr)
				}
				defer lf.Close()
				jsonHandler := slog.NewJSONHandler(lf, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})
				logHandler = ui.NewMultiHandler(textHandler, jsonHandler)
			}
			slog.SetDefault(slog.New(logHandler))

			// Set up context with signal handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			collector := stats.NewCollector()
			client, err := fetch.NewClient(fetch.ClientConfig{
				BaseURL: opts.baseURL,
				Timeout: opts.timeout,
				Retries: opts.retries,
				Stats:   collector,
			})
			if err != nil {
				return err
			}

			events := make(chan event.Event, 64)
			loader := fetch.NewLoader(client, events)

			// When --log is set, every event is recorded before the
			// presenter sees it.
			presenterEvents := (<-chan event.Event)(events)
			if opts.logFile != "" {
				presenterEvents = ui.TeeEvents(slog.Default(), events)
			}

			prefs := ui.Preferences{
				Metric:    opts.metric,
				TimeScale: opts.scale,
				State:     strings.ToUpper(opts.state),
			}

			width := opts.width
			if width <= 0 {
				width = ui.TermWidth(os.Stdout.Fd())
			}

			if opts.tui && !useTUI {
				slog.Warn("--tui requires a terminal, falling back to inline output")
			}

			slog.Debug("starting",
				"base_url", opts.baseURL,
				"metric", opts.metric.String(),
				"scale", opts.scale.String(),
				"state", prefs.State,
				"tui", useTUI,
			)

			var presenter ui.Presenter
			var presenterErr error

			if useTUI {
				// TUI mode: fetches run in background, TUI in foreground.
				// The channel stays open so refreshes can reuse it.
				loadCtx, loadCancel := context.WithCancel(ctx)
				defer loadCancel()

				presenter = tui.NewPresenter(tui.Config{
					Stats:     collector,
					Formatter: formatter,
					Prefs:     prefs,
					Theme:     cfg.Theme,
					Refresh: func() {
						loader.Go(loadCtx, event.National)
						loader.Go(loadCtx, event.States)
					},
				})
				loader.Start(loadCtx)

				// Blocks until user quits.
				presenterErr = presenter.Run(presenterEvents)

				loadCancel()
				loader.Wait()
				stop()
				if presenterErr != nil {
					return fmt.Errorf("tui: %w", presenterErr)
				}
			} else {
				// Inline mode: presenter in background, fetches in foreground.
				presenter = ui.NewPresenter(ui.Config{
					Writer:    os.Stdout,
					ErrWriter: os.Stderr,
					Stats:     collector,
					Formatter: formatter,
					Prefs:     prefs,
					Width:     width,
					Quiet:     opts.quiet,
				})

				var presenterWg sync.WaitGroup
				presenterWg.Add(1)
				go func() {
					defer presenterWg.Done()
					presenterErr = presenter.Run(presenterEvents)
				}()

				loader.Start(ctx)
				loader.Wait()
				stop()
				close(events)
				presenterWg.Wait()
			}

			if !opts.quiet {
				if summary := presenter.Summary(); summary != "" {
					fmt.Fprintln(os.Stderr, summary)
				}
			}

			// The only inline presenter failure is ui.ErrNoNationalData.
			if presenterErr != nil {
				slog.Error("no chart", "error", presenterErr)
				return &exitError{code: 1}
			}
			return nil
		},
	}

	// Version flag handled in RunE, but also register the flag.
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "print version and exit")

	registerFlags(rootCmd, &opts)

	rootCmd.MarkFlagsMutuallyExclusive("tui", "quiet")

	// Register subcommands.
	rootCmd.AddCommand(newDocsCmd())

	if err := rootCmd.Execute(); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	return 0
}

// registerFlags binds the root command's flags to opts.
func registerFlags(cmd *cobra.Command, opts *options) {
	cmd.Flags().Var(metricFlag{&opts.metric}, "metric", "metric to chart (positive, negative, death)")
	cmd.Flags().Var(scaleFlag{&opts.scale}, "scale", "time window (week, month, max)")
	cmd.Flags().StringVar(&opts.state, "state", "", "chart one state (two-letter code) instead of national")
	cmd.Flags().BoolVar(&opts.tui, "tui", false, "full-screen interactive chart")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "print only the highlighted value and date")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose logging")
	cmd.Flags().StringVar(&opts.logFile, "log", "", "write structured JSON log to FILE")
	cmd.Flags().StringVar(&opts.baseURL, "base-url", fetch.DefaultBaseURL, "data source API root")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "per-request timeout")
	cmd.Flags().IntVar(&opts.retries, "retries", 2, "extra attempts after a failed request")
	cmd.Flags().IntVar(&opts.width, "width", 0, "chart width in columns (default: terminal width)")
	cmd.Flags().StringVar(&opts.locale, "locale", "en-US", "BCP 47 tag for number grouping")
	cmd.Flags().BoolVar(&opts.legacyDate, "legacy-date", false, "use the five-digit-year date layout")
}

// applyConfigDefaults applies config file defaults for flags not explicitly
// set on the CLI.
//
//nolint:gocyclo // one branch per config key
func applyConfigDefaults(cmd *cobra.Command, cfg config.Config, opts *options) error {
	flags := cmd.Flags()
	d := cfg.Defaults

	if !flags.Changed("metric") && d.Metric != nil {
		m, err := series.ParseMetric(*d.Metric)
		if err != nil {
			return fmt.Errorf("defaults.metric: %w", err)
		}
		opts.metric = m
	}
	if !flags.Changed("scale") && d.Scale != nil {
		s, err := series.ParseTimeScale(*d.Scale)
		if err != nil {
			return fmt.Errorf("defaults.scale: %w", err)
		}
		opts.scale = s
	}
	if !flags.Changed("state") && d.State != nil {
		opts.state = *d.State
	}
	if !flags.Changed("tui") && d.TUI != nil {
		opts.tui = *d.TUI
	}
	if !flags.Changed("width") && d.Width != nil {
		opts.width = *d.Width
	}
	if !flags.Changed("locale") && d.Locale != nil {
		opts.locale = *d.Locale
	}
	if !flags.Changed("legacy-date") && d.LegacyDate != nil {
		opts.legacyDate = *d.LegacyDate
	}

	src := cfg.Source
	if !flags.Changed("base-url") && src.BaseURL != nil {
		opts.baseURL = *src.BaseURL
	}
	if !flags.Changed("timeout") && src.Timeout != nil {
		t, err := src.TimeoutDuration()
		if err != nil {
			return err
		}
		opts.timeout = t
	}
	if !flags.Changed("retries") && src.Retries != nil {
		opts.retries = *src.Retries
	}
	return nil
}

type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}
