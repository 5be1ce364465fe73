package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dmarrero/acbtrack/internal/config"
	"github.com/dmarrero/acbtrack/internal/dashboard"
	"github.com/dmarrero/acbtrack/internal/pipeline"
	"github.com/dmarrero/acbtrack/internal/storage"
)

var (
	flagDataDir string
	flagSeason  string
	flagFormat  string
	flagListen  string
	flagVerbose bool
	flagQuiet   bool
)

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "acbtrack",
		Short: "Track American players in Liga ACB",
		Long: `A pipeline and dashboard for American basketball players in Liga ACB.
Fetches rosters and the schedule from TheSportsDB, enriches players with
hometown data from Wikipedia, joins both into unified records, and serves
them as a read-only JSON API.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Data directory for stage files (default "+config.DefaultDataDir+")")
	root.PersistentFlags().StringVar(&flagSeason, "season", "", "Season to fetch (default "+config.DefaultSeason+")")
	root.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")
	root.PersistentFlags().BoolVar(&flagQuiet, "quiet", false, "Only log warnings and errors")

	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch rosters and schedule from the sports API",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := buildPipeline()
			if err != nil {
				return err
			}
			return p.Fetch(cmd.Context())
		},
	}

	resolveCmd := &cobra.Command{
		Use:   "resolve",
		Short: "Look up hometown data for fetched players",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := buildPipeline()
			if err != nil {
				return err
			}
			return p.Resolve(cmd.Context())
		},
	}

	joinCmd := &cobra.Command{
		Use:   "join",
		Short: "Join fetched and resolved records into unified output",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := buildPipeline()
			if err != nil {
				return err
			}
			report, err := p.Join(cmd.Context())
			if err != nil {
				return err
			}
			return writeReport(cmd.OutOrStdout(), report)
		},
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline: fetch, resolve, join",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := buildPipeline()
			if err != nil {
				return err
			}
			report, err := p.Run(cmd.Context())
			if err != nil {
				return err
			}
			return writeReport(cmd.OutOrStdout(), report)
		},
	}

	for _, cmd := range []*cobra.Command{joinCmd, runCmd} {
		cmd.Flags().StringVar(&flagFormat, "format", "text", "Report format: text or json")
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the joined records as a JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger := buildConfig()
			if flagListen != "" {
				cfg.ListenAddr = flagListen
			}
			store, err := storage.New(cfg.DataDir)
			if err != nil {
				return fmt.Errorf("initializing storage: %w", err)
			}
			return dashboard.NewServer(store, logger).ListenAndServe(cfg.ListenAddr)
		},
	}
	serveCmd.Flags().StringVar(&flagListen, "listen", "", "Listen address (default "+config.DefaultListenAddr+")")

	root.AddCommand(fetchCmd, resolveCmd, joinCmd, runCmd, serveCmd)
	return root
}

// buildConfig assembles the run configuration and logger from defaults,
// environment, and flags.
func buildConfig() (config.Config, zerolog.Logger) {
	cfg := config.New()
	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}
	if flagSeason != "" {
		cfg.Season = flagSeason
	}
	return cfg, newLogger()
}

func buildPipeline() (*pipeline.Pipeline, config.Config, error) {
	cfg, logger := buildConfig()
	store, err := storage.New(cfg.DataDir)
	if err != nil {
		return nil, cfg, fmt.Errorf("initializing storage: %w", err)
	}
	return pipeline.New(cfg, store, logger), cfg, nil
}

// newLogger builds the process logger. --verbose beats LOG_LEVEL beats
// --quiet's warn default.
func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if env := strings.ToLower(os.Getenv("LOG_LEVEL")); env != "" {
		if parsed, err := zerolog.ParseLevel(env); err == nil {
			level = parsed
		}
	}
	if flagQuiet {
		level = zerolog.WarnLevel
	}
	if flagVerbose {
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}
