package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/inspekt"
	"github.com/aretw0/inspekt/pkg/config"
	"github.com/aretw0/inspekt/pkg/metrics"
)

var (
	verbose     bool
	rootPath    string
	configPath  string
	metricsFile string

	// observer is set when --metrics-file is given.
	observer *metrics.Metrics
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspekt",
		Short: "Capture field inspection photos and export them as reports",
		Long: `inspekt records a photo together with a short inspection form
(technician, description, location, category) and compiles the most recent
record into a single-page report that can be shared.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}

			opts := &slog.HandlerOptions{
				Level: level,
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), opts))
			slog.SetDefault(logger)

			if metricsFile != "" {
				observer = metrics.New()
			}
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			flushMetrics()
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringVar(&rootPath, "root", "", "Storage directory (overrides config)")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: nearest inspekt.yaml)")
	cmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "Write Prometheus counters to this textfile")
	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		flushMetrics()
		fmt.Fprintln(os.Stderr, notice(err))
		os.Exit(1)
	}
}

func flushMetrics() {
	if observer == nil || metricsFile == "" {
		return
	}
	if err := observer.WriteTextfile(metricsFile); err != nil {
		slog.Warn("metrics not written", "path", metricsFile, "error", err)
	}
	observer = nil
}

// loadConfig reads the config file (explicit or discovered) and the
// environment. A relative root is resolved against the config file's directory.
func loadConfig(ctx context.Context) (config.Config, error) {
	path := configPath
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return config.Config{}, err
		}
		found, err := inspekt.FindConfig(wd)
		if err == nil {
			path = found
		} else if !errors.Is(err, inspekt.ErrRootNotFound) {
			return config.Config{}, err
		}
	}

	cfg, err := config.Load(ctx, path)
	if err != nil {
		return config.Config{}, err
	}

	if rootPath != "" {
		cfg.Root = rootPath
	} else if path != "" && !filepath.IsAbs(cfg.Root) && os.Getenv("INSPEKT_ROOT") == "" {
		cfg.Root = filepath.Join(filepath.Dir(path), cfg.Root)
	}

	if metricsFile == "" && cfg.MetricsFile != "" {
		metricsFile = cfg.MetricsFile
		observer = metrics.New()
	}

	slog.Debug("configuration loaded", "file", path, "root", cfg.Root)
	return cfg, nil
}

// openService builds the pipeline from configuration.
func openService(ctx context.Context, extra ...inspekt.Option) (*inspekt.Service, config.Config, error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, config.Config{}, err
	}

	opts := []inspekt.Option{
		inspekt.WithConfig(cfg),
		inspekt.WithLogger(slog.Default()),
	}
	if observer != nil {
		opts = append(opts, inspekt.WithObserver(observer))
	}
	opts = append(opts, extra...)

	svc, err := inspekt.New(cfg.Root, opts...)
	if err != nil {
		return nil, config.Config{}, err
	}
	return svc, cfg, nil
}

func printJSON(w io.Writer, v any) error {
	enc := newJSONEncoder(w)
	return enc.Encode(v)
}

func addCommands(root *cobra.Command) {
	root.AddCommand(
		newInitCmd(),
		newCaptureCmd(),
		newExportCmd(),
		newListCmd(),
		newStatusCmd(),
		newWatchCmd(),
		newVersionCmd(),
	)
}

func init() {
	addCommands(rootCmd)
}
