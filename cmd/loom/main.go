package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cuemby/loom/pkg/config"
	"github.com/cuemby/loom/pkg/engine"
	"github.com/cuemby/loom/pkg/log"
	"github.com/cuemby/loom/pkg/metrics"
	"github.com/cuemby/loom/pkg/resource"
)

// Version information (set via ldflags during build).
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "loom",
	Short:   "loom - an embeddable entity/event/resource runtime",
	Long:    `loom hosts a mutable entity tree, routes events between entities, and manages lazily-loaded resource archives, driven by a single-threaded cooperative frame scheduler.`,
	Version: Version,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"loom version %s\nCommit: %s\nBuilt: %s\n",
		Version, Commit, BuildTime,
	))

	rootCmd.PersistentFlags().String("config", "", "Path to a loom.yaml config file")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Output logs in JSON format")

	cobra.OnInitialize(initLogging)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(declareCmd)
}

func initLogging() {
	logLevel, _ := rootCmd.PersistentFlags().GetString("log-level")
	logJSON, _ := rootCmd.PersistentFlags().GetBool("log-json")

	log.Init(log.Config{
		Level:      log.Level(logLevel),
		JSONOutput: logJSON,
	})
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the engine and run its frame loop",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		mode := resource.Development
		if cfg.Mode == "release" {
			mode = resource.Release
		}

		e := engine.New(cfg.ResourceRoot, mode)
		defer e.Destroy()

		collector := metrics.NewCollector(e)
		collector.Start(1 * time.Second)
		defer collector.Stop()

		metrics.SetVersion(Version)
		metrics.RegisterComponent("engine", true, "running")
		metrics.RegisterComponent("resources", true, "ready")

		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", metrics.Handler())
			mux.HandleFunc("/health", metrics.HealthHandler())
			mux.HandleFunc("/ready", metrics.ReadyHandler())
			mux.HandleFunc("/live", metrics.LivenessHandler())
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil && err != http.ErrServerClosed {
				log.Logger.Error().Err(err).Msg("metrics server stopped")
			}
		}()
		log.Logger.Info().Str("addr", cfg.MetricsAddr).Msg("metrics endpoint listening")

		fmt.Printf("loom running at %d fps (resources under %q)\n", cfg.FPS, cfg.ResourceRoot)
		return e.Run(context.Background(), cfg.FPS)
	},
}

var declareCmd = &cobra.Command{
	Use:   "declare <archive> <file>",
	Short: "Declare a resource file into an archive (development mode only)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		mode := resource.Development
		if cfg.Mode == "release" {
			mode = resource.Release
		}

		e := engine.New(cfg.ResourceRoot, mode)
		if !e.DeclareResource(args[0], args[1]) {
			return fmt.Errorf("failed to declare %q into archive %q", args[1], args[0])
		}
		fmt.Printf("declared %q into archive %q\n", args[1], args[0])
		return nil
	},
}
