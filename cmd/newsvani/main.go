// newsvani — company news sentiment analysis with Hindi narration.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/newsvani/newsvani/api"
	"github.com/newsvani/newsvani/internal/config"
	"github.com/newsvani/newsvani/internal/engine"
	"github.com/newsvani/newsvani/internal/narration"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config
var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "newsvani",
	Short: "newsvani — company news sentiment analysis with Hindi narration",
	Long: `newsvani (News + वाणी, "voice")
Fetches recent news coverage for a company, scores each article's
sentiment, builds a comparative report across articles, and can speak
the outcome in Hindi.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			cfg.Logging.Level = lvl
		}
		setupLogging(cfg.Logging)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(narrateCmd)
	rootCmd.AddCommand(sourcesCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
}

// setupLogging configures the process-wide slog handler.
func setupLogging(lc config.LoggingConfig) {
	var level slog.Level
	switch strings.ToLower(lc.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if lc.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// buildEngine assembles the analysis engine from the loaded config.
func buildEngine() *engine.Engine {
	return engine.New(
		api.BuildFetcher(cfg),
		narration.NewClient(narration.Config{
			Endpoint:  cfg.Narration.Endpoint,
			Language:  cfg.Narration.Language,
			ChunkSize: cfg.Narration.ChunkSize,
			Timeout:   time.Duration(cfg.Narration.TimeoutSec) * time.Second,
		}),
		time.Duration(cfg.Analysis.CacheTTL)*time.Second,
	)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("newsvani %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Analyze Command ---

var analyzeCmd = &cobra.Command{
	Use:   "analyze [company]",
	Short: "Fetch and analyze news coverage for a company",
	Long: `Fetch recent news articles about a company from all configured
sources, score each article's sentiment, and print the comparative report.

Examples:
  newsvani analyze "Tata Motors"
  newsvani analyze Infosys --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		company := strings.Join(args, " ")

		run, err := buildEngine().Analyze(cmd.Context(), company)
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(run)
		}

		fmt.Println(run.Rendered)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().Bool("json", false, "print the full run result as JSON")
}

// --- Narrate Command ---

var narrateCmd = &cobra.Command{
	Use:   "narrate [company]",
	Short: "Analyze a company and speak the outcome in Hindi",
	Long: `Run the analysis and convert its summary to Hindi speech.
The MP3 audio is written to the file given by --out.

Examples:
  newsvani narrate "Tata Motors"
  newsvani narrate Infosys --out infosys.mp3`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		company := strings.Join(args, " ")
		out, _ := cmd.Flags().GetString("out")

		audio, err := buildEngine().Narrate(cmd.Context(), company)
		if err != nil {
			return err
		}
		if len(audio) == 0 {
			fmt.Println("No articles found; narration skipped.")
			return nil
		}

		if err := os.WriteFile(out, audio, 0644); err != nil {
			return fmt.Errorf("write audio file: %w", err)
		}
		fmt.Printf("🔊 Wrote %d bytes of audio to %s\n", len(audio), out)
		return nil
	},
}

func init() {
	narrateCmd.Flags().StringP("out", "o", "narration.mp3", "output MP3 file path")
}

// --- Sources Command ---

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the configured news sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Configured news sources:")
		for _, name := range buildEngine().Sources() {
			fmt.Printf("  • %s\n", name)
		}
		return nil
	},
}

// --- Serve Command (API Server) ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := api.NewServer(cfg)
		if err != nil {
			return err
		}

		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		fmt.Printf("🌐 Starting newsvani API server on %s\n", addr)
		return srv.ListenAndServe(addr)
	},
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show system status and configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("═══════════════════════════════════════")
		fmt.Println("  newsvani — System Status")
		fmt.Println("═══════════════════════════════════════")
		fmt.Printf("  Version:    %s (%s)\n", version, commit)
		fmt.Println()

		fmt.Println("  Configuration:")
		fmt.Printf("    Feeds:          %d configured (default set when 0)\n", len(cfg.Sources.Feeds))
		fmt.Printf("    Web Search:     enabled=%v\n", cfg.Sources.Search.Enabled)
		fmt.Printf("    Narration:      %s (%s)\n", cfg.Narration.Endpoint, cfg.Narration.Language)
		fmt.Printf("    API Server:     %s:%d\n", cfg.API.Host, cfg.API.Port)
		fmt.Println()

		fmt.Println("  API Keys:")
		for _, k := range config.CheckAPIKeys(cfg) {
			status := "❌ not set"
			if k.IsSet {
				status = fmt.Sprintf("✅ set (%s: %s)", k.Source, k.Masked)
			}
			fmt.Printf("    %-20s %s\n", k.Name+":", status)
		}

		fmt.Println("═══════════════════════════════════════")
		return nil
	},
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
