package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/planstore"
	"github.com/aretw0/planstore/pkg/core"
)

var (
	verbose    bool
	cfgFile    string
	adapter    string
	uri        string
	schemaPath string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "planstore",
	Short: "A conditional JSON document store with schema-gated writes",
	Long: `planstore keeps schema-validated JSON documents under caller-chosen ids.
Every document carries a content-derived version tag (ETag); reads can
short-circuit on a matching tag and partial updates are rejected when the
caller's tag is stale.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (defaults to planstore.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&adapter, "adapter", "", "Storage adapter: memory, redis, fs, sqlite")
	rootCmd.PersistentFlags().StringVar(&uri, "uri", "", "Adapter URI: data directory, database file or redis address")
	rootCmd.PersistentFlags().StringVar(&schemaPath, "schema", "", "Path to the JSON Schema documents are validated against")
}

// newService merges flags over the optional config file and builds the service.
func newService() (*core.Service, error) {
	cfg, err := loadConfig(cfgFile)
	if err != nil {
		return nil, err
	}

	if adapter != "" {
		cfg.Adapter = adapter
	}
	if uri != "" {
		cfg.URI = uri
	}
	if schemaPath != "" {
		cfg.Schema = schemaPath
	}

	opts := []planstore.Option{
		planstore.WithLogger(slog.Default()),
		planstore.WithSchemaFile(cfg.Schema),
	}
	if cfg.Adapter != "" {
		opts = append(opts, planstore.WithAdapter(cfg.Adapter))
	}
	if cfg.Redis.Password != "" || cfg.Redis.DB != 0 {
		opts = append(opts, planstore.WithRedisAuth(cfg.Redis.Password, cfg.Redis.DB))
	}

	return planstore.New(cfg.URI, opts...)
}
