package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/dongwha/internal/app"
	"github.com/abhisek/dongwha/internal/logger"
	"github.com/abhisek/dongwha/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "dongwha",
	Short: "Korean reading games for kids",
	Long:  "Dongwha: fairy-tale sentence puzzles, vocabulary quizzes and adaptive reading tests for children aged 4-13.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides DONGWHA_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to YAML tuning file (overrides DONGWHA_CONFIG env var)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(puzzleCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(prepareCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then DONGWHA_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if p := os.Getenv("DONGWHA_DB"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the event store for commands that need nothing else.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// loadConfig reads .env, the tuning file and the environment, then
// applies the --db flag.
func loadConfig(cmd *cobra.Command) (app.Config, error) {
	if err := app.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, "Warning:", err)
	}
	path, _ := cmd.Flags().GetString("config")
	cfg, err := app.LoadConfig(path)
	if err != nil {
		return cfg, err
	}
	if cfg.Paths.DB, err = resolveDBPath(cmd); err != nil {
		return cfg, fmt.Errorf("resolve database path: %w", err)
	}
	return cfg, nil
}

// loadApp loads every artifact and service. log may be nil.
func loadApp(cmd *cobra.Command, log *logger.Logger) (*app.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return app.Load(ctx, cfg, app.Options{Log: log})
}
