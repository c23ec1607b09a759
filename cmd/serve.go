package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	figure "github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	"github.com/abhisek/dongwha/internal/app"
	"github.com/abhisek/dongwha/internal/logger"
	"github.com/abhisek/dongwha/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}

		log, err := logger.New(cfg.Log)
		if err != nil {
			return fmt.Errorf("build logger: %w", err)
		}
		defer log.Sync()

		figure.NewFigure("DONGWHA", "", true).Print()
		fmt.Println()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := app.Load(ctx, cfg, app.Options{Log: log})
		if err != nil {
			return err
		}
		defer a.Close()

		srv, err := server.New(a.ServerDeps(), cfg.Server)
		if err != nil {
			return err
		}
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides DONGWHA_ADDR)")
}
