package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/VivianChencwy/bikewatching/config"
	"github.com/VivianChencwy/bikewatching/server"
	"github.com/VivianChencwy/bikewatching/source"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve station traffic over HTTP and websocket",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if port, _ := cmd.Flags().GetInt("port"); port > 0 {
			config.Config.Server.Port = port
		}

		sys, err := selectedSystem()
		if err != nil {
			return err
		}
		snap, err := loadSnapshot(ctx)
		if err != nil {
			return err
		}

		srv := server.New(config.Config, sys, source.NewClient())
		srv.SetSnapshot(snap)
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().IntP("port", "p", 0, "listen port (overrides config)")
}
