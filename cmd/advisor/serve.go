package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/college-advisor/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP chat API",
	Long:  "Start an HTTP server exposing the conversation over /init and /query, one session per client.",
	RunE:  runServe,
}

func init() {
	addCommonFlags(serveCmd)
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	log := newLogger(cfg)
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	rt, client, err := bootstrap(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	srv := server.New(server.Config{Port: servePort}, rt, log)
	if err := srv.Start(); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
