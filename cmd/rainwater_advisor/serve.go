package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/rainwater-advisor/internal/server"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for recommendations, structure specs, sweeps and stored assessments.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 8080 or PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, os.LookupEnv)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}

	adv, err := newAdvisor(cfg)
	if err != nil {
		return err
	}
	store, err := openStore(context.Background(), cfg)
	if err != nil {
		return err
	}
	log.Printf("Using %s assessment store", cfg.Store)

	srv, err := server.New(server.Config{
		Port:    cfg.Port,
		Store:   store,
		Advisor: adv,
		Verbose: cfg.Verbose,
	})
	if err != nil {
		store.Close()
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
