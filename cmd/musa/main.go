package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"musa/internal/config"
	"musa/internal/logging"
	"musa/internal/ngrok"
	"musa/internal/server"

	"github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:    "musa",
		Usage:   "Music streaming account and playlist API",
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "./config.toml",
			},
		},
		Action: runServe,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the HTTP API",
				Action: runServe,
			},
			{
				Name:   "config",
				Usage:  "Print the effective configuration",
				Action: runPrintConfig,
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "musa: %v\n", err)
		os.Exit(1)
	}
}

// runPrintConfig loads the configuration the server would use and writes it
// to stdout.
func runPrintConfig(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.LoadConfig(cmd.String("config"))
	if err != nil {
		return err
	}
	return cfg.Print(os.Stdout)
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("error initializing logger: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Only logging settings take effect without a restart.
	err = config.Watch(ctx, configPath, logger, func(next *config.Config) {
		if err := logging.Apply(logger, next.Logging); err != nil {
			logger.WithError(err).Warn("Could not apply logging configuration")
			return
		}
		logger.WithField("level", next.Logging.Level).Info("Logging configuration applied")
	})
	if err != nil {
		logger.WithError(err).Warn("Config hot reload disabled")
	}

	musicServer := server.NewMusicServer(cfg, logger)

	tunnel, err := ngrok.NewService(&cfg.Ngrok, logger)
	if err != nil {
		return fmt.Errorf("error creating ngrok service: %w", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- musicServer.Start()
	}()

	if err := tunnel.StartTunnel(ctx, "http://localhost:"+cfg.Server.Port); err != nil {
		logger.WithError(err).Error("Ngrok tunnel failed, continuing without it")
	} else if url := tunnel.GetPublicURL(); url != "" {
		logger.WithField("public_url", url).Info("API reachable at public URL")
	}

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("Received shutdown signal")
	}

	if err := tunnel.Stop(); err != nil {
		logger.WithError(err).Warn("Error stopping ngrok tunnel")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := musicServer.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Graceful shutdown failed")
		return err
	}

	return nil
}
