package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/foorensic/ddns-server/config"
	ddnshttp "github.com/foorensic/ddns-server/http"
	"github.com/foorensic/ddns-server/nsupdate"
)

const version = "ddns-server v1.0.0"

func main() {
	// Parse command
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "healthcheck":
			os.Exit(0)
		case "serve":
			// Continue to serve
		case "version":
			fmt.Println(version)
			return
		default:
			fmt.Printf("Unknown command: %s\n", os.Args[1])
			fmt.Println("Available commands: serve, healthcheck, version")
			os.Exit(1)
		}
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	slog.Info("Starting ddns-server")

	// Load configuration. Missing credentials or zone abort startup.
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	timeout, err := cfg.NsupdateTimeout()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	svc := nsupdate.NewService(
		nsupdate.Builder{
			Server: cfg.Nsupdate.Server,
			Zone:   cfg.Zone,
			TTL:    cfg.TTL,
		},
		&nsupdate.ToolRunner{
			Path:    cfg.Nsupdate.Path,
			Timeout: timeout,
		},
	)

	httpSrv, err := ddnshttp.NewServer(ddnshttp.ServerConfig{
		Listen:         cfg.HTTP.Listen,
		Username:       cfg.Auth.Username,
		Password:       cfg.Auth.Password,
		TrustedProxies: cfg.HTTP.TrustedProxies,
	}, svc)
	if err != nil {
		slog.Error("Failed to create HTTP server", "error", err)
		os.Exit(1)
	}

	go func() {
		if err := httpSrv.Start(); err != nil {
			slog.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("Serving zone", "zone", cfg.Zone, "ttl", cfg.TTL, "nsupdate", cfg.Nsupdate.Path)

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	<-sigCh
	slog.Info("Shutting down server...")

	httpSrv.Shutdown()
	slog.Info("Server stopped")
}
