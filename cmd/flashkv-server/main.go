// flashkv-server is an in-memory, single-node key/value store speaking
// a line-oriented TCP protocol modelled on the classic five-type
// vocabulary: strings, lists, hashes, sets, and sorted sets.
//
// Usage:
//
//	flashkv-server [flags] <port>
//
// Flags:
//
//	--config string      Optional YAML config file
//	--log_level string   Log level label, informational only (default "info")
//	--max_clients int    Maximum concurrent connections (default 10000)
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/flashkv/flashkv/internal/config"
	"github.com/flashkv/flashkv/internal/engine"
	"github.com/flashkv/flashkv/internal/server"
	"github.com/flashkv/flashkv/internal/version"
)

func main() {
	configPath := pflag.String("config", "", "optional YAML config file")
	pflag.String("log_level", "info", "log level label")
	pflag.Int("max_clients", 10000, "maximum concurrent connections")
	showVersion := pflag.Bool("version", false, "show version and exit")
	pflag.Parse()

	if *showVersion {
		fmt.Printf("flashkv v%s (built %s)\n", version.Version, version.BuildTime)
		return
	}

	if pflag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: flashkv-server [flags] <port>")
		os.Exit(2)
	}
	port := pflag.Arg(0)

	cfg, err := config.Load(*configPath, pflag.CommandLine)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	log.Printf("flashkv v%s starting...", version.Version)
	log.Printf("log level: %s", cfg.LogLevel)
	log.Printf("max clients: %d", cfg.MaxClients)

	d := engine.NewDispatcher()
	srv := server.NewWithConfig(":"+port, d, server.Config{MaxClients: cfg.MaxClients})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Printf("received signal %v, shutting down...", sig)
		cancel()
	}()

	if err := srv.Start(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}
	log.Println("flashkv shutdown complete")
}
