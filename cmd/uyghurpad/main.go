// Package main is the entry point for the uyghurpad editor.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/oldscript/uyghurpad/pkg/uyghurpad"
	"github.com/oldscript/uyghurpad/pkg/uyghurpad/config"
)

// Version information (set via ldflags during build).
var version = "dev"

func init() {
	// SDL must be driven from the main thread.
	runtime.LockOSThread()
}

func main() {
	os.Exit(run())
}

func run() int {
	var configPath string
	var showVersion bool
	flag.StringVar(&configPath, "config", "", "Path to configuration file")
	flag.StringVar(&configPath, "c", "", "Path to configuration file (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("uyghurpad %s\n", version)
		return 0
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	defer uyghurpad.Close()
	if err := uyghurpad.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := uyghurpad.Run(ctx, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
