package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/hnsearch/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	offline := flag.Bool("offline", false, "search the built-in sample stories instead of the network")
	once := flag.Bool("once", false, "run one search, print the results and exit")
	query := flag.String("query", "", "replace the saved search term before starting (optional)")
	logs := flag.Int("logs", 0, "print the last N log records and exit (optional)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		Offline:    *offline,
		Once:       *once,
		Query:      *query,
		Logs:       *logs,
		Out:        os.Stdout,
	}
	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "hnsearch: %v\n", err)
		return 1
	}
	return 0
}
