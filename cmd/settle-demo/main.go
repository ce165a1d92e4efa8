package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/ngnhng/settle/internal/demo"
)

func main() {
	var (
		workers = flag.Int("workers", 0, "barrier worker count (overrides DEMO_WORKERS)")
		tasks   = flag.Int("tasks", 0, "registry task count (overrides DEMO_TASKS)")
	)
	flag.Parse()

	ctx := context.Background()
	if err := demo.Run(ctx, demo.Options{
		Workers: *workers,
		Tasks:   *tasks,
	}); err != nil {
		slog.Error("demo exited with error", "error", err)
		os.Exit(1)
	}
}
