// Copyright 2025 Nguyen Nhat Nguyen
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package demo wires configuration, logging, and the future primitives into
// the settle-demo binary.
package demo

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ngnhng/settle/internal/config"
	"github.com/ngnhng/settle/internal/logger"
)

// Options carries CLI overrides on top of the environment configuration.
type Options struct {
	Workers int
	Tasks   int
}

func Run(ctx context.Context, opts Options) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	// Allow CLI flags to override workload sizing.
	if opts.Workers > 0 {
		cfg.Demo.Workers = opts.Workers
	}
	if opts.Tasks > 0 {
		cfg.Demo.Tasks = opts.Tasks
	}

	log, err := logger.NewLogger(ctx, cfg)
	if err != nil {
		return err
	}
	slog.SetDefault(log.Slogger)
	defer func() {
		if err := log.Shutdown(ctx); err != nil {
			slog.Error("failed to shut down logger provider", "error", err)
		}
	}()

	slog.Info("starting demo",
		"service", cfg.ServiceName(),
		"mode", string(cfg.Mode),
		"workers", cfg.Demo.Workers,
		"tasks", cfg.Demo.Tasks,
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- runScenes(ctx, cfg)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal received", "signal", sig.String())
	case err := <-errCh:
		if err != nil {
			return err
		}
		slog.Info("demo finished")
	}

	cancel()
	return nil
}
