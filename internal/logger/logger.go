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

// Package logger assembles the slog stack for the demo binary: a colored
// pretty handler in debug mode, JSON plus optional OTLP export in release
// mode.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/ngnhng/settle/internal/config"
)

// Logger bundles the slog logger with the OTLP provider backing it, if any.
type Logger struct {
	Slogger  *slog.Logger
	provider *sdklog.LoggerProvider
}

// Shutdown flushes and stops the OTLP pipeline. Safe to call when no
// exporter was configured.
func (l *Logger) Shutdown(ctx context.Context) error {
	if l == nil || l.provider == nil {
		return nil
	}
	return l.provider.Shutdown(ctx)
}

// NewLogger builds the logger for the configured mode. Debug mode writes
// colored lines for humans; release mode writes JSON and, when an OTEL
// exporter is configured, ships records through an OTLP log pipeline as
// well.
func NewLogger(ctx context.Context, cfg *config.Config) (*Logger, error) {
	if cfg == nil {
		return nil, fmt.Errorf("no config")
	}

	out := io.MultiWriter(cfg.Logger.Writers()...)
	level := cfg.Logger.LogLevel()

	if cfg.Mode == config.ModeDebug {
		return &Logger{Slogger: slog.New(NewDebugHandler(out, level))}, nil
	}

	handlers := []slog.Handler{
		slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}),
	}

	var provider *sdklog.LoggerProvider
	if exp := cfg.Logger.OTELExporter; exp != "" && exp != config.OTELExporterNone {
		res, err := resource.Merge(
			resource.Default(),
			resource.NewWithAttributes(
				semconv.SchemaURL,
				semconv.ServiceName(cfg.Service),
				semconv.ServiceVersion(cfg.Version),
			),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to build telemetry resource: %w", err)
		}

		exporter, err := newLogExporter(ctx, exp, cfg.Logger.OTELEndpoint)
		if err != nil {
			return nil, fmt.Errorf("failed to create log exporter: %w", err)
		}

		provider = sdklog.NewLoggerProvider(
			sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
			sdklog.WithResource(res),
		)
		handlers = append(handlers, otelslog.NewHandler(
			cfg.Service, otelslog.WithLoggerProvider(provider)))
	}

	if len(handlers) == 1 {
		return &Logger{Slogger: slog.New(handlers[0]), provider: provider}, nil
	}
	return &Logger{
		Slogger:  slog.New(&MultiHandler{handlers: handlers}),
		provider: provider,
	}, nil
}

func newLogExporter(ctx context.Context, kind, endpoint string) (sdklog.Exporter, error) {
	switch kind {
	case config.OTELExporterHTTP:
		var opts []otlploghttp.Option
		if endpoint != "" {
			opts = append(opts, otlploghttp.WithEndpoint(endpoint), otlploghttp.WithInsecure())
		}
		return otlploghttp.New(ctx, opts...)
	case config.OTELExporterGRPC:
		var opts []otlploggrpc.Option
		if endpoint != "" {
			opts = append(opts, otlploggrpc.WithEndpoint(endpoint), otlploggrpc.WithInsecure())
		}
		return otlploggrpc.New(ctx, opts...)
	default:
		return nil, fmt.Errorf("unknown OTEL exporter %q", kind)
	}
}
