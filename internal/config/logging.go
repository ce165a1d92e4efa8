package config

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	OTELExporterNone = "none"
	OTELExporterHTTP = "otlp-http"
	OTELExporterGRPC = "otlp-grpc"
)

type LoggerConfig struct {
	Level        string `env:"LOG_LEVEL"         envDefault:"info"`   // debug|info|warn|error
	Output       string `env:"LOG_OUTPUT"        envDefault:"stdout"` // stdout|stderr|file:<path>, comma-separated
	OTELExporter string `env:"LOG_OTEL_EXPORTER" envDefault:"none"`   // none|otlp-http|otlp-grpc
	OTELEndpoint string `env:"LOG_OTEL_ENDPOINT"`
}

// Writers resolves the Output setting into writers.
// LOG_OUTPUT examples:
//
//	stdout
//	stderr
//	file:/var/log/settle-demo.log
//	stdout,file:/tmp/settle-demo.log
//
// Unknown tokens are skipped with a warning, and an empty result falls back
// to stdout.
func (lc *LoggerConfig) Writers() []io.Writer {
	var writers []io.Writer
	seen := make(map[string]struct{})

	add := func(key string, w io.Writer) {
		if w == nil {
			return
		}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		writers = append(writers, w)
	}

	for token := range strings.SplitSeq(lc.Output, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		lower := strings.ToLower(token)
		switch {
		case lower == "stdout":
			add("stdout", os.Stdout)
		case lower == "stderr":
			add("stderr", os.Stderr)
		case strings.HasPrefix(lower, "file:"):
			path := strings.TrimPrefix(token, "file:")
			f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
			if err != nil {
				slog.Warn("cannot open file for log output", "path", path, "error", err)
				continue
			}
			add("file:"+path, f)
		default:
			slog.Warn("unknown log output entry", "entry", token)
		}
	}

	if len(writers) == 0 {
		return []io.Writer{os.Stdout}
	}
	return writers
}

// LogLevel maps the configured level name onto slog's scale. Unknown names
// fall back to info.
func (lc *LoggerConfig) LogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(lc.Level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
