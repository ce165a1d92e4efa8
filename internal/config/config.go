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

package config

import (
	"fmt"
	"time"

	env "github.com/caarlos0/env/v11"
)

// Mode selects the runtime profile of the demo binary.
type Mode string

const (
	ModeDebug   Mode = "debug"
	ModeRelease Mode = "release"
)

// Config holds the complete demo configuration
type Config struct {
	Service string       `json:"service_name" env:"APP_NAME" envDefault:"settle-demo"`
	Version string       `json:"version"      env:"VERSION"  envDefault:"v0.1.0"`
	Mode    Mode         `json:"mode"         env:"MODE"     envDefault:"debug"`
	Demo    DemoConfig   `json:"demo"         envPrefix:"DEMO_"`
	Logger  LoggerConfig `json:"logger"`
}

// DemoConfig sizes the workloads the demo binary drives.
type DemoConfig struct {
	Workers     int           `json:"workers"      env:"WORKERS"      envDefault:"4"`
	Tasks       int           `json:"tasks"        env:"TASKS"        envDefault:"8"`
	FailureRate float64       `json:"failure_rate" env:"FAILURE_RATE" envDefault:"0.25"`
	WorkTime    time.Duration `json:"work_time"    env:"WORK_TIME"    envDefault:"30ms"`
}

func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Service == "" {
		return fmt.Errorf("service name is required")
	}
	if c.Version == "" {
		return fmt.Errorf("version is required")
	}
	switch c.Mode {
	case ModeDebug, ModeRelease:
	default:
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	if c.Demo.Workers <= 0 {
		return fmt.Errorf("worker count must be positive")
	}
	if c.Demo.Tasks <= 0 {
		return fmt.Errorf("task count must be positive")
	}
	if c.Demo.FailureRate < 0 || c.Demo.FailureRate > 1 {
		return fmt.Errorf("failure rate must be between 0 and 1")
	}
	if c.Demo.WorkTime < 0 {
		return fmt.Errorf("work time must be non-negative")
	}
	switch c.Logger.OTELExporter {
	case "", OTELExporterNone, OTELExporterHTTP, OTELExporterGRPC:
	default:
		return fmt.Errorf("unknown OTEL exporter %q", c.Logger.OTELExporter)
	}
	return nil
}

func (c *Config) ServiceName() string {
	return c.Service
}
