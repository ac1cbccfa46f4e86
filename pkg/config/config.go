// Package config loads the engine's runtime configuration from a YAML
// file, the way the teacher stack's services configure themselves: a
// small struct, sane defaults, and a single loader.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cuemby/loom/pkg/log"
)

// Config holds everything run needs to start an engine instance.
type Config struct {
	// FPS is the target frame rate the scheduler paces to.
	FPS int `yaml:"fps"`

	// ResourceRoot is the directory archive paths resolve under (§6
	// "Storage location").
	ResourceRoot string `yaml:"resource_root"`

	// Mode is "development" (declare writes archives) or "release"
	// (declare only verifies).
	Mode string `yaml:"mode"`

	LogLevel    log.Level `yaml:"log_level"`
	LogJSON     bool      `yaml:"log_json"`
	MetricsAddr string    `yaml:"metrics_addr"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		FPS:          60,
		ResourceRoot: "program_data",
		Mode:         "development",
		LogLevel:     log.InfoLevel,
		LogJSON:      false,
		MetricsAddr:  "127.0.0.1:9090",
	}
}

// Load reads a YAML file at path and overlays it onto Default(). A missing
// file is not an error -- the defaults are returned as-is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
