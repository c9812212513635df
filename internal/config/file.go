package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ytget/tubegrab/internal/fetch"
	"github.com/ytget/tubegrab/internal/logging"
	"github.com/ytget/tubegrab/internal/platform"
)

// DefaultTimeout bounds a whole CLI download
const DefaultTimeout = 30 * time.Minute

// FileConfig is the optional YAML configuration read by the CLI
type FileConfig struct {
	Engine      string        `yaml:"engine"`
	DownloadDir string        `yaml:"download_dir"`
	LogLevel    string        `yaml:"log_level"`
	Timeout     time.Duration `yaml:"timeout"`
}

// yamlFileConfig keeps the timeout as text so "90s" style values parse
type yamlFileConfig struct {
	Engine      string `yaml:"engine"`
	DownloadDir string `yaml:"download_dir"`
	LogLevel    string `yaml:"log_level"`
	Timeout     string `yaml:"timeout"`
}

// Default returns a FileConfig with sensible defaults
func Default() FileConfig {
	dir, err := platform.GetHomeDownloadsDir()
	if err != nil {
		dir = FallbackDir
	}
	return FileConfig{
		Engine:      DefaultEngine,
		DownloadDir: dir,
		LogLevel:    DefaultLogLevel,
		Timeout:     DefaultTimeout,
	}
}

// LoadFromFile loads configuration from a YAML file. Empty fields keep their
// defaults.
func LoadFromFile(path string) (FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileConfig{}, fmt.Errorf("read config file: %w", err)
	}

	var yc yamlFileConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return FileConfig{}, fmt.Errorf("parse config file: %w", err)
	}

	cfg := Default()
	if yc.Engine != "" {
		cfg.Engine = yc.Engine
	}
	if yc.DownloadDir != "" {
		cfg.DownloadDir = yc.DownloadDir
	}
	if yc.LogLevel != "" {
		cfg.LogLevel = yc.LogLevel
	}
	if yc.Timeout != "" {
		d, err := time.ParseDuration(yc.Timeout)
		if err != nil {
			return FileConfig{}, fmt.Errorf("parse timeout: %w", err)
		}
		cfg.Timeout = d
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *FileConfig) Validate() error {
	if _, err := fetch.New(c.Engine); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.DownloadDir == "" {
		return errors.New("config: download_dir is required")
	}
	if c.Timeout <= 0 {
		return errors.New("config: timeout must be positive")
	}
	return nil
}
