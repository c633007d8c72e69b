// Package config provides the configuration loader for masq.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"go.trai.ch/masq/internal/core/domain"
	"go.trai.ch/masq/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

const supportedVersion = "1"

var logFormats = []string{domain.LogFormatAuto, domain.LogFormatPretty, domain.LogFormatJSON}

// Load walks up from cwd to the first masq.yaml. Without one, the defaults
// rooted at cwd are returned.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	configPath, ok := findConfiguration(cwd)
	if !ok {
		l.Logger.Debug("no " + domain.ConfigFileName + " found, using defaults")
		return domain.DefaultConfig(cwd), nil
	}
	return l.LoadFile(configPath)
}

// LoadFile reads the configuration file at configPath.
func (l *Loader) LoadFile(configPath string) (*domain.Config, error) {
	var file Masqfile
	if err := readAndUnmarshalYAML(configPath, &file); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}
	l.Logger.Debug("using configuration " + configPath)

	if file.Version == "" {
		l.Logger.Warn(fmt.Sprintf("'version' missing in %s, assuming %s", configPath, supportedVersion))
	} else if file.Version != supportedVersion {
		return nil, invalid("unsupported config version", "version", file.Version)
	}

	cfg := domain.DefaultConfig(resolveRoot(configPath, file.Root))
	if file.Input != "" {
		cfg.Input = file.Input
	}
	if file.Output != "" {
		cfg.Output = file.Output
	}
	if file.DomainPattern != "" {
		cfg.DomainPattern = file.DomainPattern
	}
	if file.ProblemPattern != "" {
		cfg.ProblemPattern = file.ProblemPattern
	}
	if file.LogFormat != "" {
		cfg.LogFormat = file.LogFormat
	}
	if file.Workers != nil {
		cfg.Workers = *file.Workers
	}

	if err := Validate(cfg); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}
	return cfg, nil
}

// Validate checks the value ranges of cfg. A worker count of zero selects one
// worker per CPU.
func Validate(cfg *domain.Config) error {
	if cfg.Workers < 0 {
		return invalid("workers must not be negative", "workers", cfg.Workers)
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if !slices.Contains(logFormats, cfg.LogFormat) {
		return invalid("unknown log format", "logFormat", cfg.LogFormat)
	}
	if _, err := filepath.Match(cfg.DomainPattern, ""); err != nil {
		return invalid("malformed file pattern", "domainPattern", cfg.DomainPattern)
	}
	if _, err := filepath.Match(cfg.ProblemPattern, ""); err != nil {
		return invalid("malformed file pattern", "problemPattern", cfg.ProblemPattern)
	}
	if cfg.Input == "" || cfg.Output == "" {
		return invalid("input and output directories are required", "input", cfg.Input)
	}
	return nil
}

func findConfiguration(cwd string) (string, bool) {
	currentDir := cwd
	for {
		configPath := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := os.Stat(configPath); err == nil && !info.IsDir() {
			return configPath, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", false
		}
		currentDir = parentDir
	}
}

func resolveRoot(configPath, configuredRoot string) string {
	configDir := filepath.Dir(configPath)
	if configuredRoot == "" {
		return filepath.Clean(configDir)
	}
	if filepath.IsAbs(configuredRoot) {
		return filepath.Clean(configuredRoot)
	}
	return filepath.Clean(filepath.Join(configDir, configuredRoot))
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is validated by caller
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}

func invalid(msg, key string, value any) error {
	return zerr.With(zerr.Wrap(domain.ErrInvalidConfig, msg), key, value)
}
