package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	// DefaultConfigPath is the config file location relative to the project root.
	DefaultConfigPath = ".zag/config.yaml"

	// EnvPrefix is the prefix for environment variable overrides.
	EnvPrefix = "ZAG"
)

// LoadError describes a failure to load or validate configuration.
type LoadError struct {
	Path    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Message, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Path)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Loader reads configuration from a YAML file and ZAG_* environment variables.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a loader with defaults and environment lookups registered.
func NewLoader() *Loader {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Every key needs a default so AutomaticEnv knows about it during Unmarshal.
	d := NewConfig()
	v.SetDefault("manifest_file", d.ManifestFile)
	v.SetDefault("build_script", d.BuildScript)
	v.SetDefault("submodule_path", d.SubmodulePath)
	v.SetDefault("tool_repository", d.ToolRepository)
	v.SetDefault("git_binary", d.GitBinary)
	v.SetDefault("log_level", d.LogLevel.String())

	return &Loader{v: v}
}

// Load resolves configuration for the project at root. An explicit path must
// exist; otherwise root/.zag/config.yaml is read when present.
// Precedence: defaults < file < environment.
func (l *Loader) Load(root, path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = filepath.Join(root, DefaultConfigPath)
	}

	if _, err := os.Stat(path); err != nil {
		switch {
		case !errors.Is(err, fs.ErrNotExist):
			return nil, &LoadError{Path: path, Message: "cannot access config file", Err: err}
		case explicit:
			return nil, &LoadError{Path: path, Message: "config file not found", Err: err}
		}
	} else {
		l.v.SetConfigFile(path)
		if err := l.v.ReadInConfig(); err != nil {
			return nil, &LoadError{Path: path, Message: "failed to read config file", Err: err}
		}
	}

	cfg := NewConfig()
	if err := l.v.Unmarshal(cfg, viper.DecodeHook(decodeHook())); err != nil {
		return nil, &LoadError{Path: path, Message: "failed to parse config", Err: err}
	}

	if err := cfg.Validate(); err != nil {
		return nil, &LoadError{Path: path, Message: "configuration validation failed", Err: err}
	}
	return cfg, nil
}

// Load is shorthand for NewLoader().Load(root, path).
func Load(root, path string) (*Config, error) {
	return NewLoader().Load(root, path)
}

// decodeHook lets text values such as log_level decode into types that
// implement encoding.TextUnmarshaler (slog.Level).
func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.TextUnmarshallerHookFunc()
}
