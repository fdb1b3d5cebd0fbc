// Package config loads zag's own settings: file names, the tool repository
// used by init, the git binary and the log level.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
)

// Config holds the tool settings after defaults, file and environment are merged.
type Config struct {
	// ManifestFile is the manifest path relative to the project root.
	ManifestFile string `mapstructure:"manifest_file" yaml:"manifest_file"`
	// BuildScript is the Zig build script patched by init.
	BuildScript string `mapstructure:"build_script" yaml:"build_script"`
	// SubmodulePath is where init places the zag submodule.
	SubmodulePath string `mapstructure:"submodule_path" yaml:"submodule_path"`
	// ToolRepository is the canonical zag repository added as a submodule.
	ToolRepository string `mapstructure:"tool_repository" yaml:"tool_repository"`
	// GitBinary is the git executable.
	GitBinary string     `mapstructure:"git_binary" yaml:"git_binary"`
	LogLevel  slog.Level `mapstructure:"log_level" yaml:"log_level"`
}

// Defaults.
const (
	DefaultManifestFile   = "zag.json"
	DefaultBuildScript    = "build.zig"
	DefaultSubmodulePath  = "zag"
	DefaultToolRepository = "https://github.com/Aandreba/zag"
	DefaultGitBinary      = "git"
)

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		ManifestFile:   DefaultManifestFile,
		BuildScript:    DefaultBuildScript,
		SubmodulePath:  DefaultSubmodulePath,
		ToolRepository: DefaultToolRepository,
		GitBinary:      DefaultGitBinary,
		LogLevel:       slog.LevelInfo,
	}
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	var errs []error
	for _, f := range []struct{ key, value string }{
		{"manifest_file", c.ManifestFile},
		{"build_script", c.BuildScript},
		{"submodule_path", c.SubmodulePath},
	} {
		if err := validateRelPath(f.key, f.value); err != nil {
			errs = append(errs, err)
		}
	}
	if strings.TrimSpace(c.ToolRepository) == "" {
		errs = append(errs, errors.New("tool_repository must not be empty"))
	}
	if strings.TrimSpace(c.GitBinary) == "" {
		errs = append(errs, errors.New("git_binary must not be empty"))
	}
	return errors.Join(errs...)
}

// validateRelPath ensures a project path is set, relative, and stays inside the project.
func validateRelPath(key, p string) error {
	if strings.TrimSpace(p) == "" {
		return fmt.Errorf("%s must not be empty", key)
	}
	if filepath.IsAbs(p) {
		return fmt.Errorf("%s: absolute path is not allowed: %s", key, p)
	}
	cleaned := filepath.Clean(p)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%s: path must stay inside the project: %s", key, p)
	}
	return nil
}
