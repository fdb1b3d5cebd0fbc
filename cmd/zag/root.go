package main

import (
	"log/slog"

	"github.com/fbkclanna/zag/internal/config"
	"github.com/fbkclanna/zag/internal/git"
	"github.com/fbkclanna/zag/internal/logging"
	"github.com/fbkclanna/zag/internal/project"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "zag",
		Short:         "Dependency manager for Zig projects",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("config", "", "Config file (default <project>/"+config.DefaultConfigPath+")")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(
		newInitCmd(),
		newAddCmd(),
		newRemoveCmd(),
		newListCmd(),
		newDoctorCmd(),
	)

	return cmd
}

// session is the per-invocation state every subcommand starts from.
type session struct {
	root string
	cfg  *config.Config
	git  *git.CLI
}

// newSession resolves the project root from target, loads its config and
// stores a stderr logger in the command context.
func newSession(cmd *cobra.Command, target string) (*session, error) {
	configPath, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")

	root, err := project.ResolveRoot(target)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(root, configPath)
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if verbose {
		level = slog.LevelDebug
	}
	log := logging.New(cmd.ErrOrStderr(), level)
	cmd.SetContext(logging.WithLogger(cmd.Context(), log))
	log.Debug("config loaded", "root", root, "manifest_file", cfg.ManifestFile, "git_binary", cfg.GitBinary)

	return &session{
		root: root,
		cfg:  cfg,
		git:  &git.CLI{Binary: cfg.GitBinary, Logger: log},
	}, nil
}

// manifestPath resolves entry against the project root, falling back to the
// configured manifest file.
func (s *session) manifestPath(entry string) string {
	return project.Join(s.root, entry, s.cfg.ManifestFile)
}

// manifestEntry is the manifest path relative to the root, as the deps
// package expects it.
func (s *session) manifestEntry(entry string) string {
	if entry == "" {
		return s.cfg.ManifestFile
	}
	return entry
}

func addTargetFlags(cmd *cobra.Command) {
	cmd.Flags().String("target-path", "", "Project directory (default: current directory)")
	cmd.Flags().String("target-entry", "", "Manifest path relative to the project (default: "+config.DefaultManifestFile+")")
}
