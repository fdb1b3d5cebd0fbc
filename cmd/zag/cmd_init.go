package main

import (
	"fmt"

	"github.com/fbkclanna/zag/internal/bootstrap"
	"github.com/fbkclanna/zag/internal/ui"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Set up zag in a Zig project",
		Long: `Set up zag in a Zig project: add the zag repository as a git submodule,
import it from the build script and create an empty manifest.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}
	cmd.Flags().Bool("skip-submodule", false, "Do not run git submodule add")
	cmd.Flags().Bool("no-manifest", false, "Do not create the manifest file")
	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	skipSubmodule, _ := cmd.Flags().GetBool("skip-submodule")
	noManifest, _ := cmd.Flags().GetBool("no-manifest")

	target := ""
	if len(args) == 1 {
		target = args[0]
	}
	s, err := newSession(cmd, target)
	if err != nil {
		return err
	}

	progress := ui.NewProgress(cmd.OutOrStdout(), len(bootstrap.Steps))
	b := bootstrap.New(s.git, nil)
	b.OnStep = func(r bootstrap.Result) {
		if r.Skipped {
			progress.Skip(string(r.Step), r.Detail)
			return
		}
		progress.Done(string(r.Step), r.Detail)
	}

	_, err = b.Run(cmd.Context(), bootstrap.Options{
		Root:           s.root,
		ToolRepository: s.cfg.ToolRepository,
		SubmodulePath:  s.cfg.SubmodulePath,
		BuildScript:    s.cfg.BuildScript,
		ManifestFile:   s.cfg.ManifestFile,
		SkipSubmodule:  skipSubmodule,
		SkipManifest:   noManifest,
	})
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	progress.Log("zag is set up in %s", s.root)
	return nil
}
