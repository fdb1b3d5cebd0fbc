package main

import (
	"fmt"

	"github.com/fbkclanna/zag/internal/deps"
	"github.com/fbkclanna/zag/internal/logging"
	"github.com/spf13/cobra"
)

func newRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Remove a dependency from the manifest",
		Args:    cobra.ExactArgs(1),
		RunE:    runRemove,
	}
	addTargetFlags(cmd)
	return cmd
}

func runRemove(cmd *cobra.Command, args []string) error {
	targetPath, _ := cmd.Flags().GetString("target-path")
	targetEntry, _ := cmd.Flags().GetString("target-entry")

	s, err := newSession(cmd, targetPath)
	if err != nil {
		return err
	}
	removed, err := deps.Remove(deps.RemoveOptions{
		Name:        args[0],
		TargetPath:  s.root,
		TargetEntry: s.manifestEntry(targetEntry),
		Logger:      logging.FromContext(cmd.Context()),
	})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %s (%s)\n", args[0], removed.Repo)
	return nil
}
