package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/fbkclanna/zag/internal/deps"
	"github.com/fbkclanna/zag/internal/logging"
	"github.com/fbkclanna/zag/internal/manifest"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <repo-url> <version> [entry-path]",
		Short: "Add a dependency to the manifest",
		Long: `Add a dependency to the manifest. The name defaults to the last path
segment of the repository URL. Without arguments on a terminal, add prompts
for the values.`,
		Args: cobra.MaximumNArgs(3),
		RunE: runAdd,
	}
	cmd.Flags().String("name", "", "Dependency name (default: last segment of the URL path)")
	addTargetFlags(cmd)
	cmd.Flags().Bool("json", false, "Output the added dependency as JSON")
	return cmd
}

// addedJSON is the --json output of add.
type addedJSON struct {
	Name     string  `json:"name"`
	Repo     string  `json:"repo"`
	Version  string  `json:"version"`
	Entry    *string `json:"entry"`
	Manifest string  `json:"manifest"`
}

func runAdd(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	targetPath, _ := cmd.Flags().GetString("target-path")
	targetEntry, _ := cmd.Flags().GetString("target-entry")
	asJSON, _ := cmd.Flags().GetBool("json")

	s, err := newSession(cmd, targetPath)
	if err != nil {
		return err
	}

	opts := deps.AddOptions{
		Name:        name,
		TargetPath:  s.root,
		TargetEntry: s.manifestEntry(targetEntry),
		Logger:      logging.FromContext(cmd.Context()),
	}
	if len(args) == 0 {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return errors.New("no repository given and stdin is not a TTY; usage: zag add <repo-url> <version> [entry-path]")
		}
		existing, err := manifest.Load(s.manifestPath(targetEntry))
		if err != nil {
			return err
		}
		in, err := promptDependency(cmd.OutOrStdout(), existing, name)
		if err != nil {
			return fmt.Errorf("interactive add: %w", err)
		}
		opts.Repo, opts.Version, opts.Entry = in.repo, in.version, in.entry
	} else {
		opts.Repo = args[0]
		if len(args) > 1 {
			opts.Version = args[1]
		}
		if len(args) > 2 {
			opts.Entry = args[2]
		}
	}

	added, err := deps.Add(opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(addedJSON{
			Name:     added.Name,
			Repo:     added.Dependency.Repo,
			Version:  added.Dependency.Version,
			Entry:    added.Dependency.Entry,
			Manifest: added.ManifestPath,
		})
	}
	_, _ = fmt.Fprintf(out, "Added %s (%s @ %s)\n", added.Name, added.Dependency.Repo, added.Dependency.Version)
	return nil
}
