package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fbkclanna/zag/internal/manifest"
	"github.com/fbkclanna/zag/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the dependencies in the manifest",
		Args:    cobra.NoArgs,
		RunE:    runList,
	}
	addTargetFlags(cmd)
	cmd.Flags().String("format", "table", "Output format: table, json or yaml")
	return cmd
}

// listEntry is one dependency in json and yaml output.
type listEntry struct {
	Name    string  `json:"name" yaml:"name"`
	Repo    string  `json:"repo" yaml:"repo"`
	Version string  `json:"version" yaml:"version"`
	Entry   *string `json:"entry" yaml:"entry"`
}

func runList(cmd *cobra.Command, _ []string) error {
	targetPath, _ := cmd.Flags().GetString("target-path")
	targetEntry, _ := cmd.Flags().GetString("target-entry")
	format, _ := cmd.Flags().GetString("format")

	switch format {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("unknown format %q (want table, json or yaml)", format)
	}

	s, err := newSession(cmd, targetPath)
	if err != nil {
		return err
	}
	m, err := manifest.Load(s.manifestPath(targetEntry))
	if err != nil {
		return err
	}

	entries := make([]listEntry, 0, len(m.Deps))
	for _, name := range m.Names() {
		d := m.Deps[name]
		entries = append(entries, listEntry{Name: name, Repo: d.Repo, Version: d.Version, Entry: d.Entry})
	}
	return writeList(cmd.OutOrStdout(), format, entries)
}

func writeList(out io.Writer, format string, entries []listEntry) error {
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return err
		}
		return enc.Close()
	}

	if len(entries) == 0 {
		_, _ = fmt.Fprintln(out, "No dependencies.")
		return nil
	}
	tbl := ui.NewTable(out, "NAME", "VERSION", "REPO", "ENTRY")
	for _, e := range entries {
		tbl.Row(e.Name, e.Version, e.Repo, ui.Optional(e.Entry))
	}
	return tbl.Flush()
}
