package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/fbkclanna/zag/internal/bootstrap"
	"github.com/fbkclanna/zag/internal/git"
	"github.com/fbkclanna/zag/internal/manifest"
	"github.com/fbkclanna/zag/internal/project"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

func newDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the project setup",
		Args:  cobra.NoArgs,
		RunE:  runDoctor,
	}
	cmd.Flags().String("target-path", "", "Project directory (default: current directory)")
	cmd.Flags().Bool("check-remotes", false, "Check that every dependency repository is reachable")
	return cmd
}

// checker prints one line per check and remembers whether any failed.
type checker struct {
	out    io.Writer
	failed bool
}

func (c *checker) ok(name, detail string) {
	_, _ = fmt.Fprintf(c.out, "%s %s: %s\n", okStyle.Render("[ok]  "), name, detail)
}

func (c *checker) warn(name, detail string) {
	_, _ = fmt.Fprintf(c.out, "%s %s: %s\n", warnStyle.Render("[warn]"), name, detail)
}

func (c *checker) fail(name, detail string) {
	c.failed = true
	_, _ = fmt.Fprintf(c.out, "%s %s: %s\n", failStyle.Render("[fail]"), name, detail)
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	targetPath, _ := cmd.Flags().GetString("target-path")
	checkRemotes, _ := cmd.Flags().GetBool("check-remotes")

	s, err := newSession(cmd, targetPath)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	c := &checker{out: cmd.OutOrStdout()}

	gitOK := checkGit(ctx, c, s)

	path := s.manifestPath("")
	rel := (&project.Context{Root: s.root}).Rel(path)
	m, err := manifest.Load(path)
	switch {
	case errors.Is(err, manifest.ErrNotFound):
		c.fail("manifest", rel+" not found (run zag init)")
	case err != nil:
		c.fail("manifest", err.Error())
	default:
		if verr := manifest.Validate(m); verr != nil {
			c.fail("manifest", verr.Error())
		} else {
			c.ok("manifest", fmt.Sprintf("%s (%d dependencies)", rel, len(m.Deps)))
		}
		checkSchema(c, path)
		checkLock(c, path)
	}

	script := project.Join(s.root, s.cfg.BuildScript, "")
	switch found, err := bootstrap.HasImport(script, s.cfg.SubmodulePath); {
	case err != nil:
		c.fail("build script", err.Error())
	case !found:
		c.fail("build script", fmt.Sprintf("%s does not contain %s", s.cfg.BuildScript, bootstrap.ImportLine(s.cfg.SubmodulePath)))
	default:
		c.ok("build script", s.cfg.BuildScript+" imports zag")
	}

	if gitOK {
		checkSubmodule(ctx, c, s)
		if checkRemotes && m != nil {
			checkRemoteRepos(ctx, c, s, m)
		}
	}

	if c.failed {
		return errors.New("doctor checks failed")
	}
	_, _ = fmt.Fprintln(c.out, "\nAll checks passed.")
	return nil
}

func checkGit(ctx context.Context, c *checker, s *session) bool {
	if !git.IsInstalled(s.cfg.GitBinary) {
		c.fail("git", s.cfg.GitBinary+" not found on PATH. Install it from https://git-scm.com/")
		return false
	}
	v, err := git.Version(ctx, s.git)
	if err != nil {
		c.fail("git", err.Error())
		return false
	}
	c.ok("git", v)
	return true
}

func checkSchema(c *checker, path string) {
	data, err := os.ReadFile(path) //nolint:gosec // manifest path from project root
	if err != nil {
		c.fail("schema", err.Error())
		return
	}
	if err := manifest.CheckSchema(data); err != nil {
		c.fail("schema", err.Error())
		return
	}
	c.ok("schema", "matches "+manifest.SchemaURL)
}

func checkLock(c *checker, path string) {
	busy, err := manifest.Busy(path)
	switch {
	case err != nil:
		c.warn("lock", err.Error())
	case busy:
		c.warn("lock", "manifest is locked by another zag process")
	}
}

// remoteConcurrency bounds parallel git ls-remote calls.
const remoteConcurrency = 4

// checkRemoteRepos checks every dependency repository in parallel and
// prints the results in manifest order.
func checkRemoteRepos(ctx context.Context, c *checker, s *session, m *manifest.Manifest) {
	names := m.Names()
	reachable := make([]bool, len(names))

	var g errgroup.Group
	g.SetLimit(remoteConcurrency)
	for i, name := range names {
		g.Go(func() error {
			reachable[i] = git.Reachable(ctx, s.git, m.Deps[name].Repo)
			return nil
		})
	}
	_ = g.Wait()

	for i, name := range names {
		repo := m.Deps[name].Repo
		if reachable[i] {
			c.ok("remote "+name, repo)
		} else {
			c.fail("remote "+name, repo+" is not reachable")
		}
	}
}

func checkSubmodule(ctx context.Context, c *checker, s *session) {
	if !git.IsRepo(ctx, s.git, s.root) {
		c.warn("submodule", s.root+" is not a git repository")
		return
	}
	url, err := git.SubmoduleURL(ctx, s.git, s.root, s.cfg.SubmodulePath)
	switch {
	case err != nil:
		c.fail("submodule", err.Error())
	case url == "":
		c.fail("submodule", s.cfg.SubmodulePath+" is not registered in .gitmodules (run zag init)")
	case url != s.cfg.ToolRepository:
		c.warn("submodule", fmt.Sprintf("%s points to %s, expected %s", s.cfg.SubmodulePath, url, s.cfg.ToolRepository))
	default:
		c.ok("submodule", s.cfg.SubmodulePath+" -> "+url)
	}
}
