package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/fbkclanna/zag/internal/config"
	"github.com/fbkclanna/zag/internal/fileutil"
	"github.com/fbkclanna/zag/internal/git"
	"github.com/fbkclanna/zag/internal/logging"
	"github.com/fbkclanna/zag/internal/manifest"
	"github.com/fbkclanna/zag/internal/project"
)

// ErrIO is returned when a project file cannot be read or written.
var ErrIO = fileutil.ErrIO

// Step names one stage of the bootstrap sequence.
type Step string

const (
	StepSubmodule   Step = "submodule"
	StepBuildScript Step = "build-script"
	StepManifest    Step = "manifest"
	StepGitignore   Step = "gitignore"
)

// Steps lists the stages in the order Run executes them.
var Steps = []Step{StepSubmodule, StepBuildScript, StepManifest, StepGitignore}

// Result describes what one step did.
type Result struct {
	Step    Step
	Skipped bool
	Detail  string
}

// Options configures a bootstrap run. Empty fields fall back to the
// config package defaults.
type Options struct {
	Root           string
	ToolRepository string
	SubmodulePath  string
	BuildScript    string
	ManifestFile   string

	SkipSubmodule bool
	SkipManifest  bool
}

func (o Options) withDefaults() Options {
	if o.ToolRepository == "" {
		o.ToolRepository = config.DefaultToolRepository
	}
	if o.SubmodulePath == "" {
		o.SubmodulePath = config.DefaultSubmodulePath
	}
	if o.BuildScript == "" {
		o.BuildScript = config.DefaultBuildScript
	}
	if o.ManifestFile == "" {
		o.ManifestFile = config.DefaultManifestFile
	}
	return o
}

// Bootstrapper runs the bootstrap steps against one project.
type Bootstrapper struct {
	Git git.Runner
	// Logger defaults to the logger stored in the context passed to Run.
	Logger *slog.Logger
	// OnStep, when set, is called after every step that completed or was skipped.
	OnStep func(Result)
}

// New returns a Bootstrapper that runs git through r.
func New(r git.Runner, logger *slog.Logger) *Bootstrapper {
	return &Bootstrapper{Git: r, Logger: logger}
}

// Run executes the steps in order and stops at the first failure; the
// results of the steps that finished are returned alongside the error.
func (b *Bootstrapper) Run(ctx context.Context, opts Options) ([]Result, error) {
	log := b.Logger
	if log == nil {
		log = logging.FromContext(ctx)
	}
	opts = opts.withDefaults()

	root, err := project.ResolveRoot(opts.Root)
	if err != nil {
		return nil, err
	}
	manifestPath := project.Join(root, opts.ManifestFile, manifest.DefaultFile)

	var results []Result
	for _, step := range Steps {
		var (
			res Result
			err error
		)
		switch step {
		case StepSubmodule:
			if opts.SkipSubmodule {
				res = Result{Step: step, Skipped: true, Detail: "disabled"}
				break
			}
			res, err = RegisterSubmodule(ctx, b.Git, root, opts.ToolRepository, opts.SubmodulePath)
		case StepBuildScript:
			res, err = PatchBuildScript(project.Join(root, opts.BuildScript, config.DefaultBuildScript), ImportLine(opts.SubmodulePath))
		case StepManifest:
			if opts.SkipManifest {
				res = Result{Step: step, Skipped: true, Detail: "disabled"}
				break
			}
			res, err = CreateManifest(manifestPath)
		case StepGitignore:
			res, err = IgnoreLockFile(root, manifestPath)
		}
		if err != nil {
			log.Debug("bootstrap step failed", "step", step, "err", err)
			return results, err
		}
		log.Debug("bootstrap step", "step", res.Step, "skipped", res.Skipped, "detail", res.Detail)
		results = append(results, res)
		if b.OnStep != nil {
			b.OnStep(res)
		}
	}
	return results, nil
}

// ImportLine returns the build script line that imports the tool from the
// submodule at submodulePath.
func ImportLine(submodulePath string) string {
	p := path.Join(filepath.ToSlash(submodulePath), "main.zig")
	return fmt.Sprintf("const zag = @import(%q);", p)
}

// RegisterSubmodule adds url as a submodule at submodulePath inside root.
// It is skipped when that path already exists.
func RegisterSubmodule(ctx context.Context, r git.Runner, root, url, submodulePath string) (Result, error) {
	res := Result{Step: StepSubmodule}
	dest := filepath.Join(root, submodulePath)
	if fileutil.Exists(dest) {
		res.Skipped = true
		res.Detail = submodulePath + " already exists"
		return res, nil
	}
	if err := git.SubmoduleAdd(ctx, r, root, url, submodulePath); err != nil {
		return res, err
	}
	res.Detail = fmt.Sprintf("%s -> %s", url, submodulePath)
	return res, nil
}

// PatchBuildScript inserts line at the very top of the build script at
// path, keeping the rest of the file intact. A script that already has the
// line is left alone.
func PatchBuildScript(path, line string) (Result, error) {
	res := Result{Step: StepBuildScript}
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the project root
	if err != nil {
		return res, fmt.Errorf("%w: reading build script %s: %w", ErrIO, path, err)
	}
	if hasLine(string(data), line) {
		res.Skipped = true
		res.Detail = "import already present"
		return res, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return res, fmt.Errorf("%w: %w", ErrIO, err)
	}
	patched := make([]byte, 0, len(line)+1+len(data))
	patched = append(patched, line...)
	patched = append(patched, '\n')
	patched = append(patched, data...)
	if err := fileutil.WriteAtomic(path, patched, info.Mode().Perm()); err != nil {
		return res, fmt.Errorf("%w: writing build script %s: %w", ErrIO, path, err)
	}
	res.Detail = filepath.Base(path)
	return res, nil
}

// HasImport reports whether the build script at path already imports the
// tool from submodulePath.
func HasImport(path, submodulePath string) (bool, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the project root
	if err != nil {
		return false, fmt.Errorf("%w: reading build script %s: %w", ErrIO, path, err)
	}
	return hasLine(string(data), ImportLine(submodulePath)), nil
}

func hasLine(content, line string) bool {
	for l := range strings.Lines(content) {
		if strings.TrimSpace(l) == line {
			return true
		}
	}
	return false
}

// CreateManifest writes an empty manifest at path unless one already exists.
func CreateManifest(path string) (Result, error) {
	res := Result{Step: StepManifest}
	err := manifest.Create(path, manifest.New())
	if errors.Is(err, manifest.ErrExists) {
		res.Skipped = true
		res.Detail = filepath.Base(path) + " already exists"
		return res, nil
	}
	if err != nil {
		return res, err
	}
	res.Detail = filepath.Base(path)
	return res, nil
}

// IgnoreLockFile appends the manifest's lock file to root/.gitignore when
// no line names it yet. A missing .gitignore is created.
func IgnoreLockFile(root, manifestPath string) (Result, error) {
	res := Result{Step: StepGitignore}
	entry := manifest.LockPath(manifestPath)
	if rel, err := filepath.Rel(root, entry); err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		entry = filepath.ToSlash(rel)
	} else {
		res.Skipped = true
		res.Detail = "lock file is outside the project"
		return res, nil
	}

	path := filepath.Join(root, ".gitignore")
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the project root
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return res, fmt.Errorf("%w: reading %s: %w", ErrIO, path, err)
	}
	content := string(data)
	if hasLine(content, entry) || hasLine(content, "/"+entry) {
		res.Skipped = true
		res.Detail = entry + " already ignored"
		return res, nil
	}

	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += entry + "\n"
	if err := fileutil.WriteAtomic(path, []byte(content), 0o644); err != nil {
		return res, fmt.Errorf("%w: writing %s: %w", ErrIO, path, err)
	}
	res.Detail = entry
	return res, nil
}
