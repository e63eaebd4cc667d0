package requirements

import (
	"context"
	"os"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wopp/pkg/errors"
	"github.com/matzehuels/wopp/pkg/observability"
)

// Options is the complete input of one update run. It is passed by value
// and never modified.
type Options struct {
	Package   string // Package name (required)
	Version   string // Desired version; empty leaves the pin unversioned
	Specifier string // Desired operator or token (ee, le, ge, te); empty inherits
	Comment   string // Optional comment line written above the pin
	Dir       string // Directory searched for requirement files
	Pattern   string // Glob matched in Dir; DefaultPattern when empty
	Policy    Policy // Handling of unparseable lines
}

// FileResult reports what happened to one file.
type FileResult struct {
	Path     string
	Decision Decision
	Changed  bool
}

// Updater runs the locate, reconcile and write steps over requirement files.
type Updater struct {
	Chooser Chooser
	Logger  *log.Logger
}

// NewUpdater creates an Updater. A nil chooser selects every matching file
// and a nil logger falls back to log.Default().
func NewUpdater(chooser Chooser, logger *log.Logger) *Updater {
	if chooser == nil {
		chooser = AllChooser{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Updater{Chooser: chooser, Logger: logger}
}

// Update pins opts.Package in every selected file, one file at a time.
//
// The first error stops the run and is returned together with the results
// of the files already processed; those files keep their new content.
func (u *Updater) Update(ctx context.Context, opts Options) ([]FileResult, error) {
	want, err := opts.requirement()
	if err != nil {
		return nil, err
	}
	pattern := opts.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	files, err := Locate(ctx, dir, pattern, u.Chooser)
	if err != nil {
		return nil, err
	}
	u.Logger.Debug("located requirements files", "count", len(files), "pattern", pattern)
	hooks := observability.Requirements()
	hooks.OnFilesLocated(ctx, dir, pattern, len(files))

	results := make([]FileResult, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := u.updateFile(path, want, opts.Policy)
		if err != nil {
			hooks.OnFileUpdated(ctx, path, "", false, err)
			return results, err
		}
		hooks.OnFileUpdated(ctx, path, res.Decision.Kind.String(), res.Changed, nil)
		results = append(results, res)
	}
	return results, nil
}

func (u *Updater) updateFile(path string, want Requirement, policy Policy) (FileResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileResult{}, err
	}
	res, err := Reconcile(SplitLines(string(data)), want, policy)
	if err != nil {
		return FileResult{}, errors.New(errors.GetCode(err), "%s: %s", path, errors.UserMessage(err))
	}

	d := res.Decision
	if !d.Kind.Changes() {
		u.Logger.Info("Package is already set to the latest/desired version.", "file", path, "package", want.Name)
		return FileResult{Path: path, Decision: d}, nil
	}

	u.Logger.Info("Modifying file: "+path, "action", d.Kind.String())
	changed, err := Apply(path, res)
	if err != nil {
		return FileResult{}, err
	}
	return FileResult{Path: path, Decision: d, Changed: changed}, nil
}

func (o Options) requirement() (Requirement, error) {
	if err := errors.ValidatePythonPackageName(o.Package); err != nil {
		return Requirement{}, err
	}
	op, err := LookupSpecifier(o.Specifier)
	if err != nil {
		return Requirement{}, err
	}
	return Requirement{
		Name:      o.Package,
		Version:   o.Version,
		Specifier: op,
		Comment:   o.Comment,
	}, nil
}
