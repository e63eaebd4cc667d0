package requirements

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/matzehuels/wopp/pkg/errors"
)

// DefaultPattern is the conventional requirements file glob.
const DefaultPattern = "requirements*.txt"

// AllOption is the first choice offered when several files match.
const AllOption = "ALL"

// Chooser picks among candidate files.
//
// Choose receives the options offered to the user: [AllOption] followed by
// every matched path. It returns the selected options as 1-based indices
// into that list. Returning no indices selects the default, ALL.
type Chooser interface {
	Choose(ctx context.Context, options []string) ([]int, error)
}

// ChooserFunc adapts a function to the [Chooser] interface.
type ChooserFunc func(ctx context.Context, options []string) ([]int, error)

// Choose calls f.
func (f ChooserFunc) Choose(ctx context.Context, options []string) ([]int, error) {
	return f(ctx, options)
}

// AllChooser always selects every file.
type AllChooser struct{}

// Choose selects the ALL option.
func (AllChooser) Choose(context.Context, []string) ([]int, error) { return []int{1}, nil }

// Locate returns the files in dir matching pattern, as absolute paths in
// lexical order.
//
// It fails with REQUIREMENTS_NOT_FOUND when nothing matches and with
// INVALID_PATH when dir is not a directory. A single match is returned
// directly; with several, chooser decides which to keep. A nil chooser
// keeps them all.
func Locate(ctx context.Context, dir, pattern string, chooser Chooser) ([]string, error) {
	if err := errors.ValidateFilePattern(pattern); err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve directory %s", dir)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "requirements directory %s", dir)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidPath, "%s is not a directory", dir)
	}

	files, err := match(abs, pattern)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New(errors.ErrCodeRequirementsNotFound,
			"no requirements files matching %q found in %s", pattern, abs)
	}
	if len(files) == 1 || chooser == nil {
		return files, nil
	}

	selected, err := chooser.Choose(ctx, ChoiceOptions(files))
	if err != nil {
		return nil, err
	}
	return SelectFiles(files, selected)
}

// ChoiceOptions builds the list offered to a [Chooser]: ALL, then files.
func ChoiceOptions(files []string) []string {
	return append([]string{AllOption}, files...)
}

// SelectFiles maps 1-based choices over [ChoiceOptions] back to files.
// An empty selection or one containing 1 (ALL) yields every file; otherwise
// the chosen files are returned in their original order.
func SelectFiles(files []string, choices []int) ([]string, error) {
	if len(choices) == 0 || slices.Contains(choices, 1) {
		return files, nil
	}
	chosen := make(map[int]bool, len(choices))
	for _, c := range choices {
		if c < 1 || c > len(files)+1 {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"invalid choice %d (choose from 1 to %d)", c, len(files)+1)
		}
		chosen[c-2] = true
	}
	var out []string
	for i, f := range files {
		if chosen[i] {
			out = append(out, f)
		}
	}
	return out, nil
}

// match globs pattern inside dir. Only pattern is a glob, so directory
// names containing [, * or ? are taken literally.
func match(dir, pattern string) ([]string, error) {
	names, err := fs.Glob(os.DirFS(dir), pattern)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid file pattern %q", pattern)
	}
	files := make([]string, 0, len(names))
	for _, name := range names {
		p := filepath.Join(dir, name)
		info, err := os.Stat(p)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, p)
	}
	slices.Sort(files)
	return files, nil
}
