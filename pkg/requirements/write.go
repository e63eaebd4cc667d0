package requirements

import (
	"os"
	"path/filepath"
)

// Apply commits a reconciled file. NoOpExisting results are not written.
// It reports whether the file changed.
//
// Content is written to a temporary file in the same directory and renamed
// over path, so readers see either the old or the new file and a failed
// write never leaves a truncated file behind. The original permission bits
// are kept. A symlinked path is resolved first so the link survives and
// its target is the file that changes. Filesystem errors are returned
// unwrapped.
func Apply(path string, res Result) (bool, error) {
	if !res.Decision.Kind.Changes() {
		return false, nil
	}
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(target)
	if err != nil {
		return false, err
	}
	if err := writeFileAtomic(target, []byte(res.Content()), info.Mode().Perm()); err != nil {
		return false, err
	}
	return true, nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	tmp, err := os.CreateTemp(dir, "."+base+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
