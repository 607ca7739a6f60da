package pathutil

import "path/filepath"

// Canonical resolves path to an absolute, symlink-free form so that one
// file maps to exactly one watch/write binding. The file itself does not
// have to exist (write targets may not yet), but its directory must.
func Canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	dir, base := filepath.Split(abs)
	resolvedDir, err := filepath.EvalSymlinks(filepath.Clean(dir))
	if err != nil {
		return "", err
	}
	return filepath.Join(resolvedDir, base), nil
}
