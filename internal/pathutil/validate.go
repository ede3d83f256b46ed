// Package pathutil keeps file operations inside the output directory and
// shortens paths for log and error messages.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// RedactPath reduces a full path to .../<parent>/<basename> for log and error messages.
// For example, "/home/user/runs/connections.txt" becomes ".../runs/connections.txt".
func RedactPath(path string) string {
	if path == "" {
		return ""
	}
	cleaned := filepath.Clean(path)
	parent := filepath.Base(filepath.Dir(cleaned))
	base := filepath.Base(cleaned)
	if parent == "." || parent == string(filepath.Separator) {
		return base
	}
	return ".../" + parent + "/" + base
}

// EnsureWithin returns an error unless path resolves to dir or a location below it.
// Symlinks are resolved on the deepest existing ancestor so a link inside dir
// cannot point a removal somewhere else.
func EnsureWithin(path, dir string) error {
	if path == "" || dir == "" {
		return fmt.Errorf("path check failed: empty path or directory")
	}
	if strings.ContainsRune(path, '\x00') {
		return fmt.Errorf("path check failed: path contains null byte")
	}

	absPath, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("path check failed: %w", err)
	}
	resolvedParent, err := resolveExisting(filepath.Dir(absPath))
	if err != nil {
		return fmt.Errorf("path check failed: %w", err)
	}
	resolved := filepath.Join(resolvedParent, filepath.Base(absPath))

	absDir, err := filepath.Abs(filepath.Clean(dir))
	if err != nil {
		return fmt.Errorf("path check failed: %w", err)
	}
	resolvedDir, err := resolveExisting(absDir)
	if err != nil {
		return fmt.Errorf("path check failed: %w", err)
	}

	if resolved == resolvedDir || strings.HasPrefix(resolved, resolvedDir+string(os.PathSeparator)) {
		return nil
	}
	return fmt.Errorf("path check failed: %q is outside %q", RedactPath(absPath), RedactPath(absDir))
}

// resolveExisting evaluates symlinks on the deepest existing ancestor of dir
// and re-appends the missing tail.
func resolveExisting(dir string) (string, error) {
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		return resolved, nil
	}

	parent := filepath.Dir(dir)
	if parent == dir {
		return "", fmt.Errorf("cannot resolve path: %s", RedactPath(dir))
	}

	resolvedParent, err := resolveExisting(parent)
	if err != nil {
		return "", err
	}
	return filepath.Join(resolvedParent, filepath.Base(dir)), nil
}
