package podlock

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DefaultFileName is the conventional lock document file name.
const DefaultFileName = "Podfile.lock"

// lockfilePermissions is the file mode for written lock documents.
// Lock documents are meant to be read by everyone and checked in.
const lockfilePermissions = 0o644

// ReadFile reads and decodes a lock document from the given path.
func ReadFile(path string) (*Lockfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lockfile: %w", err)
	}
	lf, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return lf, nil
}

// WriteFile writes the canonical encoding to the given path, creating
// parent directories as needed.
func (l *Lockfile) WriteFile(path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != string(filepath.Separator) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create lockfile directory: %w", err)
		}
	}
	if err := os.WriteFile(path, l.Encode(), lockfilePermissions); err != nil {
		return fmt.Errorf("write lockfile: %w", err)
	}
	return nil
}

// WriteTo writes the canonical encoding to the given writer.
func (l *Lockfile) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(l.Encode())
	return int64(n), err
}

// Exists returns true if a lock document exists at the given path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// DefaultPath returns the conventional lock document path relative to a
// project root.
func DefaultPath(projectRoot string) string {
	if projectRoot == "" {
		return DefaultFileName
	}
	return filepath.Join(projectRoot, DefaultFileName)
}
