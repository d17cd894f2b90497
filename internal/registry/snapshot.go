package registry

import (
	"os"

	"github.com/google/renameio/v2"
)

// Files abstracts service file access so tests can use in-memory content.
type Files interface {
	ReadAll(path string) ([]byte, error)
	WriteAll(path string, data []byte) error
}

// OSFiles reads and atomically rewrites files on the local filesystem.
type OSFiles struct{}

func (OSFiles) ReadAll(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteAll replaces path in one rename, keeping the mode of the existing
// file. The file must already exist.
func (OSFiles) WriteAll(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	perm := info.Mode().Perm()
	return renameio.WriteFile(path, data, perm, renameio.WithStaticPermissions(perm))
}

// Load reads and parses the service file at path.
func Load(files Files, path string) (*Registry, error) {
	data, err := files.ReadAll(path)
	if err != nil {
		return nil, &PathError{Op: "read", Path: path, Err: err}
	}
	return Parse(data)
}

// Save rewrites the whole service file from reg.
func Save(files Files, path string, reg *Registry) error {
	if err := files.WriteAll(path, Serialize(reg)); err != nil {
		return &PathError{Op: "write", Path: path, Err: err}
	}
	return nil
}
