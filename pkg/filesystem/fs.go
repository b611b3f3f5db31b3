package filesystem

import (
	"io/fs"
)

// FS is the filesystem interface required for mkt operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	Mkdir(path string, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Other operations
	Remove(name string) error
	RemoveAll(path string) error
}

// Exists reports whether name can be stat'ed on fsys
func Exists(fsys FS, name string) bool {
	_, err := fsys.Stat(name)
	return err == nil
}
