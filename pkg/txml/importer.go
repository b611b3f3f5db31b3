package txml

import (
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ZocoLini/mk-template/pkg/errors"
	"github.com/ZocoLini/mk-template/pkg/filesystem"
)

// FromPath builds a structure holding a single node for path: a Directory
// with its whole subtree, or a File with the file's text.
func FromPath(fsys filesystem.FS, path string) (*Structure, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrNotFound, "%s does not exist", path).
			WithDetail("path", path)
	}

	s := NewStructure()
	if info.IsDir() {
		d, err := DirectoryFromPath(fsys, path)
		if err != nil {
			return nil, err
		}
		s.AddDirectory(d)
		return s, nil
	}

	f, err := FileFromPath(fsys, path)
	if err != nil {
		return nil, err
	}
	s.AddFile(f)
	return s, nil
}

// DirectoryFromPath builds a Directory node named after the last component
// of path. Entries are visited in lexical order.
func DirectoryFromPath(fsys filesystem.FS, path string) (*Directory, error) {
	entries, err := fsys.ReadDir(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrNotFound, "cannot read directory %s", path).
			WithDetail("path", path)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	d := &Directory{Name: baseName(path)}
	for _, entry := range entries {
		child := filepath.Join(path, entry.Name())

		// Stat follows symlinks, entry.IsDir does not
		info, err := fsys.Stat(child)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrNotFound, "cannot stat %s", child).
				WithDetail("path", child)
		}

		if info.IsDir() {
			sub, err := DirectoryFromPath(fsys, child)
			if err != nil {
				return nil, err
			}
			d.AddDirectory(sub)
			continue
		}

		f, err := FileFromPath(fsys, child)
		if err != nil {
			return nil, err
		}
		d.AddFile(f)
	}
	return d, nil
}

// FileFromPath builds a File node from a text file
func FileFromPath(fsys filesystem.FS, path string) (*File, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrNotFound, "cannot read file %s", path).
			WithDetail("path", path)
	}
	if !utf8.Valid(data) {
		return nil, errors.Newf(errors.ErrBinaryFile, "%s is not a text file", path).
			WithDetail("path", path)
	}

	name, ext := SplitFileName(filepath.Base(path))
	return &File{Name: name, Extension: ext, Content: string(data)}, nil
}

// SplitFileName splits file name at its last dot. A name whose only dot is
// the leading one (".gitignore") or the trailing one has no extension.
func SplitFileName(fileName string) (name, ext string) {
	i := strings.LastIndex(fileName, ".")
	if i <= 0 || i == len(fileName)-1 {
		return fileName, ""
	}
	return fileName[:i], fileName[i+1:]
}

func baseName(path string) string {
	base := filepath.Base(path)
	if base == "." || base == ".." || base == string(filepath.Separator) {
		if abs, err := filepath.Abs(path); err == nil {
			return filepath.Base(abs)
		}
	}
	return base
}
