package wpath

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// FS is the filesystem the matcher walks.
type FS interface {
	// Stat returns file info for name, following symbolic links.
	Stat(name string) (fs.FileInfo, error)
	// Readable reports whether name can be opened for reading.
	Readable(name string) bool
	// ReadDirNames returns the names of the direct children of name in the
	// order the underlying filesystem enumerates them.
	ReadDirNames(name string) ([]string, error)
}

// OSFS is the host filesystem.
type OSFS struct{}

// Stat implements FS.
func (OSFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

// Readable implements FS.
func (OSFS) Readable(name string) bool {
	return readable(name)
}

// ReadDirNames implements FS.
func (OSFS) ReadDirNames(name string) ([]string, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.Readdirnames(-1)
}

// AferoFS adapts an afero.Fs. Readability is decided from the owner read
// bit because afero backends do not enforce permissions themselves.
type AferoFS struct {
	Fs afero.Fs
}

// NewAferoFS wraps fsys.
func NewAferoFS(fsys afero.Fs) *AferoFS {
	return &AferoFS{Fs: fsys}
}

// Stat implements FS.
func (a *AferoFS) Stat(name string) (fs.FileInfo, error) {
	return a.Fs.Stat(filepath.Clean(name))
}

// Readable implements FS.
func (a *AferoFS) Readable(name string) bool {
	info, err := a.Stat(name)
	if err != nil {
		return false
	}
	return info.Mode().Perm()&0o400 != 0
}

// ReadDirNames implements FS.
func (a *AferoFS) ReadDirNames(name string) ([]string, error) {
	if !a.Readable(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrPermission}
	}
	f, err := a.Fs.Open(filepath.Clean(name))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.Readdirnames(-1)
}
