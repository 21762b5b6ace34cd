// Package walk provides a lazy recursive directory walker.
//
// The walker hands each visited entry to an inclusion predicate and a
// transform as a borrowed *Entry. The entry is reused for the next visit, so
// callbacks must copy anything they want to keep.
package walk

import (
	"io/fs"
	"os"
	"path/filepath"
)

// Kind is a bitmask of entry kinds.
type Kind uint8

const (
	KindFile Kind = 1 << iota
	KindDir
	KindOther // symlinks, devices, sockets, pipes

	KindAll = KindFile | KindDir | KindOther
)

// ParseKind parses the short names used on the command line.
// Accepted values: "f" (files), "d" (directories), "a" or "" (everything).
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "", "a", "all":
		return KindAll, true
	case "f", "file":
		return KindFile, true
	case "d", "dir":
		return KindDir, true
	}
	return 0, false
}

// Entry is the walker's view of one visited file-system entry.
type Entry struct {
	// Directory is the absolute path of the directory containing the entry.
	// It always has RootDirectory as a prefix.
	Directory string
	// RootDirectory is the absolute path the walk started from.
	RootDirectory string
	// Name is the entry's own name. It never contains a separator.
	Name string
	// Type holds the type bits of the entry's mode.
	Type fs.FileMode

	depth int
}

// IsDir reports whether the entry is a directory.
func (e *Entry) IsDir() bool {
	return e.Type.IsDir()
}

// Kind classifies the entry.
func (e *Entry) Kind() Kind {
	switch {
	case e.Type.IsDir():
		return KindDir
	case e.Type.IsRegular():
		return KindFile
	default:
		return KindOther
	}
}

// Depth returns how many levels below the root the entry sits.
// Entries directly inside the root have depth 1.
func (e *Entry) Depth() int {
	return e.depth
}

// FullPath materializes the absolute path of the entry.
func (e *Entry) FullPath() string {
	return joinPath(e.Directory, e.Name)
}

// joinPath appends name to dir without cleaning, so a volume root such as
// "/" or `C:\` does not get a second separator.
func joinPath(dir, name string) string {
	if len(dir) > 0 && os.IsPathSeparator(dir[len(dir)-1]) {
		return dir + name
	}
	return dir + string(filepath.Separator) + name
}

func isHidden(name string) bool {
	return len(name) > 0 && name[0] == '.'
}
