package glob

import (
	"fmt"
	"os"
	"path/filepath"
)

// ScratchSize is the size of the fixed buffer the enumerator builds
// comparison paths into. Longer paths are built on the heap.
const ScratchSize = 1024

// scratch returns buf[:n] when buf can hold n bytes, otherwise a new slice.
func scratch(buf []byte, n int) []byte {
	if n <= cap(buf) {
		return buf[:n]
	}
	return make([]byte, n)
}

func endsWithSeparator(s string) bool {
	return len(s) > 0 && os.IsPathSeparator(s[len(s)-1])
}

// AbsolutePath builds the comparison path for a rooted pattern: the entry's
// full path, directory + separator + name. No separator is added when
// directory is already separator terminated (a volume root such as "/").
func AbsolutePath(buf []byte, directory, name string) []byte {
	dirLen := len(directory)
	if !endsWithSeparator(directory) {
		dirLen++
	}

	out := scratch(buf, dirLen+len(name))
	copy(out, directory)
	if dirLen > len(directory) {
		out[len(directory)] = filepath.Separator
	}
	copy(out[dirLen:], name)
	return out
}

// RelativePath builds the comparison path for a relative pattern: the
// entry's path below root, without a leading separator. Entries directly in
// root get their bare name.
//
// directory must have root as a prefix. Anything else means the walker broke
// its contract and RelativePath panics.
func RelativePath(buf []byte, root, directory, name string) []byte {
	rootLen := len(root)
	// The one trailing separator of a root like "/" stays with the remainder
	// so that nested remainders always start with exactly one separator.
	if endsWithSeparator(root) {
		rootLen--
	}
	if len(directory) < rootLen {
		panic(fmt.Sprintf("glob: directory %q is not below root %q", directory, root))
	}
	rest := directory[rootLen:]

	// 0: directly in a root without trailing separator.
	// 1: directly in a separator-terminated root, rest is that separator.
	if len(rest) <= 1 {
		out := scratch(buf, len(name))
		copy(out, name)
		return out
	}
	if !os.IsPathSeparator(rest[0]) {
		panic(fmt.Sprintf("glob: directory %q does not continue root %q with a separator", directory, root))
	}

	out := scratch(buf, len(rest)-1+1+len(name))
	n := copy(out, rest[1:])
	out[n] = filepath.Separator
	copy(out[n+1:], name)
	return out
}
