// Package glob enumerates the file-system entries below a directory whose
// paths match a glob pattern.
//
// A pattern that is itself an absolute path is matched against each entry's
// full path. Any other pattern is matched against the entry's path relative
// to the walk root. Which of the two applies is decided once, when the
// Enumerator is built.
package glob

import (
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unsafe"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/justrnr500/lazyglob/internal/walk"
)

// ErrOutsideRoot is returned by MatchPath for paths not below the root.
var ErrOutsideRoot = errors.New("path is not below the enumeration root")

// Enumerator lazily yields the absolute paths of matching entries.
// An Enumerator must not be iterated from several goroutines at once.
type Enumerator struct {
	root    string
	pattern string
	rooted  bool
	engine  Engine
	matcher Matcher

	walkOpts walk.Options
	logger   log.Logger
}

// Option configures an Enumerator.
type Option func(*Enumerator)

// WithEngine selects the glob engine.
func WithEngine(engine Engine) Option {
	return func(e *Enumerator) { e.engine = engine }
}

// WithKinds restricts results to the given entry kinds.
func WithKinds(kinds walk.Kind) Option {
	return func(e *Enumerator) { e.walkOpts.Kinds = kinds }
}

// WithSkipHidden skips dot-prefixed entries and their contents.
func WithSkipHidden(skip bool) Option {
	return func(e *Enumerator) { e.walkOpts.SkipHidden = skip }
}

// WithMaxDepth limits how deep the walk descends. Zero means unlimited.
func WithMaxDepth(depth int) Option {
	return func(e *Enumerator) { e.walkOpts.MaxDepth = depth }
}

// WithIgnoreInaccessible skips nested directories that cannot be listed.
func WithIgnoreInaccessible(ignore bool) Option {
	return func(e *Enumerator) { e.walkOpts.IgnoreInaccessible = ignore }
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger log.Logger) Option {
	return func(e *Enumerator) { e.logger = logger }
}

// New creates an Enumerator over directory. Relative directories are
// resolved against the working directory each time the walk starts.
// New fails if the pattern does not compile.
func New(directory, pattern string, opts ...Option) (*Enumerator, error) {
	e := &Enumerator{
		root:    directory,
		pattern: trimPattern(pattern),
		engine:  DefaultEngine,
		logger:  log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}

	m, err := Compile(e.engine, e.pattern)
	if err != nil {
		return nil, fmt.Errorf("compile pattern: %w", err)
	}
	e.matcher = m
	e.rooted = IsRooted(e.pattern)

	// ** and multi-segment patterns need arbitrarily deep entries.
	e.walkOpts.RecurseSubdirectories = true

	level.Debug(e.logger).Log("msg", "compiled pattern", "pattern", e.pattern, "engine", e.engine, "rooted", e.rooted, "root", e.root)
	return e, nil
}

// Glob returns every match of pattern below directory.
func Glob(directory, pattern string, opts ...Option) ([]string, error) {
	e, err := New(directory, pattern, opts...)
	if err != nil {
		return nil, err
	}
	return e.Collect()
}

// Root returns the directory the enumerator walks.
func (e *Enumerator) Root() string { return e.root }

// Pattern returns the pattern as it is matched.
func (e *Enumerator) Pattern() string { return e.pattern }

// Rooted reports whether the pattern is matched against full paths.
func (e *Enumerator) Rooted() bool { return e.rooted }

// All returns the sequence of matching absolute paths. Each range over it
// walks the tree again from scratch. Walk errors are yielded unchanged and
// end the sequence.
func (e *Enumerator) All() iter.Seq2[string, error] {
	w := walk.New(e.root, e.transform, e.walkOpts)
	w.ShouldInclude = e.include
	return w.All()
}

// Collect drains All. On error it returns the matches found so far along
// with the error.
func (e *Enumerator) Collect() ([]string, error) {
	var matches []string
	for p, err := range e.All() {
		if err != nil {
			return matches, err
		}
		matches = append(matches, p)
	}
	return matches, nil
}

// MatchPath reports whether the entry at path would be yielded, without
// touching the file system. Hidden and depth limits apply as in a walk; kind
// filters do not, since they need the entry's type.
func (e *Enumerator) MatchPath(path string) (bool, error) {
	root, err := filepath.Abs(e.root)
	if err != nil {
		return false, fmt.Errorf("resolve root: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false, fmt.Errorf("resolve path: %w", err)
	}

	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false, fmt.Errorf("%w: %s", ErrOutsideRoot, path)
	}

	segments := strings.Split(rel, string(filepath.Separator))
	if e.walkOpts.MaxDepth > 0 && len(segments) > e.walkOpts.MaxDepth {
		return false, nil
	}
	if e.walkOpts.SkipHidden {
		for _, seg := range segments {
			if strings.HasPrefix(seg, ".") {
				return false, nil
			}
		}
	}

	entry := walk.Entry{
		Directory:     filepath.Dir(abs),
		RootDirectory: root,
		Name:          filepath.Base(abs),
	}
	return e.include(&entry), nil
}

// scratchPool holds comparison path buffers.
var scratchPool = sync.Pool{
	New: func() any {
		return new([ScratchSize]byte)
	},
}

func (e *Enumerator) include(entry *walk.Entry) bool {
	buf := scratchPool.Get().(*[ScratchSize]byte)
	defer scratchPool.Put(buf)

	var path []byte
	if e.rooted {
		path = AbsolutePath(buf[:], entry.Directory, entry.Name)
	} else {
		path = RelativePath(buf[:], entry.RootDirectory, entry.Directory, entry.Name)
	}
	return e.matcher.Match(borrow(path))
}

func (e *Enumerator) transform(entry *walk.Entry) string {
	p := entry.FullPath()
	level.Debug(e.logger).Log("msg", "match", "path", p)
	return p
}

// borrow views b as a string without copying. The view is only valid
// while b is neither modified nor reused.
func borrow(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// IsRooted reports whether pattern denotes an absolute path: it is absolute,
// starts with a volume name, or starts with a separator.
func IsRooted(pattern string) bool {
	if filepath.IsAbs(pattern) || filepath.VolumeName(pattern) != "" {
		return true
	}
	return len(pattern) > 0 && os.IsPathSeparator(pattern[0])
}

// trimPattern drops trailing separators so "foo/" matches like "foo".
// A bare root such as "/" is kept.
func trimPattern(pattern string) string {
	keep := len(filepath.VolumeName(pattern)) + 1
	for len(pattern) > keep && os.IsPathSeparator(pattern[len(pattern)-1]) {
		pattern = pattern[:len(pattern)-1]
	}
	return pattern
}
