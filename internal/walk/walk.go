package walk

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
)

// Options configures a walk.
type Options struct {
	// RecurseSubdirectories descends into every directory found.
	RecurseSubdirectories bool
	// MaxDepth bounds recursion. Zero means unlimited.
	MaxDepth int
	// IgnoreInaccessible skips nested directories that cannot be listed
	// because of permissions or because they vanished mid-walk.
	IgnoreInaccessible bool
	// SkipHidden skips dot-prefixed entries and does not descend into them.
	SkipHidden bool
	// Kinds restricts which entries reach ShouldInclude. Zero means KindAll.
	Kinds Kind
}

// Walker enumerates the entries below Root, yielding Transform(entry) for
// every entry accepted by ShouldInclude.
type Walker[T any] struct {
	Root    string
	Options Options

	// ShouldInclude is called once per visited entry. Nil includes all.
	ShouldInclude func(e *Entry) bool
	// Transform materializes an included entry.
	Transform func(e *Entry) T
}

// New creates a walker rooted at root.
func New[T any](root string, transform func(e *Entry) T, opts Options) *Walker[T] {
	return &Walker[T]{
		Root:      root,
		Options:   opts,
		Transform: transform,
	}
}

type frame struct {
	dir     string
	entries []fs.DirEntry
	next    int
	depth   int
}

// All returns a single-pass sequence over the walk. Every range over the
// returned sequence starts a fresh walk from the root.
//
// Entries are visited depth first, pre-order, in name order within each
// directory. A directory is listed completely before any of its entries are
// yielded, so breaking out of the loop leaves nothing open.
func (w *Walker[T]) All() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T

		root, err := filepath.Abs(w.Root)
		if err != nil {
			yield(zero, fmt.Errorf("resolve root %s: %w", w.Root, err))
			return
		}

		entries, err := os.ReadDir(root)
		if err != nil {
			yield(zero, fmt.Errorf("read directory %s: %w", root, err))
			return
		}

		kinds := w.Options.Kinds
		if kinds == 0 {
			kinds = KindAll
		}

		stack := []frame{{dir: root, entries: entries, depth: 1}}
		e := Entry{RootDirectory: root}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next == len(top.entries) {
				stack = stack[:len(stack)-1]
				continue
			}
			de := top.entries[top.next]
			top.next++
			dir, depth := top.dir, top.depth

			name := de.Name()
			if w.Options.SkipHidden && isHidden(name) {
				continue
			}

			e.Directory = dir
			e.Name = name
			e.Type = de.Type()
			e.depth = depth

			if e.Kind()&kinds != 0 && (w.ShouldInclude == nil || w.ShouldInclude(&e)) {
				if !yield(w.Transform(&e), nil) {
					return
				}
			}

			if !de.IsDir() || !w.Options.RecurseSubdirectories {
				continue
			}
			if w.Options.MaxDepth > 0 && depth >= w.Options.MaxDepth {
				continue
			}

			sub := joinPath(dir, name)
			children, err := os.ReadDir(sub)
			if err != nil {
				if w.Options.IgnoreInaccessible && isInaccessible(err) {
					continue
				}
				yield(zero, fmt.Errorf("read directory %s: %w", sub, err))
				return
			}
			stack = append(stack, frame{dir: sub, entries: children, depth: depth + 1})
		}
	}
}

func isInaccessible(err error) bool {
	return errors.Is(err, fs.ErrPermission) || errors.Is(err, fs.ErrNotExist)
}
