package walk

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

// makeTree creates the given paths under root. Paths ending in "/" are
// directories, everything else is an empty file.
func makeTree(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		if strings.HasSuffix(p, "/") {
			if err := os.MkdirAll(full, 0755); err != nil {
				t.Fatalf("mkdir %s: %v", p, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatalf("mkdir parent of %s: %v", p, err)
		}
		if err := os.WriteFile(full, nil, 0644); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
	}
}

func relPath(e *Entry) string {
	rel, _ := filepath.Rel(e.RootDirectory, e.FullPath())
	return filepath.ToSlash(rel)
}

func collect(t *testing.T, w *Walker[string]) []string {
	t.Helper()
	var got []string
	for p, err := range w.All() {
		if err != nil {
			t.Fatalf("walk: %v", err)
		}
		got = append(got, p)
	}
	return got
}

func TestWalkOrder(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "b.txt", "a/x.txt", "a/sub/y.txt", "c/")

	w := New(root, relPath, Options{RecurseSubdirectories: true})
	got := collect(t, w)
	want := []string{"a", "a/sub", "a/sub/y.txt", "a/x.txt", "b.txt", "c"}
	if !slices.Equal(got, want) {
		t.Errorf("walk = %v, want %v", got, want)
	}
}

func TestWalkNoRecursion(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "a/x.txt", "b.txt")

	got := collect(t, New(root, relPath, Options{}))
	want := []string{"a", "b.txt"}
	if !slices.Equal(got, want) {
		t.Errorf("walk = %v, want %v", got, want)
	}
}

func TestWalkEntryFields(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "a/b/c.txt")

	absRoot, err := filepath.Abs(root)
	if err != nil {
		t.Fatalf("abs: %v", err)
	}

	w := New(root, func(e *Entry) Entry { return *e }, Options{RecurseSubdirectories: true})
	var got []Entry
	for e, err := range w.All() {
		if err != nil {
			t.Fatalf("walk: %v", err)
		}
		got = append(got, e)
	}
	if len(got) != 3 {
		t.Fatalf("got %d entries, want 3", len(got))
	}

	tests := []struct {
		dir   string
		name  string
		depth int
		kind  Kind
	}{
		{absRoot, "a", 1, KindDir},
		{filepath.Join(absRoot, "a"), "b", 2, KindDir},
		{filepath.Join(absRoot, "a", "b"), "c.txt", 3, KindFile},
	}
	for i, tt := range tests {
		e := got[i]
		if e.RootDirectory != absRoot {
			t.Errorf("entry %d: RootDirectory = %q, want %q", i, e.RootDirectory, absRoot)
		}
		if e.Directory != tt.dir {
			t.Errorf("entry %d: Directory = %q, want %q", i, e.Directory, tt.dir)
		}
		if e.Name != tt.name {
			t.Errorf("entry %d: Name = %q, want %q", i, e.Name, tt.name)
		}
		if e.Depth() != tt.depth {
			t.Errorf("entry %d: Depth = %d, want %d", i, e.Depth(), tt.depth)
		}
		if e.Kind() != tt.kind {
			t.Errorf("entry %d: Kind = %v, want %v", i, e.Kind(), tt.kind)
		}
		if !strings.HasPrefix(e.Directory, e.RootDirectory) {
			t.Errorf("entry %d: Directory %q lacks root prefix", i, e.Directory)
		}
	}
}

func TestWalkFilters(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "a/x.txt", "a/deep/z.txt", ".hidden/h.txt", ".dot", "b.txt")

	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{
			name: "files only",
			opts: Options{RecurseSubdirectories: true, Kinds: KindFile},
			want: []string{".dot", ".hidden/h.txt", "a/deep/z.txt", "a/x.txt", "b.txt"},
		},
		{
			name: "directories only",
			opts: Options{RecurseSubdirectories: true, Kinds: KindDir},
			want: []string{".hidden", "a", "a/deep"},
		},
		{
			name: "skip hidden",
			opts: Options{RecurseSubdirectories: true, SkipHidden: true},
			want: []string{"a", "a/deep", "a/deep/z.txt", "a/x.txt", "b.txt"},
		},
		{
			name: "max depth",
			opts: Options{RecurseSubdirectories: true, SkipHidden: true, MaxDepth: 2},
			want: []string{"a", "a/deep", "a/x.txt", "b.txt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collect(t, New(root, relPath, tt.opts))
			if !slices.Equal(got, tt.want) {
				t.Errorf("walk = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWalkShouldInclude(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "a/x.go", "a/y.txt", "z.go")

	w := New(root, relPath, Options{RecurseSubdirectories: true})
	w.ShouldInclude = func(e *Entry) bool { return strings.HasSuffix(e.Name, ".go") }

	got := collect(t, w)
	want := []string{"a/x.go", "z.go"}
	if !slices.Equal(got, want) {
		t.Errorf("walk = %v, want %v", got, want)
	}
}

func TestWalkMissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "does-not-exist")

	var errs int
	for _, err := range New(root, relPath, Options{RecurseSubdirectories: true}).All() {
		if err == nil {
			t.Fatal("expected only an error")
		}
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("err = %v, want fs.ErrNotExist", err)
		}
		errs++
	}
	if errs != 1 {
		t.Errorf("got %d errors, want 1", errs)
	}
}

func TestWalkVanishedDirectory(t *testing.T) {
	tests := []struct {
		name    string
		ignore  bool
		wantErr bool
	}{
		{name: "reported", ignore: false, wantErr: true},
		{name: "ignored", ignore: true, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			makeTree(t, root, "gone/inner.txt", "kept.txt")

			w := New(root, func(e *Entry) string { return e.FullPath() }, Options{
				RecurseSubdirectories: true,
				IgnoreInaccessible:    tt.ignore,
			})

			var seen []string
			var walkErr error
			for p, err := range w.All() {
				if err != nil {
					walkErr = err
					continue
				}
				seen = append(seen, filepath.Base(p))
				if filepath.Base(p) == "gone" {
					// Removed before the walker descends into it.
					if err := os.RemoveAll(p); err != nil {
						t.Fatalf("remove: %v", err)
					}
				}
			}

			if tt.wantErr {
				if !errors.Is(walkErr, fs.ErrNotExist) {
					t.Errorf("err = %v, want fs.ErrNotExist", walkErr)
				}
				return
			}
			if walkErr != nil {
				t.Fatalf("walk: %v", walkErr)
			}
			want := []string{"gone", "kept.txt"}
			if !slices.Equal(seen, want) {
				t.Errorf("walk = %v, want %v", seen, want)
			}
		})
	}
}

func TestWalkEarlyBreak(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "a/b/c/d.txt", "e.txt")

	w := New(root, relPath, Options{RecurseSubdirectories: true})
	n := 0
	for _, err := range w.All() {
		if err != nil {
			t.Fatalf("walk: %v", err)
		}
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("visited %d entries before break, want 2", n)
	}
}

func TestWalkFreshPerIteration(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "one.txt")

	w := New(root, relPath, Options{RecurseSubdirectories: true})
	if got := collect(t, w); !slices.Equal(got, []string{"one.txt"}) {
		t.Fatalf("first walk = %v", got)
	}

	makeTree(t, root, "two.txt")
	if got := collect(t, w); !slices.Equal(got, []string{"one.txt", "two.txt"}) {
		t.Errorf("second walk = %v", got)
	}
}

func TestFullPath(t *testing.T) {
	sep := string(filepath.Separator)
	tests := []struct {
		name string
		dir  string
		want string
	}{
		{name: "nested", dir: sep + "a" + sep + "b", want: sep + "a" + sep + "b" + sep + "f"},
		{name: "volume root", dir: sep, want: sep + "f"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Entry{Directory: tt.dir, RootDirectory: tt.dir, Name: "f"}
			if got := e.FullPath(); got != tt.want {
				t.Errorf("FullPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
		ok   bool
	}{
		{"", KindAll, true},
		{"a", KindAll, true},
		{"f", KindFile, true},
		{"dir", KindDir, true},
		{"x", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseKind(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseKind(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
