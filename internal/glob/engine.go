package glob

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	gobwas "github.com/gobwas/glob"
)

var (
	// ErrBadPattern is returned when a pattern fails to compile.
	ErrBadPattern = errors.New("bad glob pattern")

	// ErrUnknownEngine is returned for an engine name that is not registered.
	ErrUnknownEngine = errors.New("unknown glob engine")

	// ErrUnsupportedEngine is returned for an engine that cannot match paths
	// on the current platform.
	ErrUnsupportedEngine = errors.New("glob engine not supported on this platform")
)

// Engine names a glob matching implementation.
type Engine string

const (
	// EngineDoublestar uses doublestar syntax: ** matches any number of
	// path segments, including zero.
	EngineDoublestar Engine = "doublestar"
	// EngineGobwas uses gobwas/glob syntax, compiled to a matcher tree.
	// gobwas/glob reads a backslash as an escape, so this engine is only
	// available where the separator is a forward slash.
	EngineGobwas Engine = "gobwas"
)

// DefaultEngine is used when no engine is configured.
const DefaultEngine = EngineDoublestar

// Engines returns all known engines.
func Engines() []Engine {
	return []Engine{EngineDoublestar, EngineGobwas}
}

// IsValid returns true if the engine is known.
func (e Engine) IsValid() bool {
	for _, valid := range Engines() {
		if e == valid {
			return true
		}
	}
	return false
}

// Matcher tests comparison paths against a compiled pattern.
// Match must not retain path.
type Matcher interface {
	Match(path string) bool
}

// Compile compiles pattern with the given engine. Paths passed to the
// returned matcher use the platform separator.
func Compile(engine Engine, pattern string) (Matcher, error) {
	switch engine {
	case "", EngineDoublestar:
		if !doublestar.ValidatePathPattern(pattern) {
			return nil, fmt.Errorf("%w: %q", ErrBadPattern, pattern)
		}
		return doublestarMatcher(pattern), nil
	case EngineGobwas:
		if err := checkSeparator(engine, filepath.Separator); err != nil {
			return nil, err
		}
		g, err := gobwas.Compile(pattern, filepath.Separator)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrBadPattern, pattern, err)
		}
		return g, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, engine)
}

// checkSeparator rejects engines that cannot express paths built with sep.
func checkSeparator(engine Engine, sep rune) error {
	if engine == EngineGobwas && sep == '\\' {
		return fmt.Errorf("%w: %s treats %q as an escape", ErrUnsupportedEngine, engine, sep)
	}
	return nil
}

type doublestarMatcher string

func (m doublestarMatcher) Match(path string) bool {
	// The pattern was validated at compile time, so the error is always nil.
	matched, _ := doublestar.PathMatch(string(m), path)
	return matched
}
