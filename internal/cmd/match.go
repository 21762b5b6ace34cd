package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/justrnr500/lazyglob/internal/config"
	"github.com/justrnr500/lazyglob/internal/glob"
)

var matchCmd = &cobra.Command{
	Use:   "match <pattern> <path>...",
	Short: "Test paths against a pattern",
	Long: `Test whether paths would be found by a search, without reading the
file system. Each path is resolved against the working directory and
compared the same way a search below --root compares visited entries.
Hidden and depth limits apply; type filters do not.

Examples:
  lazyglob match '**/*.go' internal/glob/glob.go
  lazyglob match --root ./globtest '*/bar' globtest/foo/bar`,
	Args: cobra.MinimumNArgs(2),
	RunE: runMatch,
}

var (
	matchRoot string
	matchJSON bool
)

func init() {
	rootCmd.AddCommand(matchCmd)
	matchCmd.Flags().StringVarP(&matchRoot, "root", "r", ".", "Directory the search would start from")
	matchCmd.Flags().BoolVar(&matchJSON, "json", false, "Output as JSON")
}

// MatchResult is the outcome for one tested path.
type MatchResult struct {
	Path    string `json:"path"`
	Matched bool   `json:"matched"`
	Error   string `json:"error,omitempty"`
}

func runMatch(cmd *cobra.Command, args []string) error {
	cfg, logger, err := getConfig(cmd)
	if err != nil {
		return err
	}

	opts := append(cfg.Options(), glob.WithLogger(logger))
	e, err := glob.New(matchRoot, args[0], opts...)
	if err != nil {
		return err
	}

	results := matchPaths(e, args[1:])
	format := cfg.Output.Format
	if matchJSON {
		format = config.FormatJSON
	}
	return printMatches(cmd.OutOrStdout(), results, format)
}

func matchPaths(e *glob.Enumerator, paths []string) []MatchResult {
	results := make([]MatchResult, 0, len(paths))
	for _, p := range paths {
		r := MatchResult{Path: p}
		matched, err := e.MatchPath(p)
		if err != nil {
			r.Error = err.Error()
		}
		r.Matched = matched
		results = append(results, r)
	}
	return results
}

func printMatches(w io.Writer, results []MatchResult, format string) error {
	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(results); err != nil {
			return err
		}
	case config.FormatJSONL:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		for _, r := range results {
			if err := enc.Encode(r); err != nil {
				return fmt.Errorf("encode result: %w", err)
			}
		}
	case config.FormatNull:
		// Only matching paths, like a search with --print0.
		for _, r := range results {
			if r.Matched {
				fmt.Fprint(w, r.Path, "\x00")
			}
		}
	case config.FormatPlain, "":
		for _, r := range results {
			switch {
			case r.Error != "":
				fmt.Fprintf(w, "! %s (%s)\n", r.Path, r.Error)
			case r.Matched:
				fmt.Fprintf(w, "✓ %s\n", r.Path)
			default:
				fmt.Fprintf(w, "✗ %s\n", r.Path)
			}
		}
	default:
		return fmt.Errorf("%w: output format %q", config.ErrInvalid, format)
	}

	for _, r := range results {
		if !r.Matched {
			return fmt.Errorf("some paths did not match")
		}
	}
	return nil
}
