package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/go-kit/log"
	"github.com/spf13/cobra"

	"github.com/justrnr500/lazyglob/internal/config"
	"github.com/justrnr500/lazyglob/internal/glob"
)

var (
	searchType               string
	searchEngine             string
	searchJSON               bool
	searchJSONL              bool
	searchPrint0             bool
	searchCount              bool
	searchLimit              int
	searchHidden             bool
	searchMaxDepth           int
	searchIgnoreInaccessible bool
)

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&searchType, "type", "t", "", "Entry type: f (files), d (directories), a (all)")
	f.StringVarP(&searchEngine, "engine", "e", "", "Glob engine: doublestar or gobwas")
	f.BoolVar(&searchJSON, "json", false, "Output as JSON")
	f.BoolVar(&searchJSONL, "jsonl", false, "Output one JSON object per match as it is found")
	f.BoolVar(&searchPrint0, "print0", false, "Separate paths with NUL instead of newline")
	f.BoolVarP(&searchCount, "count", "c", false, "Only print the number of matches")
	f.IntVarP(&searchLimit, "limit", "n", 0, "Stop after this many matches")
	f.BoolVar(&searchHidden, "skip-hidden", false, "Skip dot-prefixed entries")
	f.IntVar(&searchMaxDepth, "max-depth", 0, "Maximum depth to descend (0 = unlimited)")
	f.BoolVar(&searchIgnoreInaccessible, "ignore-inaccessible", false, "Skip directories that cannot be read")

	rootCmd.MarkFlagsMutuallyExclusive("json", "jsonl", "print0")
}

// applySearchFlags lets explicitly set flags override the configuration.
func applySearchFlags(cmd *cobra.Command, cfg *config.Config) error {
	f := cmd.Flags()
	if f.Changed("type") {
		cfg.Search.Type = searchType
	}
	if f.Changed("engine") {
		cfg.Search.Engine = searchEngine
	}
	if f.Changed("skip-hidden") {
		cfg.Search.SkipHidden = searchHidden
	}
	if f.Changed("max-depth") {
		cfg.Search.MaxDepth = searchMaxDepth
	}
	if f.Changed("ignore-inaccessible") {
		cfg.Search.IgnoreInaccessible = searchIgnoreInaccessible
	}
	switch {
	case searchJSON:
		cfg.Output.Format = config.FormatJSON
	case searchJSONL:
		cfg.Output.Format = config.FormatJSONL
	case searchPrint0:
		cfg.Output.Format = config.FormatNull
	}
	return cfg.Validate()
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, logger, err := getConfig(cmd)
	if err != nil {
		return err
	}
	if err := applySearchFlags(cmd, cfg); err != nil {
		return err
	}

	dir := "."
	if len(args) > 1 {
		dir = args[1]
	}

	return search(cmd.OutOrStdout(), searchRequest{
		pattern: args[0],
		dir:     dir,
		limit:   searchLimit,
		count:   searchCount,
	}, cfg, logger)
}

type searchRequest struct {
	pattern string
	dir     string
	limit   int
	count   bool
}

// matchLine is one record of jsonl output.
type matchLine struct {
	Path string `json:"path"`
}

type searchResult struct {
	Pattern string   `json:"pattern"`
	Root    string   `json:"root"`
	Matches []string `json:"matches"`
	Count   int      `json:"count"`
}

// search streams matches to w in the configured format. Matches found before
// a walk error are still written.
func search(w io.Writer, req searchRequest, cfg *config.Config, logger log.Logger) error {
	opts := append(cfg.Options(), glob.WithLogger(logger))
	e, err := glob.New(req.dir, req.pattern, opts...)
	if err != nil {
		return err
	}

	result := searchResult{Pattern: e.Pattern(), Root: e.Root(), Matches: []string{}}

	lines := json.NewEncoder(w)
	lines.SetEscapeHTML(false)

	var walkErr error
	for path, err := range e.All() {
		if err != nil {
			walkErr = fmt.Errorf("walk: %w", err)
			break
		}
		result.Count++

		switch {
		case req.count:
		case cfg.Output.Format == config.FormatJSON:
			result.Matches = append(result.Matches, path)
		case cfg.Output.Format == config.FormatJSONL:
			if err := lines.Encode(matchLine{Path: path}); err != nil {
				return fmt.Errorf("encode match: %w", err)
			}
		case cfg.Output.Format == config.FormatNull:
			fmt.Fprint(w, path, "\x00")
		default:
			fmt.Fprintln(w, path)
		}

		if req.limit > 0 && result.Count >= req.limit {
			break
		}
	}

	switch {
	case req.count && (cfg.Output.Format == config.FormatJSON || cfg.Output.Format == config.FormatJSONL):
		if err := json.NewEncoder(w).Encode(map[string]interface{}{"count": result.Count}); err != nil {
			return err
		}
	case req.count:
		fmt.Fprintln(w, result.Count)
	case cfg.Output.Format == config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(result); err != nil {
			return err
		}
	}

	return walkErr
}
