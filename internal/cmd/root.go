// Package cmd provides the CLI commands for lazyglob.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set via ldflags
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "lazyglob <pattern> [directory]",
	Short: "Find files matching a glob pattern",
	Long: `lazyglob walks a directory tree and prints every entry whose path
matches a glob pattern. Matches are printed as absolute paths as soon as
they are found.

A relative pattern is matched against each entry's path below the directory.
A pattern that is itself an absolute path is matched against the full path.

Patterns support * (within one path segment), ? (one character),
character classes such as [a-z], and ** (any number of segments).

Examples:
  lazyglob '**/*.go'
  lazyglob '*/bar' ./globtest
  lazyglob "$PWD/src/*.ts"
  lazyglob --type d 'internal/*'
  lazyglob --json --limit 10 '**/*_test.go'`,
	Args:          cobra.RangeArgs(1, 2),
	RunE:          runSearch,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(`{{printf "lazyglob %s\ncommit: %s\nbuilt: %s\n" .Version "` + Commit + `" "` + BuildDate + `"}}`)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: nearest .lazyglob.yaml or .lazyglob.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")
}
