package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/justrnr500/lazyglob/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long: `Write a default lazyglob config file in the current directory.

Searches started in this directory or below pick it up automatically.
Values can be overridden per run with flags, or with LAZYGLOB_* variables
set in the environment or in a .env file next to the config.

Examples:
  lazyglob init
  lazyglob init --toml
  lazyglob init --force`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

var (
	initTOML  bool
	initForce bool
	initQuiet bool
)

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initTOML, "toml", false, "Write "+config.TOMLFile+" instead of "+config.YAMLFile)
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing config file")
	initCmd.Flags().BoolVarP(&initQuiet, "quiet", "q", false, "Suppress output")
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	path, created, err := writeDefaultConfig(cwd, initTOML, initForce)
	if err != nil {
		return err
	}

	if !initQuiet {
		if created {
			fmt.Fprintln(cmd.OutOrStdout(), "✓ Created", path)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "Already initialized:", path)
		}
	}
	return nil
}

// writeDefaultConfig writes the default config into dir. An existing file is
// left alone unless force is set.
func writeDefaultConfig(dir string, asTOML, force bool) (string, bool, error) {
	name := config.YAMLFile
	if asTOML {
		name = config.TOMLFile
	}
	path := filepath.Join(dir, name)

	if _, err := os.Stat(path); err == nil && !force {
		return path, false, nil
	}

	if err := config.Default().Save(path); err != nil {
		return "", false, err
	}
	return path, true, nil
}
