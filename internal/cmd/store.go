package cmd

import (
	"fmt"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/justrnr500/lazyglob/internal/config"
	"github.com/justrnr500/lazyglob/internal/logging"
)

// getConfig resolves the effective configuration for the current directory
// and builds the logger for the command.
func getConfig(cmd *cobra.Command) (*config.Config, log.Logger, error) {
	logger := logging.New(cmd.ErrOrStderr(), verbose)

	cwd, err := os.Getwd()
	if err != nil {
		return nil, nil, fmt.Errorf("get working directory: %w", err)
	}

	cfg, path, err := config.Resolve(cfgFile, cwd)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if path != "" {
		level.Debug(logger).Log("msg", "loaded config", "path", path)
	}

	return cfg, logger, nil
}
