// Package logging builds the leveled logfmt logger used by the CLI.
package logging

import (
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// New returns a logfmt logger writing to w. Debug lines are only emitted
// when verbose is set; warnings and errors always are.
func New(w io.Writer, verbose bool) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)

	allow := level.AllowWarn()
	if verbose {
		allow = level.AllowDebug()
	}
	return level.NewFilter(logger, allow)
}
