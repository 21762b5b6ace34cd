// Package main is the entry point for the lazyglob CLI.
package main

import (
	"github.com/justrnr500/lazyglob/internal/cmd"
)

func main() {
	cmd.Execute()
}
