// Package main is the entry point for the lg CLI (alias for lazyglob).
package main

import (
	"github.com/justrnr500/lazyglob/internal/cmd"
)

func main() {
	cmd.Execute()
}
