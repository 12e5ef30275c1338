// Package main is the entry point for the wcd CLI.
package main

import (
	"github.com/justrnr500/wildcd/internal/cmd"
)

func main() {
	cmd.Execute()
}
