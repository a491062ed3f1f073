// main is the entry point for the foredeck CLI.
package main

import (
	"github.com/foredeck/foredeck/cmd"
	"github.com/foredeck/foredeck/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Command failed", err)
	}
	if err := cmd.StopProfiling(); err != nil {
		contract.LogFatal("Profiling failed", err)
	}
}
