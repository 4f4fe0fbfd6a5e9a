// main is the entry point for the arboclima CLI.
package main

import (
	"github.com/arboclima/arboclima/cmd"
	"github.com/arboclima/arboclima/internal/contract"
	"github.com/arboclima/arboclima/internal/iocache"
)

func main() {
	err := cmd.Execute()

	// Close stores before exiting so sqlite flushes cleanly.
	iocache.CloseStores()

	if err != nil {
		contract.LogFatal("Command failed", err)
	}
}
