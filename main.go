// main is the entry point for the binbridge CLI.
package main

import (
	"github.com/huangsam/binbridge/cmd"
	"github.com/huangsam/binbridge/internal/contract"
)

func main() {
	err := cmd.Execute()
	if closeErr := cmd.CloseSource(); closeErr != nil {
		contract.LogWarn("Failed to close object store", closeErr)
	}
	if profErr := cmd.StopProfiling(); profErr != nil {
		contract.LogWarn("Failed to stop profiling", profErr)
	}
	if err != nil {
		contract.LogFatal("Command failed", err)
	}
}
