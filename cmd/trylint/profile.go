package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"trylint/internal/prof"
)

// setupProfiling inspects the persistent profiling flags and starts the
// corresponding profilers. The returned cleanup is safe to call multiple
// times.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	flags := cmd.Root().PersistentFlags()

	cpuPath, err := flags.GetString("cpu-profile")
	if err != nil {
		return nil, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	memPath, err := flags.GetString("mem-profile")
	if err != nil {
		return nil, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	tracePath, err := flags.GetString("runtime-trace")
	if err != nil {
		return nil, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}

	session, err := prof.Start(cpuPath, memPath, tracePath)
	if err != nil {
		return nil, err
	}
	return session.Stop, nil
}
