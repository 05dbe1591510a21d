package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ngmigrate/internal/prof"
)

// setupProfiling reads the persistent profiling flags and starts the
// requested profilers. The returned cleanup is safe to call when nothing
// was enabled.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	root := cmd.Root()
	cpuProfile, err := root.PersistentFlags().GetString("cpu-profile")
	if err != nil {
		return nil, err
	}
	memProfile, err := root.PersistentFlags().GetString("mem-profile")
	if err != nil {
		return nil, err
	}

	session, err := prof.Start(cpuProfile, memProfile)
	if err != nil {
		return nil, err
	}
	return func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(os.Stderr, "profiling: %v\n", err)
		}
	}, nil
}
