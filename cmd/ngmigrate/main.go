package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ngmigrate/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "ngmigrate",
	Short: "Angular constructor-injection to inject() migrator",
	Long:  `ngmigrate rewrites constructor-parameter dependency injection in Angular classes into inject() property initializers`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("jobs", 0, "max parallel workers (0=auto)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to this path")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to this path")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
