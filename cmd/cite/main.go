package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"cite/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "cite",
	Short: "Citation validation for Go sources",
	Long:  `cite validates //cite: directives in Go source trees against their cited sources`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
