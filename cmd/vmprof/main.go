// Command vmprof inspects profile documents saved by a vmprof database.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "vmprof",
		Short:   "Inspect VM compilation profiles",
		Long:    "vmprof reads the JSON profile documents written by a profiling database\nand renders the recorded bytecode snapshots, compilations and events.",
		Version: version,
	}
	rootCmd.AddCommand(newSummaryCmd())
	rootCmd.AddCommand(newBytecodesCmd())
	rootCmd.AddCommand(newEventsCmd())
	return rootCmd
}
