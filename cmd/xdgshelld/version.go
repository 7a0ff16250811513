package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is overridden at build time via -ldflags, matching the
// pack's convention for stamping a release version into the binary.
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of xdgshelld",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("xdgshelld " + version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
