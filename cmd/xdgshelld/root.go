package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/elliotmr/xdgshell/config"
)

var (
	configPath string
	traceWire  bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "xdgshelld",
	Short: "A reference xdg-shell handler demo compositor",
	Long: `xdgshelld wires the xdgshell protocol handler to an in-process
seat and event loop and drives a synthetic client through
the role-assignment, configure/ack/commit and popup-grab lifecycle so
the handler can be exercised end to end without a real Wayland socket.`,
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file (default: "+config.ConfigPath()+")")
	rootCmd.PersistentFlags().BoolVar(&traceWire, "trace-wire", false, "hex-dump every outgoing event (logged at debug level, shown with --verbose)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug-level logging")
}

// Execute runs the root command, matching the pack's convention of a
// single Execute() entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}
