// Package commands implements the actionctl CLI commands.
package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/marmos91/actionlib/cmd/actionctl/commands/config"
	"github.com/marmos91/actionlib/cmd/actionctl/commands/goals"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"

	// Global flags.
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "actionctl",
	Short: "actionctl - Action protocol server and client tooling",
	Long: `actionctl runs and inspects an actionlib ActionServer: a goal/cancel/
status/feedback/result protocol server modeled on ROS actionlib, with an
in-process transport, Prometheus metrics, OpenTelemetry tracing and a
debug HTTP API.

Use "actionctl [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and runs it. Called
// once from main.main.
func Execute() error {
	return rootCmd.Execute()
}

// GetRootCmd returns the root command for testing purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/actionctl/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(config.Cmd)
	rootCmd.AddCommand(goals.Cmd)
}

// GetConfigFile returns the config file path from the global flag.
func GetConfigFile() string {
	return cfgFile
}

// Exit prints an error and exits with code 1.
func Exit(format string, args ...any) {
	rootCmd.PrintErrf(format+"\n", args...)
	os.Exit(1)
}
