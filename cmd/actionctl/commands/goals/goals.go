// Package goals implements goal introspection and cancellation
// subcommands, talking to a running actionctl debug API over HTTP.
package goals

import (
	"github.com/spf13/cobra"
)

// Cmd is the goals subcommand.
var Cmd = &cobra.Command{
	Use:   "goals",
	Short: "Inspect and cancel goals on a running action server",
	Long: `Inspect and cancel goals tracked by a running actionctl server's
debug API.

Subcommands:
  list     List tracked goals
  cancel   Request cancellation of a goal`,
}

var (
	serverURL string
	token     string
	outputFmt string
)

func init() {
	Cmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8088", "debug API base URL")
	Cmd.PersistentFlags().StringVar(&token, "token", "", "bearer token for the cancel route")
	Cmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "table", "output format (table|json|yaml)")

	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(cancelCmd)
}
