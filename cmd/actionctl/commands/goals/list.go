package goals

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/marmos91/actionlib/internal/cli/output"
	"github.com/marmos91/actionlib/internal/cli/timeutil"
	"github.com/marmos91/actionlib/pkg/debugclient"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked goals",
	Long: `List the goals currently tracked by a running action server.

Examples:
  # List goals as a table
  actionctl goals list

  # List goals as JSON
  actionctl goals list -o json --server http://localhost:8088`,
	RunE: runList,
}

// goalList renders a slice of debugclient.GoalSummary as a table.
type goalList []debugclient.GoalSummary

func (gl goalList) Headers() []string {
	return []string{"ID", "STATUS", "AGE", "TEXT"}
}

func (gl goalList) Rows() [][]string {
	rows := make([][]string, 0, len(gl))
	for _, g := range gl {
		age := timeutil.FormatUptime(time.Since(g.Stamp).String())
		rows = append(rows, []string{g.ID, g.Status, age, g.Text})
	}
	return rows
}

func runList(cmd *cobra.Command, args []string) error {
	client := debugclient.New(serverURL).WithToken(token)

	goalSummaries, err := client.ListGoals()
	if err != nil {
		return fmt.Errorf("failed to list goals: %w", err)
	}

	format, err := output.ParseFormat(outputFmt)
	if err != nil {
		return err
	}

	switch format {
	case output.FormatJSON:
		return output.PrintJSON(os.Stdout, goalSummaries)
	case output.FormatYAML:
		return output.PrintYAML(os.Stdout, goalSummaries)
	default:
		if len(goalSummaries) == 0 {
			fmt.Println("No goals tracked.")
			return nil
		}
		return output.PrintTable(os.Stdout, goalList(goalSummaries))
	}
}
