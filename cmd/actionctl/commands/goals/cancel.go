package goals

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/actionlib/internal/cli/prompt"
	"github.com/marmos91/actionlib/pkg/debugclient"
)

var cancelForce bool

var cancelCmd = &cobra.Command{
	Use:   "cancel [goal-id]",
	Short: "Request cancellation of a goal",
	Long: `Request cancellation of a goal tracked by a running action server.

You will be prompted for confirmation unless --force is specified.

Examples:
  # Cancel a goal with confirmation
  actionctl goals cancel g-1234

  # Cancel without confirmation
  actionctl goals cancel g-1234 --force

  # Pick a goal interactively
  actionctl goals cancel`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCancel,
}

func init() {
	cancelCmd.Flags().BoolVarP(&cancelForce, "force", "f", false, "Skip confirmation prompt")
}

func runCancel(cmd *cobra.Command, args []string) error {
	client := debugclient.New(serverURL).WithToken(token)

	id, err := resolveGoalID(client, args)
	if err != nil {
		return err
	}
	if id == "" {
		return nil
	}

	confirmed, err := prompt.ConfirmWithForce(fmt.Sprintf("Cancel goal '%s'?", id), cancelForce)
	if err != nil {
		if prompt.IsAborted(err) {
			fmt.Println("\nAborted.")
			return nil
		}
		return err
	}
	if !confirmed {
		fmt.Println("Aborted.")
		return nil
	}

	if err := client.CancelGoal(id); err != nil {
		return fmt.Errorf("failed to cancel goal: %w", err)
	}

	fmt.Printf("Cancellation requested for goal '%s'\n", id)
	return nil
}

// resolveGoalID returns the goal ID from args, or prompts the user to pick
// one from the tracked goal list when no argument was given.
func resolveGoalID(client *debugclient.Client, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	goalSummaries, err := client.ListGoals()
	if err != nil {
		return "", fmt.Errorf("failed to list goals: %w", err)
	}
	if len(goalSummaries) == 0 {
		fmt.Println("No goals tracked.")
		return "", nil
	}

	options := make([]prompt.SelectOption, 0, len(goalSummaries))
	for _, g := range goalSummaries {
		options = append(options, prompt.SelectOption{
			Label:       fmt.Sprintf("%s (%s)", g.ID, g.Status),
			Value:       g.ID,
			Description: g.Text,
		})
	}

	id, err := prompt.Select("Select a goal to cancel", options)
	if err != nil {
		if prompt.IsAborted(err) {
			fmt.Println("\nAborted.")
			return "", nil
		}
		return "", err
	}
	return id, nil
}
