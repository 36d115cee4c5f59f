package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/actionlib/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	Long: `Validate the actionctl configuration file.

Checks for syntax errors, missing required fields, and invalid values.

Examples:
  # Validate default config
  actionctl config validate

  # Validate specific config file
  actionctl config validate --config /etc/actionctl/config.yaml`,
	RunE: runConfigValidate,
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.MustLoad(configPath)
	if err != nil {
		return err
	}

	displayPath := configPath
	if displayPath == "" {
		displayPath = config.GetDefaultConfigPath()
	}

	var warnings []string
	if cfg.DebugAPI.Enabled && cfg.DebugAPI.JWTSecret == "" {
		warnings = append(warnings, "debug API is enabled with no JWT secret - the cancel route is unauthenticated")
	}
	if cfg.Server.StatusFrequencyHz > 50 {
		warnings = append(warnings, "status frequency is unusually high - this will flood the status topic")
	}

	fmt.Printf("Configuration file: %s\n", displayPath)
	fmt.Println("Validation: OK")

	if len(warnings) > 0 {
		fmt.Println("\nWarnings:")
		for _, w := range warnings {
			fmt.Printf("  - %s\n", w)
		}
	}

	fmt.Printf("\nConfiguration summary:\n")
	fmt.Printf("  Namespace:        %s\n", cfg.Server.Namespace)
	fmt.Printf("  Status frequency: %g Hz\n", cfg.Server.StatusFrequencyHz)
	fmt.Printf("  Log level:        %s\n", cfg.Logging.Level)

	return nil
}
