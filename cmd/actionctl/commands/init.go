package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/actionlib/pkg/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a sample configuration file",
	Long: `Initialize a sample actionctl configuration file.

By default, the configuration file is created at $XDG_CONFIG_HOME/actionctl/config.yaml.
Use --config to specify a custom path.

Examples:
  # Initialize with default location
  actionctl init

  # Initialize with custom path
  actionctl init --config /etc/actionctl/config.yaml

  # Force overwrite existing config
  actionctl init --force`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Force overwrite existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	configFile := GetConfigFile()

	var configPath string
	var err error

	if configFile != "" {
		err = config.InitConfigToPath(configFile, initForce)
		configPath = configFile
	} else {
		configPath, err = config.InitConfig(initForce)
	}

	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	fmt.Printf("Configuration file created at: %s\n", configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Edit the configuration file to customize your setup")
	fmt.Println("  2. Start the server with: actionctl serve")
	fmt.Printf("  3. Or specify a custom config: actionctl serve --config %s\n", configPath)

	return nil
}
