package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arthurv/ticketd/pkg/config"
)

// configurationShowCmd represents the configuration show command
var configurationShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show ticketd configuration attributes and their sources",
	Long: `Show ticketd configuration attributes and their sources.

The values displayed by this command reflect the current state of the
configuration sources. For example, the environment variables and config
file. These may not reflect the current values used by the running ticketd
server.

Config file location: /etc/ticketd/config/ticketd.yml (or TICKETD_CONFIG_PATH)

Example:
  ticketctl configuration show
  ticketctl configuration show --output json`,
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")

		if err := showConfiguration(output); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to show configuration: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	configurationCmd.AddCommand(configurationShowCmd)
	configurationShowCmd.Flags().StringP("output", "o", "text", "Output format (text or json)")
}

func showConfiguration(output string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if output == "json" {
		jsonOutput, err := cfg.FormatJSON()
		if err != nil {
			return err
		}
		fmt.Println(jsonOutput)
		return nil
	}

	fmt.Print(cfg.FormatText())
	return nil
}
