package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arthurv/ticketd/pkg/model"
)

// userPromoteCmd represents the user promote command
var userPromoteCmd = &cobra.Command{
	Use:   "promote <handle>",
	Short: "Grant a user the administrator role",
	Long: `Grant a user the administrator role.

Role elevation only happens through this out-of-band path; the public
registration endpoint always creates standard users.

Example:
  ticketctl user promote bob`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := setRole(args[0], model.RoleAdministrator); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to promote %s: %v\n", args[0], err)
			os.Exit(1)
		}
		fmt.Printf("%s is now an administrator\n", args[0])
	},
}

// userDemoteCmd represents the user demote command
var userDemoteCmd = &cobra.Command{
	Use:   "demote <handle>",
	Short: "Return a user to the standard role",
	Long: `Return a user to the standard role.

Outstanding tokens stay formally valid, but the identity filter reads the
live role on every request, so the demotion takes effect immediately.

Example:
  ticketctl user demote bob`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := setRole(args[0], model.RoleStandard); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to demote %s: %v\n", args[0], err)
			os.Exit(1)
		}
		fmt.Printf("%s is now a standard user\n", args[0])
	},
}

func init() {
	userCmd.AddCommand(userPromoteCmd)
	userCmd.AddCommand(userDemoteCmd)
}

func setRole(handle string, role model.Role) error {
	users, err := connectUsers()
	if err != nil {
		return err
	}
	return users.SetRole(handle, role)
}
