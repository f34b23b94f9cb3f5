package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arthurv/ticketd/pkg/authn"
	"github.com/arthurv/ticketd/pkg/config"
	"github.com/arthurv/ticketd/pkg/password"
)

// userResetPasswordCmd represents the user reset-password command
var userResetPasswordCmd = &cobra.Command{
	Use:   "reset-password <handle>",
	Short: "Reset a user's password",
	Long: `Reset the password for a user account.

The new password is read from the TICKETD_PASSWORD environment variable,
or prompted for interactively when it is unset.

Example:
  ticketctl user reset-password alice`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handle := args[0]

		secret, err := readPassword()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read password: %v\n", err)
			os.Exit(1)
		}

		users, err := connectUsers()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		hasher := password.NewHasher(config.Get().BcryptCost)
		if err := authn.New(users, hasher).ResetPassword(handle, secret); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to reset password for %s: %v\n", handle, err)
			os.Exit(1)
		}

		fmt.Printf("Password for %s updated\n", handle)
	},
}

func init() {
	userCmd.AddCommand(userResetPasswordCmd)
}
