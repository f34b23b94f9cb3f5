package main

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arthurv/ticketd/pkg/authn"
	"github.com/arthurv/ticketd/pkg/config"
	"github.com/arthurv/ticketd/pkg/model"
	"github.com/arthurv/ticketd/pkg/password"
)

// userCreateCmd represents the user create command
var userCreateCmd = &cobra.Command{
	Use:   "create <handle>",
	Short: "Create a user account",
	Long: `Create a user account.

The password is read from the TICKETD_PASSWORD environment variable, or
prompted for interactively when it is unset. Use --role to create an
administrator; this is the bootstrap path for the first admin account.

Example:
  ticketctl user create admin --role administrator`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handle := args[0]
		roleName, _ := cmd.Flags().GetString("role")

		role, err := model.RoleString(roleName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unknown role: %s\n", roleName)
			os.Exit(1)
		}

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
		user, err := authn.New(users, hasher).CreateWithRole(handle, secret, role)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create user %s: %v\n", handle, err)
			os.Exit(1)
		}

		fmt.Printf("Created %s user %s (id %d)\n", user.Role, user.Handle, user.ID)
	},
}

func init() {
	userCmd.AddCommand(userCreateCmd)
	userCreateCmd.Flags().String("role", "standard", "role for the new user (standard or administrator)")
}

func readPassword() (string, error) {
	if secret := os.Getenv("TICKETD_PASSWORD"); secret != "" {
		return secret, nil
	}

	fmt.Print("Password: ")
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
