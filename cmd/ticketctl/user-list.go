package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// userListCmd represents the user list command
var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List user accounts",
	Long:  `List all user accounts with their roles.`,
	Run: func(cmd *cobra.Command, args []string) {
		users, err := connectUsers()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		list, err := users.List()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list users: %v\n", err)
			os.Exit(1)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tHANDLE\tROLE")
		for _, user := range list {
			fmt.Fprintf(w, "%d\t%s\t%s\n", user.ID, user.Handle, user.Role)
		}
		_ = w.Flush()
	},
}

func init() {
	userCmd.AddCommand(userListCmd)
}
