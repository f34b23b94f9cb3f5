package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arthurv/ticketd/pkg/db"
	"github.com/arthurv/ticketd/pkg/server/store"
	gormstore "github.com/arthurv/ticketd/pkg/server/store/gorm"
)

// userCmd represents the user command
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
	Long:  `Manage user accounts, roles and credentials.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'user' requires a subcommand (create, list, promote, demote, reset-password)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
}

// connectUsers opens the database and returns the user store.
func connectUsers() (store.Users, error) {
	database, err := db.Connect(db.Config{})
	if err != nil {
		return nil, err
	}
	return gormstore.NewUsers(database), nil
}
