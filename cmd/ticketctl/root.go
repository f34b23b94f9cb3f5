package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ticketctl",
	Short: "Ticket tracking server and management CLI",
	Long:  `ticketctl runs the ticketd REST server and manages its database, users and signing keys.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
