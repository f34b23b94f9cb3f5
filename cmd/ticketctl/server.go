package main

import (
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/arthurv/ticketd/pkg/authn"
	"github.com/arthurv/ticketd/pkg/config"
	"github.com/arthurv/ticketd/pkg/db"
	"github.com/arthurv/ticketd/pkg/password"
	"github.com/arthurv/ticketd/pkg/server"
	"github.com/arthurv/ticketd/pkg/server/endpoints"
	gormstore "github.com/arthurv/ticketd/pkg/server/store/gorm"
	"github.com/arthurv/ticketd/pkg/token"
)

func defaultBindAddress() string {
	return config.Get().BindAddress
}

func defaultPort() string {
	return strconv.Itoa(config.Get().Port)
}

func defaultPortInt() int {
	return config.Get().Port
}

// loadTokenKey reads and decodes the signing key from TICKETD_TOKEN_KEY.
func loadTokenKey() ([]byte, error) {
	keyB64, ok := os.LookupEnv("TICKETD_TOKEN_KEY")
	if !ok {
		return nil, fmt.Errorf("TICKETD_TOKEN_KEY environment variable is required")
	}

	key, err := base64.StdEncoding.DecodeString(keyB64)
	if err != nil {
		return nil, fmt.Errorf("bad TICKETD_TOKEN_KEY: %w", err)
	}
	if len(key) != token.KeySize {
		return nil, fmt.Errorf("TICKETD_TOKEN_KEY must decode to %d bytes", token.KeySize)
	}
	return key, nil
}

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the ticketd application server",
	Long: `Run the ticketd application server

To run the server requires the environment variables TICKETD_TOKEN_KEY and DATABASE_URL.

By default, database migrations are run on startup. Use --no-migrate to skip.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Validate required environment variables first (fail fast)
		key, err := loadTokenKey()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		if os.Getenv("DATABASE_URL") == "" {
			fmt.Fprintln(os.Stderr, "DATABASE_URL environment variable is required")
			os.Exit(1)
		}

		cfg := config.Get()
		if err := cfg.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, "Invalid configuration:", err)
			os.Exit(1)
		}

		// Run migrations unless --no-migrate is set
		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if !noMigrate {
			log.Println("Running database migrations...")
			if err := runMigrations(); err != nil {
				fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
				os.Exit(1)
			}
		}

		codec, err := token.NewCodec(key)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to initiate token codec:", err)
			os.Exit(1)
		}

		database, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to connect to DB:", err)
			os.Exit(1)
		}

		users := gormstore.NewUsers(database)
		stores := server.Stores{
			Users:      users,
			Tickets:    gormstore.NewTickets(database),
			Categories: gormstore.NewCategories(database),
			Priorities: gormstore.NewPriorities(database),
			Health:     gormstore.NewHealth(database),
		}

		hasher := password.NewHasher(cfg.BcryptCost)
		authenticator := authn.New(users, hasher)

		host, _ := cmd.Flags().GetString("bind-address")
		port, _ := cmd.Flags().GetString("port")
		s := server.NewServer(stores, codec, authenticator, database, host, port)

		endpoints.RegisterAll(s)

		// Pick up config file edits without a restart.
		stop := make(chan struct{})
		defer close(stop)
		go func() {
			_ = config.Watch(stop, func(cfg *config.Config) {
				log.Println("Configuration reloaded from", cfg.ConfigFilePath())
			})
		}()

		log.Printf("Running server at http://%s:%s...\n", host, port)
		log.Fatal(s.Start())
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("port", "p", defaultPort(), "server listen port")
	serverCmd.Flags().StringP("bind-address", "b", defaultBindAddress(), "server bind address")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
}
