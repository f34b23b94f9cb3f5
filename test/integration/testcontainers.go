package integration

import (
	"context"
	"database/sql"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/arthurv/ticketd/pkg/authn"
	"github.com/arthurv/ticketd/pkg/password"
	"github.com/arthurv/ticketd/pkg/server"
	"github.com/arthurv/ticketd/pkg/server/endpoints"
	gormstore "github.com/arthurv/ticketd/pkg/server/store/gorm"
	"github.com/arthurv/ticketd/pkg/token"
)

// TestContext holds all the resources needed for integration tests
type TestContext struct {
	DB            *gorm.DB
	RawDB         *sql.DB
	Container     testcontainers.Container
	ServerURL     string
	DatabaseURL   string // Connection string for the test database
	TokenKey      []byte
	HTTPClient    *http.Client
	Cancel        context.CancelFunc
	ServerProcess *exec.Cmd
	InlineServer  *server.Server // For inline mode
}

// NewTestContext creates a new test context with PostgreSQL testcontainer.
// Modes:
//   - Binary mode (default): Set TICKETD_BINARY to the path of the ticketctl binary
//   - Inline mode: Set TICKETD_INLINE=1 to run the server in-process (no binary needed)
func NewTestContext(ctx context.Context) (*TestContext, error) {
	// Find project root and migrations directory
	projectRoot, err := findProjectRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to find project root: %w", err)
	}
	migrationsDir := filepath.Join(projectRoot, "db", "migrations")

	// Check mode
	inlineMode := os.Getenv("TICKETD_INLINE") == "1"
	binaryPath := os.Getenv("TICKETD_BINARY")

	if !inlineMode && binaryPath == "" {
		return nil, fmt.Errorf("Either TICKETD_BINARY or TICKETD_INLINE=1 is required.\n\nBinary mode:\n  go build -o ticketctl ./cmd/ticketctl\n  INTEGRATION_TEST=1 TICKETD_BINARY=$(pwd)/ticketctl go test -v ./test/integration/...\n\nInline mode:\n  INTEGRATION_TEST=1 TICKETD_INLINE=1 go test -v ./test/integration/...")
	}

	if !inlineMode {
		// Verify the binary exists
		if _, err := os.Stat(binaryPath); err != nil {
			return nil, fmt.Errorf("TICKETD_BINARY path does not exist: %s", binaryPath)
		}
		log.Printf("Using binary: %s", binaryPath)
	} else {
		log.Println("Using inline server mode")
	}

	// Start PostgreSQL container
	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("ticketd_test"),
		tcpostgres.WithUsername("ticketd"),
		tcpostgres.WithPassword("ticketd"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	// Get connection string for the host (not container network)
	host, err := pgContainer.Host(ctx)
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := pgContainer.MappedPort(ctx, "5432")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}
	connStr := fmt.Sprintf("postgres://ticketd:ticketd@%s:%s/ticketd_test?sslmode=disable", host, port.Port())

	// Connect with GORM for test setup/assertions
	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{
		DSN:                  connStr,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get raw SQL connection for migrations
	rawDB, err := db.DB()
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get raw db: %w", err)
	}

	// Run migrations
	if err := runMigrations(rawDB, migrationsDir); err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Fixed signing key so tokens survive a server restart within a test run
	tokenKey := make([]byte, token.KeySize)
	for i := range tokenKey {
		tokenKey[i] = byte(i)
	}

	serverPort := "18080" // Use a fixed port for testing
	serverURL := fmt.Sprintf("http://127.0.0.1:%s", serverPort)

	var serverProcess *exec.Cmd
	var inlineServer *server.Server
	var cancel context.CancelFunc

	if inlineMode {
		// Start inline server
		inlineServer, cancel, err = startInlineServer(db, tokenKey, serverPort)
		if err != nil {
			_ = pgContainer.Terminate(ctx)
			return nil, fmt.Errorf("failed to start inline server: %w", err)
		}
	} else {
		// Start the actual binary
		serverProcess, cancel, err = startBinary(binaryPath, connStr, tokenKey, serverPort)
		if err != nil {
			_ = pgContainer.Terminate(ctx)
			return nil, fmt.Errorf("failed to start server binary: %w", err)
		}
	}

	// Wait for server to be ready
	if err := waitForServer(serverURL, 30*time.Second); err != nil {
		cancel()
		if serverProcess != nil && serverProcess.Process != nil {
			_ = serverProcess.Process.Kill()
		}
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("server failed to become ready: %w", err)
	}

	return &TestContext{
		DB:            db,
		RawDB:         rawDB,
		Container:     pgContainer,
		ServerURL:     serverURL,
		DatabaseURL:   connStr,
		TokenKey:      tokenKey,
		HTTPClient:    &http.Client{Timeout: 10 * time.Second},
		Cancel:        cancel,
		ServerProcess: serverProcess,
		InlineServer:  inlineServer,
	}, nil
}

// startInlineServer starts the server in-process (no binary needed)
func startInlineServer(db *gorm.DB, tokenKey []byte, port string) (*server.Server, context.CancelFunc, error) {
	_, cancel := context.WithCancel(context.Background())

	codec, err := token.NewCodec(tokenKey)
	if err != nil {
		cancel()
		return nil, nil, err
	}

	users := gormstore.NewUsers(db)
	stores := server.Stores{
		Users:      users,
		Tickets:    gormstore.NewTickets(db),
		Categories: gormstore.NewCategories(db),
		Priorities: gormstore.NewPriorities(db),
		Health:     gormstore.NewHealth(db),
	}

	// MinCost keeps the register/login round trips fast
	authenticator := authn.New(users, password.NewHasher(4))

	s := server.NewServer(stores, codec, authenticator, db, "127.0.0.1", port)
	endpoints.RegisterAll(s)

	// Start server in background
	go func() {
		_ = s.Start()
	}()

	return s, cancel, nil
}

// startBinary starts the ticketctl server binary
func startBinary(binaryPath, dbURL string, tokenKey []byte, port string) (*exec.Cmd, context.CancelFunc, error) {
	ctx, cancel := context.WithCancel(context.Background())

	// Use --no-migrate since we already ran migrations in the test setup
	cmd := exec.CommandContext(ctx, binaryPath, "server", "--no-migrate", "-b", "127.0.0.1", "-p", port)
	cmd.Env = append(os.Environ(),
		"DATABASE_URL="+dbURL,
		"TICKETD_TOKEN_KEY="+base64.StdEncoding.EncodeToString(tokenKey),
		"TICKETD_BCRYPT_COST=4",
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		cancel()
		return nil, nil, fmt.Errorf("failed to start binary: %w", err)
	}

	return cmd, cancel, nil
}

// waitForServer polls the server until it responds or times out
func waitForServer(serverURL string, timeout time.Duration) error {
	client := &http.Client{Timeout: 2 * time.Second}
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		resp, err := client.Get(serverURL + "/health")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}

	return fmt.Errorf("server did not become ready within %v", timeout)
}

// Close cleans up all test resources
func (tc *TestContext) Close(ctx context.Context) {
	if tc.Cancel != nil {
		tc.Cancel()
	}
	if tc.ServerProcess != nil && tc.ServerProcess.Process != nil {
		_ = tc.ServerProcess.Process.Kill()
		_ = tc.ServerProcess.Wait()
	}
	if tc.RawDB != nil {
		_ = tc.RawDB.Close()
	}
	if tc.Container != nil {
		_ = tc.Container.Terminate(ctx)
	}
}

// findProjectRoot locates the project root directory
func findProjectRoot() (string, error) {
	// Try relative paths from test directory
	paths := []string{
		"../..",
		"..",
		".",
	}

	for _, p := range paths {
		goMod := filepath.Join(p, "go.mod")
		if _, err := os.Stat(goMod); err == nil {
			return filepath.Abs(p)
		}
	}

	return "", fmt.Errorf("project root not found (looking for go.mod)")
}

// runMigrations executes the up migrations in version order
func runMigrations(db *sql.DB, migrationsDir string) error {
	files, err := filepath.Glob(filepath.Join(migrationsDir, "*.up.sql"))
	if err != nil {
		return err
	}
	sort.Strings(files)

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			if strings.Contains(err.Error(), "already exists") {
				continue
			}
			return fmt.Errorf("migration %s failed: %w", filepath.Base(file), err)
		}
	}

	return nil
}
