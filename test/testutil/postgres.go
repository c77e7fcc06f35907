package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	gormrepo "github.com/narwhalmedia/catalog/internal/infrastructure/persistence/gorm"
	"github.com/narwhalmedia/catalog/pkg/database"
)

// PostgresContainer wraps a postgres test container
type PostgresContainer struct {
	*tcpostgres.PostgresContainer
	ConnectionString string
	DB               *gorm.DB
}

// SetupPostgresContainer starts postgres, applies the catalog migrations and
// returns the connection. The test is skipped in -short mode or when no
// container runtime is available.
func SetupPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("catalog_test"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("Failed to get connection string: %v", err)
	}

	logger := zaptest.NewLogger(t)
	db, err := gorm.Open(postgres.Open(connStr), &gorm.Config{
		Logger: database.NewGormLogger(logger, false),
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := gormrepo.Migrate(ctx, db, logger); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if err := database.Close(db); err != nil {
			t.Logf("Failed to close test database: %v", err)
		}
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate postgres container: %v", err)
		}
	})

	return &PostgresContainer{
		PostgresContainer: pgContainer,
		ConnectionString:  connStr,
		DB:                db,
	}
}

// TruncateTables truncates all tables to clean data between tests
func (pc *PostgresContainer) TruncateTables(tableNames ...string) error {
	for _, table := range tableNames {
		if err := pc.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			return err
		}
	}
	return nil
}

// CatalogTables lists the catalog tables in truncation order
var CatalogTables = []string{
	"title_categories",
	"title_genres",
	"title_cast_members",
	"titles",
	"categories",
	"genres",
	"cast_members",
}
