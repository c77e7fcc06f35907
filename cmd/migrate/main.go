package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/narwhalmedia/catalog/internal/config"
	gormrepo "github.com/narwhalmedia/catalog/internal/infrastructure/persistence/gorm"
	"github.com/narwhalmedia/catalog/pkg/database"
	"github.com/narwhalmedia/catalog/pkg/logger"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to a config file")
		status     = flag.Bool("status", false, "Show applied and pending migrations")
		dryRun     = flag.Bool("dry-run", false, "Show pending migrations without applying them")
	)
	flag.Parse()

	var paths []string
	if *configPath != "" {
		paths = append(paths, *configPath)
	}
	cfg, err := config.Load(paths...)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zl, err := logger.NewFromConfig(cfg.Logger.Zap())
	if err != nil {
		log.Fatalf("create logger: %v", err)
	}
	zapLogger := zl.Zap()
	defer zapLogger.Sync()

	ctx := context.Background()
	db, err := database.NewGormDB(ctx, cfg.Database.Postgres(), zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	migrator := database.NewMigrator(db, zapLogger, gormrepo.Migrations())

	switch {
	case *status:
		statuses, err := migrator.Status(ctx)
		if err != nil {
			zapLogger.Fatal("failed to read migration status", zap.Error(err))
		}
		printStatus(statuses, false)
	case *dryRun:
		statuses, err := migrator.Status(ctx)
		if err != nil {
			zapLogger.Fatal("failed to read migration status", zap.Error(err))
		}
		printStatus(statuses, true)
	default:
		if err := migrator.Migrate(ctx); err != nil {
			zapLogger.Fatal("failed to run migrations", zap.Error(err))
		}
		zapLogger.Info("migrations up to date")
	}
}

func printStatus(statuses []database.MigrationStatus, pendingOnly bool) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "VERSION\tNAME\tAPPLIED AT")
	shown := 0
	for _, s := range statuses {
		if pendingOnly && s.Applied() {
			continue
		}
		applied := "pending"
		if s.Applied() {
			applied = s.AppliedAt.Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.Version, s.Name, applied)
		shown++
	}
	if shown == 0 {
		fmt.Fprintln(w, "-\tnothing pending\t-")
	}
}
