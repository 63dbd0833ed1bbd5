package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/JordyS97/dealer-analytics-dashboard/internal/cache"
	"github.com/JordyS97/dealer-analytics-dashboard/internal/config"
	"github.com/JordyS97/dealer-analytics-dashboard/internal/ingest"
	"github.com/JordyS97/dealer-analytics-dashboard/internal/repository/postgres"
	"github.com/JordyS97/dealer-analytics-dashboard/internal/service"
	"github.com/JordyS97/dealer-analytics-dashboard/internal/storage"
)

type ctxKey string

const dbKey ctxKey = "db"

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func initDB(c *cli.Context) error {
	// Initialize database connection
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	wrapped := postgres.NewDBWithConn(sqlx.NewDb(db, "pgx"))
	if err := postgres.EnsureSchema(c.Context, wrapped); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	// Store the database connection in the context
	c.Context = context.WithValue(c.Context, dbKey, wrapped)
	return nil
}

func closeDB(c *cli.Context) error {
	// Close the database connection when done
	if db, ok := c.Context.Value(dbKey).(*postgres.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func newIngestService(c *cli.Context) (*service.IngestService, error) {
	db, ok := c.Context.Value(dbKey).(*postgres.DB)
	if !ok || db == nil {
		return nil, fmt.Errorf("database connection not initialized")
	}

	cfg := config.Load()

	dashboardCache, err := cache.NewDashboardCache(cfg.Cache)
	if err != nil {
		log.Printf("warning: report cache unavailable: %v", err)
		dashboardCache = cache.NewNoopDashboardCache()
	}

	var archive storage.ObjectArchive = storage.NoopArchive{}
	if cfg.Archive.Enabled {
		minioArchive, err := storage.NewMinioArchive(c.Context, cfg.Archive)
		if err != nil {
			log.Printf("warning: upload archive unavailable: %v", err)
		} else {
			archive = minioArchive
		}
	}

	return service.NewIngestService(
		postgres.NewSalesRepository(db),
		postgres.NewTransactionRepository(db),
		postgres.NewProspectRepository(db),
		postgres.NewDealerMasterRepository(db),
		dashboardCache,
		archive,
	), nil
}

func runLoad(c *cli.Context) error {
	svc, err := newIngestService(c)
	if err != nil {
		return err
	}

	kind := c.String("kind")
	file := c.String("file")

	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", file, err)
	}

	if kind == "" {
		inferred, ok := ingest.KindFromFilename(filepath.Base(file))
		if !ok {
			return fmt.Errorf("cannot infer dataset kind from %s, pass --kind", file)
		}
		kind = inferred
	}

	count, err := svc.Upload(c.Context, kind, filepath.Base(file), data)
	if err != nil {
		return err
	}

	fmt.Printf("loaded %d %s records from %s\n", count, kind, file)
	return nil
}

func runDriveSync(c *cli.Context) error {
	svc, err := newIngestService(c)
	if err != nil {
		return err
	}

	client, err := ingest.NewDriveClient(c.Context, c.String("credentials-file"))
	if err != nil {
		return err
	}

	counts, err := svc.SyncDrive(c.Context, client, c.String("folder"))
	if err != nil {
		return err
	}

	for kind, count := range counts {
		fmt.Printf("synced %d %s records\n", count, kind)
	}
	return nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "ingest",
		Usage: "Load dealership exports into the analytics database",
		Flags: []cli.Flag{
			newDBURLFlag(),
		},
		Commands: []*cli.Command{
			{
				Name:  "load",
				Usage: "Load one spreadsheet export from disk",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:     "file",
						Usage:    "Path to the .xlsx or .csv export",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "kind",
						Usage: "Dataset kind (sales, transactions, prospects, dealers); inferred from the filename when omitted",
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: runLoad,
			},
			{
				Name:  "drive-sync",
				Usage: "Download and load every spreadsheet in the configured Drive folder",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:     "credentials-file",
						Usage:    "Service account credentials JSON",
						Required: true,
						EnvVars:  []string{"DRIVE_CREDENTIALS_FILE"},
					},
					&cli.StringFlag{
						Name:     "folder",
						Usage:    "Drive folder path, e.g. Reports/Dealer",
						Required: true,
						EnvVars:  []string{"DRIVE_FOLDER_PATH"},
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: runDriveSync,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
