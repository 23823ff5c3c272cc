package db // import "github.com/libris-io/libris/store/db"

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/libris-io/libris/config"
	"github.com/libris-io/libris/store"
	"github.com/libris-io/libris/version"
)

const latestSchemaFileName = "LATEST_SCHEMA.sql"

type DB struct {
	*sql.DB
}

// NewDB opens the sqlite database with foreign keys enforced.
func NewDB(path string) (*DB, error) {
	if path == "" {
		return nil, errors.New("database path is required")
	}

	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)", path)
	d, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	return &DB{d}, nil
}

func (d *DB) Close() error {
	return d.DB.Close()
}

//go:embed migration
var migrationFS embed.FS

//go:embed seed
var seedFS embed.FS

// Migrate applies the latest schema to the database and seeds it when
// the database is created for the first time.
func (d *DB) Migrate(ctx context.Context) error {
	currentVersion := version.GetCurrentVersion()

	if _, err := os.Stat(config.Opts.DSN); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return errors.Wrap(err, "failed to check database file")
		}
		// The db file does not exist, create a new one with the latest schema.
		if err := d.applyLatestSchema(ctx); err != nil {
			return errors.Wrap(err, "failed to apply latest schema")
		}
		if _, err := d.UpsertMigrationHistory(ctx, &store.UpsertMigrationHistory{
			Version: currentVersion,
		}); err != nil {
			return errors.Wrap(err, "failed to upsert migration history")
		}
		return d.Seed(ctx)
	}

	// The db file exists, check whether we need to migrate.
	migrationHistoryList, err := d.FindMigrationHistoryList(ctx, &store.FindMigrationHistory{})
	if err != nil {
		return errors.Wrap(err, "failed to find migration history list")
	}

	if len(migrationHistoryList) == 0 {
		if err := d.applyLatestSchema(ctx); err != nil {
			return errors.Wrap(err, "failed to apply latest schema")
		}
		if _, err := d.UpsertMigrationHistory(ctx, &store.UpsertMigrationHistory{
			Version: currentVersion,
		}); err != nil {
			return errors.Wrap(err, "failed to upsert migration history")
		}
		return nil
	}

	latestMigrationHistoryVersion := migrationHistoryList[0].Version
	if version.IsVersionGreaterThan(currentVersion, latestMigrationHistoryVersion) {
		// The schema only creates missing objects, so re-applying it is
		// the whole migration for now.
		if err := d.applyLatestSchema(ctx); err != nil {
			return errors.Wrapf(err, "failed to migrate from %s to %s", latestMigrationHistoryVersion, currentVersion)
		}
		if _, err := d.UpsertMigrationHistory(ctx, &store.UpsertMigrationHistory{
			Version: currentVersion,
		}); err != nil {
			return errors.Wrap(err, "failed to upsert migration history")
		}
	}
	return nil
}

func (d *DB) applyLatestSchema(ctx context.Context) error {
	latestSchemaPath := fmt.Sprintf("migration/%s", latestSchemaFileName)
	buf, err := migrationFS.ReadFile(latestSchemaPath)
	if err != nil {
		return errors.Wrapf(err, "failed to read latest schema file: %q", latestSchemaPath)
	}

	stmt := string(buf)
	if err := d.execute(ctx, stmt); err != nil {
		return errors.Wrapf(err, "failed to apply latest schema: %s", stmt)
	}
	return nil
}

// Seed loads the sample library data unless authors already exist.
func (d *DB) Seed(ctx context.Context) error {
	var count int
	if err := d.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM authors").Scan(&count); err != nil {
		return errors.Wrap(err, "failed to count authors")
	}
	if count > 0 {
		return nil
	}

	buf, err := seedFS.ReadFile("seed/seed.sql")
	if err != nil {
		return errors.Wrap(err, "failed to read seed file")
	}

	if err := d.execute(ctx, string(buf)); err != nil {
		return errors.Wrap(err, "failed to apply seed")
	}
	return nil
}

func (d *DB) execute(ctx context.Context, stmt string) error {
	tx, err := d.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(stmt); err != nil {
		tx.Rollback()
		return errors.Wrap(err, "failed to execute statement")
	}

	return tx.Commit()
}
