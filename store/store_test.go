package store

import (
	"database/sql"
	"embed"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/libris-io/libris/config"
	"github.com/libris-io/libris/log"
)

const latestSchemaFileName = "LATEST_SCHEMA.sql"

// Initialize the logger and config
func init() {
	config.Opts = config.GetDefaultOptions()
	log.Logger = log.NewLogger()
}

//go:embed db/migration
var migrationFS embed.FS

func createTestDb(t *testing.T, name string) *sql.DB {
	t.Helper()

	filename := filepath.Join(t.TempDir(), name)
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)", filename)
	testDb, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { testDb.Close() })

	if err := applyLatestSchema(testDb); err != nil {
		t.Fatalf("Failed to apply schema: %v", err)
	}
	return testDb
}

func applyLatestSchema(db *sql.DB) error {
	latestSchemaPath := fmt.Sprintf("db/migration/%s", latestSchemaFileName)
	buf, err := migrationFS.ReadFile(latestSchemaPath)
	if err != nil {
		return errors.Wrapf(err, "Failed to read latest schema file: %q", latestSchemaPath)
	}

	stmt := string(buf)
	if err := execute(stmt, db); err != nil {
		return errors.Wrapf(err, "Failed to apply latest schema: %s", stmt)
	}
	return nil
}

func execute(stmt string, d *sql.DB) error {
	tx, err := d.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(stmt); err != nil {
		tx.Rollback()
		return errors.Wrap(err, "failed to execute statement")
	}

	return tx.Commit()
}
