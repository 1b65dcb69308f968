package db

import (
	"cmp"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"slices"
	"strconv"
	"strings"
)

//go:embed all:sql/migrations
var migrationsFS embed.FS

const migrationsDir = "sql/migrations"

// migration is one embedded file named <version>_<description>.sql.
type migration struct {
	Version int
	File    string
}

// listMigrations returns the embedded migrations ordered by version.
// Files that do not start with a numeric version are ignored.
func listMigrations() ([]migration, error) {
	files, err := fs.Glob(migrationsFS, migrationsDir+"/*.sql")
	if err != nil {
		return nil, fmt.Errorf("listing migrations: %w", err)
	}
	var out []migration
	for _, f := range files {
		base := strings.TrimPrefix(f, migrationsDir+"/")
		prefix, _, ok := strings.Cut(base, "_")
		if !ok {
			continue
		}
		v, err := strconv.Atoi(prefix)
		if err != nil {
			continue
		}
		out = append(out, migration{Version: v, File: base})
	}
	slices.SortFunc(out, func(a, b migration) int { return cmp.Compare(a.Version, b.Version) })
	return out, nil
}

// runMigrations brings the cuts schema up to date. The base tables are
// created idempotently; numbered migrations run once each.
func runMigrations(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (version INTEGER PRIMARY KEY)`); err != nil {
		return fmt.Errorf("schema_migrations: %w", err)
	}
	if _, err := db.Exec(CreateTablesSQL); err != nil {
		return fmt.Errorf("base schema: %w", err)
	}

	pending, err := listMigrations()
	if err != nil {
		return err
	}
	done, err := appliedVersions(db)
	if err != nil {
		return err
	}
	for _, m := range pending {
		if done[m.Version] {
			continue
		}
		if err := applyMigration(db, m); err != nil {
			return err
		}
	}
	return nil
}

// applyMigration runs m and records its version in one transaction.
func applyMigration(db *sql.DB, m migration) (err error) {
	body, err := migrationsFS.ReadFile(migrationsDir + "/" + m.File)
	if err != nil {
		return fmt.Errorf("migration %s: %w", m.File, err)
	}
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("migration %s: %w", m.File, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	if _, err = tx.Exec(string(body)); err != nil {
		return fmt.Errorf("migration %s: %w", m.File, err)
	}
	if _, err = tx.Exec(`INSERT INTO schema_migrations (version) VALUES (?)`, m.Version); err != nil {
		return fmt.Errorf("migration %s: recording version: %w", m.File, err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("migration %s: %w", m.File, err)
	}
	return nil
}

func appliedVersions(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query(`SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("applied migrations: %w", err)
	}
	defer rows.Close()
	seen := map[int]bool{}
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("applied migrations: %w", err)
		}
		seen[v] = true
	}
	return seen, rows.Err()
}
