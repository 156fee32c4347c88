package source

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/testanything/packages/tap"
	"github.com/tidwall/gjson"

	// SQLite driver
	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeout = 30 * time.Second

// ErrSuiteNotFound is returned when a database holds no rows for the requested suite
var ErrSuiteNotFound = errors.New("suite not found")

const createResultsTable = `CREATE TABLE IF NOT EXISTS tap_results (
	suite       TEXT    NOT NULL DEFAULT '',
	position    INTEGER NOT NULL,
	name        TEXT    NOT NULL DEFAULT '',
	passed      INTEGER,
	diagnostics TEXT
)`

var uriEscaper = strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23")

// openSQLite opens path. Read-only handles never create the file.
func openSQLite(ctx context.Context, path string, readOnly bool) (*sql.DB, error) {
	dsn := path
	if readOnly {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		dsn = "file:" + uriEscaper.Replace(path) + "?mode=ro"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// LoadSQLite reads the suite named suiteName from the tap_results table.
// Rows are ordered by position. diagnostics holds a JSON array of strings
// and a NULL passed column is reported as tap.ErrMissingStatus.
//
// An empty suiteName selects the only suite when the database holds
// exactly one. A name with no rows is reported as ErrSuiteNotFound.
func LoadSQLite(ctx context.Context, path, suiteName string) (tap.Suite, error) {
	ctx, cancel := context.WithTimeout(ctx, sqliteTimeout)
	defer cancel()

	db, err := openSQLite(ctx, path, true)
	if err != nil {
		return tap.Suite{}, err
	}
	defer db.Close()

	tests, err := querySuite(ctx, db, suiteName)
	if err != nil {
		return tap.Suite{}, err
	}
	if len(tests) > 0 {
		return tap.NewSuite(tap.SuiteOptions{Name: suiteName, Tests: tests}), nil
	}

	names, err := listSuites(ctx, db)
	if err != nil {
		return tap.Suite{}, err
	}
	if suiteName == "" && len(names) == 1 {
		tests, err = querySuite(ctx, db, names[0])
		if err != nil {
			return tap.Suite{}, err
		}
		return tap.NewSuite(tap.SuiteOptions{Name: names[0], Tests: tests}), nil
	}

	available := "none"
	if len(names) > 0 {
		quoted := make([]string, len(names))
		for i, n := range names {
			quoted[i] = fmt.Sprintf("%q", n)
		}
		available = strings.Join(quoted, ", ")
	}
	return tap.Suite{}, fmt.Errorf("%w: %q (available: %s)", ErrSuiteNotFound, suiteName, available)
}

func querySuite(ctx context.Context, db *sql.DB, suiteName string) ([]tap.Result, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT name, passed, diagnostics FROM tap_results WHERE suite = ? ORDER BY position, rowid`,
		suiteName)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var tests []tap.Result
	for rows.Next() {
		var (
			name        string
			passed      sql.NullBool
			diagnostics sql.NullString
		)
		if err := rows.Scan(&name, &passed, &diagnostics); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		var status *bool
		if passed.Valid {
			status = tap.Bool(passed.Bool)
		}

		var diags []string
		if diagnostics.Valid && diagnostics.String != "" {
			if !gjson.Valid(diagnostics.String) {
				return nil, fmt.Errorf("test %d (%q): diagnostics is not valid JSON", len(tests)+1, name)
			}
			diags, err = jsonStrings(gjson.Parse(diagnostics.String))
			if err != nil {
				return nil, fmt.Errorf("test %d (%q): %w", len(tests)+1, name, err)
			}
		}

		r, err := buildResult(len(tests), name, status, diags)
		if err != nil {
			return nil, err
		}
		tests = append(tests, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return tests, nil
}

// ListSQLiteSuites returns the distinct suite names stored at path
func ListSQLiteSuites(ctx context.Context, path string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, sqliteTimeout)
	defer cancel()

	db, err := openSQLite(ctx, path, true)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return listSuites(ctx, db)
}

func listSuites(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT DISTINCT suite FROM tap_results ORDER BY suite`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// SaveSQLite writes s to the tap_results table, replacing any rows
// already stored under the same suite name. The database is created
// when missing.
func SaveSQLite(ctx context.Context, path string, s tap.Suite) error {
	ctx, cancel := context.WithTimeout(ctx, sqliteTimeout)
	defer cancel()

	db, err := openSQLite(ctx, path, false)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, createResultsTable); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM tap_results WHERE suite = ?`, s.Name()); err != nil {
		return fmt.Errorf("failed to clear suite: %w", err)
	}

	for i, r := range s.Tests() {
		diags := r.Diagnostics()
		if diags == nil {
			diags = []string{}
		}
		encoded, err := json.Marshal(diags)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO tap_results (suite, position, name, passed, diagnostics) VALUES (?, ?, ?, ?, ?)`,
			s.Name(), i+1, r.Name(), r.Passed(), string(encoded)); err != nil {
			return fmt.Errorf("failed to insert test %d: %w", i+1, err)
		}
	}

	return tx.Commit()
}
