// Package source loads suite documents into tap.Suite values.
//
// Supported inputs:
//   - YAML documents (.yaml, .yml)
//   - JSON documents (.json), optionally nested and selected with a gjson path
//   - SQLite databases (.db, .sqlite, .sqlite3) holding a tap_results table
//
// A document has a suite name and an ordered list of tests, each with a
// name, a required passed flag and optional diagnostics. Documents can be
// checked against the embedded JSON schema before loading.
package source
