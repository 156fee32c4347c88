// Package cmd implements the testanything CLI commands using Cobra.
//
// Available commands:
//   - render: Print a suite document as one complete TAP stream
//   - stream: Replay a suite document line by line through the TAP writer
//   - validate: Check suite documents against the schema
//   - list: Display the tests in suite documents
//   - init: Create an example config and suite document
//   - version: Show version information
//
// TAP is written to stdout (or --output-file). Summaries, warnings and
// errors go to stderr so the TAP channel has a single producer.
package cmd
