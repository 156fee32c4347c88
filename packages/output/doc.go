// Package output provides the human-facing console report that accompanies
// a TAP stream.
//
// The console report is written to stderr by default so that stdout stays
// a clean, single-producer TAP channel.
package output
