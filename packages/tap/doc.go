// Package tap renders test results in the Test Anything Protocol (TAP).
//
// Two renderers share one set of line-formatting rules:
//   - Suite: a fixed collection of results rendered as a complete stream
//     (plan line first, then one status line per result plus its diagnostics)
//   - Writer: an incremental emitter that writes one protocol line per call
//
// Only the minimal TAP line kinds are produced: plan, ok, not ok,
// diagnostic and bail out. Diagnostic text is written as-is; embedded
// newlines or '#' characters are not escaped.
package tap
