// Package harness runs tournament scenarios described in YAML and checks
// their outcome.
//
// A scenario names a bracket (a definition file or a single-elimination
// depth), the competitors, the entrant order and a resolver. Run plays the
// tournament on a real engine instance with a fixed run id and a discard
// logger, records one trace event per resolved match, and evaluates the
// scenario's assertions against the trace and the final placements.
//
// Traces serialise to canonical JSON (sorted keys, NFC strings, no HTML
// escaping) so that golden files compare byte for byte:
//
//	go test ./internal/harness -update
//
// regenerates the files under testdata/golden.
package harness
