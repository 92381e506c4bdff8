// Package errors provides structured domain errors whose metadata feeds
// localized user messages.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// CodeInvalidArgument covers malformed sizes, probability tables,
	// marker lists and empty atom pools.
	CodeInvalidArgument Code = "INVALID_ARGUMENT"

	// CodeMalformedGenerator is returned when an atom generator does not
	// resolve to a concrete atom within the indirection limit.
	CodeMalformedGenerator Code = "MALFORMED_GENERATOR"
)
