// Package errors defines the typed error taxonomy of the sales audit pipeline.
//
// Every failure is an *AppError tagged with an ErrorType:
//
//	SOURCE_NOT_FOUND  input file absent or unreadable (soft fail: empty table)
//	MALFORMED_DATE    order date could not be parsed (soft fail: unknown date)
//	PARSING           numeric cell could not be coerced (load fails)
//	VALIDATION        required column missing (load fails)
//	SINK_WRITE        enriched table could not be written (reported, no retry)
//	CONFIG            configuration could not be loaded or validated
//
// AppError supports errors.Is and errors.As; TypeOf extracts the type from a
// wrapped chain.
package errors
