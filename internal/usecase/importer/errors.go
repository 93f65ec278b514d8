// Package importer provides the job feed import use case.
// It validates an input file, selects the parser that understands it,
// parses it into canonical jobs and persists them with replace or merge semantics.
package importer

import "errors"

// Sentinel errors for import operations.
var (
	// ErrInvalidFile indicates that the input file is missing, unreadable or empty.
	// Nothing is parsed or persisted when this error is returned.
	ErrInvalidFile = errors.New("invalid input file")

	// ErrUnsupportedPartner indicates that an explicit partner name is not registered.
	ErrUnsupportedPartner = errors.New("unsupported partner")

	// ErrUnsupportedFormat indicates that no detection tier could resolve a parser.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrUnreadableFile indicates that a parser could not open or read the file.
	ErrUnreadableFile = errors.New("unreadable file")

	// ErrMalformedInput indicates that the file content is not valid for the
	// selected format, or that a parsed record failed validation.
	ErrMalformedInput = errors.New("malformed input")

	// ErrNoRecordsFound indicates that a full import parsed zero jobs.
	ErrNoRecordsFound = errors.New("no jobs found in file")

	// ErrStorageFailure indicates that the repository rejected the batch.
	// The store is left as it was before the call.
	ErrStorageFailure = errors.New("storage failure")
)
