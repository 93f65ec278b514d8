package importer

import "jobfeed/internal/domain/entity"

// Parser converts one partner file into canonical jobs.
//
// Implementations return ErrUnreadableFile when the file cannot be read and
// ErrMalformedInput when its syntax is invalid. No partial result is returned
// on error. An empty result is valid.
type Parser interface {
	Parse(path string) ([]entity.Job, error)
}

// ParserFunc adapts a function to the Parser interface.
type ParserFunc func(path string) ([]entity.Job, error)

// Parse calls f(path).
func (f ParserFunc) Parse(path string) ([]entity.Job, error) {
	return f(path)
}

// Sniffer recognises a partner format from raw file content.
// An error is treated the same as a negative answer.
type Sniffer interface {
	Sniff(content []byte) (bool, error)
}

// SnifferFunc adapts a function to the Sniffer interface.
type SnifferFunc func(content []byte) (bool, error)

// Sniff calls f(content).
func (f SnifferFunc) Sniff(content []byte) (bool, error) {
	return f(content)
}
