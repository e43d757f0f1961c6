// Package parser provides readers for the plain-text serializations of
// diversity artifacts. The parsers extract sample identifiers and the
// minimal numeric data needed by the summary renderers; they do not
// perform deep schema validation.
package parser

import "fmt"

// Error types for the parser package
var (
	ErrFormat      = fmt.Errorf("invalid file format")
	ErrEmptyInput  = fmt.Errorf("empty input file")
	ErrMissingData = fmt.Errorf("missing required section")
)
