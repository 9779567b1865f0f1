package parser

import (
	"fmt"
	"strings"
)

// EncodingError reports that none of the supported text encodings could
// decode the input stream.
type EncodingError struct {
	Tried []string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("unable to decode input with supported encodings (%s)", strings.Join(e.Tried, ", "))
}

// FormatError reports required columns missing from the export header.
// Found lists the columns that were actually present, to aid diagnosis.
type FormatError struct {
	Missing []string
	Found   []string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("missing required columns %s (found: %s)",
		strings.Join(e.Missing, ", "), strings.Join(e.Found, ", "))
}

// RowError reports a data row that could not be normalized. Line is the
// 1-based line number within the decoded input, header included.
type RowError struct {
	Line   int
	Reason string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Line, e.Reason)
}
