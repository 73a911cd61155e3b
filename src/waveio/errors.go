package waveio

import (
	"errors"
	"fmt"
)

// Load failures that abort startup. Callers match with errors.Is / errors.As.
var (
	// ErrSourceNotFound reports a missing source file.
	ErrSourceNotFound = errors.New("source file not found")
	// ErrSourceEmpty reports a source with a header but zero data rows.
	ErrSourceEmpty = errors.New("source contains no data rows")
)

// errCacheStale marks a cache that cannot serve the current source (missing,
// truncated, version drift, or fingerprint mismatch). It never escapes Load;
// the loader falls back to the parse path.
var errCacheStale = errors.New("cache stale")

// ParseError reports a malformed cell or row in the textual source.
// Row and Col are 1-based; Col is 0 when the whole row is at fault.
type ParseError struct {
	Row int
	Col int
	Msg string
}

func (e *ParseError) Error() string {
	if e.Col > 0 {
		return fmt.Sprintf("parse error at row %d, column %d: %s", e.Row, e.Col, e.Msg)
	}
	return fmt.Sprintf("parse error at row %d: %s", e.Row, e.Msg)
}

// OrderError reports a time sample that breaks monotonicity.
type OrderError struct {
	Row  int
	Prev float64
	Got  float64
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("time column not monotonic at row %d: %g < %g", e.Row, e.Got, e.Prev)
}
