package obj

import (
	"errors"
	"fmt"
)

// Parse and segmentation errors.
var (
	ErrMalformedVertex = errors.New("malformed vertex")
	ErrMalformedFace   = errors.New("malformed face")
	ErrEmptyFace       = errors.New("face has no vertex references")
	ErrIndexRange      = errors.New("vertex reference out of range")
)

// FormatError reports a v or f line whose required fields could not be parsed.
type FormatError struct {
	Line int    // 1-based line number in the source text
	Text string // verbatim line
	Err  error  // ErrMalformedVertex, ErrMalformedFace or ErrEmptyFace
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// IndexRangeError reports a face that references a vertex which does not exist
// in the document, or which is missing from the segment being serialized.
type IndexRangeError struct {
	Face    int // 0-based face position in the source document
	Ref     int // referenced vertex, 1-based document index
	Limit   int // number of vertices available
	Segment bool
}

func (e *IndexRangeError) Error() string {
	if e.Segment {
		return fmt.Sprintf("face %d references vertex %d outside its segment", e.Face+1, e.Ref)
	}
	return fmt.Sprintf("face %d references vertex %d, document has %d vertices", e.Face+1, e.Ref, e.Limit)
}

func (e *IndexRangeError) Unwrap() error {
	return ErrIndexRange
}
