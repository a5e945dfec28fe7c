// Package obj parses, transforms and segments meshes in the line-oriented
// Wavefront OBJ text format.
//
// Every function in this package is a pure function of its input. A parsed
// Document and its IncidenceIndex are never modified after construction, so
// they may be shared between goroutines.
package obj

import (
	gomath "math"
	"strconv"
	"strings"

	"github.com/Faultbox/objkit/pkg/math"
)

// LineKind classifies a source line by its first token.
type LineKind uint8

// Line kinds.
const (
	LineBlank LineKind = iota
	LineComment
	LineVertex
	LineFace
	LineGroup
	LineObject
	LineOther // vt, vn, usemtl, mtllib, s, ...
)

// String returns the OBJ tag for the kind.
func (k LineKind) String() string {
	switch k {
	case LineBlank:
		return "blank"
	case LineComment:
		return "#"
	case LineVertex:
		return "v"
	case LineFace:
		return "f"
	case LineGroup:
		return "g"
	case LineObject:
		return "o"
	default:
		return "other"
	}
}

// IsMarker returns true for group and object marker lines.
func (k LineKind) IsMarker() bool {
	return k == LineGroup || k == LineObject
}

// Line is one line of the source document.
type Line struct {
	Kind LineKind
	Text string // verbatim, including any trailing '\r'
	Ref  int    // position in Document.Vertices or Document.Faces, -1 otherwise
}

// Vertex is a parsed "v x y z" line. Its identity is its position in
// Document.Vertices, never its text: two vertices with identical coordinates
// are distinct.
type Vertex struct {
	Position math.Vec3
	Extra    []string // fields after z (w or vertex colour), passed through
	Line     int      // 0-based line index in the source
	Text     string
}

// FaceRef is one "i[/j[/k]]" group of a face line.
type FaceRef struct {
	Vertex int    // 0-based position in Document.Vertices
	Tail   string // "/j", "/j/k" or "//k" verbatim, empty if absent
}

// Face is a parsed "f ..." line. Its identity is its position in
// Document.Faces.
type Face struct {
	Refs []FaceRef
	Line int
	Text string
}

// Document is the immutable line model of one OBJ text.
type Document struct {
	Lines    []Line
	Vertices []Vertex
	Faces    []Face
}

// Parse splits text into lines and classifies each one.
// Vertex and face lines must carry valid numeric fields; anything else is
// kept verbatim. Negative face indices are resolved relative to the vertices
// seen so far.
func Parse(text string) (*Document, error) {
	raw := strings.Split(text, "\n")
	doc := &Document{
		Lines: make([]Line, 0, len(raw)),
	}

	for i, s := range raw {
		fields := strings.Fields(s)
		line := Line{Kind: classify(fields), Text: s, Ref: -1}

		switch line.Kind {
		case LineVertex:
			pos, err := parseVertexFields(fields)
			if err != nil {
				return nil, &FormatError{Line: i + 1, Text: s, Err: err}
			}
			line.Ref = len(doc.Vertices)
			doc.Vertices = append(doc.Vertices, Vertex{
				Position: pos,
				Extra:    fields[4:],
				Line:     i,
				Text:     s,
			})

		case LineFace:
			refs, err := parseFaceFields(fields, len(doc.Vertices))
			if err != nil {
				return nil, &FormatError{Line: i + 1, Text: s, Err: err}
			}
			line.Ref = len(doc.Faces)
			doc.Faces = append(doc.Faces, Face{Refs: refs, Line: i, Text: s})
		}

		doc.Lines = append(doc.Lines, line)
	}

	return doc, nil
}

func classify(fields []string) LineKind {
	if len(fields) == 0 {
		return LineBlank
	}
	if strings.HasPrefix(fields[0], "#") {
		return LineComment
	}
	switch fields[0] {
	case "v":
		return LineVertex
	case "f":
		return LineFace
	case "g":
		return LineGroup
	case "o":
		return LineObject
	}
	return LineOther
}

// parseVertexFields parses the x, y, z fields of a split "v" line.
func parseVertexFields(fields []string) (math.Vec3, error) {
	if len(fields) < 4 {
		return math.Vec3{}, ErrMalformedVertex
	}
	var c [3]float64
	for j := range c {
		f, err := strconv.ParseFloat(fields[j+1], 64)
		if err != nil || gomath.IsNaN(f) || gomath.IsInf(f, 0) {
			return math.Vec3{}, ErrMalformedVertex
		}
		c[j] = f
	}
	return math.Vec3{X: c[0], Y: c[1], Z: c[2]}, nil
}

// parseFaceFields parses the index groups of a split "f" line.
// seen is the number of vertices declared before the face.
func parseFaceFields(fields []string, seen int) ([]FaceRef, error) {
	if len(fields) < 2 {
		return nil, ErrEmptyFace
	}
	refs := make([]FaceRef, 0, len(fields)-1)
	for _, group := range fields[1:] {
		head, tail := group, ""
		if slash := strings.IndexByte(group, '/'); slash >= 0 {
			head, tail = group[:slash], group[slash:]
		}
		n, err := strconv.Atoi(head)
		if err != nil || n == 0 {
			return nil, ErrMalformedFace
		}
		pos := n - 1
		if n < 0 {
			pos = seen + n
		}
		refs = append(refs, FaceRef{Vertex: pos, Tail: tail})
	}
	return refs, nil
}
