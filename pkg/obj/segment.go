package obj

import (
	"sort"
	"strconv"
	"strings"
)

// Segment is a vertex and face subset of one Document. Every face in a
// segment references only vertices of the same segment.
//
// Vertices, Faces and Markers are kept in document order. Serialization
// writes lines in source order, except that vertices pulled in from outside
// a marker region are written just before the first face that uses them, so
// they stay inside that face's region when the output is split again. Local
// indices follow the written order.
type Segment struct {
	doc      *Document
	Vertices []int // positions in doc.Vertices
	Faces    []int // positions in doc.Faces
	Markers  []int // line indices of marker lines carried into the output

	borrowed map[int]bool // vertices added by closure rather than by the region
}

func newSegment(doc *Document, vertices, faces, markers []int) *Segment {
	sort.Ints(vertices)
	sort.Ints(faces)
	sort.Ints(markers)
	return &Segment{doc: doc, Vertices: vertices, Faces: faces, Markers: markers}
}

// Source returns the document the segment was drawn from.
func (s *Segment) Source() *Document {
	return s.doc
}

// VertexCount returns the number of vertices in the segment.
func (s *Segment) VertexCount() int {
	return len(s.Vertices)
}

// FaceCount returns the number of faces in the segment before deduplication.
func (s *Segment) FaceCount() int {
	return len(s.Faces)
}

// Within one sort key a relocated vertex comes before the face it was moved to.
const (
	rankRelocated = iota
	rankInPlace
)

type entry struct {
	key    int // source line the entry is written at
	rank   int
	kind   LineKind
	ref    int // vertex or face position, marker line index
	source int // original line, breaks ties between relocated vertices
}

// layout returns the segment's lines in output order.
func (s *Segment) layout() []entry {
	entries := make([]entry, 0, len(s.Markers)+len(s.Vertices)+len(s.Faces))

	for _, l := range s.Markers {
		entries = append(entries, entry{key: l, rank: rankInPlace, kind: s.doc.Lines[l].Kind, ref: l, source: l})
	}

	firstUse := make(map[int]int, len(s.borrowed))
	if len(s.borrowed) > 0 {
		for _, f := range s.Faces {
			for _, r := range s.doc.Faces[f].Refs {
				if _, ok := firstUse[r.Vertex]; !ok && s.borrowed[r.Vertex] {
					firstUse[r.Vertex] = s.doc.Faces[f].Line
				}
			}
		}
	}

	for _, v := range s.Vertices {
		line := s.doc.Vertices[v].Line
		e := entry{key: line, rank: rankInPlace, kind: LineVertex, ref: v, source: line}
		if at, ok := firstUse[v]; ok {
			e.key, e.rank = at, rankRelocated
		}
		entries = append(entries, e)
	}
	for _, f := range s.Faces {
		line := s.doc.Faces[f].Line
		entries = append(entries, entry{key: line, rank: rankInPlace, kind: LineFace, ref: f, source: line})
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.key != b.key {
			return a.key < b.key
		}
		if a.rank != b.rank {
			return a.rank < b.rank
		}
		return a.source < b.source
	})
	return entries
}

// Renumber returns the local 1-based index of every segment vertex, keyed by
// its position in the source document. Indices follow the order in which
// Serialize writes the vertices.
func (s *Segment) Renumber() map[int]int {
	return s.renumber(s.layout())
}

func (s *Segment) renumber(entries []entry) map[int]int {
	local := make(map[int]int, len(s.Vertices))
	for _, e := range entries {
		if e.kind == LineVertex {
			local[e.ref] = len(local) + 1
		}
	}
	return local
}

// Serialize renders the segment as a self-contained OBJ text.
//
// Face vertex indices are rewritten to the local numbering; texture and
// normal sub-indices are passed through untouched. Faces that become
// identical after rewriting are emitted once, at their first occurrence. A
// face that references a vertex outside the segment yields an
// *IndexRangeError.
func (s *Segment) Serialize() (string, error) {
	entries := s.layout()
	local := s.renumber(entries)

	var sb strings.Builder
	seen := make(map[string]struct{}, len(s.Faces))
	n := 0
	for _, e := range entries {
		var text string
		switch e.kind {
		case LineVertex:
			text = strings.TrimSpace(s.doc.Vertices[e.ref].Text)
		case LineFace:
			t, err := s.rewriteFace(e.ref, local)
			if err != nil {
				return "", err
			}
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			text = t
		default:
			text = strings.TrimSpace(s.doc.Lines[e.ref].Text)
		}

		if n > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(text)
		n++
	}
	return sb.String(), nil
}

func (s *Segment) rewriteFace(f int, local map[int]int) (string, error) {
	var sb strings.Builder
	sb.WriteString("f")
	for _, ref := range s.doc.Faces[f].Refs {
		idx, ok := local[ref.Vertex]
		if !ok {
			return "", &IndexRangeError{
				Face:    f,
				Ref:     ref.Vertex + 1,
				Limit:   len(s.Vertices),
				Segment: true,
			}
		}
		sb.WriteByte(' ')
		sb.WriteString(strconv.Itoa(idx))
		sb.WriteString(ref.Tail)
	}
	return sb.String(), nil
}

// SerializeAll serializes every segment, stopping at the first error.
func SerializeAll(segments []*Segment) ([]string, error) {
	out := make([]string, 0, len(segments))
	for _, s := range segments {
		text, err := s.Serialize()
		if err != nil {
			return nil, err
		}
		out = append(out, text)
	}
	return out, nil
}
