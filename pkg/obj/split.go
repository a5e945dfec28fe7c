package obj

import "fmt"

// MarkerKind selects the marker lines that delimit regions in SplitByMarker.
type MarkerKind uint8

// Marker kinds.
const (
	MarkerGroup MarkerKind = iota
	MarkerObject
)

// String returns the OBJ tag of the marker.
func (m MarkerKind) String() string {
	return m.lineKind().String()
}

func (m MarkerKind) lineKind() LineKind {
	if m == MarkerObject {
		return LineObject
	}
	return LineGroup
}

// region is a marker-delimited run of lines being accumulated.
type region struct {
	seeds   []int
	markers []int
}

// SplitByMarker partitions doc into one segment per non-empty region
// delimited by marker lines of the given kind. Vertices declared before the
// first marker form a region of their own.
//
// A region only chooses seed vertices. The segment is grown from the seeds
// once: every face incident to a seed is added, then every vertex those
// faces reference. The closure is not repeated, so faces that touch only the
// newly added vertices stay out of the segment.
//
// The opening marker of a region, and markers of the other kind inside it,
// are carried into the segment so that a group segment can be split again by
// object.
func SplitByMarker(doc *Document, ix *IncidenceIndex, kind MarkerKind) []*Segment {
	want := kind.lineKind()

	var (
		segments []*Segment
		cur      region
	)
	closeRegion := func() {
		if len(cur.seeds) > 0 {
			segments = append(segments, expandSeeds(doc, ix, cur))
		}
		cur = region{}
	}

	for i, line := range doc.Lines {
		switch {
		case line.Kind == want:
			closeRegion()
			cur.markers = append(cur.markers, i)
		case line.Kind.IsMarker():
			cur.markers = append(cur.markers, i)
		case line.Kind == LineVertex:
			cur.seeds = append(cur.seeds, line.Ref)
		}
	}
	closeRegion()

	return segments
}

// expandSeeds applies the one-hop closure to a region's seed vertices.
func expandSeeds(doc *Document, ix *IncidenceIndex, r region) *Segment {
	vertexSet := make(map[int]struct{}, len(r.seeds))
	faceSet := make(map[int]struct{})

	vertices := make([]int, 0, len(r.seeds))
	for _, v := range r.seeds {
		vertexSet[v] = struct{}{}
		vertices = append(vertices, v)
	}

	var faces []int
	for _, v := range r.seeds {
		for _, f := range ix.FacesOf(v) {
			if _, ok := faceSet[f]; ok {
				continue
			}
			faceSet[f] = struct{}{}
			faces = append(faces, f)
		}
	}

	for _, f := range faces {
		for _, ref := range doc.Faces[f].Refs {
			if _, ok := vertexSet[ref.Vertex]; ok {
				continue
			}
			vertexSet[ref.Vertex] = struct{}{}
			vertices = append(vertices, ref.Vertex)
		}
	}

	var borrowed map[int]bool
	if extra := vertices[len(r.seeds):]; len(extra) > 0 {
		borrowed = make(map[int]bool, len(extra))
		for _, v := range extra {
			borrowed[v] = true
		}
	}

	seg := newSegment(doc, vertices, faces, r.markers)
	seg.borrowed = borrowed
	return seg
}

// ConnectedComponents partitions the faces of doc into connected components,
// two faces being adjacent when they share a vertex. Each component becomes
// one segment holding its faces and every vertex they reference.
//
// Components are discovered breadth-first, seeding each one with the lowest
// face position not yet visited, so the result is deterministic. Every face
// lands in exactly one segment. Vertices that no face references belong to no
// segment. A document without faces yields no segments.
func ConnectedComponents(doc *Document, ix *IncidenceIndex) []*Segment {
	visited := make([]bool, len(doc.Faces))
	expanded := make([]bool, len(doc.Vertices))

	var segments []*Segment
	for seed := range doc.Faces {
		if visited[seed] {
			continue
		}

		var faces, vertices []int
		queue := []int{seed}
		visited[seed] = true

		for len(queue) > 0 {
			f := queue[0]
			queue = queue[1:]
			faces = append(faces, f)

			for _, ref := range doc.Faces[f].Refs {
				v := ref.Vertex
				if expanded[v] {
					continue
				}
				expanded[v] = true
				vertices = append(vertices, v)

				for _, g := range ix.FacesOf(v) {
					if !visited[g] {
						visited[g] = true
						queue = append(queue, g)
					}
				}
			}
		}

		segments = append(segments, newSegment(doc, vertices, faces, nil))
	}

	return segments
}

// load parses text and indexes it.
func load(text string) (*Document, *IncidenceIndex, error) {
	doc, err := Parse(text)
	if err != nil {
		return nil, nil, err
	}
	ix, err := NewIncidenceIndex(doc)
	if err != nil {
		return nil, nil, err
	}
	return doc, ix, nil
}

func splitText(text string, split func(*Document, *IncidenceIndex) []*Segment) ([]string, error) {
	doc, ix, err := load(text)
	if err != nil {
		return nil, err
	}
	return SerializeAll(split(doc, ix))
}

// SplitByGroup splits text into one document per "g" region.
func SplitByGroup(text string) ([]string, error) {
	return splitText(text, func(doc *Document, ix *IncidenceIndex) []*Segment {
		return SplitByMarker(doc, ix, MarkerGroup)
	})
}

// SplitByObject splits text, typically one group returned by SplitByGroup,
// into one document per "o" region.
func SplitByObject(text string) ([]string, error) {
	return splitText(text, func(doc *Document, ix *IncidenceIndex) []*Segment {
		return SplitByMarker(doc, ix, MarkerObject)
	})
}

// SplitByConnectedFaces splits text into one document per connected
// component of faces.
func SplitByConnectedFaces(text string) ([]string, error) {
	return splitText(text, ConnectedComponents)
}

// Mode names a segmentation strategy.
type Mode string

// Segmentation modes.
const (
	ModeGroup     Mode = "group"
	ModeObject    Mode = "object"
	ModeConnected Mode = "connected"
)

// Split dispatches text to the strategy named by mode.
func Split(text string, mode Mode) ([]string, error) {
	switch mode {
	case ModeGroup:
		return SplitByGroup(text)
	case ModeObject:
		return SplitByObject(text)
	case ModeConnected:
		return SplitByConnectedFaces(text)
	default:
		return nil, fmt.Errorf("unknown split mode %q", mode)
	}
}
