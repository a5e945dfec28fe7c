package obj

import "github.com/Faultbox/objkit/pkg/math"

// Stats summarizes a document.
type Stats struct {
	Vertices   int
	Faces      int
	Groups     int
	Objects    int
	Components int
	Bounds     math.Box
}

// ComputeStats counts the entities of doc and its connected components.
func ComputeStats(doc *Document, ix *IncidenceIndex) Stats {
	st := Stats{
		Vertices: len(doc.Vertices),
		Faces:    len(doc.Faces),
		Bounds:   math.EmptyBox(),
	}
	for _, line := range doc.Lines {
		switch line.Kind {
		case LineGroup:
			st.Groups++
		case LineObject:
			st.Objects++
		}
	}
	for _, v := range doc.Vertices {
		st.Bounds = st.Bounds.Extend(v.Position)
	}
	st.Components = len(ConnectedComponents(doc, ix))
	return st
}

// Inspect parses text and computes its Stats.
func Inspect(text string) (Stats, error) {
	doc, ix, err := load(text)
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(doc, ix), nil
}
