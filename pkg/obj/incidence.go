package obj

// IncidenceIndex maps every vertex position to the positions of the faces
// that reference it. It is built once per Document and is read-only.
type IncidenceIndex struct {
	vertexFaces [][]int
	faceCount   int
}

// NewIncidenceIndex builds the vertex to face incidence of doc in
// O(V + total face degree). A face referencing a vertex that the document
// does not declare yields an *IndexRangeError.
func NewIncidenceIndex(doc *Document) (*IncidenceIndex, error) {
	ix := &IncidenceIndex{
		vertexFaces: make([][]int, len(doc.Vertices)),
		faceCount:   len(doc.Faces),
	}

	for f, face := range doc.Faces {
		for _, ref := range face.Refs {
			v := ref.Vertex
			if v < 0 || v >= len(doc.Vertices) {
				return nil, &IndexRangeError{Face: f, Ref: v + 1, Limit: len(doc.Vertices)}
			}
			// A face may list the same vertex twice; record it once.
			incident := ix.vertexFaces[v]
			if n := len(incident); n > 0 && incident[n-1] == f {
				continue
			}
			ix.vertexFaces[v] = append(incident, f)
		}
	}

	return ix, nil
}

// FacesOf returns the positions of the faces incident to vertex position v,
// in document order. The returned slice must not be modified.
func (ix *IncidenceIndex) FacesOf(v int) []int {
	if v < 0 || v >= len(ix.vertexFaces) {
		return nil
	}
	return ix.vertexFaces[v]
}

// VertexCount returns the number of indexed vertices.
func (ix *IncidenceIndex) VertexCount() int {
	return len(ix.vertexFaces)
}

// FaceCount returns the number of indexed faces.
func (ix *IncidenceIndex) FaceCount() int {
	return ix.faceCount
}

// Degree returns the number of faces incident to vertex position v.
func (ix *IncidenceIndex) Degree(v int) int {
	return len(ix.FacesOf(v))
}
