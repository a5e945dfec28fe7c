package obj

import (
	"strings"
	"testing"
)

const twoTriangles = "v 0 0 0\nv 1 0 0\nv 0 1 0\nv 5 5 5\nv 6 5 5\nv 5 6 5\nf 1 2 3\nf 4 5 6"

func TestConnectedComponents_TwoTriangles(t *testing.T) {
	out, err := SplitByConnectedFaces(twoTriangles)
	if err != nil {
		t.Fatalf("SplitByConnectedFaces failed: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(out))
	}

	want := []string{
		"v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3",
		"v 5 5 5\nv 6 5 5\nv 5 6 5\nf 1 2 3",
	}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("segment %d: got %q, want %q", i, out[i], want[i])
		}
	}
}

func TestConnectedComponents_PositionalVertexIdentity(t *testing.T) {
	// Both triangles use the same coordinates but different vertex lines.
	text := "v 0 0 0\nv 1 0 0\nv 0 1 0\nv 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\nf 4 5 6"

	doc, ix := mustIndex(t, text)
	segments := ConnectedComponents(doc, ix)
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
}

func TestConnectedComponents_PositionalFaceIdentity(t *testing.T) {
	// Identical face lines are distinct graph nodes.
	doc, ix := mustIndex(t, "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\nf 1 2 3")

	segments := ConnectedComponents(doc, ix)
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	if !equalInts(segments[0].Faces, []int{0, 1}) {
		t.Errorf("expected faces [0 1], got %v", segments[0].Faces)
	}
}

func TestConnectedComponents_Partition(t *testing.T) {
	text := strings.Join([]string{
		"v 0 0 0", "v 1 0 0", "v 0 1 0", "v 1 1 0", // 1-4
		"v 9 0 0", "v 9 1 0", "v 9 0 1", // 5-7
		"v 3 3 3", "v 4 3 3", "v 3 4 3", "v 4 4 3", // 8-11
		"v 7 7 7", // 12, unreferenced
		"f 8 9 10",
		"f 1 2 3",
		"f 5 6 7",
		"f 9 10 11",
		"f 3 4 2",
	}, "\n")

	doc, ix := mustIndex(t, text)
	segments := ConnectedComponents(doc, ix)
	if len(segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segments))
	}

	// Seeds are the lowest unvisited face, so order follows the first face.
	wantFaces := [][]int{{0, 3}, {1, 4}, {2}}
	wantVerts := [][]int{{7, 8, 9, 10}, {0, 1, 2, 3}, {4, 5, 6}}
	for i, seg := range segments {
		if !equalInts(seg.Faces, wantFaces[i]) {
			t.Errorf("segment %d: faces %v, want %v", i, seg.Faces, wantFaces[i])
		}
		if !equalInts(seg.Vertices, wantVerts[i]) {
			t.Errorf("segment %d: vertices %v, want %v", i, seg.Vertices, wantVerts[i])
		}
	}

	seen := make(map[int]int)
	for i, seg := range segments {
		inSeg := make(map[int]bool)
		for _, v := range seg.Vertices {
			inSeg[v] = true
		}
		for _, f := range seg.Faces {
			seen[f]++
			for _, r := range doc.Faces[f].Refs {
				if !inSeg[r.Vertex] {
					t.Errorf("segment %d: face %d references vertex %d outside segment", i, f, r.Vertex)
				}
			}
		}
	}
	for f := range doc.Faces {
		if seen[f] != 1 {
			t.Errorf("face %d appears in %d segments, want 1", f, seen[f])
		}
	}
}

func TestConnectedComponents_Deterministic(t *testing.T) {
	first, err := SplitByConnectedFaces(twoTriangles)
	if err != nil {
		t.Fatalf("SplitByConnectedFaces failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := SplitByConnectedFaces(twoTriangles)
		if err != nil {
			t.Fatalf("SplitByConnectedFaces failed: %v", err)
		}
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("run %d segment %d differs", i, j)
			}
		}
	}
}

func TestConnectedComponents_NoFaces(t *testing.T) {
	out, err := SplitByConnectedFaces("v 0 0 0\nv 1 1 1\n# no faces")
	if err != nil {
		t.Fatalf("SplitByConnectedFaces failed: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("expected 0 segments, got %d", len(out))
	}
}

func TestSplitByGroup(t *testing.T) {
	text := strings.Join([]string{
		"# header",
		"mtllib scene.mtl",
		"g first",
		"v 0 0 0", "v 1 0 0", "v 0 1 0",
		"usemtl red",
		"f 1 2 3",
		"",
		"g second",
		"v 5 5 5", "v 6 5 5", "v 5 6 5",
		"f 4 5 6",
	}, "\n")

	out, err := SplitByGroup(text)
	if err != nil {
		t.Fatalf("SplitByGroup failed: %v", err)
	}
	want := []string{
		"g first\nv 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3",
		"g second\nv 5 5 5\nv 6 5 5\nv 5 6 5\nf 1 2 3",
	}
	if len(out) != len(want) {
		t.Fatalf("expected %d segments, got %d", len(want), len(out))
	}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("segment %d: got %q, want %q", i, out[i], want[i])
		}
	}
}

func TestSplitByMarker_RegionCount(t *testing.T) {
	tests := []struct {
		name string
		text string
		kind MarkerKind
		want int
	}{
		{"empty document", "", MarkerGroup, 0},
		{"no markers", "v 0 0 0\nv 1 1 1", MarkerGroup, 1},
		{"leading vertices form a region", "v 0 0 0\ng a\nv 1 1 1", MarkerGroup, 2},
		{"empty groups skipped", "g a\ng b\n# c\n\ng c\nv 0 0 0\ng d", MarkerGroup, 1},
		{"objects ignored for groups", "g a\nv 0 0 0\no x\nv 1 1 1\no y\nv 2 2 2", MarkerGroup, 1},
		{"objects", "g a\nv 0 0 0\no x\nv 1 1 1\no y\nv 2 2 2", MarkerObject, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, ix := mustIndex(t, tt.text)
			got := SplitByMarker(doc, ix, tt.kind)
			if len(got) != tt.want {
				t.Errorf("expected %d segments, got %d", tt.want, len(got))
			}
		})
	}
}

func TestSplitByMarker_OneHopClosure(t *testing.T) {
	text := strings.Join([]string{
		"g a",
		"v 0 0 0",
		"g b",
		"v 1 0 0", "v 0 1 0", "v 1 1 0", "v 2 2 0",
		"f 1 2 3",
		"f 2 4 5",
	}, "\n")

	out, err := SplitByGroup(text)
	if err != nil {
		t.Fatalf("SplitByGroup failed: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(out))
	}

	// Face 2 only touches vertices pulled in by face 1, so it stays out.
	wantA := "g a\nv 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3"
	if out[0] != wantA {
		t.Errorf("segment a: got %q, want %q", out[0], wantA)
	}

	// Face 1 pulls vertex 1 from group a into b, written after the marker.
	wantB := "g b\nv 1 0 0\nv 0 1 0\nv 1 1 0\nv 2 2 0\nv 0 0 0\nf 5 1 2\nf 1 3 4"
	if out[1] != wantB {
		t.Errorf("segment b: got %q, want %q", out[1], wantB)
	}
}

func TestSplitByObject_WithinGroup(t *testing.T) {
	text := strings.Join([]string{
		"g house",
		"o roof",
		"v 0 0 1", "v 1 0 1", "v 0 1 1",
		"f 1 2 3",
		"o walls",
		"v 0 0 0", "v 1 0 0", "v 0 1 0",
		"f 4 5 6",
		"g tree",
		"v 9 9 9", "v 9 9 8", "v 8 9 9",
		"f 7 8 9",
	}, "\n")

	groups, err := SplitByGroup(text)
	if err != nil {
		t.Fatalf("SplitByGroup failed: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	wantHouse := "g house\no roof\nv 0 0 1\nv 1 0 1\nv 0 1 1\nf 1 2 3\no walls\nv 0 0 0\nv 1 0 0\nv 0 1 0\nf 4 5 6"
	if groups[0] != wantHouse {
		t.Errorf("house group: got %q, want %q", groups[0], wantHouse)
	}
	if groups[1] != "g tree\nv 9 9 9\nv 9 9 8\nv 8 9 9\nf 1 2 3" {
		t.Errorf("tree group: got %q", groups[1])
	}

	objects, err := SplitByObject(groups[0])
	if err != nil {
		t.Fatalf("SplitByObject failed: %v", err)
	}
	want := []string{
		"o roof\nv 0 0 1\nv 1 0 1\nv 0 1 1\nf 1 2 3",
		"o walls\nv 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3",
	}
	if len(objects) != len(want) {
		t.Fatalf("expected %d objects, got %d", len(want), len(objects))
	}
	for i := range want {
		if objects[i] != want[i] {
			t.Errorf("object %d: got %q, want %q", i, objects[i], want[i])
		}
	}
}

func TestSplit_Errors(t *testing.T) {
	if _, err := Split("v 0 0 0", Mode("voxel")); err == nil {
		t.Error("expected error for unknown mode")
	}
	if _, err := Split("v 0 x 0", ModeConnected); err == nil {
		t.Error("expected format error")
	}
	if _, err := Split("v 0 0 0\nf 1 2 3", ModeGroup); err == nil {
		t.Error("expected index range error")
	}
}

func TestSplit_Dispatch(t *testing.T) {
	for _, mode := range []Mode{ModeGroup, ModeObject, ModeConnected} {
		out, err := Split(twoTriangles, mode)
		if err != nil {
			t.Fatalf("%s: %v", mode, err)
		}
		if len(out) == 0 {
			t.Errorf("%s: expected at least one segment", mode)
		}
	}
}

func TestSplitByMarker_BorrowedVertexStaysInRegion(t *testing.T) {
	text := strings.Join([]string{
		"g a",
		"v 9 9 9",
		"g house",
		"o roof",
		"v 0 0 1", "v 1 0 1",
		"f 1 2 3",
		"o walls",
		"v 0 0 0", "v 1 0 0", "v 0 1 0",
		"f 4 5 6",
	}, "\n")

	groups, err := SplitByGroup(text)
	if err != nil {
		t.Fatalf("SplitByGroup failed: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}

	wantHouse := "g house\no roof\nv 0 0 1\nv 1 0 1\nv 9 9 9\nf 3 1 2\no walls\nv 0 0 0\nv 1 0 0\nv 0 1 0\nf 4 5 6"
	if groups[1] != wantHouse {
		t.Fatalf("house: got %q, want %q", groups[1], wantHouse)
	}

	objects, err := SplitByObject(groups[1])
	if err != nil {
		t.Fatalf("SplitByObject failed: %v", err)
	}
	want := []string{
		"o roof\nv 0 0 1\nv 1 0 1\nv 9 9 9\nf 3 1 2",
		"o walls\nv 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3",
	}
	if len(objects) != len(want) {
		t.Fatalf("expected %d objects, got %d: %q", len(want), len(objects), objects)
	}
	for i := range want {
		if objects[i] != want[i] {
			t.Errorf("object %d: got %q, want %q", i, objects[i], want[i])
		}
	}
}
