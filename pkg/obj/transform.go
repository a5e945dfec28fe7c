package obj

import (
	"strconv"
	"strings"

	"github.com/Faultbox/objkit/pkg/math"
)

// Default output precisions. ShortestPrecision formats each coordinate with
// the fewest digits that round-trip.
const (
	ShortestPrecision      = -1
	DefaultCenterPrecision = ShortestPrecision
	DefaultRotatePrecision = 6
)

// Center translates every vertex so the bounding box of the mesh is centered
// on the origin. Non-vertex lines are returned unchanged and in order. A text
// without vertices is returned as is.
func Center(text string) (string, error) {
	return CenterPrecision(text, DefaultCenterPrecision)
}

// CenterPrecision is Center with an explicit number of fractional digits.
func CenterPrecision(text string, precision int) (string, error) {
	lines := strings.Split(text, "\n")

	box := math.EmptyBox()
	for i, s := range lines {
		fields := strings.Fields(s)
		if classify(fields) != LineVertex {
			continue
		}
		p, err := parseVertexFields(fields)
		if err != nil {
			return "", &FormatError{Line: i + 1, Text: s, Err: err}
		}
		box = box.Extend(p)
	}
	if box.IsEmpty() {
		return text, nil
	}

	offset := box.Center().Negate()
	return mapVertices(lines, precision, func(p math.Vec3) math.Vec3 {
		return p.Add(offset)
	})
}

// Rotate rotates every vertex about the X axis, then the Y axis, then the Z
// axis. Angles are in degrees. Coordinates are written with six fractional
// digits; non-vertex lines pass through unchanged.
func Rotate(text string, angleX, angleY, angleZ float64) (string, error) {
	return RotatePrecision(text, angleX, angleY, angleZ, DefaultRotatePrecision)
}

// RotatePrecision is Rotate with an explicit number of fractional digits.
func RotatePrecision(text string, angleX, angleY, angleZ float64, precision int) (string, error) {
	ax, ay, az := math.Deg2Rad(angleX), math.Deg2Rad(angleY), math.Deg2Rad(angleZ)
	return mapVertices(strings.Split(text, "\n"), precision, func(p math.Vec3) math.Vec3 {
		return p.RotateXYZ(ax, ay, az)
	})
}

// mapVertices rewrites the coordinates of every vertex line through fn.
// Fields after z are kept.
func mapVertices(lines []string, precision int, fn func(math.Vec3) math.Vec3) (string, error) {
	out := make([]string, len(lines))
	for i, s := range lines {
		fields := strings.Fields(s)
		if classify(fields) != LineVertex {
			out[i] = s
			continue
		}
		p, err := parseVertexFields(fields)
		if err != nil {
			return "", &FormatError{Line: i + 1, Text: s, Err: err}
		}
		p = fn(p)

		parts := make([]string, 0, len(fields))
		parts = append(parts, "v",
			formatCoord(p.X, precision),
			formatCoord(p.Y, precision),
			formatCoord(p.Z, precision))
		parts = append(parts, fields[4:]...)
		out[i] = strings.Join(parts, " ")
	}
	return strings.Join(out, "\n"), nil
}

// formatCoord formats x with precision fractional digits, never emitting a
// negative zero.
func formatCoord(x float64, precision int) string {
	s := strconv.FormatFloat(x, 'f', precision, 64)
	if strings.HasPrefix(s, "-") && strings.Trim(s[1:], "0.") == "" {
		return s[1:]
	}
	return s
}
