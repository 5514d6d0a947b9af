// Package frustum extracts the six view-frustum planes from a combined
// projection*view matrix and provides point/AABB containment tests.
package frustum

import "github.com/go-gl/mathgl/mgl32"

// plane is a world-space half-space n.p + d > 0, with n normalized.
type plane struct {
	normal mgl32.Vec3
	d      float32
}

// Frustum is the six-plane approximation of a camera's view volume.
type Frustum struct {
	planes [6]plane
}

// New extracts a Frustum from a combined projection*view matrix:
// plane_{left/right} = row_w +/- row_x, plane_{bottom/top} =
// row_w +/- row_y, plane_{near/far} = row_w +/- row_z, each normalized by
// dividing by the length of its normal.
func New(m mgl32.Mat4) Frustum {
	// mgl32.Mat4 is stored column-major; Row(i) reads row i as a Vec4.
	rowX := m.Row(0)
	rowY := m.Row(1)
	rowZ := m.Row(2)
	rowW := m.Row(3)

	raw := [6]mgl32.Vec4{
		rowW.Sub(rowX), // right
		rowW.Add(rowX), // left
		rowW.Sub(rowY), // top
		rowW.Add(rowY), // bottom
		rowW.Sub(rowZ), // far
		rowW.Add(rowZ), // near
	}

	var f Frustum
	for i, r := range raw {
		n := mgl32.Vec3{r[0], r[1], r[2]}
		length := n.Len()
		if length == 0 {
			length = 1
		}
		f.planes[i] = plane{normal: n.Mul(1 / length), d: r[3] / length}
	}
	return f
}

// Inside reports whether a point is inside all six planes.
func (f Frustum) Inside(p mgl32.Vec3) bool {
	for _, pl := range f.planes {
		if pl.normal.Dot(p)+pl.d <= 0 {
			return false
		}
	}
	return true
}

// InsideAABB reports whether the axis-aligned box [min, max] intersects
// the frustum, using the standard positive-vertex test: for each plane,
// pick the corner most likely to satisfy it (max on axes where the
// normal component is >= 0, min otherwise). This admits false positives
// for boxes whose corners straddle a plane but never a false negative,
// which is the property callers (leaf/node culling) depend on.
func (f Frustum) InsideAABB(min, max mgl32.Vec3) bool {
	for _, pl := range f.planes {
		pVert := max
		if pl.normal.X() < 0 {
			pVert[0] = min.X()
		}
		if pl.normal.Y() < 0 {
			pVert[1] = min.Y()
		}
		if pl.normal.Z() < 0 {
			pVert[2] = min.Z()
		}
		if pl.normal.Dot(pVert)+pl.d <= 0 {
			return false
		}
	}
	return true
}
