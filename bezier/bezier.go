// Package bezier tessellates the 3x3 biquadratic control grids embedded
// in IBSP patch faces into triangle strips.
package bezier

import "github.com/quakeverse/ibsp/geom"

// Tessellate evaluates a single 3x3 sub-patch at subdivision level L,
// returning (L+1)^2 vertices in row-major (i, j) order. L must be >= 1;
// callers are expected to clamp via config before calling.
func Tessellate(controls [9]geom.Vertex, level int) []geom.Vertex {
	l1 := level + 1
	out := make([]geom.Vertex, l1*l1)

	for j := 0; j <= level; j++ {
		v := float32(j) / float32(level)
		out[j] = bernstein3(controls[0], controls[3], controls[6], v)
	}

	for i := 1; i <= level; i++ {
		u := float32(i) / float32(level)

		var row [3]geom.Vertex
		for k := 0; k < 3; k++ {
			base := 3 * k
			row[k] = bernstein3(controls[base+0], controls[base+1], controls[base+2], u)
		}

		for j := 0; j <= level; j++ {
			v := float32(j) / float32(level)
			out[i*l1+j] = bernstein3(row[0], row[1], row[2], v)
		}
	}

	return out
}

// bernstein3 evaluates the quadratic Bernstein blend B0(t)*c0 + B1(t)*c1 +
// B2(t)*c2 where B(t) = {(1-t)^2, 2t(1-t), t^2}.
func bernstein3(c0, c1, c2 geom.Vertex, t float32) geom.Vertex {
	b := 1 - t
	return c0.Scale(b * b).
		Add(c1.Scale(2 * t * b)).
		Add(c2.Scale(t * t))
}

// IndexPattern returns the shared triangle-list index pattern for an LxL
// grid of cells over an (L+1)x(L+1) vertex grid: for each cell (i, j), two
// triangles (i,j),(i,j+1),(i+1,j+1) and (i+1,j+1),(i+1,j),(i,j). The
// result has 6*L*L entries and is identical for every sub-patch at a
// given level, so it is computed once and shared.
func IndexPattern(level int) []int32 {
	l1 := level + 1
	indices := make([]int32, 0, 6*level*level)
	for i := 0; i < level; i++ {
		for j := 0; j < level; j++ {
			v00 := int32(i*l1 + j)
			v01 := int32(i*l1 + j + 1)
			v10 := int32((i+1)*l1 + j)
			v11 := int32((i+1)*l1 + j + 1)

			indices = append(indices, v00, v01, v11)
			indices = append(indices, v11, v10, v00)
		}
	}
	return indices
}
