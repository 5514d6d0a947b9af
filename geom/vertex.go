// Package geom holds the handful of value types shared between the loader
// and the Bézier tessellator, kept separate so neither package has to
// import the other.
package geom

import "github.com/go-gl/mathgl/mgl32"

// Vertex is a single IBSP vertex record: position, texture UV, lightmap
// UV, normal, and an optional per-vertex color. It supports componentwise
// addition and scalar multiplication so the Bézier evaluator can treat it
// as a point in a vector space.
type Vertex struct {
	Position      mgl32.Vec3
	TexCoord      mgl32.Vec2
	LightmapCoord mgl32.Vec2
	Normal        mgl32.Vec3
	Color         [4]uint8
}

// Add returns the componentwise sum of v and o. Color is not blended; it
// is carried over from v, since Bézier control colors are not used by the
// core's draw items.
func (v Vertex) Add(o Vertex) Vertex {
	return Vertex{
		Position:      v.Position.Add(o.Position),
		TexCoord:      v.TexCoord.Add(o.TexCoord),
		LightmapCoord: v.LightmapCoord.Add(o.LightmapCoord),
		Normal:        v.Normal.Add(o.Normal),
		Color:         v.Color,
	}
}

// Scale returns v with every vector field multiplied by s.
func (v Vertex) Scale(s float32) Vertex {
	return Vertex{
		Position:      v.Position.Mul(s),
		TexCoord:      v.TexCoord.Mul(s),
		LightmapCoord: v.LightmapCoord.Mul(s),
		Normal:        v.Normal.Mul(s),
		Color:         v.Color,
	}
}
