package bezier_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quakeverse/ibsp/bezier"
	"github.com/quakeverse/ibsp/geom"
)

func point(x, y, z float32) geom.Vertex {
	return geom.Vertex{Position: mgl32.Vec3{x, y, z}}
}

// a 3x3 grid of corners at integer coordinates, row-major: controls[row*3+col].
func gridControls() [9]geom.Vertex {
	var c [9]geom.Vertex
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			c[row*3+col] = point(float32(col), float32(row), 0)
		}
	}
	return c
}

func TestTessellateCorners(t *testing.T) {
	controls := gridControls()
	level := 4
	out := bezier.Tessellate(controls, level)
	l1 := level + 1

	// (u,v) = (0,0) -> out[0] coincides with controls[0] (C[0,0]).
	assert.Equal(t, controls[0].Position, out[0].Position)

	// (u,v) = (1,1) -> out[level*l1+level] coincides with controls[8] (C[2,2]).
	assert.Equal(t, controls[8].Position, out[level*l1+level].Position)
}

func TestTessellateMidpoint(t *testing.T) {
	controls := gridControls()
	level := 2 // so index 1 corresponds to u=v=0.5
	out := bezier.Tessellate(controls, level)
	l1 := level + 1

	mid := out[1*l1+1].Position

	expected := controls[0].Position.Add(controls[1].Position.Mul(2)).Add(controls[2].Position).
		Add(controls[3].Position.Mul(2)).Add(controls[4].Position.Mul(4)).Add(controls[5].Position.Mul(2)).
		Add(controls[6].Position).Add(controls[7].Position.Mul(2)).Add(controls[8].Position)
	expected = expected.Mul(0.25 / 4)

	assert.InDeltaSlice(t, []float32{expected.X(), expected.Y(), expected.Z()},
		[]float32{mid.X(), mid.Y(), mid.Z()}, 1e-5)
}

func TestTessellateDegenerateGridCoincident(t *testing.T) {
	var controls [9]geom.Vertex
	p := point(1, 2, 3)
	for i := range controls {
		controls[i] = p
	}

	level := 3
	out := bezier.Tessellate(controls, level)
	require.Len(t, out, 16)
	for _, v := range out {
		assert.InDeltaSlice(t, []float32{p.Position.X(), p.Position.Y(), p.Position.Z()},
			[]float32{v.Position.X(), v.Position.Y(), v.Position.Z()}, 1e-5)
	}

	indices := bezier.IndexPattern(level)
	assert.Len(t, indices, 54)
}

func TestIndexPatternWindingAndBounds(t *testing.T) {
	level := 3
	indices := bezier.IndexPattern(level)
	require.Len(t, indices, 6*level*level)

	maxIndex := int32((level + 1) * (level + 1))
	for _, idx := range indices {
		assert.GreaterOrEqual(t, idx, int32(0))
		assert.Less(t, idx, maxIndex)
	}
}
