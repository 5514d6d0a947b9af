package frustum_test

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/quakeverse/ibsp/frustum"
)

func perspective() mgl32.Mat4 {
	proj := mgl32.Perspective(mgl32.DegToRad(90), 1.0, 1.0, 100.0)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	return proj.Mul4(view)
}

func TestInsidePointWithinFrustum(t *testing.T) {
	f := frustum.New(perspective())
	assert.True(t, f.Inside(mgl32.Vec3{0, 0, -10}))
	assert.False(t, f.Inside(mgl32.Vec3{0, 0, 10})) // behind the camera
	assert.False(t, f.Inside(mgl32.Vec3{0, 0, -1000}))
}

func TestInsideAABBContainingPoint(t *testing.T) {
	f := frustum.New(perspective())
	// A box that fully contains a visible point must report inside.
	min := mgl32.Vec3{-1, -1, -11}
	max := mgl32.Vec3{1, 1, -9}
	assert.True(t, f.InsideAABB(min, max))
}

func TestInsideAABBFarOutside(t *testing.T) {
	f := frustum.New(perspective())
	min := mgl32.Vec3{1000, 1000, 1000}
	max := mgl32.Vec3{1001, 1001, 1001}
	assert.False(t, f.InsideAABB(min, max))
}

// No-false-negatives property : if every corner of
// the AABB individually satisfies the point-inside test, InsideAABB must
// also report true.
func TestInsideAABBNoFalseNegatives(t *testing.T) {
	f := frustum.New(perspective())
	rng := rand.New(rand.NewSource(1))

	for trial := 0; trial < 200; trial++ {
		cx, cy, cz := rng.Float32()*4-2, rng.Float32()*4-2, -5-rng.Float32()*4
		hx, hy, hz := rng.Float32()*0.2, rng.Float32()*0.2, rng.Float32()*0.2
		min := mgl32.Vec3{cx - hx, cy - hy, cz - hz}
		max := mgl32.Vec3{cx + hx, cy + hy, cz + hz}

		allCornersInside := true
		for _, dx := range []float32{min.X(), max.X()} {
			for _, dy := range []float32{min.Y(), max.Y()} {
				for _, dz := range []float32{min.Z(), max.Z()} {
					if !f.Inside(mgl32.Vec3{dx, dy, dz}) {
						allCornersInside = false
					}
				}
			}
		}

		if allCornersInside {
			assert.True(t, f.InsideAABB(min, max), "all corners inside but InsideAABB reported outside")
		}
	}
}
