package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/quakeverse/ibsp/ibsp"
)

// FindLightVol samples the static light-volume grid at pos. Returns a
// zero-value LightVol for a scene with no light volumes or no worldspawn
// model.
func FindLightVol(scene *ibsp.Scene, pos mgl32.Vec3) ibsp.LightVol {
	if len(scene.LightVols) == 0 || len(scene.Models) == 0 {
		return ibsp.LightVol{}
	}

	world := scene.Models[0]
	g := scene.LightGridSize
	size := scene.LightVolSize

	cellX := cellIndex(pos.X(), world.Min.X(), g[0], size[0])
	cellY := cellIndex(pos.Y(), world.Min.Y(), g[1], size[1])
	cellZ := cellIndex(pos.Z(), world.Min.Z(), g[2], size[2])

	// Row-major (x, y, z): x varies fastest. The clamp above is lenient
	// (to size inclusive, one past the last valid cell's
	// preserved quirk); guard the final flat index so an edge sample
	// degrades to a zero LightVol instead of indexing out of range.
	idx := int(cellX) + int(size[0])*(int(cellY)+int(size[1])*int(cellZ))
	if idx < 0 || idx >= len(scene.LightVols) {
		return ibsp.LightVol{}
	}
	return scene.LightVols[idx]
}

func cellIndex(p, min, g float32, size int32) int32 {
	if g == 0 {
		return 0
	}
	cell := int32(math.Floor(float64(p/g))) - int32(math.Ceil(float64(min/g)))
	if cell < 0 {
		return 0
	}
	if cell > size {
		return size
	}
	return cell
}
