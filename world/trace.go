package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/quakeverse/ibsp/ibsp"
)

// tracePass is the per-call scratch state of one swept-sphere query: the
// moving and prior sphere centers, the radius, and a per-brush
// already-tested bitset so a brush shared by multiple leaves is only
// evaluated once.
type tracePass struct {
	position    mgl32.Vec3
	oldPosition mgl32.Vec3
	radius      float32
	tested      []bool
}

// TraceWorld sweeps a sphere of the given radius from oldPos to newPos
// against the scene's brushes and returns the push-out-adjusted position.
func TraceWorld(scene *ibsp.Scene, newPos, oldPos mgl32.Vec3, radius float32) mgl32.Vec3 {
	if len(scene.Nodes) == 0 {
		return newPos
	}
	pass := &tracePass{
		position:    newPos,
		oldPosition: oldPos,
		radius:      radius,
		tested:      make([]bool, len(scene.Brushes)),
	}
	traceNode(scene, rootNode, pass)
	return pass.position
}

func traceNode(scene *ibsp.Scene, node int32, pass *tracePass) {
	if node < 0 {
		traceLeaf(scene, leafOf(node), pass)
		return
	}

	n := scene.Nodes[node]
	plane, ok := resolvePlane(scene, n.Plane)
	if !ok {
		return
	}
	s := plane.Normal.Dot(pass.position) - plane.Distance

	// The sphere may straddle the plane; either or both children may need
	// to be visited.
	if s > -pass.radius {
		traceNode(scene, n.Children[0], pass)
	}
	if s < pass.radius {
		traceNode(scene, n.Children[1], pass)
	}
}

func traceLeaf(scene *ibsp.Scene, leafIdx int32, pass *tracePass) {
	if leafIdx < 0 || int(leafIdx) >= len(scene.Leaves) {
		return
	}
	leaf := scene.Leaves[leafIdx]
	for i := int32(0); i < leaf.BrushCount; i++ {
		idx := leaf.BrushOffset + i
		if idx < 0 || int(idx) >= len(scene.LeafBrushes) {
			continue
		}
		brushIdx := scene.LeafBrushes[idx]
		if brushIdx < 0 || int(brushIdx) >= len(pass.tested) {
			continue
		}
		if pass.tested[brushIdx] {
			continue
		}
		pass.tested[brushIdx] = true
		traceBrush(scene, brushIdx, pass)
	}
}

// traceBrush implements the convex-brush push-out rule: the sphere is
// pushed out along whichever solid side it penetrates least.
func traceBrush(scene *ibsp.Scene, brushIdx int32, pass *tracePass) {
	brush := scene.Brushes[brushIdx]
	brushShader, ok := resolveShader(scene, brush.Shader)
	if !ok || !brushShader.Solid {
		return
	}

	havePush := false
	var pushPlane ibsp.Plane
	maxDist := float32(math.Inf(-1))

	for i := int32(0); i < brush.SideCount; i++ {
		idx := brush.SideOffset + i
		if idx < 0 || int(idx) >= len(scene.BrushSides) {
			continue
		}
		side := scene.BrushSides[idx]
		plane, ok := resolvePlane(scene, side.Plane)
		if !ok {
			continue
		}

		oldDist := plane.Normal.Dot(pass.oldPosition) - plane.Distance
		if oldDist >= pass.radius {
			// The sphere was already outside this half-space before the
			// move; this side did not cause the current penetration.
			continue
		}

		dist := plane.Normal.Dot(pass.position) - plane.Distance - pass.radius
		if dist > 0 {
			// Entirely outside this side: outside the convex brush.
			return
		}

		sideShader, ok := resolveShader(scene, side.Shader)
		sideNonSolid := ok && !sideShader.Solid
		if sideNonSolid {
			continue
		}

		if !havePush || dist > maxDist {
			maxDist = dist
			pushPlane = plane
			havePush = true
		}
	}

	if havePush {
		pass.position = pass.position.Sub(pushPlane.Normal.Mul(maxDist))
	}
}
