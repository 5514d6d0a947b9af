// Package world implements the two BSP tree traversals the loaded scene is
// built for: front-to-back or back-to-front, PVS- and frustum-gated face
// emission for rendering, and swept-sphere push-out for collision. Both walk
// the actual BSP plane tree (node/leaf) rather than a precomputed
// cluster-to-face map.
package world

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/quakeverse/ibsp/ibsp"
)

// DrawItem is one renderable unit handed to the caller's emit callback:
// a texture/lightmap reference plus the vertex and index ranges to draw.
type DrawItem struct {
	Shader      int32
	Lightmap    int32
	VertexBase  int32
	VertexCount int32
	IndexBase   int32
	IndexCount  int32
}

const rootNode = int32(0)

func resolveShader(scene *ibsp.Scene, idx int32) (ibsp.Shader, bool) {
	if idx < 0 || int(idx) >= len(scene.Shaders) {
		return ibsp.Shader{}, false
	}
	return scene.Shaders[idx], true
}

func resolvePlane(scene *ibsp.Scene, idx int32) (ibsp.Plane, bool) {
	if idx < 0 || int(idx) >= len(scene.Planes) {
		return ibsp.Plane{}, false
	}
	return scene.Planes[idx], true
}

// leafOf converts a negative node-child encoding into a leaf index.
func leafOf(child int32) int32 { return ^child }

// FindLeaf descends the plane tree to the leaf containing pos. Returns
// -1 if the scene has no nodes.
func FindLeaf(scene *ibsp.Scene, pos mgl32.Vec3) int32 {
	if len(scene.Nodes) == 0 {
		return -1
	}
	node := rootNode
	for node >= 0 {
		n := scene.Nodes[node]
		plane, ok := resolvePlane(scene, n.Plane)
		if !ok {
			return -1
		}
		if plane.Normal.Dot(pos) >= plane.Distance {
			node = n.Children[0]
		} else {
			node = n.Children[1]
		}
	}
	return leafOf(node)
}

func clusterAt(scene *ibsp.Scene, pos mgl32.Vec3) int32 {
	leaf := FindLeaf(scene, pos)
	if leaf < 0 || int(leaf) >= len(scene.Leaves) {
		return -1
	}
	return scene.Leaves[leaf].Cluster
}
