package world

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/quakeverse/ibsp/frustum"
	"github.com/quakeverse/ibsp/ibsp"
)

// renderPass is the per-call scratch state of one opaque or transparent
// sweep: the camera's cluster and frustum, which side of this pass we're
// drawing, and the emission-dedup bitset sized to the face count.
type renderPass struct {
	cameraPos     mgl32.Vec3
	frustum       frustum.Frustum
	cameraCluster int32
	solid         bool
	emitted       []bool
}

// RenderWorld walks the scene twice, once for opaque faces (front-to-back,
// solid=true) and once for transparent faces (back-to-front, solid=false),
// invoking emit synchronously for every draw item.
func RenderWorld(scene *ibsp.Scene, viewProjection mgl32.Mat4, cameraPos mgl32.Vec3, emit func(DrawItem)) {
	if len(scene.Nodes) == 0 {
		return
	}
	f := frustum.New(viewProjection)
	cluster := clusterAt(scene, cameraPos)

	for _, solid := range [2]bool{true, false} {
		pass := &renderPass{
			cameraPos:     cameraPos,
			frustum:       f,
			cameraCluster: cluster,
			solid:         solid,
			emitted:       make([]bool, len(scene.Faces)),
		}
		traverseRender(scene, rootNode, pass, emit)
	}
}

func traverseRender(scene *ibsp.Scene, node int32, pass *renderPass, emit func(DrawItem)) {
	if node < 0 {
		visitLeaf(scene, leafOf(node), pass, emit)
		return
	}

	n := scene.Nodes[node]
	if !pass.frustum.InsideAABB(n.Min, n.Max) {
		return
	}

	plane, ok := resolvePlane(scene, n.Plane)
	if !ok {
		return
	}
	front := plane.Normal.Dot(pass.cameraPos) >= plane.Distance

	// Opaque pass wants front-to-back for early-z; transparent pass wants
	// back-to-front for correct blending.
	if pass.solid == front {
		traverseRender(scene, n.Children[0], pass, emit)
		traverseRender(scene, n.Children[1], pass, emit)
	} else {
		traverseRender(scene, n.Children[1], pass, emit)
		traverseRender(scene, n.Children[0], pass, emit)
	}
}

func visitLeaf(scene *ibsp.Scene, leafIdx int32, pass *renderPass, emit func(DrawItem)) {
	if leafIdx < 0 || int(leafIdx) >= len(scene.Leaves) {
		return
	}
	leaf := scene.Leaves[leafIdx]
	if !scene.Vis.Visible(int(leaf.Cluster), int(pass.cameraCluster)) {
		return
	}
	if !pass.frustum.InsideAABB(leaf.Min, leaf.Max) {
		return
	}

	for i := int32(0); i < leaf.FaceCount; i++ {
		idx := leaf.FaceOffset + i
		if idx < 0 || int(idx) >= len(scene.LeafFaces) {
			continue
		}
		visitFace(scene, scene.LeafFaces[idx], pass, emit)
	}
}

func visitFace(scene *ibsp.Scene, faceIdx int32, pass *renderPass, emit func(DrawItem)) {
	if faceIdx < 0 || int(faceIdx) >= len(scene.Faces) {
		return
	}
	if pass.emitted[faceIdx] {
		return
	}

	face := scene.Faces[faceIdx]
	shader, ok := resolveShader(scene, face.Shader)
	if !ok || !shader.Render {
		return
	}
	if shader.Transparent == pass.solid {
		// Opaque pass skips transparent faces; transparent pass skips opaque ones.
		return
	}

	emitFace(scene, face, emit)
	pass.emitted[faceIdx] = true
}

// emitFace turns one face into draw items: Polygon/Model faces draw their
// own vertex/index range, Patch faces draw one item per tessellated
// sub-patch sharing the global Bézier index block.
func emitFace(scene *ibsp.Scene, face ibsp.Face, emit func(DrawItem)) {
	switch face.Type {
	case ibsp.FacePolygon, ibsp.FaceModel:
		emit(DrawItem{
			Shader:      face.Shader,
			Lightmap:    face.LightmapIndex,
			VertexBase:  face.VertexOffset,
			VertexCount: face.VertexCount,
			IndexBase:   face.MeshVertBase,
			IndexCount:  face.MeshVertCount,
		})
	case ibsp.FacePatch:
		if face.Patch == nil {
			return
		}
		l1 := int32(scene.BezierLevel + 1)
		for _, base := range face.Patch.SubPatchVertexBase {
			emit(DrawItem{
				Shader:      face.Shader,
				Lightmap:    face.LightmapIndex,
				VertexBase:  base,
				VertexCount: l1 * l1,
				IndexBase:   scene.BezierIndexBase,
				IndexCount:  scene.BezierIndexCount,
			})
		}
	default:
		// Other/billboard faces are ignored by the core renderer.
	}
}
