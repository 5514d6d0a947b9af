package ibsp

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/quakeverse/ibsp/geom"
	"github.com/quakeverse/ibsp/vis"
)

// Plane is a world-space half-space: a unit normal and the signed
// distance of the splitting plane from the origin.
type Plane struct {
	Normal   mgl32.Vec3
	Distance float32
}

// Node is an internal BSP tree node.
type Node struct {
	Plane    int32
	Children [2]int32 // negative values encode leaves: leaf = ~child
	Min, Max mgl32.Vec3
}

// Leaf is a BSP tree leaf: a convex cell of the world.
type Leaf struct {
	Cluster     int32 // -1 = outside any cluster, always visible
	Area        int32
	Min, Max    mgl32.Vec3
	FaceOffset  int32
	FaceCount   int32
	BrushOffset int32
	BrushCount  int32
}

// Model is an AABB plus a face/brush range. Model 0 is the worldspawn.
type Model struct {
	Min, Max    mgl32.Vec3
	FaceOffset  int32
	FaceCount   int32
	BrushOffset int32
	BrushCount  int32
}

// Brush is a convex solid: a range into the brushside table plus the
// shader used to classify it as solid or non-solid.
type Brush struct {
	SideOffset int32
	SideCount  int32
	Shader     int32
}

// BrushSide is one half-space of a Brush.
type BrushSide struct {
	Plane  int32
	Shader int32
}

// Effect is opaque to the core: a name and a brush index.
type Effect struct {
	Name  string
	Brush int32
}

// FaceType discriminates the Face union.
type FaceType int

const (
	FacePolygon FaceType = iota + 1
	FacePatch
	FaceModel
	FaceOther
)

func faceTypeFromRaw(t int32) FaceType {
	switch t {
	case 1:
		return FacePolygon
	case 2:
		return FacePatch
	case 3:
		return FaceModel
	default:
		return FaceOther
	}
}

// PatchInfo is populated only for FacePatch faces: the control grid
// dimensions plus one vertex-range base per biquadratic sub-patch,
// produced by the Bézier tessellator during load.
type PatchInfo struct {
	Width, Height int32
	// SubPatchVertexBase[i] is the offset into Scene.Vertices of the
	// (Level+1)^2 vertices generated for sub-patch i. Every sub-patch
	// shares the same index pattern, held at Scene.BezierIndexBase /
	// Scene.BezierIndexCount.
	SubPatchVertexBase []int32
}

// Face is the discriminated face record .
type Face struct {
	Shader         int32
	Effect         int32
	Type           FaceType
	VertexOffset   int32
	VertexCount    int32
	MeshVertBase   int32
	MeshVertCount  int32
	LightmapIndex  int32 // -1 = untextured by a lightmap
	LightmapOrigin mgl32.Vec3
	Normal         mgl32.Vec3
	Patch          *PatchInfo // non-nil only when Type == FacePatch
}

// Shader is the material stub : a texture name plus the
// booleans derived from the surface/contents bitflags.
type Shader struct {
	Name        string
	Render      bool
	Transparent bool
	Solid       bool
	Surface     uint32
	Contents    uint32
}

// Lightmap is a single 128x128 RGB24 block, exposed as raw bytes for an
// external uploader.
type Lightmap struct {
	Pixels []byte // len == lightmapBytes
}

// LightVol is one ambient/directional sample of the static light grid.
type LightVol struct {
	Ambient     mgl32.Vec3
	Directional mgl32.Vec3
	Direction   mgl32.Vec3
}

// Scene is the canonical, immutable-after-load in-memory representation
// of one loaded IBSP file . Every cross-reference is an
// integer index into one of these arrays.
type Scene struct {
	Entities []byte // opaque blob, not interpreted by the core

	Shaders     []Shader
	Planes      []Plane
	Nodes       []Node
	Leaves      []Leaf
	LeafFaces   []int32
	LeafBrushes []int32
	Models      []Model
	Brushes     []Brush
	BrushSides  []BrushSide
	Vertices    []geom.Vertex
	MeshIndices []int32
	Effects     []Effect
	Faces       []Face
	Lightmaps   []Lightmap
	LightVols   []LightVol
	Vis         vis.Data

	// BezierIndexBase/BezierIndexCount describe the single shared
	// triangle-index block (appended once to MeshIndices) used by every
	// Bézier sub-patch of every patch face.
	BezierIndexBase  int32
	BezierIndexCount int32
	BezierLevel      int

	LightVolSize [3]int32
	// LightGridSize is the cell size used to derive LightVolSize, carried
	// on the scene so FindLightVol can map a point to a cell without a
	// config dependency at query time.
	LightGridSize [3]float32

	// Diagnostics accumulates non-fatal MissingAsset-class conditions
	// encountered during load (missing textures, unknown face types).
	// Out-of-range cluster references are not recorded here.
	Diagnostics []string
}
