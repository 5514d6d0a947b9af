package ibsp

// Lump indices, in the fixed order mandated by the IBSP v0x2E directory
// .
const (
	lumpEntities = iota
	lumpShaders
	lumpPlanes
	lumpNodes
	lumpLeafs
	lumpLeafFaces
	lumpLeafBrushes
	lumpModels
	lumpBrushes
	lumpBrushSides
	lumpVertices
	lumpMeshIndices
	lumpEffects
	lumpFaces
	lumpLightmaps
	lumpLightVols
	lumpVisData
	lumpCount
)

const (
	magic          = "IBSP"
	wantVersion    = 0x2E
	lightmapWidth  = 128
	lightmapHeight = 128
	lightmapBytes  = lightmapWidth * lightmapHeight * 3
)

// header mirrors the 4-byte magic + int32 version + 17 (offset,size) lump
// directory entries, all little-endian.
type header struct {
	Magic   [4]byte
	Version int32
	Lumps   [lumpCount]rawLump
}

type rawLump struct {
	Offset int32
	Size   int32
}

// Raw on-disk record layouts. Field order and sizes follow the canonical
// Quake III IBSP layout .

type rawShader struct {
	Name     [64]byte
	Surface  int32
	Contents int32
}

type rawPlane struct {
	Normal   [3]float32
	Distance float32
}

type rawNode struct {
	Plane    int32
	Children [2]int32
	BBoxMin  [3]int32
	BBoxMax  [3]int32
}

type rawLeaf struct {
	Cluster        int32
	Area           int32
	BBoxMin        [3]int32
	BBoxMax        [3]int32
	LeafFace       int32
	NumLeafFaces   int32
	LeafBrush      int32
	NumLeafBrushes int32
}

type rawModel struct {
	Min        [3]float32
	Max        [3]float32
	Face       int32
	NumFaces   int32
	Brush      int32
	NumBrushes int32
}

type rawBrush struct {
	BrushSide int32
	NumSides  int32
	Shader    int32
}

type rawBrushSide struct {
	Plane  int32
	Shader int32
}

type rawVertex struct {
	Position [3]float32
	TexCoord [2]float32
	LMCoord  [2]float32
	Normal   [3]float32
	Color    [4]uint8
}

type rawEffect struct {
	Name    [64]byte
	Brush   int32
	Unknown int32
}

type rawFace struct {
	Shader         int32
	Effect         int32
	Type           int32
	Vertex         int32
	NumVertices    int32
	MeshVert       int32
	NumMeshVerts   int32
	LightmapIndex  int32
	LightmapStart  [2]int32
	LightmapSize   [2]int32
	LightmapOrigin [3]float32
	LightmapVecs   [2][3]float32
	Normal         [3]float32
	Size           [2]int32
}

type rawLightVol struct {
	Ambient     [3]uint8
	Directional [3]uint8
	Direction   [2]uint8
}
