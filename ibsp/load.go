// Package ibsp implements the binary loader and canonical scene model for
// the IBSP v0x2E level format: the lump directory, shader classification,
// brush/plane/node geometry, Bézier patch tessellation, light volumes, and
// the decompressed PVS bitmap.
package ibsp

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/quakeverse/ibsp/bezier"
	"github.com/quakeverse/ibsp/geom"
	"github.com/quakeverse/ibsp/internal/config"
	"github.com/quakeverse/ibsp/vis"
)

const headerSize = 4 + 4 + 17*8 // magic + version + 17 (offset,size) entries

// Load parses src into a Scene. resolver is consulted to decide whether a
// shader's texture file exists (nil treats every texture as missing);
// cfg supplies the Bézier level and light-grid cell size (nil uses
// config.Default()); logger receives non-fatal diagnostics (nil uses a
// no-op logger).
//
// Load fully consumes src and closes it (if it implements io.Closer) on
// every exit path.
func Load(src Source, resolver PathResolver, cfg *config.Config, logger *zap.SugaredLogger) (*Scene, error) {
	if closer, ok := src.(io.Closer); ok {
		defer closer.Close()
	}
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	hdr, err := readHeader(src)
	if err != nil {
		return nil, err
	}

	lumps := hdr.Lumps
	total := src.Size()
	for i, l := range lumps {
		if l.Offset < 0 || l.Size < 0 || int64(l.Offset)+int64(l.Size) > total {
			return nil, newLoadError(KindTruncated, errors.Errorf("lump %d out of range (offset=%d size=%d, file size=%d)", i, l.Offset, l.Size, total))
		}
	}

	scene := &Scene{BezierLevel: cfg.BezierLevel}

	if err := readEntities(src, lumps[lumpEntities], scene); err != nil {
		return nil, err
	}
	if err := readShaders(src, lumps[lumpShaders], resolver, scene, logger); err != nil {
		return nil, err
	}
	if err := readPlanes(src, lumps[lumpPlanes], scene); err != nil {
		return nil, err
	}
	if err := readNodes(src, lumps[lumpNodes], scene); err != nil {
		return nil, err
	}
	if err := readLeaves(src, lumps[lumpLeafs], scene); err != nil {
		return nil, err
	}
	if err := readLeafFaces(src, lumps[lumpLeafFaces], scene); err != nil {
		return nil, err
	}
	if err := readLeafBrushes(src, lumps[lumpLeafBrushes], scene); err != nil {
		return nil, err
	}
	if err := readModels(src, lumps[lumpModels], scene); err != nil {
		return nil, err
	}
	if err := readBrushes(src, lumps[lumpBrushes], scene); err != nil {
		return nil, err
	}
	if err := readBrushSides(src, lumps[lumpBrushSides], scene); err != nil {
		return nil, err
	}
	if err := readVertices(src, lumps[lumpVertices], scene); err != nil {
		return nil, err
	}
	if err := readMeshIndices(src, lumps[lumpMeshIndices], scene); err != nil {
		return nil, err
	}
	if err := readEffects(src, lumps[lumpEffects], scene); err != nil {
		return nil, err
	}
	if err := readFaces(src, lumps[lumpFaces], scene, logger); err != nil {
		return nil, err
	}
	if err := readLightmaps(src, lumps[lumpLightmaps], scene); err != nil {
		return nil, err
	}
	if err := readLightVols(src, lumps[lumpLightVols], scene); err != nil {
		return nil, err
	}
	if err := readVisData(src, lumps[lumpVisData], scene); err != nil {
		return nil, err
	}

	generateBezierPatches(scene, cfg)
	computeLightVolGrid(scene, cfg)

	return scene, nil
}

func readHeader(src Source) (*header, error) {
	if src.Size() < headerSize {
		return nil, newLoadError(KindTruncated, errors.New("file shorter than header"))
	}
	hdr := &header{}
	r := io.NewSectionReader(src, 0, headerSize)
	if err := binary.Read(r, binary.LittleEndian, hdr); err != nil {
		return nil, newLoadError(KindIo, errors.Wrap(err, "reading header"))
	}
	if !bytes.Equal(hdr.Magic[:], []byte(magic)) {
		return nil, newLoadError(KindBadMagic, errors.Errorf("got %q", hdr.Magic[:]))
	}
	if hdr.Version != wantVersion {
		return nil, newLoadError(KindUnsupportedVersion, errors.Errorf("got 0x%X, want 0x%X", hdr.Version, wantVersion))
	}
	return hdr, nil
}

// readRecords reads a whole lump as a slice of fixed-size records in one
// binary.Read call.
func readRecords[T any](src Source, l rawLump, recordSize int64) ([]T, error) {
	if l.Size == 0 {
		return nil, nil
	}
	count := int(int64(l.Size) / recordSize)
	if count == 0 {
		return nil, nil
	}
	out := make([]T, count)
	r := io.NewSectionReader(src, int64(l.Offset), int64(l.Size))
	if err := binary.Read(r, binary.LittleEndian, out); err != nil {
		return nil, newLoadError(KindIo, errors.Wrap(err, "reading records"))
	}
	return out, nil
}

func readEntities(src Source, l rawLump, scene *Scene) error {
	if l.Size == 0 {
		return nil
	}
	buf := make([]byte, l.Size)
	r := io.NewSectionReader(src, int64(l.Offset), int64(l.Size))
	if _, err := io.ReadFull(r, buf); err != nil {
		return newLoadError(KindIo, errors.Wrap(err, "reading entities"))
	}
	scene.Entities = buf
	return nil
}

func readShaders(src Source, l rawLump, resolver PathResolver, scene *Scene, logger *zap.SugaredLogger) error {
	raws, err := readRecords[rawShader](src, l, 72)
	if err != nil {
		return err
	}
	scene.Shaders = make([]Shader, len(raws))
	for i, r := range raws {
		name := cString(r.Name[:])
		render, transparent, solid, missing := classifyShader(name, uint32(r.Surface), uint32(r.Contents), resolver)
		scene.Shaders[i] = Shader{
			Name:        name,
			Render:      render,
			Transparent: transparent,
			Solid:       solid,
			Surface:     uint32(r.Surface),
			Contents:    uint32(r.Contents),
		}
		if missing {
			msg := "missing texture asset: " + name
			scene.Diagnostics = append(scene.Diagnostics, msg)
			logger.Warnw("shader texture unresolved", "shader", name)
		}
	}
	return nil
}

func readPlanes(src Source, l rawLump, scene *Scene) error {
	raws, err := readRecords[rawPlane](src, l, 16)
	if err != nil {
		return err
	}
	scene.Planes = make([]Plane, len(raws))
	for i, r := range raws {
		scene.Planes[i] = Plane{
			Normal:   mgl32.Vec3{r.Normal[0], r.Normal[1], r.Normal[2]},
			Distance: r.Distance,
		}
	}
	return nil
}

func readNodes(src Source, l rawLump, scene *Scene) error {
	raws, err := readRecords[rawNode](src, l, 36)
	if err != nil {
		return err
	}
	scene.Nodes = make([]Node, len(raws))
	for i, r := range raws {
		scene.Nodes[i] = Node{
			Plane:    r.Plane,
			Children: r.Children,
			Min:      intVec3(r.BBoxMin),
			Max:      intVec3(r.BBoxMax),
		}
	}
	return nil
}

func readLeaves(src Source, l rawLump, scene *Scene) error {
	raws, err := readRecords[rawLeaf](src, l, 48)
	if err != nil {
		return err
	}
	scene.Leaves = make([]Leaf, len(raws))
	for i, r := range raws {
		scene.Leaves[i] = Leaf{
			Cluster:     r.Cluster,
			Area:        r.Area,
			Min:         intVec3(r.BBoxMin),
			Max:         intVec3(r.BBoxMax),
			FaceOffset:  r.LeafFace,
			FaceCount:   r.NumLeafFaces,
			BrushOffset: r.LeafBrush,
			BrushCount:  r.NumLeafBrushes,
		}
	}
	return nil
}

func readLeafFaces(src Source, l rawLump, scene *Scene) error {
	v, err := readRecords[int32](src, l, 4)
	if err != nil {
		return err
	}
	scene.LeafFaces = v
	return nil
}

func readLeafBrushes(src Source, l rawLump, scene *Scene) error {
	v, err := readRecords[int32](src, l, 4)
	if err != nil {
		return err
	}
	scene.LeafBrushes = v
	return nil
}

func readModels(src Source, l rawLump, scene *Scene) error {
	raws, err := readRecords[rawModel](src, l, 40)
	if err != nil {
		return err
	}
	scene.Models = make([]Model, len(raws))
	for i, r := range raws {
		scene.Models[i] = Model{
			Min:         mgl32.Vec3{r.Min[0], r.Min[1], r.Min[2]},
			Max:         mgl32.Vec3{r.Max[0], r.Max[1], r.Max[2]},
			FaceOffset:  r.Face,
			FaceCount:   r.NumFaces,
			BrushOffset: r.Brush,
			BrushCount:  r.NumBrushes,
		}
	}
	return nil
}

func readBrushes(src Source, l rawLump, scene *Scene) error {
	raws, err := readRecords[rawBrush](src, l, 12)
	if err != nil {
		return err
	}
	scene.Brushes = make([]Brush, len(raws))
	for i, r := range raws {
		scene.Brushes[i] = Brush{SideOffset: r.BrushSide, SideCount: r.NumSides, Shader: r.Shader}
	}
	return nil
}

func readBrushSides(src Source, l rawLump, scene *Scene) error {
	raws, err := readRecords[rawBrushSide](src, l, 8)
	if err != nil {
		return err
	}
	scene.BrushSides = make([]BrushSide, len(raws))
	for i, r := range raws {
		scene.BrushSides[i] = BrushSide{Plane: r.Plane, Shader: r.Shader}
	}
	return nil
}

func readVertices(src Source, l rawLump, scene *Scene) error {
	raws, err := readRecords[rawVertex](src, l, 44)
	if err != nil {
		return err
	}
	scene.Vertices = make([]geom.Vertex, len(raws))
	for i, r := range raws {
		scene.Vertices[i] = geom.Vertex{
			Position:      mgl32.Vec3{r.Position[0], r.Position[1], r.Position[2]},
			TexCoord:      mgl32.Vec2{r.TexCoord[0], r.TexCoord[1]},
			LightmapCoord: mgl32.Vec2{r.LMCoord[0], r.LMCoord[1]},
			Normal:        mgl32.Vec3{r.Normal[0], r.Normal[1], r.Normal[2]},
			Color:         r.Color,
		}
	}
	return nil
}

func readMeshIndices(src Source, l rawLump, scene *Scene) error {
	v, err := readRecords[int32](src, l, 4)
	if err != nil {
		return err
	}
	scene.MeshIndices = v
	return nil
}

func readEffects(src Source, l rawLump, scene *Scene) error {
	raws, err := readRecords[rawEffect](src, l, 72)
	if err != nil {
		return err
	}
	scene.Effects = make([]Effect, len(raws))
	for i, r := range raws {
		scene.Effects[i] = Effect{Name: cString(r.Name[:]), Brush: r.Brush}
	}
	return nil
}

func readFaces(src Source, l rawLump, scene *Scene, logger *zap.SugaredLogger) error {
	raws, err := readRecords[rawFace](src, l, 104)
	if err != nil {
		return err
	}
	scene.Faces = make([]Face, len(raws))
	for i, r := range raws {
		ft := faceTypeFromRaw(r.Type)
		if ft == FaceOther {
			scene.Diagnostics = append(scene.Diagnostics, "unknown face type, ignored")
			logger.Debugw("unknown face type", "face", i, "type", r.Type)
		}
		face := Face{
			Shader:         r.Shader,
			Effect:         r.Effect,
			Type:           ft,
			VertexOffset:   r.Vertex,
			VertexCount:    r.NumVertices,
			MeshVertBase:   r.MeshVert,
			MeshVertCount:  r.NumMeshVerts,
			LightmapIndex:  r.LightmapIndex,
			LightmapOrigin: mgl32.Vec3{r.LightmapOrigin[0], r.LightmapOrigin[1], r.LightmapOrigin[2]},
			Normal:         mgl32.Vec3{r.Normal[0], r.Normal[1], r.Normal[2]},
		}
		if ft == FacePatch {
			face.Patch = &PatchInfo{Width: r.Size[0], Height: r.Size[1]}
		}
		scene.Faces[i] = face
	}
	return nil
}

func readLightmaps(src Source, l rawLump, scene *Scene) error {
	if l.Size == 0 {
		return nil
	}
	count := int(int64(l.Size) / lightmapBytes)
	scene.Lightmaps = make([]Lightmap, count)
	r := io.NewSectionReader(src, int64(l.Offset), int64(l.Size))
	for i := 0; i < count; i++ {
		buf := make([]byte, lightmapBytes)
		if _, err := io.ReadFull(r, buf); err != nil {
			return newLoadError(KindIo, errors.Wrap(err, "reading lightmap"))
		}
		scene.Lightmaps[i] = Lightmap{Pixels: buf}
	}
	return nil
}

func readLightVols(src Source, l rawLump, scene *Scene) error {
	raws, err := readRecords[rawLightVol](src, l, 8)
	if err != nil {
		return err
	}
	scene.LightVols = make([]LightVol, len(raws))
	for i, r := range raws {
		ambient := mgl32.Vec3{float32(r.Ambient[0]), float32(r.Ambient[1]), float32(r.Ambient[2])}.Mul(1.0 / 256.0)
		directional := mgl32.Vec3{float32(r.Directional[0]), float32(r.Directional[1]), float32(r.Directional[2])}.Mul(1.0 / 256.0)

		// phi/theta are left in degree-scaled units and fed straight into
		// sin/cos without a radian conversion, matching the decode this
		// was ported from byte-for-byte.
		phi := (float64(r.Direction[0]) - 128) * 180.0 / 256.0
		theta := float64(r.Direction[1]) * 360.0 / 256.0

		dir := mgl32.Vec3{
			float32(math.Sin(theta) * math.Cos(phi)),
			float32(math.Cos(theta) * math.Cos(phi)),
			float32(math.Sin(phi)),
		}

		scene.LightVols[i] = LightVol{Ambient: ambient, Directional: directional, Direction: dir}
	}
	return nil
}

func readVisData(src Source, l rawLump, scene *Scene) error {
	if l.Size == 0 {
		scene.Vis = vis.Data{}
		return nil
	}
	r := io.NewSectionReader(src, int64(l.Offset), int64(l.Size))
	var header [2]int32
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return newLoadError(KindIo, errors.Wrap(err, "reading visdata header"))
	}
	clusterCount, bytesPerCluster := int(header[0]), int(header[1])
	size := clusterCount * bytesPerCluster
	buf := make([]byte, size)
	if size > 0 {
		if _, err := io.ReadFull(r, buf); err != nil {
			return newLoadError(KindIo, errors.Wrap(err, "reading visdata bitmap"))
		}
	}
	scene.Vis = vis.Data{ClusterCount: clusterCount, BytesPerCluster: bytesPerCluster, Bits: buf}
	return nil
}

// generateBezierPatches expands every Patch face's control grid into
// tessellated sub-patch vertices, appended once to Scene.Vertices, and
// appends the single shared index pattern once to Scene.MeshIndices.
func generateBezierPatches(scene *Scene, cfg *config.Config) {
	level := cfg.BezierLevel
	if level < 1 {
		level = 1
	}

	pattern := bezier.IndexPattern(level)
	scene.BezierIndexBase = int32(len(scene.MeshIndices))
	scene.BezierIndexCount = int32(len(pattern))
	scene.MeshIndices = append(scene.MeshIndices, pattern...)

	for i := range scene.Faces {
		face := &scene.Faces[i]
		if face.Type != FacePatch || face.Patch == nil {
			continue
		}
		width, height := int(face.Patch.Width), int(face.Patch.Height)
		if width < 3 || height < 3 {
			continue
		}
		dimX := (width - 1) / 2
		dimY := (height - 1) / 2

		bases := make([]int32, 0, dimX*dimY)
		for n := 0; n < dimX; n++ {
			i0 := 2 * n
			for m := 0; m < dimY; m++ {
				j0 := 2 * m
				var controls [9]geom.Vertex
				cIndex := 0
				for row := 0; row < 3; row++ {
					rowOffset := row * width
					base := int(face.VertexOffset) + i0 + width*j0 + rowOffset
					controls[cIndex] = scene.Vertices[base]
					controls[cIndex+1] = scene.Vertices[base+1]
					controls[cIndex+2] = scene.Vertices[base+2]
					cIndex += 3
				}

				subVerts := bezier.Tessellate(controls, level)
				base := int32(len(scene.Vertices))
				scene.Vertices = append(scene.Vertices, subVerts...)
				bases = append(bases, base)
			}
		}
		face.Patch.SubPatchVertexBase = bases
	}
}

// computeLightVolGrid derives the worldspawn light-volume grid dimensions
// from model 0's AABB.
func computeLightVolGrid(scene *Scene, cfg *config.Config) {
	if len(scene.Models) == 0 {
		return
	}
	world := scene.Models[0]
	g := cfg.LightGridSize

	sizeX := int32(math.Floor(float64(world.Max.X()/g.X))) - int32(math.Ceil(float64(world.Min.X()/g.X))) + 1
	sizeY := int32(math.Floor(float64(world.Max.Y()/g.Y))) - int32(math.Ceil(float64(world.Min.Y()/g.Y))) + 1
	sizeZ := int32(math.Floor(float64(world.Max.Z()/g.Z))) - int32(math.Ceil(float64(world.Min.Z()/g.Z))) + 1

	scene.LightVolSize = [3]int32{sizeX, sizeY, sizeZ}
	scene.LightGridSize = [3]float32{g.X, g.Y, g.Z}
}

func cString(b []byte) string {
	if idx := bytes.IndexByte(b, 0); idx >= 0 {
		b = b[:idx]
	}
	return string(b)
}

func intVec3(v [3]int32) mgl32.Vec3 {
	return mgl32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}
