package ibsp_test

import (
	"bytes"
	"encoding/binary"
)

// bspBuilder assembles a minimal, valid IBSP v0x2E byte buffer for tests,
// one lump at a time, computing offsets as it goes.
type bspBuilder struct {
	lumps [17][]byte
}

func newBSPBuilder() *bspBuilder {
	return &bspBuilder{}
}

func (b *bspBuilder) set(lump int, data []byte) *bspBuilder {
	b.lumps[lump] = data
	return b
}

func (b *bspBuilder) build() []byte {
	const headerSize = 4 + 4 + 17*8
	offset := int32(headerSize)

	type lumpEntry struct{ Offset, Size int32 }
	entries := make([]lumpEntry, 17)
	for i, data := range b.lumps {
		entries[i] = lumpEntry{Offset: offset, Size: int32(len(data))}
		offset += int32(len(data))
	}

	buf := &bytes.Buffer{}
	buf.WriteString("IBSP")
	binary.Write(buf, binary.LittleEndian, int32(0x2E))
	for _, e := range entries {
		binary.Write(buf, binary.LittleEndian, e)
	}
	for _, data := range b.lumps {
		buf.Write(data)
	}
	return buf.Bytes()
}

func le(vs ...any) []byte {
	buf := &bytes.Buffer{}
	for _, v := range vs {
		if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
			panic(err)
		}
	}
	return buf.Bytes()
}

// rawShader mirrors ibsp's unexported wire layout: name[64], surface int32, contents int32.
func rawShaderBytes(name string, surface, contents int32) []byte {
	var nameBuf [64]byte
	copy(nameBuf[:], name)
	return le(nameBuf, surface, contents)
}

func rawPlaneBytes(nx, ny, nz, d float32) []byte {
	return le(nx, ny, nz, d)
}

func rawNodeBytes(plane, child0, child1 int32, min, max [3]int32) []byte {
	return le(plane, child0, child1, min, max)
}

func rawLeafBytes(cluster, area int32, min, max [3]int32, faceOff, faceCount, brushOff, brushCount int32) []byte {
	return le(cluster, area, min, max, faceOff, faceCount, brushOff, brushCount)
}

func rawModelBytes(min, max [3]float32, faceOff, faceCount, brushOff, brushCount int32) []byte {
	return le(min, max, faceOff, faceCount, brushOff, brushCount)
}

func rawBrushBytes(sideOff, numSides, shader int32) []byte {
	return le(sideOff, numSides, shader)
}

func rawBrushSideBytes(plane, shader int32) []byte {
	return le(plane, shader)
}

func rawVertexBytes(pos [3]float32, tex, lm [2]float32, normal [3]float32, color [4]uint8) []byte {
	return le(pos, tex, lm, normal, color)
}

func rawEffectBytes(name string, brush, unknown int32) []byte {
	var nameBuf [64]byte
	copy(nameBuf[:], name)
	return le(nameBuf, brush, unknown)
}

func rawFaceBytes(shader, effect, typ, vertex, numVerts, meshVert, numMeshVerts, lmIndex int32,
	lmStart, lmSize [2]int32, lmOrigin [3]float32, lmVecs [2][3]float32, normal [3]float32, size [2]int32) []byte {
	return le(shader, effect, typ, vertex, numVerts, meshVert, numMeshVerts, lmIndex, lmStart, lmSize, lmOrigin, lmVecs, normal, size)
}

func rawLightVolBytes(ambient, directional [3]uint8, direction [2]uint8) []byte {
	return le(ambient, directional, direction)
}

func visDataBytes(clusterCount, bytesPerCluster int32, bits []byte) []byte {
	return le(clusterCount, bytesPerCluster, bits)
}
