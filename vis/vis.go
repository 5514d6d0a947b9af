// Package vis implements the PVS (Potentially Visible Set) oracle: a
// bit-indexed "can cluster X see cluster Y" lookup over the decompressed
// visibility bitmap loaded from the IBSP VisData lump.
package vis

// Data is the decompressed PVS bitmap: ClusterCount clusters, each
// described by a row of BytesPerCluster bytes, bit N of row `test` set iff
// cluster `test` can see cluster N.
type Data struct {
	ClusterCount    int
	BytesPerCluster int
	Bits            []byte
}

// Visible reports bit cam of row test, i.e. whether cluster test can see
// cluster cam. cam < 0 or test < 0 or an empty bitmap all mean "always
// visible" (a degenerate/no-vis map). A bit index that falls past the end
// of the bitmap degrades the same way; indices are not otherwise checked
// against ClusterCount, so a cam index within the bitmap is read as a
// plain bit lookup.
func (d Data) Visible(test, cam int) bool {
	if cam < 0 || test < 0 || len(d.Bits) == 0 {
		return true
	}
	bitIndex := test*d.BytesPerCluster*8 + cam
	byteIndex := bitIndex / 8
	if byteIndex < 0 || byteIndex >= len(d.Bits) {
		return true
	}
	bit := uint(bitIndex % 8)
	return d.Bits[byteIndex]&(1<<bit) != 0
}
