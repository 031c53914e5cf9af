// Package nsa builds the normal/solid-angle index: a pass-scoped table of
// precomputed (unit normal, solid angle) pairs for every destination texel
// of a cube map of a given face size. The SH projection walks this table
// instead of recomputing geometry per texel; the direct angular filter
// does not use it and computes its texel normals directly.
package nsa

import "github.com/leterax/irrcross/pkg/cubemap"

// Entry is the per-texel normal and solid angle, with the normal carrying
// the warp-fixup correction applied during cube-map addressing.
type Entry struct {
	Nx, Ny, Nz float64
	SolidAngle float64
}

// Table is a pass-scoped, face-major, row-major array of NSA entries for a
// cube map of a given face size: 6*F*F entries laid out contiguously so
// the SH projection's hot loop walks it with good cache locality.
type Table struct {
	FaceSize int
	Entries  []Entry
}

// Build constructs the NSA table for a cube map of the given face size.
func Build(faceSize int) *Table {
	entries := make([]Entry, cubemap.NumFaces*faceSize*faceSize)
	i := 0
	for face := cubemap.Face(0); face < cubemap.NumFaces; face++ {
		for y := 0; y < faceSize; y++ {
			for x := 0; x < faceSize; x++ {
				n := cubemap.TexelCenterDir(face, x, y, faceSize)
				omega := cubemap.TexelSolidAngle(x, y, faceSize)
				entries[i] = Entry{Nx: n.X(), Ny: n.Y(), Nz: n.Z(), SolidAngle: omega}
				i++
			}
		}
	}
	return &Table{FaceSize: faceSize, Entries: entries}
}

// Index returns the flat index of texel (x, y) on face within the table,
// using a ((face*F+y)*F+x) face-major, row-major layout.
func Index(face cubemap.Face, x, y, faceSize int) int {
	return ((int(face)*faceSize+y)*faceSize + x)
}

// At returns the entry for texel (x, y) on face.
func (t *Table) At(face cubemap.Face, x, y int) Entry {
	return t.Entries[Index(face, x, y, t.FaceSize)]
}

// Face returns the face a flat NSA index belongs to.
func (t *Table) Face(index int) cubemap.Face {
	return cubemap.Face(index / (t.FaceSize * t.FaceSize))
}

// XY returns the within-face (x, y) coordinates of a flat NSA index.
func (t *Table) XY(index int) (x, y int) {
	local := index % (t.FaceSize * t.FaceSize)
	return local % t.FaceSize, local / t.FaceSize
}
