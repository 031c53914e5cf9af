package cubemap

import "github.com/go-gl/mathgl/mgl64"

// Face identifies one of the six faces of a cube map.
type Face int

const (
	PosX Face = iota
	NegX
	PosY
	NegY
	PosZ
	NegZ
)

// NumFaces is the number of faces in a cube map.
const NumFaces = 6

func (f Face) String() string {
	switch f {
	case PosX:
		return "+X"
	case NegX:
		return "-X"
	case PosY:
		return "+Y"
	case NegY:
		return "-Y"
	case PosZ:
		return "+Z"
	case NegZ:
		return "-Z"
	default:
		return "invalid face"
	}
}

// Edge identifies one of the four edges of a cube face.
type Edge int

const (
	EdgeLeft Edge = iota
	EdgeRight
	EdgeTop
	EdgeBottom
)

// UVBasis is the fixed 3x3 mapping [uAxis; vAxis; faceAxis] that carries
// face-local (u, v, 1) coordinates to a world-space direction.
type UVBasis struct {
	U    mgl64.Vec3
	V    mgl64.Vec3
	Axis mgl64.Vec3
}

// uvBasis holds the authoritative per-face basis vectors.
var uvBasis = [NumFaces]UVBasis{
	PosX: {U: mgl64.Vec3{0, 0, -1}, V: mgl64.Vec3{0, -1, 0}, Axis: mgl64.Vec3{1, 0, 0}},
	NegX: {U: mgl64.Vec3{0, 0, 1}, V: mgl64.Vec3{0, -1, 0}, Axis: mgl64.Vec3{-1, 0, 0}},
	PosY: {U: mgl64.Vec3{1, 0, 0}, V: mgl64.Vec3{0, 0, 1}, Axis: mgl64.Vec3{0, 1, 0}},
	NegY: {U: mgl64.Vec3{1, 0, 0}, V: mgl64.Vec3{0, 0, -1}, Axis: mgl64.Vec3{0, -1, 0}},
	PosZ: {U: mgl64.Vec3{1, 0, 0}, V: mgl64.Vec3{0, -1, 0}, Axis: mgl64.Vec3{0, 0, 1}},
	NegZ: {U: mgl64.Vec3{-1, 0, 0}, V: mgl64.Vec3{0, -1, 0}, Axis: mgl64.Vec3{0, 0, -1}},
}

// UVBasisFor returns the fixed UV basis for a face.
func UVBasisFor(f Face) UVBasis {
	return uvBasis[f]
}

// faceOffset is a face's (col, row) position inside the 4x3 horizontal-cross
// grid, measured in whole-face units.
type faceOffset struct {
	Col, Row int
}

var hCrossFaceOffset = [NumFaces]faceOffset{
	PosX: {2, 1},
	NegX: {0, 1},
	PosY: {1, 0},
	NegY: {1, 2},
	PosZ: {1, 1},
	NegZ: {3, 1},
}

// faceNeighbours records, for each face, the face sharing each of its four
// edges. It is not consumed by the filtering core (there is no seam
// smoothing pass yet) but is retained as a static table for a future
// edge-aware warp pass.
var faceNeighbours = [NumFaces][4]Face{
	PosX: {EdgeLeft: PosZ, EdgeRight: NegZ, EdgeTop: PosY, EdgeBottom: NegY},
	NegX: {EdgeLeft: NegZ, EdgeRight: PosZ, EdgeTop: PosY, EdgeBottom: NegY},
	PosY: {EdgeLeft: NegX, EdgeRight: PosX, EdgeTop: NegZ, EdgeBottom: PosZ},
	NegY: {EdgeLeft: NegX, EdgeRight: PosX, EdgeTop: PosZ, EdgeBottom: NegZ},
	PosZ: {EdgeLeft: NegX, EdgeRight: PosX, EdgeTop: PosY, EdgeBottom: NegY},
	NegZ: {EdgeLeft: PosX, EdgeRight: NegX, EdgeTop: PosY, EdgeBottom: NegY},
}
