package cubemap

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/leterax/irrcross/pkg/geom"
)

// DirToUV maps a world direction to a face and face-local coordinates,
// both normalized to [0, 1]. Ties between axes attaining the maximum
// magnitude are broken in X, Y, Z order.
func DirToUV(d mgl64.Vec3) (face Face, u, v float64) {
	ax, ay, az := math.Abs(d.X()), math.Abs(d.Y()), math.Abs(d.Z())
	var m float64
	switch {
	case ax >= ay && ax >= az:
		m = ax
		if d.X() >= 0 {
			face = PosX
		} else {
			face = NegX
		}
	case ay >= az:
		m = ay
		if d.Y() >= 0 {
			face = PosY
		} else {
			face = NegY
		}
	default:
		m = az
		if d.Z() >= 0 {
			face = PosZ
		} else {
			face = NegZ
		}
	}

	scaled := d.Mul(1 / m)
	basis := uvBasis[face]
	u = (basis.U.Dot(scaled) + 1) * 0.5
	v = (basis.V.Dot(scaled) + 1) * 0.5
	return face, u, v
}

// UVToDir maps a face and face-local coordinates in [0, 1] to a normalized
// world direction. It performs no warp-fixup; callers that need warped
// texel centers should apply geom.WarpFixup to the raw (centered) (u, v)
// pair before calling UVToDirRaw.
func UVToDir(face Face, u, v float64) mgl64.Vec3 {
	return UVToDirRaw(face, 2*u-1, 2*v-1)
}

// UVToDirRaw maps a face and centered face-local coordinates in [-1, 1] to
// a normalized world direction.
func UVToDirRaw(face Face, u, v float64) mgl64.Vec3 {
	basis := uvBasis[face]
	d := basis.U.Mul(u).Add(basis.V.Mul(v)).Add(basis.Axis)
	return d.Normalize()
}

// DirToUVRaw is DirToUV expressed in the centered [-1, 1] convention used
// by the NSA builder and the warp-fixup formulas.
func DirToUVRaw(d mgl64.Vec3) (face Face, u, v float64) {
	face, u, v = DirToUV(d)
	return face, 2*u - 1, 2*v - 1
}

// TexelCenterDir returns the warped unit normal at the center of texel
// (x, y) on the given face of a cube map with face size F.
func TexelCenterDir(face Face, x, y, faceSize int) mgl64.Vec3 {
	u, v := texelCenterRawUV(x, y, faceSize)
	warp := geom.WarpFixupFactor(faceSize)
	wu, wv := geom.WarpFixup(u, v, warp)
	return UVToDirRaw(face, wu, wv)
}

// texelCenterRawUV returns the unwarped, centered (u, v) of a texel's
// midpoint, in [-1+1/F, 1-1/F].
func texelCenterRawUV(x, y, faceSize int) (u, v float64) {
	f := float64(faceSize)
	u = (2*(float64(x)+0.5)/f - 1)
	v = (2*(float64(y)+0.5)/f - 1)
	return
}

// TexelSolidAngle returns the solid angle of texel (x, y) on a face of
// size F, computed from the unwarped texel center (warp-fixup only
// biases the stored normal, not the solid-angle integral).
func TexelSolidAngle(x, y, faceSize int) float64 {
	u, v := texelCenterRawUV(x, y, faceSize)
	return geom.TexelSolidAngle(u, v, 1/float64(faceSize))
}
