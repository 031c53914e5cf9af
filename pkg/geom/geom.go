// Package geom provides the spherical/Cartesian conversions, texel
// solid-angle integration, and cube-edge warp correction that the cube-map
// filtering core is built on.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// SphericalToVec converts horizontal angle theta and vertical angle phi to
// a unit direction vector, matching the convention used throughout the
// filtering core: theta sweeps around Y, phi sweeps down from +Y.
func SphericalToVec(theta, phi float64) mgl64.Vec3 {
	sinPhi, cosPhi := math.Sincos(phi)
	sinTheta, cosTheta := math.Sincos(theta)
	return mgl64.Vec3{sinTheta * sinPhi, cosPhi, cosTheta * sinPhi}
}

// VecToSpherical is the inverse of SphericalToVec.
func VecToSpherical(v mgl64.Vec3) (theta, phi float64) {
	theta = math.Atan2(v.X(), v.Z())
	phi = math.Acos(v.Y())
	return
}

// solidAngleArea is the Mathar/Driscoll closed form used to integrate the
// solid angle subtended by a texel: A(x,y) = atan2(xy, sqrt(x^2+y^2+1)).
func solidAngleArea(x, y float64) float64 {
	return math.Atan2(x*y, math.Sqrt(x*x+y*y+1))
}

// TexelSolidAngle returns the solid angle subtended by a square texel
// centered at (u,v) in face space with half-extent h (h = 1/F).
func TexelSolidAngle(u, v, h float64) float64 {
	return solidAngleArea(u+h, v+h) - solidAngleArea(u-h, v+h) -
		solidAngleArea(u+h, v-h) + solidAngleArea(u-h, v-h)
}

// WarpFixupFactor returns the cubic warp-fixup coefficient for a face of
// size F texels. The factor degenerates to the identity at F == 1, where
// the cubic term divides by zero otherwise.
func WarpFixupFactor(faceSize int) float64 {
	if faceSize == 1 {
		return 1.0
	}
	f := float64(faceSize)
	return (f * f) / ((f - 1) * (f - 1) * (f - 1))
}

// WarpFixup biases raw face-space coordinates (u,v) toward the face edges
// so that bilinear sampling near a cube seam reproduces a seamless sphere.
func WarpFixup(u, v float64, warp float64) (float64, float64) {
	u = warp*u*u*u + u
	v = warp*v*v*v + v
	return u, v
}
