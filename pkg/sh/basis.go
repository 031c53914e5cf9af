// Package sh implements the real spherical-harmonic basis through band 4
// (25 functions), forward projection of cube-map radiance onto that
// basis, and analytic Lambertian-diffuse reconstruction from the
// projected coefficients.
package sh

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// NumCoeffs is the number of real SH basis functions through band 4.
const NumCoeffs = 25

// Band-normalization constants, computed at package init from their closed
// forms (rather than hard-coded decimals) so they match the reference to
// machine precision, well inside the 1e-12 tolerance the projection
// properties require.
var (
	k0 = 0.5 * math.Sqrt(1/math.Pi) // l=0

	k1 = math.Sqrt(3 / (4 * math.Pi)) // l=1, all m

	k2a = math.Sqrt(15 / (4 * math.Pi))  // l=2, m=-2,-1,1 (xy, yz, xz)
	k2b = math.Sqrt(5 / (16 * math.Pi))  // l=2, m=0  (3z^2-1)
	k2c = math.Sqrt(15 / (16 * math.Pi)) // l=2, m=2  (x^2-y^2)

	k3a = 0.25 * math.Sqrt(35/(2*math.Pi)) // l=3, m=-3,3
	k3b = 0.5 * math.Sqrt(105/math.Pi)     // l=3, m=-2
	k3c = 0.25 * math.Sqrt(21/(2*math.Pi)) // l=3, m=-1,1
	k3d = 0.25 * math.Sqrt(7/math.Pi)      // l=3, m=0
	k3e = 0.25 * math.Sqrt(105/math.Pi)    // l=3, m=2

	k4a = 0.75 * math.Sqrt(35/math.Pi)      // l=4, m=-4
	k4b = 0.75 * math.Sqrt(35/(2*math.Pi))  // l=4, m=-3,3
	k4c = 0.75 * math.Sqrt(5/math.Pi)       // l=4, m=-2
	k4d = 0.75 * math.Sqrt(5/(2*math.Pi))   // l=4, m=-1,1
	k4e = (3.0 / 16.0) * math.Sqrt(1/math.Pi) // l=4, m=0
	k4f = (3.0 / 8.0) * math.Sqrt(5/math.Pi)  // l=4, m=2
	k4g = (3.0 / 16.0) * math.Sqrt(35/math.Pi) // l=4, m=4
)

// Index returns the flat coefficient index for band l (0..4) and order m
// (-l..l), following the standard l*l+l+m packing.
func Index(l, m int) int {
	return l*l + l + m
}

// Basis evaluates all 25 real SH basis functions at the unit direction n.
func Basis(n mgl64.Vec3) [NumCoeffs]float64 {
	x, y, z := n.X(), n.Y(), n.Z()
	x2, y2, z2 := x*x, y*y, z*z

	var b [NumCoeffs]float64

	// l=0
	b[Index(0, 0)] = k0

	// l=1
	b[Index(1, -1)] = k1 * y
	b[Index(1, 0)] = k1 * z
	b[Index(1, 1)] = k1 * x

	// l=2
	b[Index(2, -2)] = k2a * x * y
	b[Index(2, -1)] = k2a * y * z
	b[Index(2, 0)] = k2b * (3*z2 - 1)
	b[Index(2, 1)] = k2a * x * z
	b[Index(2, 2)] = k2c * (x2 - y2)

	// l=3
	b[Index(3, -3)] = k3a * y * (3*x2 - y2)
	b[Index(3, -2)] = k3b * x * y * z
	b[Index(3, -1)] = k3c * y * (5*z2 - 1)
	b[Index(3, 0)] = k3d * z * (5*z2 - 3)
	b[Index(3, 1)] = k3c * x * (5*z2 - 1)
	b[Index(3, 2)] = k3e * z * (x2 - y2)
	b[Index(3, 3)] = k3a * x * (x2 - 3*y2)

	// l=4
	b[Index(4, -4)] = k4a * x * y * (x2 - y2)
	b[Index(4, -3)] = k4b * y * z * (3*x2 - y2)
	b[Index(4, -2)] = k4c * x * y * (7*z2 - 1)
	b[Index(4, -1)] = k4d * y * z * (7*z2 - 3)
	b[Index(4, 0)] = k4e * (35*z2*z2 - 30*z2 + 3)
	b[Index(4, 1)] = k4d * x * z * (7*z2 - 3)
	b[Index(4, 2)] = k4f * (x2 - y2) * (7*z2 - 1)
	b[Index(4, 3)] = k4b * x * z * (x2 - 3*y2)
	b[Index(4, 4)] = k4g * (x2*(x2-3*y2) - y2*(3*x2-y2))

	return b
}

// lambertianA is the Lambertian (cosine-hemisphere) convolution factor per
// band, indexed by l (Ramamoorthi & Hanrahan).
var lambertianA = [5]float64{1.0, 2.0 / 3.0, 1.0 / 4.0, 0.0, -1.0 / 24.0}

func bandOf(coeffIndex int) int {
	switch {
	case coeffIndex < 1:
		return 0
	case coeffIndex < 4:
		return 1
	case coeffIndex < 9:
		return 2
	case coeffIndex < 16:
		return 3
	default:
		return 4
	}
}
