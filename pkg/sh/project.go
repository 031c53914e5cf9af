package sh

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/leterax/irrcross/pkg/cubemap"
	"github.com/leterax/irrcross/pkg/nsa"
)

// Coeffs is the 25-entry, 3-channel (r, g, b) SH coefficient vector
// produced by Project and consumed by Reconstruct.
type Coeffs [NumCoeffs][3]float64

// Project performs the forward SH projection of src's radiance onto the
// 25-function basis, using tbl's precomputed normals and solid angles.
// tbl must have been built for src's face size; src and the (conceptual)
// destination always share dimensions in this core.
func Project(tbl *nsa.Table, src *cubemap.Envmap) (Coeffs, error) {
	var c Coeffs
	sumOmega := 0.0

	for i := range tbl.Entries {
		e := tbl.Entries[i]
		face := tbl.Face(i)
		x, y := tbl.XY(i)

		r, g, b, err := src.GetPixel(x, y, face)
		if err != nil {
			return Coeffs{}, err
		}

		n := mgl64.Vec3{e.Nx, e.Ny, e.Nz}
		basis := Basis(n)

		for k := 0; k < NumCoeffs; k++ {
			w := basis[k] * e.SolidAngle
			c[k][0] += r * w
			c[k][1] += g * w
			c[k][2] += b * w
		}
		sumOmega += e.SolidAngle
	}

	// Rescale to correct for discretization error in the quadrature (the
	// ideal sum of solid angles over the whole sphere is exactly 4*pi).
	scale := 4 * math.Pi / sumOmega
	for k := 0; k < NumCoeffs; k++ {
		c[k][0] *= scale
		c[k][1] *= scale
		c[k][2] *= scale
	}
	return c, nil
}
