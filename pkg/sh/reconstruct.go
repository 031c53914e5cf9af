package sh

import "github.com/go-gl/mathgl/mgl64"

// Reconstruct evaluates the Lambertian-convolved diffuse irradiance at
// unit normal n from the projected coefficients c.
func Reconstruct(c Coeffs, n mgl64.Vec3) (r, g, b float64) {
	basis := Basis(n)
	for k := 0; k < NumCoeffs; k++ {
		a := lambertianA[bandOf(k)]
		w := a * basis[k]
		r += c[k][0] * w
		g += c[k][1] * w
		b += c[k][2] * w
	}
	return
}
