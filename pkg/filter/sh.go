package filter

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/leterax/irrcross/pkg/cubemap"
	"github.com/leterax/irrcross/pkg/nsa"
	"github.com/leterax/irrcross/pkg/sh"
)

// SH runs the spherical-harmonic irradiance filter: it projects src onto
// the real SH basis through band 4, then reconstructs Lambertian diffuse
// irradiance at every destination texel. src and dst must be
// horizontal-cross byte buffers of identical (w, h, channels). progress
// is invoked once per destination texel (6*F*F times total) and may be
// nil.
func SH(src, dst []byte, w, h, channels int, progress ProgressFunc) error {
	srcMap, dstMap, faceSize, err := validate(src, dst, w, h, channels)
	if err != nil {
		return err
	}

	tbl := nsa.Build(faceSize)
	coeffs, err := sh.Project(tbl, srcMap)
	if err != nil {
		return err
	}

	for i := range tbl.Entries {
		e := tbl.Entries[i]
		face := tbl.Face(i)
		x, y := tbl.XY(i)

		r, g, b := sh.Reconstruct(coeffs, mgl64.Vec3{e.Nx, e.Ny, e.Nz})
		r, g, b = clamp01(r), clamp01(g), clamp01(b)

		if err := dstMap.SetPixel(x, y, face, r, g, b); err != nil {
			return err
		}
		tick(progress)
	}
	return nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// faceKernel captures the per-texel SH reconstruction body for a single
// face, used by the GPU backend to dispatch one face at a time through a
// gpuexec.Executor.
func faceKernel(coeffs sh.Coeffs, dstMap *cubemap.Envmap, face cubemap.Face, faceSize int) func(x, y int) {
	return func(x, y int) {
		n := cubemap.TexelCenterDir(face, x, y, faceSize)
		r, g, b := sh.Reconstruct(coeffs, n)
		dstMap.SetPixel(x, y, face, clamp01(r), clamp01(g), clamp01(b))
	}
}
