package filter

import (
	"math"

	"github.com/leterax/irrcross/pkg/cubemap"
	"github.com/leterax/irrcross/pkg/geom"
)

// sweepStep and sweepHalfRange define the 33x33 cosine-weighted hemisphere
// sweep each destination texel is convolved against.
const (
	sweepSteps     = 33
	sweepHalfRange = math.Pi / 2
	sweepStep      = math.Pi / 32
)

// Direct runs the direct angular (cosine-weighted hemisphere sweep)
// irradiance filter. src and dst must be horizontal-cross byte buffers of
// identical (w, h, channels); channels is 3 or 4 but only the first three
// are written. progress is invoked once per destination texel
// (6*F*F times total) and may be nil.
func Direct(src, dst []byte, w, h, channels int, progress ProgressFunc) error {
	srcMap, dstMap, faceSize, err := validate(src, dst, w, h, channels)
	if err != nil {
		return err
	}
	for face := cubemap.Face(0); face < cubemap.NumFaces; face++ {
		for y := 0; y < faceSize; y++ {
			for x := 0; x < faceSize; x++ {
				r, g, b := directTexel(srcMap, face, x, y, faceSize)
				if err := dstMap.SetPixel(x, y, face, r, g, b); err != nil {
					return err
				}
				tick(progress)
			}
		}
	}
	return nil
}

// directTexel computes the cosine-weighted hemisphere convolution result
// for a single destination texel.
func directTexel(src *cubemap.Envmap, face cubemap.Face, x, y, faceSize int) (r, g, b float64) {
	n := cubemap.TexelCenterDir(face, x, y, faceSize)
	theta, phi := geom.VecToSpherical(n)

	var totR, totG, totB, weight float64
	for i := 0; i < sweepSteps; i++ {
		k := -sweepHalfRange + float64(i)*sweepStep
		for j := 0; j < sweepSteps; j++ {
			l := -sweepHalfRange + float64(j)*sweepStep
			d := geom.SphericalToVec(theta+k, phi+l)
			c := math.Abs(n.Dot(d))

			sr, sg, sb, err := src.Sample(d)
			if err != nil {
				continue
			}
			totR += c * sr
			totG += c * sg
			totB += c * sb
			weight += c
		}
	}
	if weight == 0 {
		return 0, 0, 0
	}
	return totR / weight, totG / weight, totB / weight
}
