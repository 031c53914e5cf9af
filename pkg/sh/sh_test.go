package sh

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/leterax/irrcross/pkg/cubemap"
	"github.com/leterax/irrcross/pkg/nsa"
)

func TestBasisOrthonormality(t *testing.T) {
	const faceSize = 64
	tbl := nsa.Build(faceSize)

	var gram [NumCoeffs][NumCoeffs]float64
	for _, e := range tbl.Entries {
		b := Basis(mgl64.Vec3{e.Nx, e.Ny, e.Nz})
		for i := 0; i < NumCoeffs; i++ {
			for j := 0; j < NumCoeffs; j++ {
				gram[i][j] += b[i] * b[j] * e.SolidAngle
			}
		}
	}

	maxOffDiag := 0.0
	for i := 0; i < NumCoeffs; i++ {
		for j := 0; j < NumCoeffs; j++ {
			if i == j {
				continue
			}
			if d := math.Abs(gram[i][j]); d > maxOffDiag {
				maxOffDiag = d
			}
		}
	}
	if maxOffDiag >= 5e-3 {
		t.Errorf("max off-diagonal Gram entry = %v, want < 5e-3", maxOffDiag)
	}
}

func whiteEnvmap(faceSize int) *cubemap.Envmap {
	w, h := 4*faceSize, 3*faceSize
	px := make([]byte, w*h*3)
	for i := range px {
		px[i] = 255
	}
	em, err := cubemap.New(cubemap.HCross, w, h, 3, px)
	if err != nil {
		panic(err)
	}
	return em
}

func TestProjectConstantWhite(t *testing.T) {
	const faceSize = 16
	tbl := nsa.Build(faceSize)
	em := whiteEnvmap(faceSize)

	c, err := Project(tbl, em)
	if err != nil {
		t.Fatal(err)
	}

	want := 2 * math.Sqrt(math.Pi)
	for ch := 0; ch < 3; ch++ {
		if math.Abs(c[0][ch]-want) > 1e-3 {
			t.Errorf("c0[%d] = %v, want %v", ch, c[0][ch], want)
		}
	}
	for k := 1; k < NumCoeffs; k++ {
		for ch := 0; ch < 3; ch++ {
			if math.Abs(c[k][ch]) > 1e-3 {
				t.Errorf("c%d[%d] = %v, want ~0", k, ch, c[k][ch])
			}
		}
	}
}

func TestReconstructConstantWhiteIsUniform(t *testing.T) {
	const faceSize = 16
	tbl := nsa.Build(faceSize)
	em := whiteEnvmap(faceSize)

	c, err := Project(tbl, em)
	if err != nil {
		t.Fatal(err)
	}

	dirs := []mgl64.Vec3{
		{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1},
		mgl64.Vec3{1, 1, 1}.Normalize(),
	}
	for _, d := range dirs {
		r, g, b := Reconstruct(c, d)
		if math.Abs(r-1) > 0.05 || math.Abs(g-1) > 0.05 || math.Abs(b-1) > 0.05 {
			t.Errorf("Reconstruct(%v) = (%v,%v,%v), want ~(1,1,1)", d, r, g, b)
		}
	}
}
