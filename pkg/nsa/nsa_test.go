package nsa

import (
	"math"
	"testing"

	"github.com/leterax/irrcross/pkg/cubemap"
)

func TestBuildTableSize(t *testing.T) {
	const faceSize = 6
	tbl := Build(faceSize)
	want := cubemap.NumFaces * faceSize * faceSize
	if len(tbl.Entries) != want {
		t.Fatalf("len(Entries) = %d, want %d", len(tbl.Entries), want)
	}
}

func TestBuildSolidAngleClosure(t *testing.T) {
	for _, faceSize := range []int{2, 4, 8} {
		tbl := Build(faceSize)
		sum := 0.0
		for _, e := range tbl.Entries {
			sum += e.SolidAngle
		}
		if math.Abs(sum-4*math.Pi) > 1e-3 {
			t.Errorf("F=%d: sum(Omega) = %v, want %v", faceSize, sum, 4*math.Pi)
		}
	}
}

func TestIndexXYRoundTrip(t *testing.T) {
	const faceSize = 5
	for face := cubemap.Face(0); face < cubemap.NumFaces; face++ {
		for y := 0; y < faceSize; y++ {
			for x := 0; x < faceSize; x++ {
				idx := Index(face, x, y, faceSize)
				tbl := &Table{FaceSize: faceSize}
				if gotFace := tbl.Face(idx); gotFace != face {
					t.Fatalf("Face(%d) = %v, want %v", idx, gotFace, face)
				}
				gx, gy := tbl.XY(idx)
				if gx != x || gy != y {
					t.Fatalf("XY(%d) = (%d,%d), want (%d,%d)", idx, gx, gy, x, y)
				}
			}
		}
	}
}
