package filter

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/leterax/irrcross/pkg/cubemap"
)

func hcrossBuffer(faceSize int) (w, h int, buf []byte) {
	w, h = 4*faceSize, 3*faceSize
	return w, h, make([]byte, w*h*3)
}

func fillConstant(buf []byte, v byte) {
	for i := range buf {
		buf[i] = v
	}
}

func setFace(w, h, faceSize, channels int, buf []byte, face cubemap.Face, r, g, b byte) {
	em, _ := cubemap.New(cubemap.HCross, w, h, channels, buf)
	for y := 0; y < faceSize; y++ {
		for x := 0; x < faceSize; x++ {
			em.SetPixel(x, y, face, float64(r)/255, float64(g)/255, float64(b)/255)
		}
	}
}

// S1: constant input reproduces itself byte-for-byte on every face texel
// through both backends. The unused corners of the cross are not written
// by the filters, so only face texels are compared.
func TestS1ConstantReproduced(t *testing.T) {
	const faceSize = 2
	w, h, src := hcrossBuffer(faceSize)
	fillConstant(src, 128)
	srcMap, _ := cubemap.New(cubemap.HCross, w, h, 3, src)

	for _, backend := range []struct {
		name string
		run  func(src, dst []byte, w, h, c int, p ProgressFunc) error
	}{
		{"direct", Direct},
		{"sh", SH},
	} {
		dst := make([]byte, len(src))
		if err := backend.run(src, dst, w, h, 3, nil); err != nil {
			t.Fatalf("%s: %v", backend.name, err)
		}
		for face := cubemap.Face(0); face < cubemap.NumFaces; face++ {
			for y := 0; y < faceSize; y++ {
				for x := 0; x < faceSize; x++ {
					off, _ := srcMap.PixelOffset(x, y, face)
					for i := off; i < off+3; i++ {
						if dst[i] != src[i] {
							t.Fatalf("%s: face %v texel (%d,%d) byte %d = %d, want %d", backend.name, face, x, y, i, dst[i], src[i])
						}
					}
				}
			}
		}
	}
}

// S2: a single lit face should dominate its own output center and leave
// the opposite face dark.
func TestS2SingleLitFace(t *testing.T) {
	const faceSize = 4
	w, h, src := hcrossBuffer(faceSize)
	setFace(w, h, faceSize, 3, src, cubemap.PosZ, 255, 255, 255)

	for _, run := range []func(src, dst []byte, w, h, c int, p ProgressFunc) error{Direct, SH} {
		dst := make([]byte, len(src))
		if err := run(src, dst, w, h, 3, nil); err != nil {
			t.Fatal(err)
		}
		em, _ := cubemap.New(cubemap.HCross, w, h, 3, dst)
		cx, cy := faceSize/2, faceSize/2
		r, g, b, _ := em.GetPixel(cx, cy, cubemap.PosZ)
		if r*255 <= 100 || g*255 <= 100 || b*255 <= 100 {
			t.Errorf("+Z center = (%v,%v,%v), want > (100,100,100)/255", r*255, g*255, b*255)
		}
		r, g, b, _ = em.GetPixel(cx, cy, cubemap.NegZ)
		if r*255 >= 30 || g*255 >= 30 || b*255 >= 30 {
			t.Errorf("-Z center = (%v,%v,%v), want < (30,30,30)/255", r*255, g*255, b*255)
		}
	}
}

// S3: a bright red texel on +X should leave the SH output reddest at +X
// and decay monotonically with angular distance.
func TestS3RedDecay(t *testing.T) {
	const faceSize = 8
	w, h, src := hcrossBuffer(faceSize)
	em, _ := cubemap.New(cubemap.HCross, w, h, 3, src)
	c := faceSize / 2
	em.SetPixel(c, c, cubemap.PosX, 1, 0, 0)

	dst := make([]byte, len(src))
	if err := SH(src, dst, w, h, 3, nil); err != nil {
		t.Fatal(err)
	}
	dstMap, _ := cubemap.New(cubemap.HCross, w, h, 3, dst)
	r0, g0, b0, _ := dstMap.GetPixel(c, c, cubemap.PosX)
	if !(r0 > g0 && r0 > b0) {
		t.Fatalf("+X center = (%v,%v,%v), want R dominant", r0, g0, b0)
	}

	prevR := math.Inf(1)
	for i := 0; i < 16; i++ {
		theta := float64(i) / 15 * (math.Pi / 2)
		d := mgl64.Vec3{math.Cos(theta), math.Sin(theta), 0}
		r, _, _, err := dstMap.Sample(d)
		if err != nil {
			continue
		}
		if r > prevR+1e-9 {
			t.Errorf("sample %d: red=%v increased past previous %v", i, r, prevR)
		}
		prevR = r
	}
}

// S4: faces colored by index should diffuse but stay reasonably close to
// their own mean.
func TestS4FaceIndexColoring(t *testing.T) {
	const faceSize = 16
	w, h, src := hcrossBuffer(faceSize)
	for f := cubemap.Face(0); f < cubemap.NumFaces; f++ {
		v := byte(40 + 40*int(f))
		setFace(w, h, faceSize, 3, src, f, v, v, v)
	}

	for _, run := range []func(src, dst []byte, w, h, c int, p ProgressFunc) error{Direct, SH} {
		dst := make([]byte, len(src))
		if err := run(src, dst, w, h, 3, nil); err != nil {
			t.Fatal(err)
		}
		srcMap, _ := cubemap.New(cubemap.HCross, w, h, 3, src)
		dstMap, _ := cubemap.New(cubemap.HCross, w, h, 3, dst)
		for f := cubemap.Face(0); f < cubemap.NumFaces; f++ {
			srcMean := faceMean(srcMap, f, faceSize)
			dstMean := faceMean(dstMap, f, faceSize)
			if math.Abs(srcMean-dstMean) >= 25 {
				t.Errorf("face %v: |srcMean-dstMean| = %v, want < 25", f, math.Abs(srcMean-dstMean))
			}
		}
	}
}

func faceMean(em *cubemap.Envmap, face cubemap.Face, faceSize int) float64 {
	sum := 0.0
	n := 0
	for y := 0; y < faceSize; y++ {
		for x := 0; x < faceSize; x++ {
			r, g, b, _ := em.GetPixel(x, y, face)
			sum += (r + g + b) / 3 * 255
			n++
		}
	}
	return sum / float64(n)
}

// S6: driver rejection on a too-small face size.
func TestS6RejectsTooSmallFace(t *testing.T) {
	src := make([]byte, 4*3*3)
	dst := make([]byte, 4*3*3)
	if err := SH(src, dst, 4, 3, 3, nil); err == nil {
		t.Fatal("expected error for F=1")
	}
}

func TestProgressCountDirectAndSH(t *testing.T) {
	const faceSize = 4
	w, h, src := hcrossBuffer(faceSize)
	fillConstant(src, 50)
	want := cubemap.NumFaces * faceSize * faceSize

	for _, run := range []func(src, dst []byte, w, h, c int, p ProgressFunc) error{Direct, SH} {
		dst := make([]byte, len(src))
		count := 0
		if err := run(src, dst, w, h, 3, func() { count++ }); err != nil {
			t.Fatal(err)
		}
		if count != want {
			t.Errorf("progress called %d times, want %d", count, want)
		}
	}
}

func TestProgressCountGPU(t *testing.T) {
	const faceSize = 4
	w, h, src := hcrossBuffer(faceSize)
	fillConstant(src, 50)
	dst := make([]byte, len(src))

	count := 0
	if err := GPU(src, dst, w, h, 3, func() { count++ }, nil); err != nil {
		t.Fatal(err)
	}
	if count != cubemap.NumFaces {
		t.Errorf("progress called %d times, want %d", count, cubemap.NumFaces)
	}
}

func TestGPUMatchesSHOnConstant(t *testing.T) {
	const faceSize = 4
	w, h, src := hcrossBuffer(faceSize)
	fillConstant(src, 200)

	dstSH := make([]byte, len(src))
	dstGPU := make([]byte, len(src))
	if err := SH(src, dstSH, w, h, 3, nil); err != nil {
		t.Fatal(err)
	}
	if err := GPU(src, dstGPU, w, h, 3, nil, nil); err != nil {
		t.Fatal(err)
	}
	for i := range dstSH {
		if dstSH[i] != dstGPU[i] {
			t.Fatalf("byte %d: sh=%d gpu=%d", i, dstSH[i], dstGPU[i])
		}
	}
}

func TestParallelMatchesSerial(t *testing.T) {
	const faceSize = 6
	w, h, src := hcrossBuffer(faceSize)
	for f := cubemap.Face(0); f < cubemap.NumFaces; f++ {
		setFace(w, h, faceSize, 3, src, f, byte(20*int(f)+10), byte(10*int(f)+5), byte(30*int(f)+1))
	}

	dstSerial := make([]byte, len(src))
	dstParallel := make([]byte, len(src))
	if err := SH(src, dstSerial, w, h, 3, nil); err != nil {
		t.Fatal(err)
	}
	if err := SHParallel(src, dstParallel, w, h, 3, nil); err != nil {
		t.Fatal(err)
	}
	for i := range dstSerial {
		d := int(dstSerial[i]) - int(dstParallel[i])
		if d < -1 || d > 1 {
			t.Fatalf("byte %d: serial=%d parallel=%d", i, dstSerial[i], dstParallel[i])
		}
	}
}
