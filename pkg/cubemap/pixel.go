package cubemap

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// offsetFunc computes the byte offset of texel (x, y) on the given face
// inside a packed image of the given face size and channel count. It is
// the per-layout addressing primitive; layouts the core does not address
// (LatLong, VCross, Unknown) have no entry in offsetTable and route
// through ErrNotImplemented instead of a heap-allocated trait object.
type offsetFunc func(x, y int, face Face, faceSize, channels int) int

// offsetTable dispatches pixel addressing by layout, avoiding a switch (or
// an interface allocation) inside the per-texel hot loops of the SH and
// direct filters.
var offsetTable = map[Layout]offsetFunc{
	HCross: hCrossOffset,
	VStrip: vStripOffset,
}

func hCrossOffset(x, y int, face Face, faceSize, channels int) int {
	off := hCrossFaceOffset[face]
	stride := 4 * faceSize * channels
	return (off.Row*faceSize+y)*stride + (off.Col*faceSize+x)*channels
}

func vStripOffset(x, y int, face Face, faceSize, channels int) int {
	return (int(face)*faceSize+y)*faceSize*channels + x*channels
}

// PixelOffset returns the byte offset of texel (x, y) on face within em's
// pixel buffer, or ErrNotImplemented if em's layout has no addressing
// support.
func (e *Envmap) PixelOffset(x, y int, face Face) (int, error) {
	fn, ok := offsetTable[e.Layout]
	if !ok {
		return 0, fmt.Errorf("cubemap: PixelOffset: %w for layout %v", ErrNotImplemented, e.Layout)
	}
	return fn(x, y, face, e.FaceSize(), e.Channels), nil
}

// GetPixel reads texel (x, y) on face, normalized to [0, 1] per channel.
func (e *Envmap) GetPixel(x, y int, face Face) (r, g, b float64, err error) {
	off, err := e.PixelOffset(x, y, face)
	if err != nil {
		return 0, 0, 0, err
	}
	r = float64(e.Pixels[off+0]) / 255.0
	g = float64(e.Pixels[off+1]) / 255.0
	b = float64(e.Pixels[off+2]) / 255.0
	return
}

// SetPixel writes texel (x, y) on face. r, g, b are expected in [0, 1];
// they are clamped before being truncated to bytes, matching the
// normalized-float contract used by both filter backends.
func (e *Envmap) SetPixel(x, y int, face Face, r, g, b float64) error {
	off, err := e.PixelOffset(x, y, face)
	if err != nil {
		return err
	}
	e.Pixels[off+0] = clampToByte(r)
	e.Pixels[off+1] = clampToByte(g)
	e.Pixels[off+2] = clampToByte(b)
	return nil
}

func clampToByte(v float64) byte {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return byte(v * 255.0)
}

// Sample performs a nearest-neighbor lookup of the envmap along direction
// d, returning normalized [0, 1] channel values.
func (e *Envmap) Sample(d mgl64.Vec3) (r, g, b float64, err error) {
	face, u, v := DirToUV(d)
	faceSize := e.FaceSize()
	x := int(math.Floor(u * float64(faceSize-1)))
	y := int(math.Floor(v * float64(faceSize-1)))
	x = clampInt(x, 0, faceSize-1)
	y = clampInt(y, 0, faceSize-1)
	return e.GetPixel(x, y, face)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
