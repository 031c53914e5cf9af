// Package cubemap implements the bijection between cube-face texel
// coordinates and 3D directions, the horizontal-cross/vertical-strip
// layout arithmetic, and the Envmap value object that carries a borrowed
// pixel buffer through the filtering core.
package cubemap

import "fmt"

// Layout identifies how the six cube faces are packed into a single 2D
// image.
type Layout int

const (
	Unknown Layout = iota
	HCross
	VCross
	LatLong
	VStrip
)

func (l Layout) String() string {
	switch l {
	case HCross:
		return "hcross"
	case VCross:
		return "vcross"
	case LatLong:
		return "latlong"
	case VStrip:
		return "vstrip"
	default:
		return "unknown"
	}
}

// aspectTolerance is the tolerance used when comparing an image's aspect
// ratio against a layout's canonical ratio. Ratios with a larger
// denominator (1/6 for VStrip) need a tighter tolerance to avoid aliasing
// against neighboring integer face sizes.
const (
	aspectTolerance      = 1e-3
	aspectToleranceTight = 1e-4
)

// DetectType infers the cube-map layout from an image's pixel dimensions.
// It returns Unknown if no layout's canonical aspect ratio matches within
// tolerance.
func DetectType(width, height int) Layout {
	if width <= 0 || height <= 0 {
		return Unknown
	}
	ratio := float64(width) / float64(height)

	if closeEnough(ratio, 4.0/3.0, aspectTolerance) {
		return HCross
	}
	if closeEnough(ratio, 3.0/4.0, aspectTolerance) {
		return VCross
	}
	if closeEnough(ratio, 2.0, aspectTolerance) {
		return LatLong
	}
	if closeEnough(ratio, 1.0/6.0, aspectToleranceTight) {
		return VStrip
	}
	return Unknown
}

func closeEnough(a, b, tol float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tol
}

// Envmap is a borrowed view over a caller-owned pixel buffer, tagged with
// its packing layout and dimensions. Envmap itself never allocates; the
// caller is responsible for the lifetime of Pixels.
type Envmap struct {
	Layout   Layout
	Width    int
	Height   int
	Channels int
	Pixels   []byte
}

// New wraps an existing byte buffer as an Envmap, validating that its
// length is at least Width*Height*Channels and that the layout's
// dimension invariant holds.
func New(layout Layout, width, height, channels int, pixels []byte) (*Envmap, error) {
	if width <= 0 || height <= 0 || (channels != 3 && channels != 4) {
		return nil, fmt.Errorf("cubemap.New: %w (w=%d h=%d c=%d)", ErrInvalidDimensions, width, height, channels)
	}
	if len(pixels) < width*height*channels {
		return nil, fmt.Errorf("cubemap.New: %w (buffer too small: have %d need %d)", ErrInvalidDimensions, len(pixels), width*height*channels)
	}
	if err := checkLayoutInvariant(layout, width, height); err != nil {
		return nil, err
	}
	return &Envmap{Layout: layout, Width: width, Height: height, Channels: channels, Pixels: pixels}, nil
}

func checkLayoutInvariant(layout Layout, width, height int) error {
	switch layout {
	case HCross:
		if width%4 != 0 || height%3 != 0 || width/4 != height/3 {
			return fmt.Errorf("cubemap: %w: hcross requires width=4F, height=3F", ErrInvalidDimensions)
		}
	case VCross:
		if width%3 != 0 || height%4 != 0 || width/3 != height/4 {
			return fmt.Errorf("cubemap: %w: vcross requires width=3F, height=4F", ErrInvalidDimensions)
		}
	case VStrip:
		if height != 6*width {
			return fmt.Errorf("cubemap: %w: vstrip requires height=6*width", ErrInvalidDimensions)
		}
	case LatLong:
		if width != 2*height {
			return fmt.Errorf("cubemap: %w: latlong requires width=2*height", ErrInvalidDimensions)
		}
	case Unknown:
		// no invariant to check; caller asked for an untyped buffer.
	default:
		return fmt.Errorf("cubemap: %w: unrecognized layout %v", ErrUnsupportedLayout, layout)
	}
	return nil
}

// FaceSize returns the side length in texels of one cube face, or 0 if the
// layout has no notion of a square face (Unknown, LatLong).
func (e *Envmap) FaceSize() int {
	switch e.Layout {
	case HCross:
		return e.Width / 4
	case VCross:
		return e.Width / 3
	case VStrip:
		return e.Width
	default:
		return 0
	}
}
