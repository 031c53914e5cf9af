package filter

import (
	"fmt"

	"github.com/leterax/irrcross/pkg/cubemap"
)

// minFaceSize is the smallest face size the filtering core accepts; below
// this the warp-fixup cubic and the solid-angle quadrature lose meaning.
const minFaceSize = 2

// validate checks the driver-boundary argument contract shared by all
// three backends and constructs the source/destination Envmap views.
func validate(src, dst []byte, w, h, channels int) (srcMap, dstMap *cubemap.Envmap, faceSize int, err error) {
	if channels != 3 && channels != 4 {
		return nil, nil, 0, fmt.Errorf("filter: %w: channels must be 3 or 4, got %d", ErrInvalidDimensions, channels)
	}
	layout := cubemap.DetectType(w, h)
	if layout != cubemap.HCross {
		return nil, nil, 0, fmt.Errorf("filter: %w: detected layout %v, only hcross is supported", ErrUnsupportedLayout, layout)
	}

	srcMap, err = cubemap.New(cubemap.HCross, w, h, channels, src)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("filter: invalid source: %w", err)
	}
	dstMap, err = cubemap.New(cubemap.HCross, w, h, channels, dst)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("filter: invalid destination: %w", err)
	}

	faceSize = srcMap.FaceSize()
	if faceSize < minFaceSize {
		return nil, nil, 0, fmt.Errorf("filter: %w: face size %d below minimum %d", ErrInvalidDimensions, faceSize, minFaceSize)
	}
	return srcMap, dstMap, faceSize, nil
}

// ProgressFunc is invoked by a backend as work completes. It runs on the
// worker goroutine driving the filter and must not retain references to
// any argument past return; it is fire-and-forget, the core never
// observes its result.
type ProgressFunc func()

func tick(progress ProgressFunc) {
	if progress != nil {
		progress()
	}
}
