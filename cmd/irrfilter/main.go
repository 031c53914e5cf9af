// Command irrfilter converts a horizontal-cross cube-map PNG into its
// diffuse-irradiance filtered counterpart. Image decoding/encoding lives
// here, not in the filtering core, per the core's scope boundary: the
// core only ever sees raw byte buffers.
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"time"

	"github.com/leterax/irrcross/pkg/config"
	"github.com/leterax/irrcross/pkg/cubemap"
	"github.com/leterax/irrcross/pkg/filter"
	"github.com/leterax/irrcross/pkg/gpuexec"
)

const channels = 3

func main() {
	opts, err := config.Parse(os.Args[1:])
	if err != nil {
		log.Fatalf("irrfilter: %v", err)
	}

	w, h, src, err := loadHCross(opts.InputPath)
	if err != nil {
		log.Fatalf("irrfilter: load %s: %v", opts.InputPath, err)
	}
	dst := make([]byte, len(src))

	faceSize := w / 4
	total := cubemap.NumFaces * faceSize * faceSize
	if opts.Backend == config.BackendGPU {
		total = cubemap.NumFaces
	}

	count := 0
	start := time.Now()
	progress := func() {
		count++
		if opts.Quiet {
			return
		}
		if count%64 == 0 || count == total {
			fmt.Printf("\rirrfilter: %d/%d texels", count, total)
		}
	}

	if err := run(opts, src, dst, w, h, progress); err != nil {
		log.Fatalf("irrfilter: %v", err)
	}
	if !opts.Quiet {
		fmt.Printf("\nirrfilter: done in %s\n", time.Since(start))
	}

	if err := saveHCross(opts.OutputPath, w, h, dst); err != nil {
		log.Fatalf("irrfilter: save %s: %v", opts.OutputPath, err)
	}
}

func run(opts *config.Options, src, dst []byte, w, h int, progress filter.ProgressFunc) error {
	switch opts.Backend {
	case config.BackendDirect:
		if opts.Parallel {
			return filter.DirectParallel(src, dst, w, h, channels, progress)
		}
		return filter.Direct(src, dst, w, h, channels, progress)
	case config.BackendSH:
		if opts.Parallel {
			return filter.SHParallel(src, dst, w, h, channels, progress)
		}
		return filter.SH(src, dst, w, h, channels, progress)
	case config.BackendGPU:
		return filter.GPU(src, dst, w, h, channels, progress, gpuexec.NewReferenceExecutor())
	default:
		return fmt.Errorf("irrfilter: unhandled backend %q", opts.Backend)
	}
}

// loadHCross decodes a PNG file into a tightly packed RGB byte buffer.
func loadHCross(path string) (w, h int, buf []byte, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("decode png: %w", err)
	}

	bounds := img.Bounds()
	w, h = bounds.Dx(), bounds.Dy()
	buf = make([]byte, w*h*channels)
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			buf[i+0] = byte(r >> 8)
			buf[i+1] = byte(g >> 8)
			buf[i+2] = byte(b >> 8)
			i += channels
		}
	}
	return w, h, buf, nil
}

// saveHCross encodes a tightly packed RGB byte buffer as a PNG.
func saveHCross(path string, w, h int, buf []byte) error {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	i := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: buf[i+0], G: buf[i+1], B: buf[i+2], A: 255})
			i += channels
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
