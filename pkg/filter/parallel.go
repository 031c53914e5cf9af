package filter

import (
	"math"
	"runtime"
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/leterax/irrcross/pkg/cubemap"
	"github.com/leterax/irrcross/pkg/nsa"
	"github.com/leterax/irrcross/pkg/sh"
)

// rowJob is one unit of work-stealing granularity: a single destination
// row of a single face.
type rowJob struct {
	face cubemap.Face
	y    int
}

// workerCount mirrors runtime.GOMAXPROCS the way a worker pool sized to
// available cores normally would; it is never less than 1.
func workerCount() int {
	if n := runtime.GOMAXPROCS(0); n > 1 {
		return n
	}
	return 1
}

// DirectParallel is the data-parallel variant of Direct: destination rows
// are distributed across a worker pool instead of walked in a single
// goroutine. Progress ticks are still delivered once per destination
// texel, but may arrive out of raster order.
func DirectParallel(src, dst []byte, w, h, channels int, progress ProgressFunc) error {
	srcMap, dstMap, faceSize, err := validate(src, dst, w, h, channels)
	if err != nil {
		return err
	}

	var progressMu sync.Mutex
	runRows(faceSize, func(job rowJob) {
		for x := 0; x < faceSize; x++ {
			r, g, b := directTexel(srcMap, job.face, x, job.y, faceSize)
			dstMap.SetPixel(x, job.y, job.face, r, g, b)
			if progress != nil {
				progressMu.Lock()
				progress()
				progressMu.Unlock()
			}
		}
	})
	return nil
}

// SHParallel is the data-parallel variant of SH. The forward projection
// accumulates per-worker partial coefficient sums that are merged once
// all rows have been visited, avoiding an atomic add on the 75 float64
// lanes of the coefficient vector per texel.
func SHParallel(src, dst []byte, w, h, channels int, progress ProgressFunc) error {
	srcMap, dstMap, faceSize, err := validate(src, dst, w, h, channels)
	if err != nil {
		return err
	}

	tbl := nsa.Build(faceSize)
	coeffs, err := projectParallel(tbl, srcMap, faceSize)
	if err != nil {
		return err
	}

	var progressMu sync.Mutex
	runRows(faceSize, func(job rowJob) {
		for x := 0; x < faceSize; x++ {
			n := cubemap.TexelCenterDir(job.face, x, job.y, faceSize)
			r, g, b := sh.Reconstruct(coeffs, n)
			dstMap.SetPixel(x, job.y, job.face, clamp01(r), clamp01(g), clamp01(b))
			if progress != nil {
				progressMu.Lock()
				progress()
				progressMu.Unlock()
			}
		}
	})
	return nil
}

// projectParallel is the data-parallel SH forward projection: each worker
// accumulates a private Coeffs + solid-angle sum over the whole faces it
// is handed, and the partials are merged after all workers finish.
func projectParallel(tbl *nsa.Table, src *cubemap.Envmap, faceSize int) (sh.Coeffs, error) {
	n := workerCount()
	partials := make([]sh.Coeffs, n)
	sums := make([]float64, n)

	var wg sync.WaitGroup
	jobs := make(chan int, n)
	errCh := make(chan error, 1)

	wg.Add(n)
	for w := 0; w < n; w++ {
		go func(worker int) {
			defer wg.Done()
			for face := range jobs {
				for y := 0; y < faceSize; y++ {
					for x := 0; x < faceSize; x++ {
						idx := nsa.Index(cubemap.Face(face), x, y, faceSize)
						e := tbl.Entries[idx]
						r, g, b, err := src.GetPixel(x, y, cubemap.Face(face))
						if err != nil {
							select {
							case errCh <- err:
							default:
							}
							return
						}
						basis := sh.Basis(mgl64.Vec3{e.Nx, e.Ny, e.Nz})
						for k := 0; k < sh.NumCoeffs; k++ {
							wgt := basis[k] * e.SolidAngle
							partials[worker][k][0] += r * wgt
							partials[worker][k][1] += g * wgt
							partials[worker][k][2] += b * wgt
						}
						sums[worker] += e.SolidAngle
					}
				}
			}
		}(w)
	}
	for face := 0; face < cubemap.NumFaces; face++ {
		jobs <- face
	}
	close(jobs)
	wg.Wait()

	select {
	case err := <-errCh:
		return sh.Coeffs{}, err
	default:
	}

	var merged sh.Coeffs
	var sumOmega float64
	for w := 0; w < n; w++ {
		sumOmega += sums[w]
		for k := 0; k < sh.NumCoeffs; k++ {
			merged[k][0] += partials[w][k][0]
			merged[k][1] += partials[w][k][1]
			merged[k][2] += partials[w][k][2]
		}
	}
	scale := (4 * math.Pi) / sumOmega
	for k := 0; k < sh.NumCoeffs; k++ {
		merged[k][0] *= scale
		merged[k][1] *= scale
		merged[k][2] *= scale
	}
	return merged, nil
}

// runRows fans a per-face-row job out across a worker pool and blocks
// until every row has been processed.
func runRows(faceSize int, handle func(rowJob)) {
	jobs := make(chan rowJob, cubemap.NumFaces*faceSize)
	for face := cubemap.Face(0); face < cubemap.NumFaces; face++ {
		for y := 0; y < faceSize; y++ {
			jobs <- rowJob{face: face, y: y}
		}
	}
	close(jobs)

	var wg sync.WaitGroup
	n := workerCount()
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			for job := range jobs {
				handle(job)
			}
		}()
	}
	wg.Wait()
}
