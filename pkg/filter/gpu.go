package filter

import (
	"context"
	"fmt"

	"github.com/leterax/irrcross/pkg/cubemap"
	"github.com/leterax/irrcross/pkg/gpuexec"
	"github.com/leterax/irrcross/pkg/nsa"
	"github.com/leterax/irrcross/pkg/sh"
)

// faceKernelSource is the (nominal) kernel source handed to the GPU
// executor. The reference executor ignores its contents and runs
// faceKernel in-process instead; a real OpenCL/CUDA executor would
// compile this against the target device.
const faceKernelSource = `
// per-face SH reconstruction kernel: writes Lambertian diffuse irradiance
// for every texel of one cube face from a precomputed 25x3 coefficient set.
`

// GPU runs the SH irradiance filter with the per-face reconstruction
// offloaded to exec. If exec is nil, the in-process reference executor is
// used. progress is invoked once per face (6 times total, coarser than
// the CPU backends) and may be nil.
func GPU(src, dst []byte, w, h, channels int, progress ProgressFunc, exec gpuexec.Executor) error {
	srcMap, dstMap, faceSize, err := validate(src, dst, w, h, channels)
	if err != nil {
		return err
	}
	if exec == nil {
		exec = gpuexec.NewReferenceExecutor()
	}

	ctx := context.Background()
	devices, err := exec.Enumerate(ctx)
	if err != nil {
		return fmt.Errorf("filter: gpu enumerate: %w", err)
	}
	if len(devices) == 0 {
		return fmt.Errorf("filter: gpu: %w", gpuexec.ErrNoDevice)
	}
	dev := devices[0]

	prog, err := exec.Build(ctx, dev, faceKernelSource)
	if err != nil {
		return fmt.Errorf("filter: gpu build: %w", err)
	}

	tbl := nsa.Build(faceSize)
	coeffs, err := sh.Project(tbl, srcMap)
	if err != nil {
		return err
	}

	for face := cubemap.Face(0); face < cubemap.NumFaces; face++ {
		args := gpuexec.KernelArgs{
			SrcIn:     srcMap.Pixels,
			DstOut:    dstMap.Pixels,
			FaceSize:  int32(faceSize),
			FaceIndex: int32(face),
			Run:       faceKernel(coeffs, dstMap, face, faceSize),
		}
		if err := exec.Run(ctx, prog, args); err != nil {
			return fmt.Errorf("filter: gpu run face %v: %w", face, err)
		}
		tick(progress)
	}
	return nil
}
