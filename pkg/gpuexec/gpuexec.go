// Package gpuexec defines the external GPU executor collaborator the
// filter driver offloads per-face kernels to. Device enumeration and
// kernel transport to a real accelerator (OpenCL, CUDA, ...) are left to
// whatever Executor a caller supplies; this package provides only the
// interface and an in-process reference implementation so the GPU
// backend is exercisable and testable without a real device.
package gpuexec

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// Sentinel errors surfaced by the GPU backend. InvalidDimensions,
// UnsupportedLayout, and NotImplemented are shared with pkg/cubemap.
var (
	ErrNoDevice              = errors.New("gpuexec: no compatible device found")
	ErrKernelBuildFailed     = errors.New("gpuexec: kernel build failed")
	ErrDeviceOperationFailed = errors.New("gpuexec: device operation failed")
)

// Device identifies a platform/device pair returned by Enumerate.
type Device struct {
	Platform string
	Name     string
}

// Program is an opaque handle to a kernel built for a specific Device.
type Program interface {
	Device() Device
}

// KernelArgs carries the per-dispatch arguments the driver hands to a
// kernel: the source and destination byte buffers, the scalar face size
// and face index, and an implicit F x F work domain.
type KernelArgs struct {
	SrcIn, DstOut []byte
	FaceSize      int32
	FaceIndex     int32
	// Run is the actual per-texel work the executor invokes across the
	// F x F domain. It is populated by the filter driver and is the
	// in-process stand-in for a compiled kernel body; a real executor
	// would instead carry compiled kernel bytes/source and dispatch
	// through the device's command queue.
	Run func(x, y int)
}

// Executor is the interface the filter driver offloads GPU work to.
type Executor interface {
	// Enumerate lists available platform/device pairs. An empty result
	// (with ErrNoDevice) means no GPU backend is usable; callers should
	// fall back to the CPU backends.
	Enumerate(ctx context.Context) ([]Device, error)

	// Build compiles kernelSource for dev.
	Build(ctx context.Context, dev Device, kernelSource string) (Program, error)

	// Run dispatches args.Run across the F x F work domain described by
	// args and blocks until the kernel completes.
	Run(ctx context.Context, prog Program, args KernelArgs) error
}

// referenceExecutor runs kernels in-process instead of on a real device.
// It exists so filter.GPU has something to drive in tests and
// in the reference CLI; a production deployment supplies its own Executor
// backed by an OpenCL or CUDA binding.
type referenceExecutor struct{}

type referenceProgram struct {
	dev    Device
	source string
}

func (p *referenceProgram) Device() Device { return p.dev }

// NewReferenceExecutor returns the in-process Executor used when no real
// GPU binding is configured.
func NewReferenceExecutor() Executor {
	return referenceExecutor{}
}

func (referenceExecutor) Enumerate(ctx context.Context) ([]Device, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return []Device{{Platform: "reference", Name: "in-process CPU kernel runner"}}, nil
}

func (referenceExecutor) Build(ctx context.Context, dev Device, kernelSource string) (Program, error) {
	if kernelSource == "" {
		log.Printf("gpuexec: empty kernel source for device %s/%s", dev.Platform, dev.Name)
		return nil, fmt.Errorf("%w: empty kernel source", ErrKernelBuildFailed)
	}
	return &referenceProgram{dev: dev, source: kernelSource}, nil
}

func (referenceExecutor) Run(ctx context.Context, prog Program, args KernelArgs) error {
	if args.Run == nil {
		return fmt.Errorf("%w: no kernel body bound", ErrDeviceOperationFailed)
	}
	n := int(args.FaceSize)
	for y := 0; y < n; y++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		for x := 0; x < n; x++ {
			args.Run(x, y)
		}
	}
	return nil
}
