package gpuexec

import (
	"context"
	"errors"
	"testing"
)

func TestReferenceExecutorRunsFullDomain(t *testing.T) {
	exec := NewReferenceExecutor()
	ctx := context.Background()

	devices, err := exec.Enumerate(ctx)
	if err != nil || len(devices) == 0 {
		t.Fatalf("Enumerate() = %v, %v", devices, err)
	}

	prog, err := exec.Build(ctx, devices[0], "kernel body")
	if err != nil {
		t.Fatal(err)
	}

	visited := 0
	args := KernelArgs{FaceSize: 4, Run: func(x, y int) { visited++ }}
	if err := exec.Run(ctx, prog, args); err != nil {
		t.Fatal(err)
	}
	if visited != 16 {
		t.Errorf("visited = %d, want 16", visited)
	}
}

func TestBuildRejectsEmptySource(t *testing.T) {
	exec := NewReferenceExecutor()
	_, err := exec.Build(context.Background(), Device{}, "")
	if !errors.Is(err, ErrKernelBuildFailed) {
		t.Fatalf("err = %v, want ErrKernelBuildFailed", err)
	}
}

func TestRunRejectsMissingKernelBody(t *testing.T) {
	exec := NewReferenceExecutor()
	prog, _ := exec.Build(context.Background(), Device{}, "body")
	err := exec.Run(context.Background(), prog, KernelArgs{FaceSize: 2})
	if !errors.Is(err, ErrDeviceOperationFailed) {
		t.Fatalf("err = %v, want ErrDeviceOperationFailed", err)
	}
}
