package preview

import (
	"testing"
	"time"

	"github.com/leterax/irrcross/pkg/cubemap"
	"github.com/leterax/irrcross/pkg/filter"
)

func newTestEnvmap(t *testing.T, faceSize int) *cubemap.Envmap {
	t.Helper()
	w, h := 4*faceSize, 3*faceSize
	em, err := cubemap.New(cubemap.HCross, w, h, 3, make([]byte, w*h*3))
	if err != nil {
		t.Fatal(err)
	}
	return em
}

func TestContextStartsDirty(t *testing.T) {
	ctx := NewContext(newTestEnvmap(t, 2))
	if !ctx.ConsumeDirty() {
		t.Fatal("expected initial dirty flag to force a clear")
	}
	if ctx.ConsumeDirty() {
		t.Fatal("expected dirty flag to be cleared after consuming")
	}
}

func TestRunCPUDoesNotBlockOnConsumer(t *testing.T) {
	ctx := NewContext(newTestEnvmap(t, 2))

	w := RunCPU(ctx, func(progress filter.ProgressFunc) error {
		for i := 0; i < 10; i++ {
			progress()
		}
		return nil
	})

	select {
	case <-w.done:
	case <-time.After(2 * time.Second):
		t.Fatal("CPU worker should complete without a consumer ever polling")
	}
	if err := w.Wait(); err != nil {
		t.Fatal(err)
	}
}

func TestRunGPUWaitsForUpload(t *testing.T) {
	ctx := NewContext(newTestEnvmap(t, 2))
	ticked := make(chan struct{}, 1)

	// ticked is sent just before the tick, since the tick itself blocks
	// until the consumer signals the upload.
	w := RunGPU(ctx, func(progress filter.ProgressFunc) error {
		ticked <- struct{}{}
		progress()
		return nil
	})

	select {
	case <-ticked:
	case <-time.After(time.Second):
		t.Fatal("worker never ticked")
	}

	select {
	case <-w.done:
		t.Fatal("GPU worker completed before the consumer signaled upload")
	case <-time.After(50 * time.Millisecond):
	}

	ctx.SignalUploaded()
	if err := w.Wait(); err != nil {
		t.Fatal(err)
	}
}

func TestTerminateFlag(t *testing.T) {
	var term Terminate
	if term.Requested() {
		t.Fatal("expected initial state to be unset")
	}
	term.Set()
	if !term.Requested() {
		t.Fatal("expected Requested to report the set flag")
	}
}
