// Package preview implements the worker/preview handoff: the context a
// detached filter worker and a live preview consumer share to coordinate
// without the worker ever blocking on a CPU backend, and with exactly the
// rendezvous discipline a GPU backend needs to avoid tearing the
// destination buffer it reuses between faces.
//
// A background goroutine produces results, a mutex-guarded boolean tells
// the consumer when to pick them up, and Wait tears the goroutine down.
// The GPU path adds a single rendezvous channel on top of that, since its
// worker cannot safely advance to the next face until the consumer has
// finished reading the current one.
package preview

import (
	"sync"

	"github.com/leterax/irrcross/pkg/cubemap"
	"github.com/leterax/irrcross/pkg/filter"
)

// Context is shared between a filter worker and a preview consumer for
// the duration of one filter pass.
type Context struct {
	out *cubemap.Envmap

	dirtyMu sync.Mutex
	dirty   bool

	// uploaded is the one-shot rendezvous signal the GPU backend waits on
	// after each face. It is unused by CPU backends, which never block.
	uploaded chan struct{}
}

// NewContext creates a preview context over out. dirty starts true so the
// consumer performs an initial clear/upload even before the worker
// produces its first tick.
func NewContext(out *cubemap.Envmap) *Context {
	return &Context{out: out, dirty: true, uploaded: make(chan struct{})}
}

// Out returns the destination envmap the worker writes into and the
// consumer reads from.
func (c *Context) Out() *cubemap.Envmap {
	return c.out
}

func (c *Context) markDirty() {
	c.dirtyMu.Lock()
	c.dirty = true
	c.dirtyMu.Unlock()
}

// ConsumeDirty is called by the preview consumer once per render frame.
// It reports whether the output has changed since the last call and
// clears the flag as a side effect.
func (c *Context) ConsumeDirty() bool {
	c.dirtyMu.Lock()
	defer c.dirtyMu.Unlock()
	if !c.dirty {
		return false
	}
	c.dirty = false
	return true
}

// SignalUploaded releases a worker that is blocked after a GPU-backend
// face tick. The consumer calls this once it has finished reading
// ctx.Out() for the current face. It must not be called when driving a
// CPU backend: the send is unbuffered and blocks the caller until a
// worker receives it, and CPU backends never wait on it.
func (c *Context) SignalUploaded() {
	c.uploaded <- struct{}{}
}

func (c *Context) waitForUpload() {
	<-c.uploaded
}

// Worker runs a filter pass on a detached goroutine.
type Worker struct {
	ctx  *Context
	done chan struct{}
	err  error
}

// RunCPU launches run (Direct or SH) on a worker goroutine. Each progress
// tick marks the context dirty and returns immediately; the worker never
// waits on the preview consumer.
func RunCPU(ctx *Context, run func(progress filter.ProgressFunc) error) *Worker {
	w := &Worker{ctx: ctx, done: make(chan struct{})}
	go func() {
		defer close(w.done)
		w.err = run(func() {
			ctx.markDirty()
		})
	}()
	return w
}

// RunGPU launches run (GPU) on a worker goroutine. Each progress tick
// (once per face) marks the context dirty and then blocks until the
// consumer calls SignalUploaded, since the GPU backend reuses the
// destination buffer between faces and must not overwrite it while the
// consumer is still reading it.
func RunGPU(ctx *Context, run func(progress filter.ProgressFunc) error) *Worker {
	w := &Worker{ctx: ctx, done: make(chan struct{})}
	go func() {
		defer close(w.done)
		w.err = run(func() {
			ctx.markDirty()
			ctx.waitForUpload()
		})
	}()
	return w
}

// Wait blocks until the filter pass completes and returns its error, if
// any. It is safe to call at most once.
func (w *Worker) Wait() error {
	<-w.done
	return w.err
}

// Terminate is a process-scoped flag a preview consumer can raise to ask
// a worker to stop. The filter driver is not required to poll it — the
// worker is detached and runs to completion on its own; process exit
// tears it down regardless. It exists so a host application has somewhere
// to record the request.
type Terminate struct {
	mu      sync.Mutex
	flagged bool
}

// Set raises the termination request.
func (t *Terminate) Set() {
	t.mu.Lock()
	t.flagged = true
	t.mu.Unlock()
}

// Requested reports whether Set has been called.
func (t *Terminate) Requested() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.flagged
}
