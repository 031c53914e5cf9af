// Command irrpreview drives a filter pass against a live GLFW window,
// showing each cube face update as the worker produces it. It is the
// reference consumer of the worker/preview handoff: it polls
// pkg/preview.Context once per frame and reuploads all six faces
// whenever the output has been marked dirty.
package main

import (
	"fmt"
	"image/png"
	"log"
	"os"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"openglhelper"
	"github.com/leterax/irrcross/pkg/config"
	"github.com/leterax/irrcross/pkg/cubemap"
	"github.com/leterax/irrcross/pkg/filter"
	"github.com/leterax/irrcross/pkg/gpuexec"
	"github.com/leterax/irrcross/pkg/preview"
)

const channels = 3

const vertexShaderSource = `#version 460 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aTexCoord;
out vec2 vTexCoord;
void main() {
	vTexCoord = aTexCoord;
	gl_Position = vec4(aPos, 0.0, 1.0);
}
` + "\x00"

// The fragment shader previews one cube face at a time, selected by the
// uFace uniform, mapping the quad's 2D texcoord to the corresponding
// direction on that face before sampling the cube texture.
const fragmentShaderSource = `#version 460 core
in vec2 vTexCoord;
out vec4 FragColor;
uniform samplerCube uEnvmap;
uniform int uFace;
void main() {
	vec2 uv = vTexCoord * 2.0 - 1.0;
	vec3 dir;
	if (uFace == 0) dir = vec3(1.0, -uv.y, -uv.x);
	else if (uFace == 1) dir = vec3(-1.0, -uv.y, uv.x);
	else if (uFace == 2) dir = vec3(uv.x, 1.0, uv.y);
	else if (uFace == 3) dir = vec3(uv.x, -1.0, -uv.y);
	else if (uFace == 4) dir = vec3(uv.x, -uv.y, 1.0);
	else dir = vec3(-uv.x, -uv.y, -1.0);
	FragColor = vec4(texture(uEnvmap, dir).rgb, 1.0);
}
` + "\x00"

func main() {
	opts, err := config.Parse(os.Args[1:])
	if err != nil {
		log.Fatalf("irrpreview: %v", err)
	}

	w, h, src, err := loadHCross(opts.InputPath)
	if err != nil {
		log.Fatalf("irrpreview: load %s: %v", opts.InputPath, err)
	}
	dst := make([]byte, len(src))

	faceSize := w / 4
	dstMap, err := cubemap.New(cubemap.HCross, w, h, channels, dst)
	if err != nil {
		log.Fatalf("irrpreview: %v", err)
	}

	window, err := openglhelper.NewWindow(faceSize, faceSize, "irrpreview", true)
	if err != nil {
		log.Fatalf("irrpreview: %v", err)
	}
	defer window.Close()

	shader, err := openglhelper.NewShader(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		log.Fatalf("irrpreview: %v", err)
	}
	defer shader.Delete()
	shader.Use()
	shader.SetInt("uEnvmap", 0)

	quad := openglhelper.NewQuad(shader)
	defer quad.Delete()

	tex, err := openglhelper.NewCubeTexture(faceSize, extractFaces(dstMap, faceSize))
	if err != nil {
		log.Fatalf("irrpreview: %v", err)
	}
	defer tex.Delete()

	ctx := preview.NewContext(dstMap)
	terminate := &preview.Terminate{}

	start := time.Now()

	var worker *preview.Worker
	switch opts.Backend {
	case config.BackendDirect:
		worker = preview.RunCPU(ctx, func(p filter.ProgressFunc) error {
			return filter.Direct(src, dst, w, h, channels, p)
		})
	case config.BackendSH:
		worker = preview.RunCPU(ctx, func(p filter.ProgressFunc) error {
			return filter.SH(src, dst, w, h, channels, p)
		})
	case config.BackendGPU:
		worker = preview.RunGPU(ctx, func(p filter.ProgressFunc) error {
			return filter.GPU(src, dst, w, h, channels, p, gpuexec.NewReferenceExecutor())
		})
	}

	currentFace := int32(cubemap.PosZ)
	tabWasDown := false

	for !window.ShouldClose() && !terminate.Requested() {
		window.PollEvents()

		if ctx.ConsumeDirty() {
			if err := tex.Update(extractFaces(dstMap, faceSize)); err != nil {
				log.Printf("irrpreview: texture update: %v", err)
			}
			if opts.Backend == config.BackendGPU {
				ctx.SignalUploaded()
			}
		}

		window.Clear(mgl32.Vec4{0.05, 0.05, 0.08, 1.0})
		shader.Use()
		shader.SetInt("uFace", currentFace)
		tex.Bind(0)
		quad.Draw()
		window.SwapBuffers()

		// Tab cycles through the six faces so the preview actually shows
		// off every uFace branch the fragment shader defines, not just
		// the one it starts on.
		tabDown := window.GetKeyState(glfw.KeyTab) == glfw.Press
		if tabDown && !tabWasDown {
			currentFace = (currentFace + 1) % cubemap.NumFaces
		}
		tabWasDown = tabDown

		if window.GetKeyState(glfw.KeyEscape) == glfw.Press {
			terminate.Set()
		}
	}

	if err := worker.Wait(); err != nil {
		log.Printf("irrpreview: filter pass: %v", err)
	}
	fmt.Printf("irrpreview: filter pass finished in %s\n", time.Since(start))
}

// extractFaces packs dstMap's six faces into tightly packed row-major RGB
// buffers in PosX..NegZ order, the layout CubeTexture.Update expects.
func extractFaces(em *cubemap.Envmap, faceSize int) [openglhelper.NumCubeFaces][]byte {
	var out [openglhelper.NumCubeFaces][]byte
	for f := 0; f < cubemap.NumFaces; f++ {
		buf := make([]byte, faceSize*faceSize*3)
		i := 0
		for y := 0; y < faceSize; y++ {
			for x := 0; x < faceSize; x++ {
				r, g, b, err := em.GetPixel(x, y, cubemap.Face(f))
				if err != nil {
					continue
				}
				buf[i+0] = byteClamp(r)
				buf[i+1] = byteClamp(g)
				buf[i+2] = byteClamp(b)
				i += 3
			}
		}
		out[f] = buf
	}
	return out
}

func byteClamp(v float64) byte {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return byte(v * 255.0)
}

// loadHCross decodes a PNG file into a tightly packed RGB byte buffer,
// the same routine cmd/irrfilter uses.
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
