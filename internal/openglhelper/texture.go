package openglhelper

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
)

// NumCubeFaces is the number of faces GL_TEXTURE_CUBE_MAP expects, in the
// PosX, NegX, PosY, NegY, PosZ, NegZ order its targets are numbered.
const NumCubeFaces = 6

var cubeFaceTarget = [NumCubeFaces]uint32{
	gl.TEXTURE_CUBE_MAP_POSITIVE_X,
	gl.TEXTURE_CUBE_MAP_NEGATIVE_X,
	gl.TEXTURE_CUBE_MAP_POSITIVE_Y,
	gl.TEXTURE_CUBE_MAP_NEGATIVE_Y,
	gl.TEXTURE_CUBE_MAP_POSITIVE_Z,
	gl.TEXTURE_CUBE_MAP_NEGATIVE_Z,
}

// CubeTexture wraps a GL_TEXTURE_CUBE_MAP. It knows nothing about how its
// six faces are packed or addressed in host memory; callers hand it
// tightly packed row-major RGB buffers, one per face, in PosX..NegZ
// order. This keeps the domain/GL boundary where the CLI's image codec
// boundary already draws it: packing and addressing stay in pkg/cubemap,
// GL upload stays here.
type CubeTexture struct {
	ID       uint32
	FaceSize int
}

// NewCubeTexture allocates a cube-map texture and uploads faces, one
// tightly packed FaceSize*FaceSize*3 RGB buffer per cube face.
func NewCubeTexture(faceSize int, faces [NumCubeFaces][]byte) (*CubeTexture, error) {
	var id uint32
	gl.GenTextures(1, &id)

	tex := &CubeTexture{ID: id, FaceSize: faceSize}
	if err := tex.Update(faces); err != nil {
		gl.DeleteTextures(1, &id)
		return nil, err
	}

	tex.Bind(0)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	tex.Unbind()

	return tex, nil
}

// Update re-uploads all six faces, e.g. after a filtering pass finishes
// writing its destination buffer.
func (t *CubeTexture) Update(faces [NumCubeFaces][]byte) error {
	t.Bind(0)
	defer t.Unbind()

	want := t.FaceSize * t.FaceSize * 3
	for f, buf := range faces {
		if len(buf) != want {
			return fmt.Errorf("openglhelper: CubeTexture.Update: face %d has %d bytes, want %d", f, len(buf), want)
		}
		gl.TexImage2D(cubeFaceTarget[f], 0, gl.RGB, int32(t.FaceSize), int32(t.FaceSize), 0, gl.RGB, gl.UNSIGNED_BYTE, unsafe.Pointer(&buf[0]))
	}
	return nil
}

// Bind binds the cube texture to the given texture unit.
func (t *CubeTexture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, t.ID)
}

// Unbind unbinds GL_TEXTURE_CUBE_MAP from the active unit.
func (t *CubeTexture) Unbind() {
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
}

// Delete releases the texture object.
func (t *CubeTexture) Delete() {
	gl.DeleteTextures(1, &t.ID)
}
