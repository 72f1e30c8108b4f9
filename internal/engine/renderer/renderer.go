// Package renderer uploads the quad and issues per-frame draw calls.
package renderer

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/glquad/internal/engine/debug"
	"github.com/Faultbox/glquad/internal/logger"
)

// ErrEmptyFramebuffer is returned when reading back a framebuffer with no pixels,
// e.g. while the window is minimized.
var ErrEmptyFramebuffer = errors.New("framebuffer has zero size")

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Renderer owns the quad's GL buffers.
// IMPORTANT: all methods must be called on the thread that owns the GL context.
type Renderer struct {
	config Config
	check  *debug.Checker

	vao uint32
	vbo uint32
	ibo uint32
}

// New loads GL function pointers and sets the default state.
// Must be called AFTER the OpenGL context is current.
func New(cfg Config, check *debug.Checker) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.Bool("gl_checks", check.Enabled()),
	)

	r := &Renderer{config: cfg, check: check}
	err := check.Call("ClearColor", func() {
		gl.ClearColor(0, 0, 0, 1)
		gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// UploadQuad creates the vertex array, vertex buffer and index buffer for the quad.
// The vertex array stays bound; it is the only geometry drawn.
func (r *Renderer) UploadQuad() error {
	err := r.check.Call("GenVertexArrays", func() {
		gl.GenVertexArrays(1, &r.vao)
		gl.BindVertexArray(r.vao)
	})
	if err != nil {
		return err
	}

	err = r.check.Call("BufferData(ARRAY_BUFFER)", func() {
		gl.GenBuffers(1, &r.vbo)
		gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
		gl.BufferData(gl.ARRAY_BUFFER, len(QuadVertices)*floatSize, unsafe.Pointer(&QuadVertices[0]), gl.STATIC_DRAW)

		// Position attribute (location = 0): vec2
		gl.EnableVertexAttribArray(0)
		gl.VertexAttribPointer(0, quadComponents, gl.FLOAT, false, quadComponents*floatSize, nil)
	})
	if err != nil {
		return err
	}

	err = r.check.Call("BufferData(ELEMENT_ARRAY_BUFFER)", func() {
		gl.GenBuffers(1, &r.ibo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ibo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(QuadIndices)*indexSize, unsafe.Pointer(&QuadIndices[0]), gl.STATIC_DRAW)
	})
	if err != nil {
		return err
	}

	// The attribute pointer keeps its own reference to the VBO.
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	logger.Debug("quad uploaded",
		zap.Uint32("vao", r.vao),
		zap.Uint32("vbo", r.vbo),
		zap.Uint32("ibo", r.ibo),
	)
	return nil
}

// Resize updates the viewport.
func (r *Renderer) Resize(width, height int) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("invalid viewport size %dx%d", width, height)
	}
	r.config.Width = width
	r.config.Height = height
	err := r.check.Call("Viewport", func() {
		gl.Viewport(0, 0, int32(width), int32(height))
	})
	if err != nil {
		return err
	}
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
	return nil
}

// Begin clears the framebuffer.
func (r *Renderer) Begin() error {
	return r.check.Call("Clear", func() {
		gl.Clear(gl.COLOR_BUFFER_BIT)
	})
}

// SetColor uploads a vec4 to the uniform at loc of the current program.
func (r *Renderer) SetColor(loc int32, red, green, blue, alpha float32) error {
	return r.check.Call("Uniform4f", func() {
		gl.Uniform4f(loc, red, green, blue, alpha)
	})
}

// DrawQuad draws the indexed quad.
func (r *Renderer) DrawQuad() error {
	return r.check.Call("DrawElements", func() {
		gl.BindVertexArray(r.vao)
		gl.DrawElements(gl.TRIANGLES, int32(len(QuadIndices)), gl.UNSIGNED_INT, nil)
	})
}

// ReadPixels returns the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int, error) {
	w, h := r.config.Width, r.config.Height
	if w <= 0 || h <= 0 {
		return nil, w, h, fmt.Errorf("%w: %dx%d", ErrEmptyFramebuffer, w, h)
	}
	pixels := make([]byte, w*h*4)
	err := r.check.Call("ReadPixels", func() {
		gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
		gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	})
	return pixels, w, h, err
}

// Close deletes the quad's buffers.
func (r *Renderer) Close() error {
	logger.Info("closing renderer")

	var err error
	if r.ibo != 0 {
		err = multierr.Append(err, r.check.Call("DeleteBuffers(ibo)", func() { gl.DeleteBuffers(1, &r.ibo) }))
	}
	if r.vbo != 0 {
		err = multierr.Append(err, r.check.Call("DeleteBuffers(vbo)", func() { gl.DeleteBuffers(1, &r.vbo) }))
	}
	if r.vao != 0 {
		err = multierr.Append(err, r.check.Call("DeleteVertexArrays", func() { gl.DeleteVertexArrays(1, &r.vao) }))
	}
	r.vao, r.vbo, r.ibo = 0, 0, 0
	return err
}
