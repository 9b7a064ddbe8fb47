// Package renderer draws the sandbox scene: one indexed quad coloured by the
// u_Color uniform.
package renderer

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/glsandbox/internal/engine/glcheck"
	"github.com/Faultbox/glsandbox/internal/engine/gldriver"
	"github.com/Faultbox/glsandbox/internal/engine/shader"
	"github.com/Faultbox/glsandbox/internal/logger"
	"github.com/Faultbox/glsandbox/internal/shadersrc"
)

// ErrGLInit is returned when the OpenGL function loader fails.
var ErrGLInit = errors.New("opengl init failed")

// ColorUniform is the uniform the fragment stage reads its colour from.
const ColorUniform = "u_Color"

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor [4]float32
	// CheckErrors wraps GL calls with error-flag draining.
	CheckErrors bool
	// Validate runs program validation after linking.
	Validate bool
	// Pulse animates the red channel of u_Color.
	Pulse Pulse
	// Driver compiles and links programs. Nil uses the go-gl driver.
	Driver shader.Driver
}

// Renderer owns the GL objects for the scene.
type Renderer struct {
	config  Config
	builder *shader.Builder
	check   *glcheck.Checker

	program  shader.Program
	colorLoc int32

	quadVAO uint32
	quadVBO uint32
	quadIBO uint32
	indices int32

	pulse Pulse
}

// quadVertices are the corners of a centred square, two floats each.
var quadVertices = []float32{
	-0.5, -0.5,
	0.5, -0.5,
	0.5, 0.5,
	-0.5, 0.5,
}

var quadIndices = []uint32{
	0, 1, 2,
	2, 3, 0,
}

// New creates a renderer and builds its program from src.
// IMPORTANT: Must be called AFTER the OpenGL context is current!
func New(cfg Config, src shadersrc.Source) (*Renderer, error) {
	if err := gldriver.Init(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGLInit, err)
	}

	version, name := gldriver.Version()
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", name),
	)

	r := newRenderer(cfg)

	c := cfg.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	if err := r.createQuad(); err != nil {
		r.Close()
		return nil, fmt.Errorf("failed to create quad: %w", err)
	}

	if err := r.SetShader(src); err != nil {
		r.Close()
		return nil, err
	}

	return r, nil
}

// newRenderer sets up the program builder and error checker without touching
// GL state.
func newRenderer(cfg Config) *Renderer {
	driver := cfg.Driver
	if driver == nil {
		driver = gldriver.Driver{}
	}

	r := &Renderer{
		config:  cfg,
		builder: shader.NewBuilder(driver, shader.ZapSink{Log: logger.Log}),
		check:   glcheck.New(gldriver.GetError, glcheck.ZapReporter{Log: logger.Log}),
		pulse:   cfg.Pulse,
	}
	r.check.Enabled = cfg.CheckErrors
	r.builder.Validate = cfg.Validate
	return r
}

// SetShader builds a program from src and makes it current. On failure the
// previous program, if any, stays bound.
func (r *Renderer) SetShader(src shadersrc.Source) error {
	program, err := r.builder.BuildSource(src)
	if err != nil {
		return fmt.Errorf("failed to build shader program: %w", err)
	}

	loc := gldriver.UniformLocation(program, ColorUniform)
	if loc < 0 {
		logger.Warn("uniform not active", zap.String("uniform", ColorUniform))
	}

	if err := r.check.Call("glUseProgram(program)", func() { gldriver.Use(program) }); err != nil {
		r.builder.Delete(program)
		return err
	}

	r.builder.Delete(r.program)
	r.program = program
	r.colorLoc = loc

	logger.Debug("shader program bound",
		zap.Uint32("program", uint32(program)),
		zap.Int32("colorLoc", loc),
	)
	return nil
}

// Close releases all GL objects.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &r.quadVAO)
		r.quadVAO = 0
	}
	if r.quadVBO != 0 {
		gl.DeleteBuffers(1, &r.quadVBO)
		r.quadVBO = 0
	}
	if r.quadIBO != 0 {
		gl.DeleteBuffers(1, &r.quadIBO)
		r.quadIBO = 0
	}
	r.builder.Delete(r.program)
	r.program = 0
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Frame clears the screen, draws the quad with the current pulse colour and
// advances the animation.
func (r *Renderer) Frame() error {
	if err := r.check.Call("glClear(COLOR_BUFFER_BIT)", func() {
		gl.Clear(gl.COLOR_BUFFER_BIT)
	}); err != nil {
		return err
	}

	red, green, blue, alpha := r.pulse.Color()
	if r.colorLoc >= 0 {
		if err := r.check.Call("glUniform4f(u_Color)", func() {
			gl.Uniform4f(r.colorLoc, red, green, blue, alpha)
		}); err != nil {
			return err
		}
	}

	if err := r.check.Call("glDrawElements(TRIANGLES)", func() {
		gl.BindVertexArray(r.quadVAO)
		gl.DrawElements(gl.TRIANGLES, r.indices, gl.UNSIGNED_INT, nil)
	}); err != nil {
		return err
	}

	r.pulse.Advance()
	return nil
}

// ReadPixels returns the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int, error) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return nil, 0, 0, fmt.Errorf("empty viewport %dx%d", w, h)
	}

	err := r.check.Call("glReadPixels(RGBA)", func() {
		gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
		gl.ReadBuffer(gl.BACK)
		gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	})
	if err != nil {
		return nil, 0, 0, err
	}
	return pixels, w, h, nil
}

// createQuad uploads the quad geometry.
func (r *Renderer) createQuad() error {
	return r.check.Call("createQuad", func() {
		gl.GenVertexArrays(1, &r.quadVAO)
		gl.BindVertexArray(r.quadVAO)

		gl.GenBuffers(1, &r.quadVBO)
		gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
		gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, unsafe.Pointer(&quadVertices[0]), gl.STATIC_DRAW)

		// Position attribute (location = 0)
		gl.EnableVertexAttribArray(0)
		gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, nil)

		gl.GenBuffers(1, &r.quadIBO)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.quadIBO)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(quadIndices)*4, unsafe.Pointer(&quadIndices[0]), gl.STATIC_DRAW)
		r.indices = int32(len(quadIndices))

		logger.Debug("quad created",
			zap.Uint32("vao", r.quadVAO),
			zap.Uint32("vbo", r.quadVBO),
			zap.Uint32("ibo", r.quadIBO),
		)
	})
}
