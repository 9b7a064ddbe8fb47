// Package gldriver implements shader.Driver and related helpers on the
// go-gl OpenGL 4.1 core bindings. All functions must run on the thread that
// owns the current context.
package gldriver

import (
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/glsandbox/internal/engine/shader"
)

// Driver issues shader and program calls to OpenGL.
type Driver struct{}

var _ shader.Driver = Driver{}

// Init loads the OpenGL function pointers for the current context.
func Init() error {
	return gl.Init()
}

// Version returns the GL_VERSION and GL_RENDERER strings.
func Version() (version, renderer string) {
	return gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.RENDERER))
}

// GetError returns the next pending error flag.
func GetError() uint32 {
	return gl.GetError()
}

func (Driver) CreateShader(stage shader.Stage) uint32 {
	switch stage {
	case shader.StageFragment:
		return gl.CreateShader(gl.FRAGMENT_SHADER)
	default:
		return gl.CreateShader(gl.VERTEX_SHADER)
	}
}

func (Driver) ShaderSource(id uint32, source string) {
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(id, 1, csource, nil)
	free()
}

func (Driver) CompileShader(id uint32) bool {
	gl.CompileShader(id)

	var status int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (Driver) ShaderInfoLog(id uint32) string {
	var logLen int32
	gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &logLen)
	if logLen == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLen+1))
	gl.GetShaderInfoLog(id, logLen, nil, gl.Str(log))
	return log
}

func (Driver) DeleteShader(id uint32) {
	gl.DeleteShader(id)
}

func (Driver) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (Driver) AttachShader(program, id uint32) {
	gl.AttachShader(program, id)
}

func (Driver) LinkProgram(program uint32) bool {
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (Driver) ValidateProgram(program uint32) bool {
	gl.ValidateProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.VALIDATE_STATUS, &status)
	return status != gl.FALSE
}

func (Driver) ProgramInfoLog(program uint32) string {
	var logLen int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
	if logLen == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLen+1))
	gl.GetProgramInfoLog(program, logLen, nil, gl.Str(log))
	return log
}

func (Driver) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

// Use binds p for subsequent draws.
func Use(p shader.Program) {
	gl.UseProgram(uint32(p))
}

// UniformLocation returns the location of the named uniform, or -1 if it is
// missing or inactive.
func UniformLocation(p shader.Program, name string) int32 {
	return gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00"))
}
