// Package shader compiles shader stages and links them into programs.
//
// The builder talks to the graphics API through a Driver, so compile and link
// logic runs the same against OpenGL (see package gldriver) and test doubles.
// Diagnostics are reported to an injected Sink as well as returned.
package shader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Faultbox/glsandbox/internal/shadersrc"
)

var (
	// ErrCompile matches a BuildError caused by a stage failing to compile.
	ErrCompile = errors.New("shader compile failed")
	// ErrLink matches a BuildError caused by link or validation failure.
	ErrLink = errors.New("program link failed")
)

// Stage identifies a shader pipeline stage.
type Stage int

const (
	StageVertex Stage = iota
	StageFragment
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Unit is a compiled shader stage held by the driver. Zero means no unit.
type Unit uint32

// Program is a linked, executable program held by the driver. Zero is invalid.
type Program uint32

// Valid reports whether p refers to a linked program.
func (p Program) Valid() bool { return p != 0 }

// Driver is the subset of the graphics API the builder needs.
type Driver interface {
	CreateShader(stage Stage) uint32
	ShaderSource(shader uint32, source string)
	// CompileShader compiles and returns the compile status.
	CompileShader(shader uint32) bool
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	// LinkProgram links and returns the link status.
	LinkProgram(program uint32) bool
	// ValidateProgram validates and returns the validate status.
	ValidateProgram(program uint32) bool
	ProgramInfoLog(program uint32) string
	DeleteProgram(program uint32)
}

// Builder compiles and links programs.
type Builder struct {
	driver Driver
	sink   Sink

	// Validate runs program validation after a successful link.
	Validate bool
}

// NewBuilder returns a builder using driver. A nil sink discards diagnostics.
func NewBuilder(driver Driver, sink Sink) *Builder {
	if sink == nil {
		sink = Discard
	}
	return &Builder{driver: driver, sink: sink, Validate: true}
}

// Compile creates and compiles one stage. On failure the unit is deleted, the
// info log is reported, and a *BuildError is returned.
func (b *Builder) Compile(stage Stage, source string) (Unit, error) {
	id := b.driver.CreateShader(stage)
	b.driver.ShaderSource(id, source)

	if !b.driver.CompileShader(id) {
		d := Diagnostic{Object: stage.String(), Message: cleanLog(b.driver.ShaderInfoLog(id))}
		b.sink.Report(d)
		b.driver.DeleteShader(id)
		return 0, &BuildError{kind: ErrCompile, Diagnostics: []Diagnostic{d}}
	}

	return Unit(id), nil
}

// Build compiles both stages and links them. Both stages are always compiled
// so every stage diagnostic is reported at once. No program object is created
// unless both compile. Compiled units are deleted before returning on every
// path.
func (b *Builder) Build(vertexSrc, fragmentSrc string) (Program, error) {
	vert, vertErr := b.Compile(StageVertex, vertexSrc)
	frag, fragErr := b.Compile(StageFragment, fragmentSrc)

	defer func() {
		if vert != 0 {
			b.driver.DeleteShader(uint32(vert))
		}
		if frag != 0 {
			b.driver.DeleteShader(uint32(frag))
		}
	}()

	if vertErr != nil || fragErr != nil {
		return 0, joinBuildErrors(vertErr, fragErr)
	}

	program := b.driver.CreateProgram()
	b.driver.AttachShader(program, uint32(vert))
	b.driver.AttachShader(program, uint32(frag))

	if !b.driver.LinkProgram(program) {
		return 0, b.failProgram(program, "link")
	}

	if b.Validate && !b.driver.ValidateProgram(program) {
		return 0, b.failProgram(program, "validate")
	}

	return Program(program), nil
}

// BuildSource builds a program from a split resource.
func (b *Builder) BuildSource(src shadersrc.Source) (Program, error) {
	return b.Build(src.Vertex, src.Fragment)
}

// Delete releases a program. Deleting the zero program is a no-op.
func (b *Builder) Delete(p Program) {
	if p.Valid() {
		b.driver.DeleteProgram(uint32(p))
	}
}

func (b *Builder) failProgram(program uint32, object string) error {
	d := Diagnostic{Object: object, Message: cleanLog(b.driver.ProgramInfoLog(program))}
	b.sink.Report(d)
	b.driver.DeleteProgram(program)
	return &BuildError{kind: ErrLink, Diagnostics: []Diagnostic{d}}
}

func joinBuildErrors(errs ...error) error {
	out := &BuildError{kind: ErrCompile}
	for _, err := range errs {
		var be *BuildError
		if errors.As(err, &be) {
			out.Diagnostics = append(out.Diagnostics, be.Diagnostics...)
		}
	}
	return out
}

// cleanLog trims the trailing NULs and whitespace drivers leave in info logs.
func cleanLog(log string) string {
	return strings.TrimRight(log, "\x00 \t\r\n")
}
