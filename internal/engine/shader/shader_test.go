package shader

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/glsandbox/internal/shadersrc"
)

const (
	validVertex = `#version 330 core
layout(location = 0) in vec4 position;
void main() { gl_Position = position; }
`
	validFragment = `#version 330 core
uniform vec4 u_Color;
out vec4 color;
void main() { color = u_Color; }
`
)

// fakeDriver mimics the GL object model closely enough to check lifetimes.
// A stage compiles when it declares "void main"; linking fails when failLink
// is set.
type fakeDriver struct {
	next     uint32
	shaders  map[uint32]string
	stages   map[uint32]Stage
	programs map[uint32][]uint32

	failLink     bool
	failValidate bool
	created      []Stage
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		shaders:  make(map[uint32]string),
		stages:   make(map[uint32]Stage),
		programs: make(map[uint32][]uint32),
	}
}

func (f *fakeDriver) id() uint32 {
	f.next++
	return f.next
}

func (f *fakeDriver) CreateShader(stage Stage) uint32 {
	id := f.id()
	f.shaders[id] = ""
	f.stages[id] = stage
	f.created = append(f.created, stage)
	return id
}

func (f *fakeDriver) ShaderSource(shader uint32, source string) { f.shaders[shader] = source }

func (f *fakeDriver) CompileShader(shader uint32) bool {
	return strings.Contains(f.shaders[shader], "void main")
}

func (f *fakeDriver) ShaderInfoLog(shader uint32) string {
	if f.CompileShader(shader) {
		return ""
	}
	return fmt.Sprintf("ERROR: 0:3: %s stage has no entry point\n\x00", f.stages[shader])
}

func (f *fakeDriver) DeleteShader(shader uint32) { delete(f.shaders, shader) }

func (f *fakeDriver) CreateProgram() uint32 {
	id := f.id()
	f.programs[id] = nil
	return id
}

func (f *fakeDriver) AttachShader(program, shader uint32) {
	f.programs[program] = append(f.programs[program], shader)
}

func (f *fakeDriver) LinkProgram(program uint32) bool { return !f.failLink }

func (f *fakeDriver) ValidateProgram(program uint32) bool { return !f.failValidate }

func (f *fakeDriver) ProgramInfoLog(program uint32) string {
	return "error: linking with uncompiled/unspecialized shader"
}

func (f *fakeDriver) DeleteProgram(program uint32) { delete(f.programs, program) }

func TestBuildValid(t *testing.T) {
	drv := newFakeDriver()
	diags := &Diagnostics{}

	prog, err := NewBuilder(drv, diags).Build(validVertex, validFragment)
	require.NoError(t, err)
	assert.True(t, prog.Valid())
	assert.Zero(t, diags.Len())

	assert.Empty(t, drv.shaders, "stage units must be released after linking")
	assert.Contains(t, drv.programs, uint32(prog))
	assert.Len(t, drv.programs[uint32(prog)], 2)
}

func TestBuildVertexSyntaxError(t *testing.T) {
	drv := newFakeDriver()
	diags := &Diagnostics{}

	broken := strings.Replace(validVertex, "void main", "viod main", 1)
	prog, err := NewBuilder(drv, diags).Build(broken, validFragment)
	require.Error(t, err)
	assert.False(t, prog.Valid())
	assert.True(t, errors.Is(err, ErrCompile))

	all := diags.All()
	require.Len(t, all, 1)
	assert.Equal(t, "vertex", all[0].Object)
	assert.Contains(t, all[0].Message, "vertex stage")
	assert.NotContains(t, all[0].Message, "\x00")

	assert.Empty(t, drv.shaders, "no compiled units may survive a failed build")
	assert.Empty(t, drv.programs, "no program may be created when a stage fails")
}

func TestBuildBothStagesFail(t *testing.T) {
	drv := newFakeDriver()
	diags := &Diagnostics{}

	_, err := NewBuilder(drv, diags).Build("", "")
	require.Error(t, err)

	var be *BuildError
	require.True(t, errors.As(err, &be))
	require.Len(t, be.Diagnostics, 2)
	assert.Equal(t, "vertex", be.Diagnostics[0].Object)
	assert.Equal(t, "fragment", be.Diagnostics[1].Object)
	assert.Equal(t, 2, diags.Len())
	assert.Equal(t, []Stage{StageVertex, StageFragment}, drv.created)
	assert.Empty(t, drv.shaders)
}

func TestBuildLinkFailure(t *testing.T) {
	drv := newFakeDriver()
	drv.failLink = true
	diags := &Diagnostics{}

	prog, err := NewBuilder(drv, diags).Build(validVertex, validFragment)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLink))
	assert.Zero(t, prog)

	all := diags.All()
	require.Len(t, all, 1)
	assert.Equal(t, "link", all[0].Object)
	assert.Empty(t, drv.programs, "failed program must be deleted")
	assert.Empty(t, drv.shaders)
}

func TestBuildValidateFailure(t *testing.T) {
	drv := newFakeDriver()
	drv.failValidate = true

	b := NewBuilder(drv, nil)
	_, err := b.Build(validVertex, validFragment)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validate")

	b.Validate = false
	prog, err := b.Build(validVertex, validFragment)
	require.NoError(t, err)
	assert.True(t, prog.Valid())
}

func TestCompileSingleStage(t *testing.T) {
	drv := newFakeDriver()
	b := NewBuilder(drv, nil)

	unit, err := b.Compile(StageFragment, validFragment)
	require.NoError(t, err)
	assert.NotZero(t, unit)
	assert.Contains(t, drv.shaders, uint32(unit))

	unit, err = b.Compile(StageFragment, "")
	require.Error(t, err)
	assert.Zero(t, unit)
}

func TestBuildSource(t *testing.T) {
	drv := newFakeDriver()
	src, err := shadersrc.ParseString("#shader vertex\n" + validVertex + "#shader fragment\n" + validFragment)
	require.NoError(t, err)

	prog, err := NewBuilder(drv, nil).BuildSource(src)
	require.NoError(t, err)
	assert.True(t, prog.Valid())
}

func TestBuildSourceMissingFragment(t *testing.T) {
	drv := newFakeDriver()
	diags := &Diagnostics{}
	src, err := shadersrc.ParseString("#shader vertex\n" + validVertex)
	require.NoError(t, err)

	_, err = NewBuilder(drv, diags).BuildSource(src)
	require.Error(t, err)
	all := diags.All()
	require.Len(t, all, 1)
	assert.Equal(t, "fragment", all[0].Object)
}

func TestDeleteProgram(t *testing.T) {
	drv := newFakeDriver()
	b := NewBuilder(drv, nil)

	prog, err := b.Build(validVertex, validFragment)
	require.NoError(t, err)

	b.Delete(prog)
	assert.Empty(t, drv.programs)

	b.Delete(0)
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "vertex", StageVertex.String())
	assert.Equal(t, "fragment", StageFragment.String())
	assert.Equal(t, "stage(7)", Stage(7).String())
}

func TestBuildErrorMessage(t *testing.T) {
	err := &BuildError{kind: ErrCompile, Diagnostics: []Diagnostic{
		{Object: "vertex", Message: "bad token"},
		{Object: "fragment"},
	}}
	assert.Equal(t, "shader compile failed: vertex: bad token; fragment: (no log)", err.Error())
}

func TestZapSink(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	sink := ZapSink{Log: zap.New(core)}

	drv := newFakeDriver()
	_, err := NewBuilder(drv, sink).Build("", validFragment)
	require.Error(t, err)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "failed to build shader", entry.Message)
	assert.Equal(t, "vertex", entry.ContextMap()["object"])
}
