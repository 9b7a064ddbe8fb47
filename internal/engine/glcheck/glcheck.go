// Package glcheck wraps graphics calls with error-flag draining.
//
// The checker does not import the GL bindings. It is given the error query
// function, which keeps it usable without a context.
package glcheck

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"go.uber.org/zap"
)

// Code is a GL error flag.
type Code uint32

// Error flag values as defined by the OpenGL specification.
const (
	NoError                     Code = 0
	InvalidEnum                 Code = 0x0500
	InvalidValue                Code = 0x0501
	InvalidOperation            Code = 0x0502
	StackOverflow               Code = 0x0503
	StackUnderflow              Code = 0x0504
	OutOfMemory                 Code = 0x0505
	InvalidFramebufferOperation Code = 0x0506
)

// maxDrain bounds flag draining; a lost context may report an error forever.
const maxDrain = 32

func (c Code) String() string {
	switch c {
	case NoError:
		return "NO_ERROR"
	case InvalidEnum:
		return "INVALID_ENUM"
	case InvalidValue:
		return "INVALID_VALUE"
	case InvalidOperation:
		return "INVALID_OPERATION"
	case StackOverflow:
		return "STACK_OVERFLOW"
	case StackUnderflow:
		return "STACK_UNDERFLOW"
	case OutOfMemory:
		return "OUT_OF_MEMORY"
	case InvalidFramebufferOperation:
		return "INVALID_FRAMEBUFFER_OPERATION"
	default:
		return fmt.Sprintf("UNKNOWN(0x%04X)", uint32(c))
	}
}

// Failure is one error flag raised by a wrapped call.
type Failure struct {
	Code Code
	Expr string
	File string
	Line int
}

func (f Failure) String() string {
	return fmt.Sprintf("%s in %s at %s:%d", f.Code, f.Expr, filepath.Base(f.File), f.Line)
}

// CallError lists every flag raised by one wrapped call.
type CallError struct {
	Failures []Failure
}

func (e *CallError) Error() string {
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		parts[i] = f.String()
	}
	return "gl error: " + strings.Join(parts, "; ")
}

// Has reports whether code was among the raised flags.
func (e *CallError) Has(code Code) bool {
	for _, f := range e.Failures {
		if f.Code == code {
			return true
		}
	}
	return false
}

// Reporter receives each failure as it is drained.
type Reporter interface {
	ReportGLError(f Failure)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(f Failure)

// ReportGLError calls fn(f).
func (fn ReporterFunc) ReportGLError(f Failure) { fn(f) }

// ZapReporter logs failures at error level.
type ZapReporter struct {
	Log *zap.Logger
}

// ReportGLError logs f.
func (r ZapReporter) ReportGLError(f Failure) {
	r.Log.Error("gl error",
		zap.Stringer("code", f.Code),
		zap.String("call", f.Expr),
		zap.String("file", f.File),
		zap.Int("line", f.Line),
	)
}

// Checker drains GL error flags around calls.
type Checker struct {
	getError func() uint32
	reporter Reporter

	// Enabled turns checking on. A disabled checker only runs the call.
	Enabled bool
}

// New returns an enabled checker. reporter may be nil.
func New(getError func() uint32, reporter Reporter) *Checker {
	return &Checker{getError: getError, reporter: reporter, Enabled: true}
}

// Clear discards any pending error flags.
func (c *Checker) Clear() {
	for i := 0; i < maxDrain; i++ {
		if Code(c.getError()) == NoError {
			return
		}
	}
}

// Call clears pending flags, runs fn, then drains and reports every flag fn
// raised. expr is the textual form of the call for reporting. The returned
// error is a *CallError, or nil when no flag was raised.
func (c *Checker) Call(expr string, fn func()) error {
	if c == nil || !c.Enabled {
		fn()
		return nil
	}

	c.Clear()
	fn()

	_, file, line, _ := runtime.Caller(1)
	return c.drain(expr, file, line)
}

func (c *Checker) drain(expr, file string, line int) error {
	var failures []Failure
	for i := 0; i < maxDrain; i++ {
		code := Code(c.getError())
		if code == NoError {
			break
		}
		f := Failure{Code: code, Expr: expr, File: file, Line: line}
		if c.reporter != nil {
			c.reporter.ReportGLError(f)
		}
		failures = append(failures, f)
	}

	if len(failures) == 0 {
		return nil
	}
	return &CallError{Failures: failures}
}
