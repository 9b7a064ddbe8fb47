package shader

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Diagnostic is one compiler or linker message.
// Object is "vertex", "fragment", "link" or "validate".
type Diagnostic struct {
	Object  string
	Message string
}

func (d Diagnostic) String() string {
	if d.Message == "" {
		return d.Object + ": (no log)"
	}
	return d.Object + ": " + d.Message
}

// Sink receives diagnostics as they are produced.
type Sink interface {
	Report(d Diagnostic)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(d Diagnostic)

// Report calls f(d).
func (f SinkFunc) Report(d Diagnostic) { f(d) }

// Discard drops all diagnostics.
var Discard Sink = SinkFunc(func(Diagnostic) {})

// ZapSink logs each diagnostic at error level.
type ZapSink struct {
	Log *zap.Logger
}

// Report logs d.
func (s ZapSink) Report(d Diagnostic) {
	s.Log.Error("failed to build shader",
		zap.String("object", d.Object),
		zap.String("log", d.Message),
	)
}

// Diagnostics collects reported diagnostics.
type Diagnostics struct {
	mu    sync.Mutex
	items []Diagnostic
}

// Report appends d.
func (c *Diagnostics) Report(d Diagnostic) {
	c.mu.Lock()
	c.items = append(c.items, d)
	c.mu.Unlock()
}

// All returns a copy of the collected diagnostics.
func (c *Diagnostics) All() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Diagnostic(nil), c.items...)
}

// Len returns the number of collected diagnostics.
func (c *Diagnostics) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// BuildError is returned when a program cannot be built.
type BuildError struct {
	kind        error
	Diagnostics []Diagnostic
}

func (e *BuildError) Error() string {
	parts := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		parts[i] = d.String()
	}
	return fmt.Sprintf("%v: %s", e.kind, strings.Join(parts, "; "))
}

// Unwrap returns ErrCompile or ErrLink.
func (e *BuildError) Unwrap() error {
	return e.kind
}
