// Package shadersrc splits a combined shader resource into its vertex and
// fragment sections.
//
// A resource is plain text. A line containing the "#shader" marker selects the
// section that following lines belong to:
//
//	#shader vertex
//	#version 330 core
//	...
//	#shader fragment
//	#version 330 core
//	...
//
// Lines before the first marker are discarded.
package shadersrc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// Marker and section keywords recognised on a marker line.
const (
	Marker          = "#shader"
	VertexKeyword   = "vertex"
	FragmentKeyword = "fragment"
)

// ErrUnreadable is returned (wrapped in a *LoadError) when a resource cannot be
// opened or read.
var ErrUnreadable = errors.New("shader resource unreadable")

// Source holds the two text blocks of a shader resource.
type Source struct {
	Vertex   string
	Fragment string
}

// section is the block currently receiving lines.
type section int

const (
	sectionNone section = iota
	sectionVertex
	sectionFragment
)

// LoadError describes a resource that could not be opened or read.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading shader %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() []error {
	return []error{ErrUnreadable, e.Err}
}

// Parse reads r line by line and partitions it into vertex and fragment text.
// Every non-marker line is kept with a trailing "\n". A marker line naming
// neither keyword leaves the active section unchanged.
func Parse(r io.Reader) (Source, error) {
	var vertex, fragment strings.Builder
	active := sectionNone

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()

		if strings.Contains(line, Marker) {
			if strings.Contains(line, VertexKeyword) {
				active = sectionVertex
			} else if strings.Contains(line, FragmentKeyword) {
				active = sectionFragment
			}
			continue
		}

		switch active {
		case sectionVertex:
			vertex.WriteString(line)
			vertex.WriteByte('\n')
		case sectionFragment:
			fragment.WriteString(line)
			fragment.WriteByte('\n')
		}
	}
	if err := scanner.Err(); err != nil {
		return Source{}, err
	}

	return Source{Vertex: vertex.String(), Fragment: fragment.String()}, nil
}

// ParseString is Parse for in-memory text. The only failure is a line
// longer than the scanner limit.
func ParseString(s string) (Source, error) {
	return Parse(strings.NewReader(s))
}

// Load opens and parses the resource at path.
func Load(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return Source{}, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	src, err := Parse(f)
	if err != nil {
		return Source{}, &LoadError{Path: path, Err: err}
	}
	return src, nil
}

// LoadFS opens and parses the resource name inside fsys.
func LoadFS(fsys fs.FS, name string) (Source, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return Source{}, &LoadError{Path: name, Err: err}
	}
	defer f.Close()

	src, err := Parse(f)
	if err != nil {
		return Source{}, &LoadError{Path: name, Err: err}
	}
	return src, nil
}

// Empty reports whether each block is empty.
func (s Source) Empty() (vertex, fragment bool) {
	return s.Vertex == "", s.Fragment == ""
}

// StageText pairs a section name with its text.
type StageText struct {
	Name string
	Text string
}

// Stages returns the sections in declaration order: vertex first, fragment second.
func (s Source) Stages() []StageText {
	return []StageText{
		{Name: VertexKeyword, Text: s.Vertex},
		{Name: FragmentKeyword, Text: s.Fragment},
	}
}
