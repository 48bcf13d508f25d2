// Package yamldoc writes converted databases as YAML documents made of a
// Header block and a Body sequence. Records are encoded and flushed one
// at a time so a table is never held in memory.
package yamldoc

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

const indent = 2

// Header identifies the database type and schema version of a document.
type Header struct {
	Type    string `yaml:"Type"`
	Version uint32 `yaml:"Version"`
}

// Writer streams one document.
type Writer struct {
	w       *bufio.Writer
	buf     bytes.Buffer
	records int
	err     error
}

// NewWriter writes the header of a document to w.
func NewWriter(w io.Writer, h Header) (*Writer, error) {
	dw := &Writer{w: bufio.NewWriter(w)}

	out, err := dw.encode(struct {
		Header Header `yaml:"Header"`
	}{h})
	if err != nil {
		return nil, fmt.Errorf("encoding header: %w", err)
	}
	if _, err := dw.w.Write(out); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}
	return dw, nil
}

// Append writes rec as the next Body element.
func (dw *Writer) Append(rec any) error {
	if dw.err != nil {
		return dw.err
	}

	out, err := dw.encode([]any{rec})
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}

	if dw.records == 0 {
		dw.write([]byte("\nBody:\n"))
	}
	for _, line := range bytes.SplitAfter(out, []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		if line[0] != '\n' {
			dw.write([]byte("  "))
		}
		dw.write(line)
	}
	dw.records++
	return dw.err
}

// Records returns the number of appended records.
func (dw *Writer) Records() int {
	return dw.records
}

// Err returns the first error hit writing to the underlying writer.
func (dw *Writer) Err() error {
	return dw.err
}

// Close terminates the document and flushes it. It does not close the
// underlying writer.
func (dw *Writer) Close() error {
	if dw.err != nil {
		return dw.err
	}
	if dw.records == 0 {
		dw.write([]byte("\nBody: []\n"))
	}
	if dw.err != nil {
		return dw.err
	}
	return dw.w.Flush()
}

func (dw *Writer) write(p []byte) {
	if dw.err != nil {
		return
	}
	_, dw.err = dw.w.Write(p)
}

func (dw *Writer) encode(v any) ([]byte, error) {
	dw.buf.Reset()
	enc := yaml.NewEncoder(&dw.buf)
	enc.SetIndent(indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return dw.buf.Bytes(), nil
}

// Literal is a string written as a YAML literal block scalar. It is used
// for script payloads so they keep their layout. A line starting with a
// tab cannot open a block scalar line, so such text is double quoted.
type Literal string

// MarshalYAML implements yaml.Marshaler.
func (l Literal) MarshalYAML() (any, error) {
	style := yaml.LiteralStyle
	if strings.HasPrefix(string(l), "\t") || strings.Contains(string(l), "\n\t") {
		style = yaml.DoubleQuotedStyle
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Style: style, Value: string(l)}, nil
}

// Flags is an ordered mapping of names to booleans, such as job or equip
// location sets.
type Flags []Flag

// Flag is one entry of Flags.
type Flag struct {
	Name  string
	Value bool
}

// MarshalYAML implements yaml.Marshaler.
func (f Flags) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range f {
		v := "false"
		if e.Value {
			v = "true"
		}
		n.Content = append(n.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Name},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: v},
		)
	}
	return n, nil
}

// IsZero reports whether f is unset. An empty but non-nil Flags is
// written as an empty mapping, so omitempty keeps it.
func (f Flags) IsZero() bool {
	return f == nil
}

// Set returns Flags with every name set to true.
func Set(names ...string) Flags {
	f := make(Flags, 0, len(names))
	for _, n := range names {
		f = append(f, Flag{Name: n, Value: true})
	}
	return f
}
